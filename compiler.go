package messageformat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Names of the runtime helpers emitted code may call.
const (
	HelperSelect = "select"
	HelperPlural = "plural"
	HelperNumber = "number"
)

const (
	dataReceiver      = "d"
	formatterReceiver = "fmt"
	emptyString       = `""`
)

// Compiled is the output of a compilation and mirrors the input Template.
type Compiled interface {
	isCompiled()
}

// FunctionSource is the source of a single argument function `function(d) {...}`.
type FunctionSource string

// CompiledCatalog holds compiled outputs under the keys of the input Catalog.
type CompiledCatalog map[string]Compiled

func (FunctionSource) isCompiled()  {}
func (CompiledCatalog) isCompiled() {}

// Compiler turns token trees into function sources. It records which runtime
// helpers, plural rule locales and formatters the emitted code references.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	cfg *Config

	locale     string
	runtime    map[string]struct{}
	locales    map[string]struct{}
	formatters map[string]struct{}
}

// NewCompiler binds a Compiler to cfg
func NewCompiler(cfg *Config) *Compiler {
	c := &Compiler{cfg: cfg}
	c.Reset()
	return c
}

// Reset clears the current locale and all reference tables
func (c *Compiler) Reset() {
	c.locale = ""
	c.runtime = make(map[string]struct{})
	c.locales = make(map[string]struct{})
	c.formatters = make(map[string]struct{})
}

// RuntimeHelpers returns the referenced runtime helpers in sorted order
func (c *Compiler) RuntimeHelpers() []string {
	return sortedKeys(c.runtime)
}

// Locales returns the locales whose plural rule function must be linked
func (c *Compiler) Locales() []string {
	return sortedKeys(c.locales)
}

// Formatters returns the formatter keys invoked by emitted code
func (c *Compiler) Formatters() []string {
	return sortedKeys(c.formatters)
}

// Compile compiles tpl. A Message compiles to a FunctionSource; a Catalog
// compiles to a CompiledCatalog with the same keys. Entering a catalog key
// found in pluralFuncs makes it the locale of that branch. Plural and
// selectordinal tokens fail with ErrMissingLocale when no locale is in effect.
func (c *Compiler) Compile(tpl Template, defaultLocale string, pluralFuncs LocaleSet) (Compiled, error) {
	if c.cfg == nil {
		return nil, ErrNilConfig
	}

	out, err := c.compile(tpl, defaultLocale, pluralFuncs)
	if err != nil {
		c.cfg.logger().Warn("message compilation failed",
			zap.String("locale", defaultLocale),
			zap.Error(err),
		)
		return nil, err
	}
	return out, nil
}

func (c *Compiler) compile(tpl Template, locale string, pluralFuncs LocaleSet) (Compiled, error) {
	switch t := tpl.(type) {
	case Message:
		c.locale = locale
		body, err := c.compileTokens(t, nil)
		if err != nil {
			return nil, err
		}
		c.cfg.logger().Debug("message compiled", zap.String("locale", locale))
		return FunctionSource("function(d) { return " + body + "; }"), nil

	case Catalog:
		result := make(CompiledCatalog, len(t))
		for _, key := range t.Keys() {
			branchLocale := locale
			if pluralFuncs.Has(key) {
				branchLocale = key
			}
			compiled, err := c.compile(t[key], branchLocale, pluralFuncs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			result[key] = compiled
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: template %T", ErrUnrecognizedToken, tpl)
	}
}

// pluralContext is the nearest enclosing plural or selectordinal
type pluralContext struct {
	arg    string
	offset int
}

func (c *Compiler) compileTokens(tokens []Token, plural *pluralContext) (string, error) {
	if len(tokens) == 0 {
		return emptyString, nil
	}

	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		part, err := c.compileToken(token, plural)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " + "), nil
}

func (c *Compiler) compileToken(token Token, plural *pluralContext) (string, error) {
	switch tok := token.(type) {
	case Literal:
		return jsonString(string(tok)), nil

	case Argument:
		read := PropName(tok.Arg, dataReceiver)
		if c.cfg.BidiSupport {
			return c.cfg.directions().MarkText(read, c.locale), nil
		}
		return read, nil

	case Select:
		cases, err := c.compileCases(token, tok.Cases, plural)
		if err != nil {
			return "", err
		}
		c.runtime[HelperSelect] = struct{}{}
		return call(HelperSelect, PropName(tok.Arg, dataReceiver), cases), nil

	case Plural:
		if err := c.requireLocale(token); err != nil {
			return "", err
		}
		cases, err := c.compileCases(token, tok.Cases, &pluralContext{arg: tok.Arg, offset: tok.Offset})
		if err != nil {
			return "", err
		}
		c.locales[c.locale] = struct{}{}
		c.runtime[HelperPlural] = struct{}{}
		return call(HelperPlural,
			PropName(tok.Arg, dataReceiver),
			strconv.Itoa(tok.Offset),
			FuncName(c.locale),
			cases,
		), nil

	case SelectOrdinal:
		if err := c.requireLocale(token); err != nil {
			return "", err
		}
		cases, err := c.compileCases(token, tok.Cases, &pluralContext{arg: tok.Arg})
		if err != nil {
			return "", err
		}
		c.locales[c.locale] = struct{}{}
		c.runtime[HelperPlural] = struct{}{}
		return call(HelperPlural,
			PropName(tok.Arg, dataReceiver),
			"0",
			FuncName(c.locale),
			cases,
			"1",
		), nil

	case FunctionCall:
		if _, err := c.cfg.ResolveFormatter(tok.Key, c.locale); err != nil {
			return "", err
		}
		args := []string{PropName(tok.Arg, dataReceiver), jsonString(c.locale)}
		switch len(tok.Params) {
		case 0:
		case 1:
			args = append(args, jsonString(tok.Params[0]))
		default:
			args = append(args, jsonLiteral(tok.Params))
		}
		c.formatters[tok.Key] = struct{}{}
		return call(PropName(tok.Key, formatterReceiver), args...), nil

	case Octothorpe:
		if plural == nil {
			return jsonString("#"), nil
		}
		args := []string{PropName(plural.arg, dataReceiver)}
		if plural.offset != 0 {
			args = append(args, strconv.Itoa(plural.offset))
		}
		c.runtime[HelperNumber] = struct{}{}
		return call(HelperNumber, args...), nil

	default:
		return "", fmt.Errorf("%w: parser error for token %s", ErrUnrecognizedToken, describeToken(token))
	}
}

func (c *Compiler) requireLocale(token Token) error {
	if FuncName(c.locale) == "" {
		return fmt.Errorf("%w: %s", ErrMissingLocale, describeToken(token))
	}
	return nil
}

// compileCases builds the case object literal, e.g. { one: "a", other: "b" }
func (c *Compiler) compileCases(token Token, cases []Case, plural *pluralContext) (string, error) {
	hasOther := false
	entries := make([]string, 0, len(cases))
	for _, kase := range cases {
		if kase.Key == OtherCase {
			hasOther = true
		}
		body, err := c.compileTokens(kase.Tokens, plural)
		if err != nil {
			return "", err
		}
		entries = append(entries, PropName(kase.Key, "")+": "+body)
	}

	if !hasOther {
		return "", fmt.Errorf("%w: no 'other' form found in %s", ErrMissingFallbackCase, describeToken(token))
	}
	return "{ " + strings.Join(entries, ", ") + " }", nil
}

func call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
