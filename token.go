package messageformat

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TokenType identifies the variant of a parsed message token
type TokenType string

const (
	TokenLiteral       TokenType = "content"
	TokenArgument      TokenType = "argument"
	TokenSelect        TokenType = "select"
	TokenPlural        TokenType = "plural"
	TokenSelectOrdinal TokenType = "selectordinal"
	TokenFunction      TokenType = "function"
	TokenOctothorpe    TokenType = "octothorpe"
)

// OtherCase is the mandatory fallback case key of select and plural tokens.
const OtherCase = "other"

// Token is a node of the token tree produced by a message parser.
type Token interface {
	Type() TokenType
}

// Literal is a raw text fragment
type Literal string

// Argument interpolates the input value stored under Arg
type Argument struct {
	Arg string
}

// Case pairs a case key with the tokens rendered when it is selected
type Case struct {
	Key    string
	Tokens []Token
}

// Select chooses a case by the exact value of Arg
type Select struct {
	Arg   string
	Cases []Case
}

// Plural chooses a case by the cardinal plural category of Arg minus Offset.
// Cases may contain Octothorpe tokens.
type Plural struct {
	Arg    string
	Offset int
	Cases  []Case
}

// SelectOrdinal chooses a case by the ordinal plural category of Arg.
type SelectOrdinal struct {
	Arg   string
	Cases []Case
}

// FunctionCall formats Arg with the external formatter registered as Key.
type FunctionCall struct {
	Key    string
	Arg    string
	Params []string
}

// Octothorpe renders the value of the nearest enclosing plural as a number.
type Octothorpe struct{}

func (Literal) Type() TokenType       { return TokenLiteral }
func (Argument) Type() TokenType      { return TokenArgument }
func (Select) Type() TokenType        { return TokenSelect }
func (Plural) Type() TokenType        { return TokenPlural }
func (SelectOrdinal) Type() TokenType { return TokenSelectOrdinal }
func (FunctionCall) Type() TokenType  { return TokenFunction }
func (Octothorpe) Type() TokenType    { return TokenOctothorpe }

// Template is either a Message (leaf) or a Catalog (keyed branch).
type Template interface {
	isTemplate()
}

// Message is a single parsed message
type Message []Token

// Catalog maps keys, often locale codes, to nested templates.
type Catalog map[string]Template

func (Message) isTemplate() {}
func (Catalog) isTemplate() {}

// Keys returns the catalog keys in sorted order
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LocaleSet holds the locale keys that own a dedicated plural rule function.
// Membership is an exact key match.
type LocaleSet map[string]struct{}

// NewLocaleSet builds a LocaleSet from the given locale keys
func NewLocaleSet(locales ...string) LocaleSet {
	set := make(LocaleSet, len(locales))
	for _, locale := range locales {
		if locale == "" {
			continue
		}
		set[locale] = struct{}{}
	}
	return set
}

// Has reports whether locale owns a plural rule function
func (s LocaleSet) Has(locale string) bool {
	if s == nil {
		return false
	}
	_, ok := s[locale]
	return ok
}

// describeToken renders a token in the parser wire format for diagnostics.
func describeToken(token Token) string {
	data, err := json.Marshal(tokenValue(token))
	if err != nil {
		return fmt.Sprintf("%#v", token)
	}
	return string(data)
}

func tokenValue(token Token) any {
	switch tok := token.(type) {
	case nil:
		return nil
	case Literal:
		return string(tok)
	case Argument:
		return map[string]any{"type": TokenArgument, "arg": tok.Arg}
	case Select:
		return map[string]any{"type": TokenSelect, "arg": tok.Arg, "cases": casesValue(tok.Cases)}
	case Plural:
		return map[string]any{"type": TokenPlural, "arg": tok.Arg, "offset": tok.Offset, "cases": casesValue(tok.Cases)}
	case SelectOrdinal:
		return map[string]any{"type": TokenSelectOrdinal, "arg": tok.Arg, "cases": casesValue(tok.Cases)}
	case FunctionCall:
		value := map[string]any{"type": TokenFunction, "key": tok.Key, "arg": tok.Arg}
		if len(tok.Params) > 0 {
			value["params"] = tok.Params
		}
		return value
	case Octothorpe:
		return map[string]any{"type": TokenOctothorpe}
	default:
		return map[string]any{"type": token.Type()}
	}
}

func casesValue(cases []Case) []any {
	out := make([]any, 0, len(cases))
	for _, c := range cases {
		tokens := make([]any, 0, len(c.Tokens))
		for _, tok := range c.Tokens {
			tokens = append(tokens, tokenValue(tok))
		}
		out = append(out, map[string]any{"key": c.Key, "tokens": tokens})
	}
	return out
}
