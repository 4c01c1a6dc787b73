package messageformat

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Loader retrieves the token trees to compile
type Loader interface {
	Load() (Template, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (Template, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Template, error) {
	return fn()
}

// FileLoader reads serialized parser output from JSON, YAML or TOML files.
// Top level keys of every file are merged into a single Catalog; later files
// win on conflicts.
type FileLoader struct {
	paths []string
}

var _ Loader = &FileLoader{}

// NewFileLoader returns a loader reading paths in order
func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// Load decodes every file and merges their catalogs
func (l *FileLoader) Load() (Template, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("messageformat: no loader paths configured")
	}

	catalog := make(Catalog)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("messageformat: read %s: %w", path, err)
		}

		var raw map[string]any
		if err := decodeDocument(path, data, &raw); err != nil {
			return nil, fmt.Errorf("messageformat: decode %s: %w", path, err)
		}

		decoded, err := DecodeTemplate(raw)
		if err != nil {
			return nil, fmt.Errorf("messageformat: %s: %w", path, err)
		}

		entries, ok := decoded.(Catalog)
		if !ok {
			return nil, fmt.Errorf("messageformat: %s: top level document must be a catalog, got %T", path, decoded)
		}
		for key, tpl := range entries {
			catalog[key] = tpl
		}
	}

	return catalog, nil
}

func decodeDocument(path string, data []byte, out any) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return json.Unmarshal(data, out)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("yaml parse error: %w", err)
		}
		return nil
	case ".toml":
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("toml parse error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported extension %s", ext)
	}
}

// DecodeTemplate converts a generically decoded document into a Template.
// Lists become messages, objects become catalogs and strings become single
// literal messages. Message strings are not parsed. An object whose "type"
// field names a known token type is a single token message. Errors of every
// catalog entry are reported together.
func DecodeTemplate(value any) (Template, error) {
	switch v := value.(type) {
	case string:
		return Message{Literal(v)}, nil
	case []any:
		return decodeMessage(v)
	case map[string]any:
		if kind, _ := v["type"].(string); isTokenType(kind) {
			token, err := decodeToken(v)
			if err != nil {
				return nil, err
			}
			return Message{token}, nil
		}

		catalog := make(Catalog, len(v))
		var errs error
		for _, key := range sortedMapKeys(v) {
			tpl, err := DecodeTemplate(v[key])
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			catalog[key] = tpl
		}
		if errs != nil {
			return nil, errs
		}
		return catalog, nil
	default:
		return nil, fmt.Errorf("messageformat: unsupported template value %T", value)
	}
}

func decodeMessage(values []any) (Message, error) {
	message := make(Message, 0, len(values))
	for i, value := range values {
		token, err := decodeToken(value)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		message = append(message, token)
	}
	return message, nil
}

func decodeToken(value any) (Token, error) {
	if text, ok := value.(string); ok {
		return Literal(text), nil
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported token value %T", ErrUnrecognizedToken, value)
	}

	kind, _ := raw["type"].(string)
	arg := stringField(raw, "arg")

	switch TokenType(kind) {
	case TokenLiteral:
		return Literal(stringField(raw, "value")), nil
	case TokenArgument:
		return Argument{Arg: arg}, nil
	case TokenSelect:
		cases, err := decodeCases(raw["cases"])
		if err != nil {
			return nil, err
		}
		return Select{Arg: arg, Cases: cases}, nil
	case TokenPlural:
		cases, err := decodeCases(raw["cases"])
		if err != nil {
			return nil, err
		}
		offset := 0
		if rawOffset, ok := raw["offset"]; ok && rawOffset != nil {
			f, ok := toFloat(rawOffset)
			if !ok || f != math.Trunc(f) {
				return nil, fmt.Errorf("invalid plural offset %v", rawOffset)
			}
			offset = int(f)
		}
		return Plural{Arg: arg, Offset: offset, Cases: cases}, nil
	case TokenSelectOrdinal:
		cases, err := decodeCases(raw["cases"])
		if err != nil {
			return nil, err
		}
		return SelectOrdinal{Arg: arg, Cases: cases}, nil
	case TokenFunction:
		return FunctionCall{
			Key:    stringField(raw, "key"),
			Arg:    arg,
			Params: stringList(raw["params"]),
		}, nil
	case TokenOctothorpe:
		return Octothorpe{}, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnrecognizedToken, kind)
	}
}

func isTokenType(kind string) bool {
	switch TokenType(kind) {
	case TokenLiteral, TokenArgument, TokenSelect, TokenPlural,
		TokenSelectOrdinal, TokenFunction, TokenOctothorpe:
		return true
	}
	return false
}

// decodeCases accepts an ordered list of {key, tokens} objects or a key to
// tokens object, whose cases are sorted by key.
func decodeCases(value any) ([]Case, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		cases := make([]Case, 0, len(v))
		for _, entry := range v {
			raw, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid case %v", entry)
			}
			c, err := decodeCase(stringField(raw, "key"), raw["tokens"])
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
		return cases, nil
	case map[string]any:
		cases := make([]Case, 0, len(v))
		for _, key := range sortedMapKeys(v) {
			c, err := decodeCase(key, v[key])
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
		return cases, nil
	default:
		return nil, fmt.Errorf("invalid cases %T", value)
	}
}

func decodeCase(key string, value any) (Case, error) {
	var tokens []any
	switch v := value.(type) {
	case nil:
	case string:
		tokens = []any{v}
	case []any:
		tokens = v
	default:
		return Case{}, fmt.Errorf("case %q: invalid tokens %T", key, value)
	}

	message, err := decodeMessage(tokens)
	if err != nil {
		return Case{}, fmt.Errorf("case %q: %w", key, err)
	}
	return Case{Key: key, Tokens: message}, nil
}

func stringField(raw map[string]any, name string) string {
	switch v := raw[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func stringList(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
