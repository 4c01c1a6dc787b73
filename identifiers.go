package messageformat

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$]*$`)
	nonWordPattern    = regexp.MustCompile(`\W+`)
	leadingDigit      = regexp.MustCompile(`^\d`)
)

// propertyReservedWords are the ECMAScript 3 keywords, future reserved words
// and literals. Older runtimes reject any of them as a dotted property name.
var propertyReservedWords = wordSet(
	"break", "case", "catch", "continue", "default", "delete", "do", "else",
	"finally", "for", "function", "if", "in", "instanceof", "new", "return",
	"switch", "this", "throw", "try", "typeof", "var", "void", "while", "with",
	"abstract", "boolean", "byte", "char", "class", "const", "debugger",
	"double", "enum", "export", "extends", "final", "float", "goto",
	"implements", "import", "int", "interface", "long", "native", "package",
	"private", "protected", "public", "short", "static", "super",
	"synchronized", "throws", "transient", "volatile",
	"null", "true", "false",
)

// functionReservedWords are the ES2015 keywords and strict mode reserved
// words, none of which may name a function.
var functionReservedWords = wordSet(
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally", "for",
	"function", "if", "import", "in", "instanceof", "new", "return", "super",
	"switch", "this", "throw", "try", "typeof", "var", "void", "while", "with",
	"yield", "enum", "await", "implements", "interface", "let", "package",
	"private", "protected", "public", "static", "null", "true", "false",
	"arguments", "eval",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

// PropName returns source that reads key from receiver. Valid, non reserved
// identifiers use dotted access, anything else is quoted with brackets. With an
// empty receiver the bare key (or its quoted form) is returned, which makes it
// usable as an object literal key.
func PropName(key, receiver string) string {
	if identifierPattern.MatchString(key) {
		if _, reserved := propertyReservedWords[key]; !reserved {
			if receiver == "" {
				return key
			}
			return receiver + "." + key
		}
	}

	quoted := jsonString(key)
	if receiver == "" {
		return quoted
	}
	return receiver + "[" + quoted + "]"
}

// FuncName derives a function identifier from an arbitrary key, e.g. a locale
// code or formatter name.
func FuncName(key string) string {
	name := nonWordPattern.ReplaceAllString(strings.TrimSpace(key), "_")
	if _, reserved := functionReservedWords[name]; reserved || leadingDigit.MatchString(name) {
		return "_" + name
	}
	return name
}

// jsonString quotes value as a JSON string literal without HTML escaping.
func jsonString(value string) string {
	return jsonLiteral(value)
}

func jsonLiteral(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
