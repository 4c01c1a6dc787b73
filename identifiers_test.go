package messageformat

import "testing"

func TestPropName(t *testing.T) {
	tests := []struct {
		key      string
		receiver string
		want     string
	}{
		{key: "count", receiver: "d", want: "d.count"},
		{key: "$value_1", receiver: "d", want: "d.$value_1"},
		{key: "class", receiver: "d", want: `d["class"]`},
		{key: "default", receiver: "d", want: `d["default"]`},
		{key: "1x", receiver: "d", want: `d["1x"]`},
		{key: "first name", receiver: "d", want: `d["first name"]`},
		{key: `say "hi"`, receiver: "d", want: `d["say \"hi\""]`},
		{key: "café", receiver: "d", want: `d["café"]`},
		{key: "other", want: "other"},
		{key: "=0", want: `"=0"`},
		{key: "new", want: `"new"`},
	}

	for _, tt := range tests {
		if got := PropName(tt.key, tt.receiver); got != tt.want {
			t.Fatalf("PropName(%q, %q) = %s, want %s", tt.key, tt.receiver, got, tt.want)
		}
	}
}

func TestFuncName(t *testing.T) {
	tests := map[string]string{
		"en":         "en",
		"pt-BR":      "pt_BR",
		"zh-Hant-TW": "zh_Hant_TW",
		" de ":       "de",
		"a--b..c":    "a_b_c",
		"class":      "_class",
		"in":         "_in",
		"let":        "_let",
		"1st":        "_1st",
		"date":       "date",
	}

	for key, want := range tests {
		if got := FuncName(key); got != want {
			t.Fatalf("FuncName(%q) = %s, want %s", key, got, want)
		}
	}
}

func TestJSONStringDoesNotEscapeHTML(t *testing.T) {
	if got := jsonString("<a href='x'>&</a>"); got != `"<a href='x'>&</a>"` {
		t.Fatalf("jsonString = %s", got)
	}
	if got := jsonLiteral([]string{"a", "b"}); got != `["a","b"]` {
		t.Fatalf("jsonLiteral = %s", got)
	}
}
