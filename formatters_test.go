package messageformat

import (
	"strings"
	"testing"
	"time"
)

func TestNumberFormatter(t *testing.T) {
	cfg, err := NewConfig(WithDefaultCurrency("eur"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	format := DefaultFormatterFactories()["number"](cfg)

	tests := []struct {
		value  any
		locale string
		params []string
		want   string
	}{
		{value: 1234.5, locale: "en", want: "1,234.5"},
		{value: 1234.5, locale: "de", want: "1.234,5"},
		{value: "42", locale: "en", want: "42"},
		{value: int64(7), locale: "en", params: []string{"integer"}, want: "7"},
		{value: 0.25, locale: "en", params: []string{"percent"}, want: "25%"},
		{value: "n/a", locale: "en", want: "n/a"},
	}

	for _, tt := range tests {
		if got := format(tt.value, tt.locale, tt.params...); got != tt.want {
			t.Fatalf("number(%v, %s, %v) = %q, want %q", tt.value, tt.locale, tt.params, got, tt.want)
		}
	}

	if got := format(12.5, "en", "currency"); !strings.Contains(got, "€") || !strings.Contains(got, "12.50") {
		t.Fatalf("number currency default = %q", got)
	}
	if got := format(3, "en", "currency:ZZZ"); got != "ZZZ 3.00" {
		t.Fatalf("number unknown currency = %q", got)
	}
}

func TestDateTimeFormatters(t *testing.T) {
	date := DefaultFormatterFactories()["date"](nil)
	clock := DefaultFormatterFactories()["time"](nil)

	moment := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		fn     FormatterFunc
		value  any
		params []string
		want   string
	}{
		{fn: date, value: moment, want: "Mar 5, 2024"},
		{fn: date, value: moment, params: []string{"short"}, want: "3/5/24"},
		{fn: date, value: moment, params: []string{"long"}, want: "March 5, 2024"},
		{fn: date, value: moment, params: []string{"full"}, want: "Tuesday, March 5, 2024"},
		{fn: date, value: moment, params: []string{"unknown"}, want: "Mar 5, 2024"},
		{fn: date, value: 0, want: "Jan 1, 1970"},
		{fn: clock, value: moment, params: []string{"short"}, want: "2:07 PM"},
		{fn: clock, value: &moment, want: "2:07:09 PM"},
		{fn: clock, value: "soon", want: "soon"},
	}

	for _, tt := range tests {
		if got := tt.fn(tt.value, "en", tt.params...); got != tt.want {
			t.Fatalf("format(%v, %v) = %q, want %q", tt.value, tt.params, got, tt.want)
		}
	}
}
