package messageformat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultFormatterFactories returns the built-in factories consulted when a
// function call names a formatter missing from the registry and intl support
// is enabled.
func DefaultFormatterFactories() map[string]FormatterFactory {
	return map[string]FormatterFactory{
		"number": newNumberFormatter,
		"date":   newDateFormatter,
		"time":   newTimeFormatter,
	}
}

func newNumberFormatter(cfg *Config) FormatterFunc {
	defaultCurrency := "USD"
	if cfg != nil && cfg.DefaultCurrency != "" {
		defaultCurrency = cfg.DefaultCurrency
	}

	return func(value any, locale string, params ...string) string {
		amount, ok := toFloat(value)
		if !ok {
			return fmt.Sprint(value)
		}

		printer := message.NewPrinter(languageTag(locale))
		style := ""
		if len(params) > 0 {
			style = strings.TrimSpace(params[0])
		}

		switch {
		case style == "integer":
			return printer.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
		case style == "percent":
			return printer.Sprintf("%v", number.Percent(amount))
		case style == "currency" || strings.HasPrefix(style, "currency:"):
			code := defaultCurrency
			if _, rest, found := strings.Cut(style, ":"); found && strings.TrimSpace(rest) != "" {
				code = strings.TrimSpace(rest)
			}
			return formatCurrency(printer, amount, code)
		default:
			return printer.Sprintf("%v", number.Decimal(amount))
		}
	}
}

func formatCurrency(printer *message.Printer, amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		opts := []number.Option{number.MinFractionDigits(2), number.MaxFractionDigits(2)}
		return strings.ToUpper(code) + " " + printer.Sprintf("%v", number.Decimal(amount, opts...))
	}
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

var dateLayouts = map[string]string{
	"short":  "1/2/06",
	"medium": "Jan 2, 2006",
	"long":   "January 2, 2006",
	"full":   "Monday, January 2, 2006",
}

var timeLayouts = map[string]string{
	"short":  "3:04 PM",
	"medium": "3:04:05 PM",
	"long":   "3:04:05 PM MST",
	"full":   "3:04:05 PM MST",
}

func newDateFormatter(*Config) FormatterFunc {
	return layoutFormatter(dateLayouts, "medium")
}

func newTimeFormatter(*Config) FormatterFunc {
	return layoutFormatter(timeLayouts, "medium")
}

func layoutFormatter(layouts map[string]string, fallback string) FormatterFunc {
	return func(value any, _ string, params ...string) string {
		t, ok := toTime(value)
		if !ok {
			return fmt.Sprint(value)
		}

		layout := layouts[fallback]
		if len(params) > 0 {
			if custom, ok := layouts[strings.TrimSpace(params[0])]; ok {
				layout = custom
			}
		}
		return t.Format(layout)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toTime accepts time values and unix timestamps in milliseconds.
func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	default:
		ms, ok := toFloat(value)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}
}
