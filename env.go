package messageformat

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Environment variables read by WithEnv
const (
	EnvBidiSupport    = "MESSAGEFORMAT_BIDI_SUPPORT"
	EnvIntlSupport    = "MESSAGEFORMAT_INTL_SUPPORT"
	EnvDirectionTable = "MESSAGEFORMAT_DIRECTION_TABLE"
	EnvCurrency       = "MESSAGEFORMAT_CURRENCY"
)

// WithEnv applies settings from the process environment. Values found in the
// given dotenv files take precedence over the environment. Missing variables
// leave the current settings untouched.
func WithEnv(files ...string) Option {
	return func(c *Config) error {
		values := map[string]string{}
		if len(files) > 0 {
			read, err := godotenv.Read(files...)
			if err != nil {
				return fmt.Errorf("messageformat: read env files: %w", err)
			}
			values = read
		}

		lookup := func(name string) (string, bool) {
			if v, ok := values[name]; ok {
				return strings.TrimSpace(v), true
			}
			v, ok := os.LookupEnv(name)
			return strings.TrimSpace(v), ok
		}

		var errs error
		if raw, ok := lookup(EnvBidiSupport); ok && raw != "" {
			enabled, err := strconv.ParseBool(raw)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("messageformat: %s: %w", EnvBidiSupport, err))
			} else {
				c.BidiSupport = enabled
			}
		}

		if raw, ok := lookup(EnvIntlSupport); ok && raw != "" {
			enabled, err := strconv.ParseBool(raw)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("messageformat: %s: %w", EnvIntlSupport, err))
			} else {
				c.IntlSupport = enabled
			}
		}

		if path, ok := lookup(EnvDirectionTable); ok && path != "" {
			table, err := LoadDirectionTable(path)
			if err != nil {
				errs = multierr.Append(errs, err)
			} else {
				c.Directions = table
			}
		}

		if code, ok := lookup(EnvCurrency); ok && code != "" {
			c.DefaultCurrency = strings.ToUpper(code)
		}

		return errs
	}
}
