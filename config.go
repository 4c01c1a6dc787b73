package messageformat

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config is the owner a Compiler is bound to. It supplies feature flags, the
// formatter registry and the default formatter factories.
type Config struct {
	// BidiSupport wraps every argument read in direction marks
	BidiSupport bool
	// IntlSupport allows missing formatters to be built from the factory table
	IntlSupport bool
	// DefaultCurrency is used by the number formatter for {n, number, currency}
	DefaultCurrency string

	Directions *DirectionTable
	Logger     *zap.Logger

	registry  *FormatterRegistry
	factories map[string]FormatterFactory
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		registry:  NewFormatterRegistry(),
		factories: DefaultFormatterFactories(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Directions == nil {
		cfg.Directions = DefaultDirectionTable
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}

	return cfg, nil
}

// WithBidiSupport toggles direction marks around interpolated arguments
func WithBidiSupport(enabled bool) Option {
	return func(c *Config) error {
		c.BidiSupport = enabled
		return nil
	}
}

// WithIntlSupport toggles lazy instantiation of default formatters
func WithIntlSupport(enabled bool) Option {
	return func(c *Config) error {
		c.IntlSupport = enabled
		return nil
	}
}

// WithDefaultCurrency sets the ISO 4217 code used by {n, number, currency}
func WithDefaultCurrency(code string) Option {
	return func(c *Config) error {
		c.DefaultCurrency = strings.ToUpper(strings.TrimSpace(code))
		return nil
	}
}

// WithFormatter registers a formatter available to every locale
func WithFormatter(name string, fn FormatterFunc) Option {
	return func(c *Config) error {
		if name == "" || fn == nil {
			return fmt.Errorf("messageformat: invalid formatter %q", name)
		}
		c.registry.Register(name, fn)
		return nil
	}
}

// WithLocaleFormatter registers a formatter override for locale and its descendants
func WithLocaleFormatter(locale, name string, fn FormatterFunc) Option {
	return func(c *Config) error {
		if locale == "" || name == "" || fn == nil {
			return fmt.Errorf("messageformat: invalid formatter %q for locale %q", name, locale)
		}
		c.registry.RegisterLocale(locale, name, fn)
		return nil
	}
}

// WithFormatterFactory adds or replaces a default formatter factory
func WithFormatterFactory(name string, factory FormatterFactory) Option {
	return func(c *Config) error {
		if name == "" || factory == nil {
			return fmt.Errorf("messageformat: invalid formatter factory %q", name)
		}
		if c.factories == nil {
			c.factories = make(map[string]FormatterFactory)
		}
		c.factories[name] = factory
		return nil
	}
}

// WithFormatterFactories replaces the whole default factory table
func WithFormatterFactories(factories map[string]FormatterFactory) Option {
	return func(c *Config) error {
		c.factories = make(map[string]FormatterFactory, len(factories))
		for name, factory := range factories {
			if name == "" || factory == nil {
				continue
			}
			c.factories[name] = factory
		}
		return nil
	}
}

// WithDirectionTable replaces the right-to-left locale table
func WithDirectionTable(table *DirectionTable) Option {
	return func(c *Config) error {
		c.Directions = table
		return nil
	}
}

// WithDirectionTableFile loads the right-to-left locale table from path
func WithDirectionTableFile(path string) Option {
	return func(c *Config) error {
		table, err := LoadDirectionTable(path)
		if err != nil {
			return err
		}
		c.Directions = table
		return nil
	}
}

// WithLogger sets the logger used for compilation and formatter events
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// FormatterRegistry exposes the live formatter registry
func (cfg *Config) FormatterRegistry() *FormatterRegistry {
	if cfg == nil {
		return nil
	}
	return cfg.registry
}

// ResolveFormatter returns the formatter for key in locale. When the registry
// has nothing for that locale and intl support is enabled, the default factory
// for key is instantiated once and memoized as a global formatter. Locale
// overrides keep shadowing it for their own locales.
func (cfg *Config) ResolveFormatter(key, locale string) (FormatterFunc, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.registry == nil {
		cfg.registry = NewFormatterRegistry()
	}

	if fn, ok := cfg.registry.Formatter(key, locale); ok {
		return fn, nil
	}

	if cfg.IntlSupport {
		if factory, ok := cfg.factories[key]; ok && factory != nil {
			if fn := factory(cfg); fn != nil {
				cfg.registry.Register(key, fn)
				cfg.logger().Debug("formatter instantiated from default factory", zap.String("formatter", key))
				return fn, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnresolvedFormatter, jsonString(key))
}

// BuildCompiler returns a Compiler bound to cfg
func (cfg *Config) BuildCompiler() (*Compiler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	return NewCompiler(cfg), nil
}

func (cfg *Config) logger() *zap.Logger {
	if cfg == nil || cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}

func (cfg *Config) directions() *DirectionTable {
	if cfg == nil || cfg.Directions == nil {
		return DefaultDirectionTable
	}
	return cfg.Directions
}
