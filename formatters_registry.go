package messageformat

import (
	"maps"
	"sort"
	"sync"
)

// FormatterFunc formats value for locale. Params carry the literal parameters
// of the function call, e.g. "integer" in {n, number, integer}.
type FormatterFunc func(value any, locale string, params ...string) string

// FormatterFactory builds a formatter bound to the owning configuration.
type FormatterFactory func(cfg *Config) FormatterFunc

// FormatterResolver looks up formatter implementations by key and locale
type FormatterResolver interface {
	Formatter(name, locale string) (FormatterFunc, bool)
}

// FormatterRegistry manages formatter functions and locale specific overrides
type FormatterRegistry struct {
	mu        sync.RWMutex
	globals   map[string]FormatterFunc
	overrides map[string]map[string]FormatterFunc
	funcCache map[string]map[string]FormatterFunc
}

var _ FormatterResolver = &FormatterRegistry{}

// NewFormatterRegistry returns an empty registry
func NewFormatterRegistry() *FormatterRegistry {
	return &FormatterRegistry{
		globals:   make(map[string]FormatterFunc),
		overrides: make(map[string]map[string]FormatterFunc),
	}
}

// Register sets or replaces the implementation for <name> in every locale
func (r *FormatterRegistry) Register(name string, fn FormatterFunc) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.globals == nil {
		r.globals = make(map[string]FormatterFunc)
	}
	r.globals[name] = fn
	r.funcCache = nil
}

// RegisterLocale registers a locale specific override for <name>.
// Overrides apply to the locale and every locale that falls back to it.
func (r *FormatterRegistry) RegisterLocale(locale, name string, fn FormatterFunc) {
	locale = normalizeLocale(locale)
	if locale == "" || name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]map[string]FormatterFunc)
	}

	helpers := r.overrides[locale]
	if helpers == nil {
		helpers = make(map[string]FormatterFunc)
		r.overrides[locale] = helpers
	}
	helpers[name] = fn
	r.funcCache = nil
}

// Has reports whether <name> resolves in any locale
func (r *FormatterRegistry) Has(name string) bool {
	if r == nil || name == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.globals[name]; ok {
		return true
	}
	for _, helpers := range r.overrides {
		if _, ok := helpers[name]; ok {
			return true
		}
	}
	return false
}

// Formatter returns the implementation of <name> for locale
func (r *FormatterRegistry) Formatter(name, locale string) (FormatterFunc, bool) {
	if r == nil || name == "" {
		return nil, false
	}

	fn, ok := r.funcMapForLocale(locale)[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// FuncMap returns every formatter applicable to locale
func (r *FormatterRegistry) FuncMap(locale string) map[string]FormatterFunc {
	if r == nil {
		return map[string]FormatterFunc{}
	}
	return maps.Clone(r.funcMapForLocale(locale))
}

// Names returns the sorted keys of all registered formatters
func (r *FormatterRegistry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.globals))
	for name := range r.globals {
		seen[name] = struct{}{}
	}
	for _, helpers := range r.overrides {
		for name := range helpers {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *FormatterRegistry) funcMapForLocale(locale string) map[string]FormatterFunc {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]FormatterFunc)
	} else if cached, ok := r.funcCache[key]; ok {
		return cached
	}

	result := make(map[string]FormatterFunc, len(r.globals))
	maps.Copy(result, r.globals)

	// least specific first so the requested locale wins
	candidates := localeLookupChain(key)
	for i := len(candidates) - 1; i >= 0; i-- {
		if helpers, ok := r.overrides[candidates[i]]; ok {
			maps.Copy(result, helpers)
		}
	}

	r.funcCache[key] = result
	return result
}
