package messageformat

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale trims the identifier and replaces underscores with hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeLookupChain returns locale followed by its parents, closest first,
// e.g. "en-GB" -> ["en-GB", "en-001", "en"].
func localeLookupChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	seen := map[string]struct{}{locale: {}}
	add := func(candidate string) {
		if candidate == "" || candidate == "und" {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		chain = append(chain, candidate)
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		add(current)
	}

	return chain
}

// languageTag parses locale leniently, falling back to English.
func languageTag(locale string) language.Tag {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return language.English
	}
	return tag
}
