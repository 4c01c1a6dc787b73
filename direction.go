package messageformat

import (
	"fmt"
	"os"
	"strings"
)

const (
	markRTL = "\u200f"
	markLTR = "\u200e"
)

// DirectionTable lists the locale prefixes written right-to-left.
type DirectionTable struct {
	Version string   `json:"version" yaml:"version" toml:"version"`
	RTL     []string `json:"rtl" yaml:"rtl" toml:"rtl"`
}

// DefaultDirectionTable is the right-to-left snapshot taken from CLDR v27/v28
// characterOrder data. Regenerate it with cmd/mf-direction.
var DefaultDirectionTable = &DirectionTable{
	Version: "cldr-28",
	RTL: []string{
		"ar", "ckb", "fa", "he", "ks", "lrc", "mzn",
		"pa-Arab", "ps", "ug", "ur", "uz-Arab", "yi",
	},
}

// LoadDirectionTable reads a direction table from a JSON, YAML or TOML file.
func LoadDirectionTable(path string) (*DirectionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("messageformat: read direction table %s: %w", path, err)
	}

	table := &DirectionTable{}
	if err := decodeDocument(path, data, table); err != nil {
		return nil, fmt.Errorf("messageformat: decode direction table %s: %w", path, err)
	}

	if len(table.RTL) == 0 {
		return nil, fmt.Errorf("messageformat: direction table %s has no locales", path)
	}

	return table, nil
}

// IsRTL reports whether locale starts with one of the right-to-left prefixes.
// Prefixes match whole subtags, so "ks" matches "ks-IN" but not "ksh".
func (t *DirectionTable) IsRTL(locale string) bool {
	if t == nil {
		return false
	}

	locale = normalizeLocale(locale)
	for _, prefix := range t.RTL {
		prefix = normalizeLocale(prefix)
		if prefix == "" || len(locale) < len(prefix) {
			continue
		}
		if !strings.EqualFold(locale[:len(prefix)], prefix) {
			continue
		}
		if len(locale) == len(prefix) || locale[len(prefix)] == '-' {
			return true
		}
	}
	return false
}

// MarkText wraps the text expression source with the direction mark of locale.
func (t *DirectionTable) MarkText(text, locale string) string {
	mark := markLTR
	if t.IsRTL(locale) {
		mark = markRTL
	}
	quoted := jsonString(mark)
	return quoted + " + " + text + " + " + quoted
}

// BidiMarkText wraps text with direction marks using DefaultDirectionTable.
func BidiMarkText(text, locale string) string {
	return DefaultDirectionTable.MarkText(text, locale)
}
