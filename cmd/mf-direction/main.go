package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	messageformat "github.com/goliatone/go-messageformat"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

const rightToLeft = "right-to-left"

type generatorConfig struct {
	out      string
	cldrPath string
	version  string
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "mf-direction: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig

	flag.StringVar(&cfg.out, "out", "direction.yaml", "path to generated direction table")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a main/ subdirectory)")
	flag.StringVar(&cfg.version, "version", "", "version label stored in the table, e.g. cldr-45")

	flag.Parse()

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	if cfg.version == "" {
		cfg.version = "cldr-" + filepath.Base(filepath.Clean(cfg.cldrPath))
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	table := &messageformat.DirectionTable{
		Version: cfg.version,
		RTL:     collapsePrefixes(rtlLocales(data)),
	}
	if len(table.RTL) == 0 {
		return errors.New("no right-to-left locales found")
	}

	source, err := renderTable(table)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("layout")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// rtlLocales returns the locales whose characterOrder is right-to-left,
// using hyphenated identifiers.
func rtlLocales(data *cldr.CLDR) []string {
	var result []string
	for _, locale := range data.Locales() {
		if locale == "root" {
			continue
		}
		if isRightToLeft(data.RawLDML(locale)) {
			result = append(result, strings.ReplaceAll(locale, "_", "-"))
		}
	}
	sort.Strings(result)
	return result
}

func isRightToLeft(ldml *cldr.LDML) bool {
	if ldml == nil || ldml.Layout == nil {
		return false
	}
	for _, orientation := range ldml.Layout.Orientation {
		if orientation == nil {
			continue
		}
		for _, order := range orientation.CharacterOrder {
			if order != nil && strings.TrimSpace(order.Data()) == rightToLeft {
				return true
			}
		}
	}
	return false
}

// collapsePrefixes drops locales already covered by a shorter prefix, so
// "ar-EG" disappears once "ar" is present. Input must be sorted.
func collapsePrefixes(locales []string) []string {
	table := &messageformat.DirectionTable{}
	for _, locale := range locales {
		if table.IsRTL(locale) {
			continue
		}
		table.RTL = append(table.RTL, locale)
	}
	return table.RTL
}

func renderTable(table *messageformat.DirectionTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by mf-direction. DO NOT EDIT.\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(table); err != nil {
		return nil, fmt.Errorf("encode direction table: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
