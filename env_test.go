package messageformat

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
)

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestWithEnvFromFile(t *testing.T) {
	path := writeEnvFile(t, "MESSAGEFORMAT_BIDI_SUPPORT=true\nMESSAGEFORMAT_INTL_SUPPORT=1\nMESSAGEFORMAT_CURRENCY=gbp\nMESSAGEFORMAT_DIRECTION_TABLE="+filepath.Join("testdata", "direction.yaml")+"\n")

	cfg, err := NewConfig(WithEnv(path))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if !cfg.BidiSupport || !cfg.IntlSupport {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.DefaultCurrency != "GBP" {
		t.Fatalf("DefaultCurrency = %q", cfg.DefaultCurrency)
	}
	if cfg.Directions == nil || cfg.Directions.Version != "test-1" {
		t.Fatalf("direction table not loaded: %+v", cfg.Directions)
	}
}

func TestWithEnvFromProcess(t *testing.T) {
	t.Setenv(EnvBidiSupport, "true")
	t.Setenv(EnvIntlSupport, "")

	cfg, err := NewConfig(WithIntlSupport(true), WithEnv())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if !cfg.BidiSupport {
		t.Fatal("expected bidi support from environment")
	}
	if !cfg.IntlSupport {
		t.Fatal("empty variable should keep existing setting")
	}
}

func TestWithEnvFilePrecedence(t *testing.T) {
	t.Setenv(EnvBidiSupport, "true")
	path := writeEnvFile(t, "MESSAGEFORMAT_BIDI_SUPPORT=false\n")

	cfg, err := NewConfig(WithEnv(path))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.BidiSupport {
		t.Fatal("env file should take precedence over process environment")
	}
}

func TestWithEnvErrors(t *testing.T) {
	path := writeEnvFile(t, "MESSAGEFORMAT_BIDI_SUPPORT=maybe\nMESSAGEFORMAT_INTL_SUPPORT=perhaps\n")

	_, err := NewConfig(WithEnv(path))
	if err == nil {
		t.Fatal("expected error for invalid booleans")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 combined errors, got %d: %v", got, err)
	}

	if _, err := NewConfig(WithEnv(filepath.Join(t.TempDir(), "missing.env"))); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
