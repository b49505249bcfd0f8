package hbars

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.AutoEscape {
		t.Error("expected AutoEscape true by default")
	}
	if cfg.Strict {
		t.Error("expected Strict false by default")
	}
	if cfg.MaxPartialDepth != 100 {
		t.Errorf("MaxPartialDepth = %d, want 100", cfg.MaxPartialDepth)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hbars.yaml")
	yaml := "auto_escape: false\nstrict: true\nmax_partial_depth: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AutoEscape {
		t.Error("expected auto_escape: false to take effect")
	}
	if !cfg.Strict {
		t.Error("expected strict: true to take effect")
	}
	if cfg.MaxPartialDepth != 5 {
		t.Errorf("MaxPartialDepth = %d, want 5", cfg.MaxPartialDepth)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/no/such/file.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
