package config

import (
	"os"
	"path/filepath"
	"testing"

	"mint/internal/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Widening.IntToFloat {
		t.Fatal("int to float widening should be on by default")
	}
	if cfg.Widening.BoolToInt || cfg.Widening.BytesToString {
		t.Fatal("only int to float widening is on by default")
	}
	if cfg.Validate.Strict || cfg.Validate.CollectAll {
		t.Fatal("validation defaults to non-strict fail-fast")
	}
	if cfg.Extract.MaxDepth != extract.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d", cfg.Extract.MaxDepth)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, `
[widening]
int_to_float = false
bool_to_int = true

[validate]
strict = true
collect_all = true

[extract]
max_depth = 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Widening.IntToFloat || !cfg.Widening.BoolToInt {
		t.Fatalf("widening = %+v", cfg.Widening)
	}
	if !cfg.Validate.Strict || !cfg.Validate.CollectAll {
		t.Fatalf("validate = %+v", cfg.Validate)
	}
	if cfg.Extract.MaxDepth != 8 {
		t.Fatalf("MaxDepth = %d", cfg.Extract.MaxDepth)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "[validate]\nstrict = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Validate.Strict {
		t.Fatal("strict override lost")
	}
	if !cfg.Widening.IntToFloat {
		t.Fatal("untouched sections must keep their defaults")
	}
	if cfg.Extract.MaxDepth != extract.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d", cfg.Extract.MaxDepth)
	}
}

func TestLoadRejectsBrokenTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "[widening\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of broken TOML should fail")
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok || path != filepath.Join(root, FileName) {
		t.Fatalf("Find = %q, %v", path, ok)
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty when no file exists", path)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
