// Package config loads mint.toml, the options file fixing the configurable
// behaviors: widening rules, validation strictness and extraction depth.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"mint/internal/extract"
	"mint/internal/lexicon"
)

const FileName = "mint.toml"

// Config is the decoded options file.
type Config struct {
	Widening lexicon.Rules `toml:"widening"`
	Validate Validate      `toml:"validate"`
	Extract  Extract       `toml:"extract"`
}

// Validate configures the validator defaults.
type Validate struct {
	Strict     bool `toml:"strict"`
	CollectAll bool `toml:"collect_all"`
}

// Extract configures the extractor defaults.
type Extract struct {
	MaxDepth int `toml:"max_depth"`
}

// Default returns the documented defaults: int→float widening only,
// non-strict fail-fast validation, the standard depth bound.
func Default() Config {
	return Config{
		Widening: lexicon.Default(),
		Extract:  Extract{MaxDepth: extract.DefaultMaxDepth},
	}
}

// Find walks from startDir toward the filesystem root looking for mint.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the options file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Extract.MaxDepth <= 0 {
		cfg.Extract.MaxDepth = extract.DefaultMaxDepth
	}
	return cfg, nil
}

// Discover finds and loads the nearest options file, falling back to
// defaults when none exists.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}
