// Package config loads the ncd configuration file.
//
// The file lives at ~/.config/ncd/config.toml. A missing file is not
// an error; a file that exists but cannot be parsed is.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"ncd/internal/registry"
)

// RootEntry is one [[roots]] section: a search root with an optional
// per-root strategy override.
type RootEntry struct {
	Path string `toml:"path"`
	Mode string `toml:"mode"` // empty = use the default strategy
}

// Config holds the ncd configuration.
type Config struct {
	Mode  string      `toml:"mode"`  // default strategy: origin, target or hybrid
	Fuzzy bool        `toml:"fuzzy"` // substring matching without wildcards
	Exact bool        `toml:"exact"` // case-sensitive matching
	Roots []RootEntry `toml:"roots"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{Mode: "origin"}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ncd", "config.toml"), nil
}

// Load reads the config file. Returns Default() without error when the
// file does not exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, err := registry.ParseStrategy(cfg.Mode); err != nil {
		return Default(), fmt.Errorf("config mode: %w", err)
	}

	for i, root := range cfg.Roots {
		if err := validatePath(root.Path); err != nil {
			return Default(), fmt.Errorf("roots[%d]: %w", i, err)
		}
		expanded, err := expandPath(root.Path)
		if err != nil {
			return Default(), fmt.Errorf("roots[%d]: %w", i, err)
		}
		cfg.Roots[i].Path = expanded

		if root.Mode != "" {
			if _, err := registry.ParseStrategy(root.Mode); err != nil {
				return Default(), fmt.Errorf("roots[%d]: %w", i, err)
			}
		}
	}

	return cfg, nil
}

// SearchRoots converts the configured root entries, applying def where
// no per-root mode is set.
func (c Config) SearchRoots(def registry.Strategy) []registry.Root {
	roots := make([]registry.Root, 0, len(c.Roots))
	for _, entry := range c.Roots {
		strategy := def
		if entry.Mode != "" {
			strategy, _ = registry.ParseStrategy(entry.Mode)
		}
		roots = append(roots, registry.Root{Path: entry.Path, Strategy: strategy})
	}
	return roots
}

// validatePath checks that a root path is absolute or starts with ~.
// Relative roots would silently depend on the invocation directory.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("root path must not be empty")
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("root path must be absolute or start with ~, got: %q", path)
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory (the
// shell does not expand inside config files).
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
