package config

import (
	"os"
	"path/filepath"
	"testing"

	"ncd/internal/registry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Mode != "origin" {
		t.Errorf("default mode = %q, want origin", cfg.Mode)
	}
	if cfg.Fuzzy || cfg.Exact {
		t.Error("fuzzy and exact must default to off")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Mode != "origin" {
		t.Errorf("mode = %q, want default", cfg.Mode)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
mode = "hybrid"
fuzzy = true

[[roots]]
path = "/srv/projects"

[[roots]]
path = "/srv/bookmarks/docs"
mode = "target"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "hybrid" || !cfg.Fuzzy {
		t.Errorf("got mode=%q fuzzy=%v", cfg.Mode, cfg.Fuzzy)
	}

	roots := cfg.SearchRoots(registry.Hybrid)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].Strategy != registry.Hybrid {
		t.Errorf("roots[0] strategy = %v, want the default", roots[0].Strategy)
	}
	if roots[1].Strategy != registry.Target {
		t.Errorf("roots[1] strategy = %v, want the override", roots[1].Strategy)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad toml", content: `mode = [`},
		{name: "bad mode", content: `mode = "bookmark"`},
		{name: "relative root", content: "[[roots]]\npath = \"projects\"\n"},
		{name: "empty root", content: "[[roots]]\npath = \"\"\n"},
		{name: "bad root mode", content: "[[roots]]\npath = \"/srv\"\nmode = \"nope\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.content)
			if _, err := LoadFrom(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadFromExpandsTilde(t *testing.T) {
	path := writeConfig(t, "[[roots]]\npath = \"~/projects\"\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	want := filepath.Join(home, "projects")
	if cfg.Roots[0].Path != want {
		t.Errorf("expanded path = %q, want %q", cfg.Roots[0].Path, want)
	}
}
