// Package env builds the per-invocation environment snapshot.
//
// The snapshot is constructed once at startup and passed explicitly to
// the resolver; nothing mutates it afterwards. Process environment
// variables override config-file values, flags override both (the CLI
// layer applies flag overrides after Snapshot returns).
package env

import (
	"fmt"
	"os"

	"ncd/internal/config"
	"ncd/internal/registry"
)

// Environment variables consumed by ncd.
const (
	// VarPath is the primary root list; CDPATH is honored as a
	// fallback so existing shell setups keep working.
	VarPath   = "NCD_PATH"
	VarCDPath = "CDPATH"
	VarMode   = "NCD_MODE"
	VarFuzzy  = "NCD_FUZZY"
	VarOldPwd = "OLDPWD"
)

// Env is the read-only snapshot for one invocation.
type Env struct {
	Cwd      string
	Roots    *registry.Registry
	OldPwd   string
	Home     string
	Strategy registry.Strategy
	Fuzzy    bool
	Exact    bool
}

// Snapshot builds the environment from the process state layered over
// the config file.
func Snapshot(cfg config.Config) (*Env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	strategy, _ := registry.ParseStrategy(cfg.Mode)
	if mode := os.Getenv(VarMode); mode != "" {
		strategy, err = registry.ParseStrategy(mode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", VarMode, err)
		}
	}

	fuzzy := cfg.Fuzzy
	switch os.Getenv(VarFuzzy) {
	case "1", "true", "yes", "on":
		fuzzy = true
	case "0", "false", "no", "off":
		fuzzy = false
	}

	list := os.Getenv(VarPath)
	if list == "" {
		list = os.Getenv(VarCDPath)
	}

	return &Env{
		Cwd:      cwd,
		Roots:    registry.New(cfg.SearchRoots(strategy), list, strategy),
		OldPwd:   os.Getenv(VarOldPwd),
		Home:     homeDir(),
		Strategy: strategy,
		Fuzzy:    fuzzy,
		Exact:    cfg.Exact,
	}, nil
}

// homeDir resolves ~ the way the original shell tooling does:
// USERPROFILE first (Windows), then HOME, then the OS account lookup.
func homeDir() string {
	if home := os.Getenv("USERPROFILE"); home != "" {
		return home
	}
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}
