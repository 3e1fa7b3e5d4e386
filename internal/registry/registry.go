// Package registry holds the ordered set of search roots and the
// strategy applied to each. The registry is built once per invocation
// and never mutated; root order defines tie-break precedence.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Strategy selects how a search root is matched against a query.
type Strategy int

const (
	// Origin scans the immediate children of the root (classic
	// CDPATH behavior).
	Origin Strategy = iota
	// Target matches the root's own final path component (bookmark
	// behavior).
	Target
	// Hybrid tries Target first and falls back to Origin. A Target
	// hit wins over any Origin hit within the same root.
	Hybrid
)

func (s Strategy) String() string {
	switch s {
	case Origin:
		return "origin"
	case Target:
		return "target"
	case Hybrid:
		return "hybrid"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy parses a strategy token.
func ParseStrategy(token string) (Strategy, error) {
	switch strings.ToLower(token) {
	case "origin":
		return Origin, nil
	case "target":
		return Target, nil
	case "hybrid":
		return Hybrid, nil
	}
	return Origin, fmt.Errorf("invalid strategy %q: must be \"origin\", \"target\" or \"hybrid\"", token)
}

// Root is one configured search root.
type Root struct {
	Path     string
	Strategy Strategy
}

// Registry is the ordered, immutable set of search roots.
type Registry struct {
	roots []Root
}

// New builds a registry from explicitly configured roots followed by
// the entries of envList (an OS path-list, as in CDPATH). Duplicate
// paths keep their first position; env entries get the default
// strategy.
func New(configured []Root, envList string, def Strategy) *Registry {
	r := &Registry{}
	seen := make(map[string]bool)

	add := func(root Root) {
		if root.Path == "" {
			return
		}
		clean := filepath.Clean(root.Path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		root.Path = clean
		r.roots = append(r.roots, root)
	}

	for _, root := range configured {
		add(root)
	}
	for _, path := range filepath.SplitList(envList) {
		add(Root{Path: path, Strategy: def})
	}
	return r
}

// Roots returns the roots in precedence order. The returned slice is a
// copy; callers cannot mutate the registry through it.
func (r *Registry) Roots() []Root {
	return append([]Root(nil), r.roots...)
}

// Len returns the number of roots.
func (r *Registry) Len() int { return len(r.roots) }
