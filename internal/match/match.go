// Package match implements name matching against directory listings.
//
// Patterns with glob tokens (* and ?) are matched anchored to the full
// entry name via doublestar. Plain patterns compare by equality, or by
// substring containment in fuzzy mode. Matching is case-insensitive
// unless exact mode is on.
package match

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher matches a single pattern against entry names.
type Matcher struct {
	pattern string
	folded  string
	glob    bool
	fuzzy   bool
	exact   bool
}

// New builds a matcher for pattern. fuzzy enables substring matching
// for plain patterns; exact disables case folding.
func New(pattern string, fuzzy, exact bool) *Matcher {
	return &Matcher{
		pattern: pattern,
		folded:  strings.ToLower(pattern),
		glob:    strings.ContainsAny(pattern, "*?"),
		fuzzy:   fuzzy,
		exact:   exact,
	}
}

// IsGlob reports whether the pattern carries wildcard tokens.
func (m *Matcher) IsGlob() bool { return m.glob }

// MatchName reports whether a single name matches the pattern.
func (m *Matcher) MatchName(name string) bool {
	if m.glob {
		ok, err := doublestar.Match(m.foldPattern(), m.fold(name))
		return err == nil && ok
	}
	if m.equals(name) {
		return true
	}
	return m.fuzzy && strings.Contains(m.fold(name), m.foldPattern())
}

// Match returns the entries matching the pattern, preserving listing
// order. In fuzzy mode an exact-equality match outranks substring
// matches: when at least one entry equals the pattern, only equal
// entries are returned.
func (m *Matcher) Match(entries []string) []string {
	var equal, loose []string
	for _, name := range entries {
		switch {
		case !m.glob && m.equals(name):
			equal = append(equal, name)
		case m.MatchName(name):
			loose = append(loose, name)
		}
	}
	if len(equal) > 0 {
		return equal
	}
	return loose
}

func (m *Matcher) equals(name string) bool {
	if m.glob {
		return false
	}
	if m.exact {
		return name == m.pattern
	}
	return strings.EqualFold(name, m.pattern)
}

func (m *Matcher) fold(s string) string {
	if m.exact {
		return s
	}
	return strings.ToLower(s)
}

func (m *Matcher) foldPattern() string {
	if m.exact {
		return m.pattern
	}
	return m.folded
}
