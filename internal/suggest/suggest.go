// Package suggest ranks directory names by edit distance to offer
// "did you mean" candidates when a query matches nothing.
package suggest

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// MaxDistance is the largest edit distance still considered close
// enough to suggest.
const MaxDistance = 3

// Closest returns up to max names ranked by Levenshtein distance to
// query (case-insensitive). Names further than MaxDistance edits away
// are dropped; ties keep input order.
func Closest(query string, names []string, max int) []string {
	if query == "" || max <= 0 {
		return nil
	}
	folded := strings.ToLower(query)

	type scored struct {
		name string
		dist int
		pos  int
	}
	var ranked []scored
	seen := make(map[string]bool)
	for i, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		dist := edlib.LevenshteinDistance(folded, strings.ToLower(name))
		if dist > MaxDistance {
			continue
		}
		ranked = append(ranked, scored{name: name, dist: dist, pos: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].pos < ranked[j].pos
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}
