package resolve

import (
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ncd/internal/env"
	"ncd/internal/fsys"
	"ncd/internal/match"
	"ncd/internal/query"
	"ncd/internal/registry"
	"ncd/internal/suggest"
)

const maxSuggestions = 3

// Resolver runs the tiered search pipeline against an environment
// snapshot and a filesystem capability.
type Resolver struct {
	fs  fsys.FS
	env *env.Env
}

// New creates a resolver.
func New(fs fsys.FS, e *env.Env) *Resolver {
	return &Resolver{fs: fs, env: e}
}

// Resolve maps a trimmed query to exactly one candidate. Multiple
// equally-ranked matches fail with AmbiguousError rather than picking
// one.
func (r *Resolver) Resolve(raw string) (Candidate, error) {
	cands, err := r.run(raw, false)
	if err != nil {
		return Candidate{}, err
	}
	return cands[0], nil
}

// ResolveAll returns every candidate of the first tier that produced
// any, instead of failing on ambiguity. Used by list mode and the
// interactive picker.
func (r *Resolver) ResolveAll(raw string) ([]Candidate, error) {
	return r.run(raw, true)
}

func (r *Resolver) run(raw string, all bool) ([]Candidate, error) {
	intent := query.Parse(raw)

	switch intent.Kind {
	case query.Home:
		if r.env.Home == "" {
			return nil, &NotSetError{Name: "home directory"}
		}
		return []Candidate{{Path: r.env.Home, Tier: TierLiteral}}, nil

	case query.OldPwd:
		if r.env.OldPwd == "" {
			return nil, &NotSetError{Name: "OLDPWD"}
		}
		return []Candidate{{Path: r.env.OldPwd, Tier: TierLiteral}}, nil

	case query.Ellipsis:
		path, err := Ellipsis(r.fs, r.env.Cwd, intent.Level, intent.Tail)
		if err != nil {
			return nil, err
		}
		return []Candidate{{Path: path, Tier: TierEllipsis}}, nil

	case query.Anchor:
		return r.anchored(raw, intent.Path, all)

	case query.Wildcard:
		// "C:\pro*" and "\pro*" classify as wildcards but must
		// still search beneath their anchor, not the tiers.
		if query.IsAnchored(intent.Path) {
			return r.anchored(raw, intent.Path, all)
		}
	}

	segments := splitSegments(intent.Path)
	if len(segments) == 0 {
		return nil, &NoMatchError{Query: raw}
	}
	head, rest := segments[0], segments[1:]

	// Tier 1: the fragment names an existing path. No searching.
	if intent.Kind == query.Literal {
		if c, ok := r.literal(segments); ok {
			return []Candidate{c}, nil
		}
	}

	matcher := r.matcher(head)

	// Tier 3: children of the working directory. Descending from the
	// cwd itself lets dot-run segments ("./pro*", "../pro*") work.
	if paths := r.descend([]string{r.env.Cwd}, segments); len(paths) > 0 {
		return r.pick(raw, toCandidates(paths, TierCwd, ""), all)
	}

	// Tier 4: configured search roots. Scans run concurrently; the
	// result is still selected strictly by root index, never by
	// completion order.
	roots := r.env.Roots.Roots()
	perRoot := make([][]string, len(roots))
	var g errgroup.Group
	for i, root := range roots {
		g.Go(func() error {
			perRoot[i] = r.descend(r.scanRoot(root, matcher), rest)
			return nil
		})
	}
	_ = g.Wait() // scans report no errors, unreadable roots are skipped

	if all {
		var cands []Candidate
		seen := make(map[string]bool)
		for i, paths := range perRoot {
			for _, p := range paths {
				if seen[p] {
					continue
				}
				seen[p] = true
				cands = append(cands, Candidate{Path: p, Tier: TierRoots, Root: roots[i].Path})
			}
		}
		if len(cands) > 0 {
			return cands, nil
		}
	} else {
		for i, paths := range perRoot {
			if len(paths) > 0 {
				return r.pick(raw, toCandidates(paths, TierRoots, roots[i].Path), all)
			}
		}
	}

	return nil, &NoMatchError{Query: raw, Suggestions: r.suggestions(matcher, head)}
}

// pick enforces the disambiguation policy: one candidate passes
// through, several are a hard failure unless the caller asked for all.
func (r *Resolver) pick(raw string, cands []Candidate, all bool) ([]Candidate, error) {
	if all || len(cands) == 1 {
		return cands, nil
	}
	return nil, &AmbiguousError{Query: raw, Candidates: cands}
}

// literal is tier 1: does the fragment name an existing directory
// relative to the working directory? Absolute fragments never reach
// here, they classify as anchors.
func (r *Resolver) literal(segments []string) (Candidate, bool) {
	path := joinSegments(r.env.Cwd, segments)
	if r.fs.IsDir(path) {
		return Candidate{Path: path, Tier: TierLiteral}, true
	}
	return Candidate{}, false
}

// anchored resolves drive-anchored and root-relative fragments. An
// exact existence hit wins without searching; otherwise the segments
// are matched beneath the anchor so case-insensitive and wildcard
// queries like "\projects" or "C:\pro*" still resolve.
func (r *Resolver) anchored(raw, fragment string, all bool) ([]Candidate, error) {
	segments := splitSegments(fragment)

	var base string
	if query.IsSeparator(fragment[0]) {
		base = filepath.VolumeName(r.env.Cwd) + string(filepath.Separator)
	} else {
		base = segments[0] + string(filepath.Separator)
		segments = segments[1:]
	}

	exact := joinSegments(base, segments)
	if r.fs.IsDir(exact) {
		return []Candidate{{Path: exact, Tier: TierLiteral}}, nil
	}

	paths := r.descend([]string{base}, segments)
	if len(paths) == 0 {
		return nil, &NotFoundError{Path: exact}
	}
	return r.pick(raw, toCandidates(paths, TierLiteral, ""), all)
}

// scanRoot applies the root's strategy to the head matcher and returns
// candidate paths in listing order.
func (r *Resolver) scanRoot(root registry.Root, m *match.Matcher) []string {
	target := func() []string {
		if r.fs.IsDir(root.Path) && m.MatchName(filepath.Base(root.Path)) {
			return []string{filepath.Clean(root.Path)}
		}
		return nil
	}

	switch root.Strategy {
	case registry.Target:
		return target()
	case registry.Hybrid:
		// Target wins over Origin within the same root.
		if paths := target(); len(paths) > 0 {
			return paths
		}
	}
	return r.matchChildren(root.Path, m)
}

// descend resolves remaining query segments beneath each base path,
// one directory level at a time. Dot runs move the cursor upward, name
// segments are matched with the same rules as the head. Every
// surviving leaf is returned; the caller enforces uniqueness.
func (r *Resolver) descend(paths []string, segments []string) []string {
	paths = dedupe(paths)
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if dots := query.DotRun(seg); dots > 0 {
			if dots == 1 {
				continue // "." keeps the cursor in place
			}
			var next []string
			for _, base := range paths {
				if up, ok := ascend(base, dots-1); ok {
					next = append(next, up)
				}
			}
			paths = dedupe(next)
			continue
		}

		m := r.matcher(seg)
		var next []string
		for _, base := range paths {
			next = append(next, r.matchChildren(base, m)...)
		}
		paths = dedupe(next)
		if len(paths) == 0 {
			return nil
		}
	}
	return paths
}

// matchChildren lists dir and returns the matching children as full
// paths. Unreadable directories yield nothing.
func (r *Resolver) matchChildren(dir string, m *match.Matcher) []string {
	names, err := r.fs.ListDir(dir)
	if err != nil {
		return nil
	}
	return joinAll(dir, m.Match(names))
}

func (r *Resolver) matcher(pattern string) *match.Matcher {
	return match.New(pattern, r.env.Fuzzy, r.env.Exact)
}

// suggestions gathers nearby directory names for a failed lookup.
func (r *Resolver) suggestions(m *match.Matcher, head string) []string {
	if m.IsGlob() {
		return nil
	}
	var names []string
	if children, err := r.fs.ListDir(r.env.Cwd); err == nil {
		names = append(names, children...)
	}
	for _, root := range r.env.Roots.Roots() {
		switch root.Strategy {
		case registry.Target, registry.Hybrid:
			names = append(names, filepath.Base(root.Path))
		}
		if root.Strategy != registry.Target {
			if children, err := r.fs.ListDir(root.Path); err == nil {
				names = append(names, children...)
			}
		}
	}
	return suggest.Closest(head, names, maxSuggestions)
}

func ascend(dir string, levels int) (string, bool) {
	for i := 0; i < levels; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
	return dir, true
}

func splitSegments(fragment string) []string {
	return strings.FieldsFunc(fragment, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func joinSegments(base string, segments []string) string {
	return filepath.Join(append([]string{base}, segments...)...)
}

func joinAll(dir string, names []string) []string {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		clean := filepath.Clean(p)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}

func toCandidates(paths []string, tier Tier, root string) []Candidate {
	cands := make([]Candidate, len(paths))
	for i, p := range paths {
		cands[i] = Candidate{Path: p, Tier: tier, Root: root}
	}
	return cands
}
