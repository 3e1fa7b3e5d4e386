package resolve

import (
	"errors"
	"testing"

	"ncd/internal/env"
	"ncd/internal/fsys"
	"ncd/internal/registry"
)

// testEnv builds a snapshot over a synthetic tree:
//
//	/home/u            (cwd)
//	  Project/src
//	  Profile
//	  docs
//	/srv/first/Common, /srv/first/Alpha
//	/srv/second/Common
func testEnv(roots ...registry.Root) (*env.Env, *fsys.Mem) {
	mem := fsys.NewMem(
		"/home/u/Project/src",
		"/home/u/Profile",
		"/home/u/docs",
		"/srv/first/Common",
		"/srv/first/Alpha",
		"/srv/second/Common",
	)
	return &env.Env{
		Cwd:      "/home/u",
		Roots:    registry.New(roots, "", registry.Origin),
		OldPwd:   "/var/old",
		Home:     "/home/u",
		Strategy: registry.Origin,
	}, mem
}

func TestResolveLiteralTierOne(t *testing.T) {
	t.Parallel()

	e, mem := testEnv(registry.Root{Path: "/srv/first", Strategy: registry.Origin})
	r := New(mem, e)

	tests := []struct {
		query string
		want  string
	}{
		{query: "docs", want: "/home/u/docs"},
		{query: "Project/src", want: "/home/u/Project/src"},
		{query: ".", want: "/home/u"},
		{query: "..", want: "/home"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			cand, err := r.Resolve(tt.query)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.query, err)
			}
			if cand.Path != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.query, cand.Path, tt.want)
			}
			if cand.Tier != TierLiteral {
				t.Errorf("Resolve(%q) tier = %v, want literal", tt.query, cand.Tier)
			}
		})
	}
}

func TestResolveLiteralShortCircuitsRoots(t *testing.T) {
	t.Parallel()

	// "docs" exists in the cwd AND as a child of the root; tier 1
	// must win without consulting the roots.
	e, mem := testEnv(registry.Root{Path: "/srv/first", Strategy: registry.Origin})
	mem.Add("/srv/first/docs")
	r := New(mem, e)

	cand, err := r.Resolve("docs")
	if err != nil {
		t.Fatal(err)
	}
	if cand.Path != "/home/u/docs" {
		t.Errorf("Resolve(docs) = %q, want the cwd hit", cand.Path)
	}
}

func TestResolveCwdChildren(t *testing.T) {
	t.Parallel()

	e, mem := testEnv()
	r := New(mem, e)

	t.Run("case-insensitive name", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("profile")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u/Profile" || cand.Tier != TierCwd {
			t.Errorf("got %+v", cand)
		}
	})

	t.Run("unique wildcard", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("proj*")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u/Project" {
			t.Errorf("Resolve(proj*) = %q", cand.Path)
		}
	})

	t.Run("ambiguous wildcard", func(t *testing.T) {
		t.Parallel()
		_, err := r.Resolve("pro*")
		var ambiguous *AmbiguousError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected AmbiguousError, got %v", err)
		}
		if len(ambiguous.Candidates) != 2 {
			t.Fatalf("got %d candidates, want 2: %+v", len(ambiguous.Candidates), ambiguous.Candidates)
		}
	})

	t.Run("multi-segment descent", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("proj*/src")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u/Project/src" {
			t.Errorf("Resolve(proj*/src) = %q", cand.Path)
		}
	})

	t.Run("dot-prefixed wildcard", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("./proj*")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u/Project" {
			t.Errorf("Resolve(./proj*) = %q", cand.Path)
		}
	})

	t.Run("parent-relative wildcard", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("../u*")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u" {
			t.Errorf("Resolve(../u*) = %q", cand.Path)
		}
	})
}

func TestResolveFuzzy(t *testing.T) {
	t.Parallel()

	t.Run("rejected without fuzzy", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		r := New(mem, e)
		_, err := r.Resolve("rojec")
		var noMatch *NoMatchError
		if !errors.As(err, &noMatch) {
			t.Fatalf("expected NoMatchError, got %v", err)
		}
	})

	t.Run("accepted with fuzzy", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		e.Fuzzy = true
		r := New(mem, e)
		cand, err := r.Resolve("rojec")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u/Project" {
			t.Errorf("Resolve(rojec) = %q", cand.Path)
		}
	})
}

func TestResolveRootPrecedence(t *testing.T) {
	t.Parallel()

	// Both roots contain Common; the first root must win, never the
	// second.
	e, mem := testEnv(
		registry.Root{Path: "/srv/first", Strategy: registry.Origin},
		registry.Root{Path: "/srv/second", Strategy: registry.Origin},
	)
	r := New(mem, e)

	for i := 0; i < 10; i++ { // scans run concurrently, order must hold anyway
		cand, err := r.Resolve("common")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/first/Common" {
			t.Fatalf("Resolve(common) = %q, want the first root's match", cand.Path)
		}
		if cand.Tier != TierRoots || cand.Root != "/srv/first" {
			t.Fatalf("candidate origin = %+v", cand)
		}
	}
}

func TestResolveRootStrategies(t *testing.T) {
	t.Parallel()

	t.Run("target matches the root itself", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv(registry.Root{Path: "/srv/first/Alpha", Strategy: registry.Target})
		r := New(mem, e)
		cand, err := r.Resolve("alpha")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/first/Alpha" {
			t.Errorf("Resolve(alpha) = %q", cand.Path)
		}
	})

	t.Run("target does not scan children", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv(registry.Root{Path: "/srv/first", Strategy: registry.Target})
		r := New(mem, e)
		_, err := r.Resolve("alpha")
		var noMatch *NoMatchError
		if !errors.As(err, &noMatch) {
			t.Fatalf("expected NoMatchError, got %v", err)
		}
	})

	t.Run("origin requires a child", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv(registry.Root{Path: "/srv/first/Alpha", Strategy: registry.Origin})
		r := New(mem, e)
		_, err := r.Resolve("alpha")
		var noMatch *NoMatchError
		if !errors.As(err, &noMatch) {
			t.Fatalf("expected NoMatchError, got %v", err)
		}
	})

	t.Run("hybrid prefers target over origin", func(t *testing.T) {
		t.Parallel()
		// The root is named Alpha and also has a child Alpha; the
		// root itself must win.
		mem := fsys.NewMem("/srv/Alpha/Alpha")
		e := &env.Env{
			Cwd:      "/srv",
			Roots:    registry.New([]registry.Root{{Path: "/srv/Alpha", Strategy: registry.Hybrid}}, "", registry.Hybrid),
			Strategy: registry.Hybrid,
		}
		// Keep the cwd scan from matching first.
		e.Cwd = "/srv/Alpha/Alpha"
		r := New(mem, e)
		cand, err := r.Resolve("alph*")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/Alpha" {
			t.Errorf("Resolve(alph*) = %q, want the root itself", cand.Path)
		}
	})

	t.Run("hybrid falls back to origin", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv(registry.Root{Path: "/srv/first", Strategy: registry.Hybrid})
		r := New(mem, e)
		cand, err := r.Resolve("alpha")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/first/Alpha" {
			t.Errorf("Resolve(alpha) = %q", cand.Path)
		}
	})
}

func TestResolveAmbiguousWithinRoot(t *testing.T) {
	t.Parallel()

	e, mem := testEnv(registry.Root{Path: "/srv/first", Strategy: registry.Origin})
	mem.Add("/srv/first/Connon")
	r := New(mem, e)

	_, err := r.Resolve("co??on")
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(ambiguous.Candidates))
	}
}

func TestResolveSpecialIntents(t *testing.T) {
	t.Parallel()

	t.Run("home", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		r := New(mem, e)
		cand, err := r.Resolve("~")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u" {
			t.Errorf("Resolve(~) = %q", cand.Path)
		}
	})

	t.Run("home not set", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		e.Home = ""
		r := New(mem, e)
		_, err := r.Resolve("~")
		var notSet *NotSetError
		if !errors.As(err, &notSet) {
			t.Fatalf("expected NotSetError, got %v", err)
		}
	})

	t.Run("oldpwd", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		r := New(mem, e)
		cand, err := r.Resolve("-")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/var/old" {
			t.Errorf("Resolve(-) = %q", cand.Path)
		}
	})

	t.Run("oldpwd not set", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		e.OldPwd = ""
		r := New(mem, e)
		_, err := r.Resolve("-")
		var notSet *NotSetError
		if !errors.As(err, &notSet) {
			t.Fatalf("expected NotSetError, got %v", err)
		}
	})
}

func TestResolveEllipsisIntent(t *testing.T) {
	t.Parallel()

	e, mem := testEnv()
	e.Cwd = "/home/u/Project/src"
	r := New(mem, e)

	t.Run("hop", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("...")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/home/u" || cand.Tier != TierEllipsis {
			t.Errorf("got %+v", cand)
		}
	})

	t.Run("boundary failure is terminal", func(t *testing.T) {
		t.Parallel()
		// Deep enough to exhaust ancestors; the error must be
		// BoundaryError, not a fall-through NoMatch.
		_, err := r.Resolve("..........")
		var boundary *BoundaryError
		if !errors.As(err, &boundary) {
			t.Fatalf("expected BoundaryError, got %v", err)
		}
	})

	t.Run("missing tail is terminal", func(t *testing.T) {
		t.Parallel()
		_, err := r.Resolve(".../nosuch")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestResolveAnchored(t *testing.T) {
	t.Parallel()

	e, mem := testEnv()
	r := New(mem, e)

	t.Run("exact hit", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("/srv/first")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/first" || cand.Tier != TierLiteral {
			t.Errorf("got %+v", cand)
		}
	})

	t.Run("matched beneath the anchor", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("/SRV/first")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/first" {
			t.Errorf("got %q", cand.Path)
		}
	})

	t.Run("anchored wildcard", func(t *testing.T) {
		t.Parallel()
		cand, err := r.Resolve("/sr*/second")
		if err != nil {
			t.Fatal(err)
		}
		if cand.Path != "/srv/second" {
			t.Errorf("got %q", cand.Path)
		}
	})

	t.Run("missing anchored path", func(t *testing.T) {
		t.Parallel()
		_, err := r.Resolve("/nosuch")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	t.Run("returns ambiguous peers", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv()
		r := New(mem, e)
		cands, err := r.ResolveAll("pro*")
		if err != nil {
			t.Fatal(err)
		}
		if len(cands) != 2 {
			t.Fatalf("got %d candidates, want 2", len(cands))
		}
	})

	t.Run("aggregates across roots", func(t *testing.T) {
		t.Parallel()
		e, mem := testEnv(
			registry.Root{Path: "/srv/first", Strategy: registry.Origin},
			registry.Root{Path: "/srv/second", Strategy: registry.Origin},
		)
		r := New(mem, e)
		cands, err := r.ResolveAll("common")
		if err != nil {
			t.Fatal(err)
		}
		if len(cands) != 2 {
			t.Fatalf("got %d candidates, want 2: %+v", len(cands), cands)
		}
		if cands[0].Root != "/srv/first" || cands[1].Root != "/srv/second" {
			t.Errorf("root order lost: %+v", cands)
		}
	})
}

func TestResolveNoMatchSuggestions(t *testing.T) {
	t.Parallel()

	e, mem := testEnv()
	r := New(mem, e)

	_, err := r.Resolve("projct")
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	found := false
	for _, s := range noMatch.Suggestions {
		if s == "Project" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %v should include Project", noMatch.Suggestions)
	}
}

func TestResolveDeduplicatesWithinTier(t *testing.T) {
	t.Parallel()

	// The same path reachable through two different roots must
	// surface once.
	e, mem := testEnv(
		registry.Root{Path: "/srv/first", Strategy: registry.Origin},
		registry.Root{Path: "/srv/first/Common", Strategy: registry.Target},
	)
	r := New(mem, e)

	cands, err := r.ResolveAll("common")
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 {
		t.Errorf("got %d candidates, want 1: %+v", len(cands), cands)
	}
}
