package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"ncd/internal/env"
	"ncd/internal/fsys"
	"ncd/internal/log"
	"ncd/internal/output"
	"ncd/internal/registry"
	"ncd/internal/resolve"
	"ncd/internal/ui"
)

// runResolve builds the environment snapshot, runs the pipeline and
// prints the resulting path(s).
func runResolve(ctx context.Context, raw string) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	trimmed := trimQuery(raw)
	if trimmed == "" {
		if strings.TrimSpace(raw) == "" {
			return fmt.Errorf("empty query")
		}
		// The query was separators only: the drive root.
		out.Println(string(filepath.Separator))
		return nil
	}

	e, err := env.Snapshot(cfg)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(e); err != nil {
		return err
	}

	l.Debugf("query %q, strategy %s, fuzzy %v, exact %v, %d roots",
		trimmed, e.Strategy, e.Fuzzy, e.Exact, e.Roots.Len())

	r := resolve.New(fsys.OS{}, e)

	if flagList {
		cands, err := r.ResolveAll(trimmed)
		if err != nil {
			return err
		}
		for _, c := range cands {
			out.Path(c.Path)
		}
		return nil
	}

	cand, err := r.Resolve(trimmed)
	if err != nil {
		cand, err = recoverInteractively(err)
		if err != nil {
			return err
		}
	}

	l.Debugf("resolved via %s tier: %s", cand.Tier, cand.Path)

	if flagCopy {
		if err := clipboard.WriteAll(cand.Path); err != nil {
			l.Warnf("failed to copy to clipboard: %v", err)
		}
	}

	out.Path(cand.Path)
	return nil
}

// recoverInteractively offers a picker for ambiguous matches when -i
// is set and stderr is a terminal; any other error passes through.
func recoverInteractively(err error) (resolve.Candidate, error) {
	var ambiguous *resolve.AmbiguousError
	if !flagInteractive || !errors.As(err, &ambiguous) || !stderrIsTerminal() {
		return resolve.Candidate{}, err
	}

	paths := make([]string, len(ambiguous.Candidates))
	for i, c := range ambiguous.Candidates {
		paths[i] = c.Path
	}

	choice, ok, pickErr := ui.Pick(paths)
	if pickErr != nil {
		return resolve.Candidate{}, pickErr
	}
	if !ok {
		return resolve.Candidate{}, err // cancelled, keep the ambiguity error
	}

	for _, c := range ambiguous.Candidates {
		if c.Path == choice {
			return c, nil
		}
	}
	return resolve.Candidate{}, err
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// applyFlagOverrides layers command-line flags over the snapshot.
// Flags win over both environment variables and the config file.
func applyFlagOverrides(e *env.Env) error {
	if flagMode != "" {
		strategy, err := registry.ParseStrategy(flagMode)
		if err != nil {
			return err
		}
		e.Strategy = strategy
		e.Roots = rebuildRoots(e.Roots, strategy)
	}
	if flagFuzzy {
		e.Fuzzy = true
	}
	if flagExact {
		e.Exact = true
	}
	return nil
}

// rebuildRoots re-tags every root with the overriding strategy. A
// --cd override is explicit user intent for this invocation and beats
// per-root config.
func rebuildRoots(r *registry.Registry, strategy registry.Strategy) *registry.Registry {
	roots := r.Roots()
	for i := range roots {
		roots[i].Strategy = strategy
	}
	return registry.New(roots, "", strategy)
}

// trimQuery strips surrounding whitespace and trailing separators the
// way shells leave them behind ("proj/" -> "proj").
func trimQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimRight(raw, `/\`)
}
