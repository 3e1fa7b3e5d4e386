package resolve

import (
	"fmt"
	"strings"
)

// Tier identifies the pipeline stage that produced a candidate.
type Tier int

const (
	// TierLiteral is a direct existence hit (literal or anchored).
	TierLiteral Tier = iota
	// TierEllipsis is an ancestor-directory hop.
	TierEllipsis
	// TierCwd is a match among the working directory's children.
	TierCwd
	// TierRoots is a match from the configured search roots.
	TierRoots
)

func (t Tier) String() string {
	switch t {
	case TierLiteral:
		return "literal"
	case TierEllipsis:
		return "ellipsis"
	case TierCwd:
		return "cwd"
	case TierRoots:
		return "roots"
	}
	return "unknown"
}

// Candidate is a resolved absolute path together with its origin. The
// tier is fixed at creation and never recomputed.
type Candidate struct {
	Path string
	Tier Tier
	Root string // originating search root, empty outside TierRoots
}

// NotFoundError reports an explicit path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such directory: %s", e.Path)
}

// BoundaryError reports an ellipsis that walked past the filesystem
// root.
type BoundaryError struct {
	Level int
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("cannot go up %d levels: filesystem root reached", e.Level)
}

// NoMatchError reports that no tier produced a candidate.
type NoMatchError struct {
	Query       string
	Suggestions []string
}

func (e *NoMatchError) Error() string {
	msg := fmt.Sprintf("could not resolve %q", e.Query)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// AmbiguousError reports multiple equally-ranked candidates within one
// tier or root. The resolver never auto-picks among peers.
type AmbiguousError struct {
	Query      string
	Candidates []Candidate
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous match for %q:", e.Query)
	for _, c := range e.Candidates {
		b.WriteString("\n  -> ")
		b.WriteString(c.Path)
	}
	return b.String()
}

// NotSetError reports a special query whose environment value is
// absent.
type NotSetError struct {
	Name string
}

func (e *NotSetError) Error() string {
	return fmt.Sprintf("%s not set", e.Name)
}
