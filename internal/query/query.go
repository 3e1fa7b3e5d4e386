// Package query classifies a raw navigation query into a typed intent.
//
// Classification is total: every input maps to exactly one intent, with
// Literal as the fallback. The parser never touches the filesystem.
package query

import "strings"

// Kind identifies the intent variant.
type Kind int

const (
	// Literal is a plain name or relative path fragment.
	Literal Kind = iota
	// Ellipsis is a run of three or more dots, optionally followed by
	// a path tail ("..." = up 2, "....\build" = up 3 into build).
	Ellipsis
	// Wildcard is a fragment containing * or ?.
	Wildcard
	// Anchor is a drive-prefixed or separator-leading path ("C:\x", "\x").
	Anchor
	// Home is the bare "~" query.
	Home
	// OldPwd is the bare "-" query.
	OldPwd
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Ellipsis:
		return "ellipsis"
	case Wildcard:
		return "wildcard"
	case Anchor:
		return "anchor"
	case Home:
		return "home"
	case OldPwd:
		return "oldpwd"
	}
	return "unknown"
}

// Intent is the parsed form of a query.
type Intent struct {
	Kind Kind

	// Path holds the fragment for Literal, Wildcard and Anchor intents.
	Path string

	// Level is the number of ancestor levels for Ellipsis intents
	// (dots minus one).
	Level int

	// Tail is the remaining fragment after an ellipsis run, without a
	// leading separator. Empty when the query is dots only.
	Tail string
}

// IsSeparator reports whether c is a path separator. Both slash styles
// are accepted regardless of platform so queries copied from either
// shell flavor work.
func IsSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// Parse classifies raw into an Intent. The caller is expected to have
// trimmed surrounding whitespace and trailing separators.
func Parse(raw string) Intent {
	switch raw {
	case "-":
		return Intent{Kind: OldPwd}
	case "~":
		return Intent{Kind: Home}
	}

	if head, tail, ok := splitHead(raw); ok {
		if dots := DotRun(head); dots >= 3 {
			return Intent{Kind: Ellipsis, Level: dots - 1, Tail: tail}
		}
	}

	if strings.ContainsAny(raw, "*?") {
		return Intent{Kind: Wildcard, Path: raw}
	}

	if IsAnchored(raw) {
		return Intent{Kind: Anchor, Path: raw}
	}

	return Intent{Kind: Literal, Path: raw}
}

// splitHead cuts raw at the first separator. ok is false for an empty
// head (raw starting with a separator is anchored, not ellipsis).
func splitHead(raw string) (head, tail string, ok bool) {
	for i := 0; i < len(raw); i++ {
		if IsSeparator(raw[i]) {
			return raw[:i], raw[i+1:], i > 0
		}
	}
	return raw, "", raw != ""
}

// DotRun returns the number of dots when segment consists solely of
// dots and spaces ("  ... ." counts 4), and 0 for anything else.
// Spaces slip in when shells pass quoted queries through.
func DotRun(segment string) int {
	dots := 0
	for i := 0; i < len(segment); i++ {
		switch segment[i] {
		case '.':
			dots++
		case ' ':
		default:
			return 0
		}
	}
	return dots
}

// IsAnchored reports whether raw names an absolute location: a leading
// separator (drive-root relative) or a drive-letter prefix like "C:".
func IsAnchored(raw string) bool {
	if raw == "" {
		return false
	}
	if IsSeparator(raw[0]) {
		return true
	}
	if len(raw) >= 2 && raw[1] == ':' && isAlpha(raw[0]) {
		return len(raw) == 2 || IsSeparator(raw[2])
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
