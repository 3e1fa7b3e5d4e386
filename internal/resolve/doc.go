// Package resolve implements the tiered search pipeline that turns a
// navigation query into a single absolute path.
//
// # Tiers
//
// Queries are resolved by the first tier that yields an unambiguous
// result; later tiers are never consulted once an earlier one matched:
//
//  1. Literal/anchored existence: the query names a directory that
//     exists relative to the working directory or under its anchor.
//  2. Ellipsis: a run of three or more dots hops ancestor levels
//     ("..." = up two). Success or failure here is terminal.
//  3. Working-directory children, matched by name.
//  4. Configured search roots, each with an Origin, Target or Hybrid
//     strategy, in precedence order.
//
// The special queries "~" and "-" bypass the tiers and resolve from
// the environment snapshot.
//
// # Disambiguation
//
// Several matches within one tier or root fail with AmbiguousError
// carrying the full candidate list; the resolver never guesses among
// peers. Matches across tiers never compete.
package resolve
