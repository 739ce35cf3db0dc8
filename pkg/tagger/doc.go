// Package tagger provides a default implementation of the construction
// callback pkg/pstate.New accepts: a function that runs once, right after
// terminal nodes are created, to assign each terminal's gold/predicted tag
// field before the buffer and stack are built.
//
// RuleBasedTagger classifies a terminal as Word or Punctuation by
// evaluating a small ordered list of expr-lang boolean expressions against
// the terminal's surface text, falling back to Word when none match. This
// keeps the actual part-of-speech tagger (a learned classifier) out of
// scope while giving the one hook the state machine exposes a real,
// swappable, library-backed body.
package tagger
