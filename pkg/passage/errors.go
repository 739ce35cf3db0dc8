package passage

import "errors"

// ErrNodeMaterializedTwice is returned by CreatePassage, wrapped with the
// offending node, when a non-terminal node is reached as somebody's child a
// second time. It is a plain error, not a pstate.StructuralFault, and the
// check runs whether or not Options.Verify is set. A well-formed state only ever attaches a non-root
// node to exactly one parent in the primary (non-remote) spanning tree, so
// this indicates a bug upstream in pkg/pstate, not a recoverable input error.
var ErrNodeMaterializedTwice = errors.New("passage: node materialized twice")

// ErrTooFewLinkageArguments is the warning reason recorded (not returned) when
// a linkage group has fewer than two LinkArgument edges. CreatePassage still
// registers the group; the caller's Warn callback is invoked instead of
// aborting the build.
var ErrTooFewLinkageArguments = errors.New("passage: linkage group has fewer than two arguments")

// ErrTerminalTagMismatch is the warning reason recorded (not returned) when a
// gold terminal's known tag diverges from the tag a fresh classification of
// its text would produce. The known tag always wins; this only controls
// whether the divergence is reported.
var ErrTerminalTagMismatch = errors.New("passage: terminal tag diverges from freshly classified tag")
