// Package passage turns a pstate.State's in-progress graph into a final,
// immutable layered output: Builder.Create implements the seven steps of
// the reference create_passage routine: paragraph reconstruction,
// gold-tag reconciliation, a level-ordered topological sort, and the
// three materialization passes (structural tree, remote edges, linkage
// groups).
//
// Unlike pkg/pstate, a Passage is read-only once returned: nothing in this
// package mutates a Node or Edge after Create returns.
package passage
