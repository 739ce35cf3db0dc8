// Package graph provides index-based DAG algorithms: reachability and
// transitive closure, Kahn's-algorithm topological sorting, and the parser's
// level-by-level materialization order used by the passage builder. The
// state machine in pkg/pstate runs its own acyclicity check over Node
// pointers and does not use this package.
//
// Nodes are addressed by dense integer index rather than pointer or string
// ID, per the arena strategy: store nodes in a slice and refer to them by
// position throughout, so the acyclicity check becomes a reachability query
// over indices instead of a pointer-cycle problem.
//
// # Topological Sort
//
// TopologicalSort implements Kahn's algorithm: a general-purpose DAG
// ordering, independent of any particular level assignment, that returns
// ErrCycleDetected when the graph has a cycle.
//
// # Leveled Order
//
// LeveledOrder computes, for each node, level 0 for a node with no parents
// and 1+max(parent levels) otherwise, then emits nodes level by level,
// breaking ties within a level with a caller-supplied key function. This is
// the order the passage builder materializes nodes in, so that every parent
// is emitted before every child and the result is stable and reproducible
// across runs.
package graph
