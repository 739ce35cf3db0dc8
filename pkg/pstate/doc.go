// Package pstate implements the parser's state machine: the stack/buffer
// transition system that drives construction of a layered semantic graph one
// action at a time.
//
// A State owns an append-only arena of Node values (terminals created once
// at construction, non-terminals created by NODE/IMPLICIT actions, the root
// created at construction) and the Edge values connecting them. Nodes are
// referred to by pointer within the arena's lifetime, but every Node also
// carries a stable Index assigned in insertion order, the arena strategy the
// acyclicity checks rely on, since a cycle query is then just a reachability
// query over the edge-induced graph.
//
// AssertValid/IsValid implement the validity predicate a policy (an oracle
// during training, a classifier during inference) consults before proposing
// an action; Transition applies an action already known to be valid. Both
// are driven externally, since this package has no opinion on where actions
// come from (see pkg/oracle).
package pstate
