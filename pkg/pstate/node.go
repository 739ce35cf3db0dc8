package pstate

import (
	"fmt"

	"github.com/yesoreyeram/transect/pkg/action"
)

// Node is a mutable vertex in the in-progress graph. Terminals carry Text;
// non-terminals never do. Fields are exported because State, Edge, and
// pkg/passage all need direct access to them, but only State and Edge ever
// mutate a Node after construction.
type Node struct {
	// Index is assigned in insertion order and is stable for the node's
	// lifetime; it never changes even after the final topological re-sort.
	Index int

	// Text is the terminal's surface string, or nil for a non-terminal.
	Text *string

	// Tag is the terminal's gold/predicted tag ("Word", "Punctuation", ...),
	// meaningful only during training; empty otherwise.
	Tag string

	// Implicit marks a non-terminal with no surface correspondence.
	Implicit bool

	// OrigNodeID/OrigNodeIndex reference a node in a gold graph, present
	// only during training.
	OrigNodeID    *string
	OrigNodeIndex *int

	// Outgoing/Incoming keep insertion order for the node's lifetime;
	// create_passage sorts the output graph's edges instead and leaves
	// these slices unchanged.
	Outgoing []*Edge
	Incoming []*Edge

	// Children/Parents are parallel projections of Outgoing/Incoming,
	// positionally matching them at all times (invariant 6).
	Children []*Node
	Parents  []*Node

	// SwapIndex orders nodes for the swap-loop-prevention check. It starts
	// equal to Index and is adjusted once, at creation, by UpdateSwapIndex.
	SwapIndex float64

	// Materialized is the back-pointer to this node's counterpart in the
	// final output graph, set by pkg/passage during CreatePassage. It is
	// untyped here to avoid pkg/pstate depending on pkg/passage.
	Materialized interface{}
}

// IsTerminal reports whether the node represents an input token.
func (n *Node) IsTerminal() bool {
	return n.Text != nil
}

// UpdateSwapIndex is called immediately after a non-terminal is created,
// with s the current stack top and buffer the current buffer (front first).
//
// If the buffer is empty, or its head is a terminal, or the head's swap
// index already exceeds this node's, nothing changes. Otherwise this node's
// swap index becomes the arithmetic mean of s's and the buffer head's,
// inserting it strictly between its eventual neighbors in swap order. That
// placement is what lets the SWAP validity check treat a brand new node as
// "never previously swapped relative to the current buffer head", which
// would otherwise be unrepresentable, since indices are plain integers
// assigned in creation order.
//
// The averaging is done in float64. After on the order of fifty swaps
// against the same neighborhood the resulting values become indistinguishable
// at float64 precision; this mirrors the reference implementation's own
// floating-point division and is an accepted, documented limit rather than
// a correctness bug.
func (n *Node) UpdateSwapIndex(s *Node, buffer []*Node) {
	if len(buffer) == 0 {
		return
	}
	b := buffer[0]
	if b.Text != nil || b.SwapIndex > n.SwapIndex {
		return
	}
	n.SwapIndex = (s.SwapIndex + b.SwapIndex) / 2
}

// Ancestors returns the transitive closure over Parents, stopping at cycles
// so that the node itself is never included.
func (n *Node) Ancestors() []*Node {
	return closure(n, func(x *Node) []*Node { return x.Parents })
}

// Descendants returns the transitive closure over Children, stopping at
// cycles so that the node itself is never included.
func (n *Node) Descendants() []*Node {
	return closure(n, func(x *Node) []*Node { return x.Children })
}

func closure(self *Node, adjacent func(*Node) []*Node) []*Node {
	visited := map[*Node]bool{self: true}
	var order []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, next := range adjacent(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			walk(next)
		}
	}
	walk(self)
	return order
}

// IsLinkage reports whether this node's sole purpose is to register a
// relation node together with its argument nodes as a group: it has at
// least one outgoing edge, and every outgoing edge is labeled LinkRelation
// or LinkArgument.
func (n *Node) IsLinkage() bool {
	if len(n.Outgoing) == 0 {
		return false
	}
	for _, e := range n.Outgoing {
		if e.Tag != action.LinkRelation && e.Tag != action.LinkArgument {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n.Text != nil {
		return fmt.Sprintf("%q", *n.Text)
	}
	if n.OrigNodeID != nil {
		return *n.OrigNodeID
	}
	return fmt.Sprintf("#%d", n.Index)
}
