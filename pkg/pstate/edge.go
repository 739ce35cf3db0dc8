package pstate

import (
	"github.com/yesoreyeram/transect/pkg/action"
)

// Edge is a directed labeled edge in the in-progress graph. Remote edges
// participate in the same cycle checks as plain edges, but the passage
// builder materializes them in a separate pass from the primary spanning
// structure.
type Edge struct {
	Parent *Node
	Child  *Node
	Tag    action.EdgeTag
	Remote bool
}

// Add links the edge into both endpoints' Outgoing/Incoming/Children/Parents
// projections, after checking the preconditions from the spec: a tag must
// be set, parent and child must differ, the exact (parent, child, tag,
// remote) tuple must not already exist, and adding it must not create a
// cycle. These are implementer bugs when violated, not recoverable user
// errors, so they surface as a *StructuralFault.
func (e *Edge) Add() error {
	if e.Tag == "" {
		return fault("no tag given for new edge %s -> %s", e.Parent, e.Child)
	}
	if e.Parent == e.Child {
		return fault("trying to create self-loop edge on %s", e.Parent)
	}
	for _, existing := range e.Parent.Outgoing {
		if existing.Child == e.Child && existing.Tag == e.Tag && existing.Remote == e.Remote {
			return fault("trying to create outgoing edge twice: %s -%s-> %s", e.Parent, e.Tag, e.Child)
		}
	}
	for _, d := range e.Child.Descendants() {
		if d == e.Parent {
			return fault("detected cycle created by edge: %s -%s-> %s", e.Parent, e.Tag, e.Child)
		}
	}

	e.Parent.Outgoing = append(e.Parent.Outgoing, e)
	e.Parent.Children = append(e.Parent.Children, e.Child)
	e.Child.Incoming = append(e.Child.Incoming, e)
	e.Child.Parents = append(e.Child.Parents, e.Parent)
	return nil
}

func (e *Edge) String() string {
	remote := ""
	if e.Remote {
		remote = " (remote)"
	}
	return e.Parent.String() + " -" + string(e.Tag) + "-> " + e.Child.String() + remote
}
