package action

import "fmt"

// EdgeTag labels an edge in the in-progress or final graph. The vocabulary is
// open (a classifier may emit any structural tag it was trained on) but a
// handful of values carry special meaning to the state machine and passage
// builder.
type EdgeTag string

const (
	// Terminal marks an edge from a (non-terminal) parent to a terminal child.
	Terminal EdgeTag = "Terminal"
	// Punctuation marks a terminal child that is surface punctuation.
	Punctuation EdgeTag = "Punctuation"
	// LinkRelation marks the relation member of a linkage group.
	LinkRelation EdgeTag = "LinkRelation"
	// LinkArgument marks an argument member of a linkage group.
	LinkArgument EdgeTag = "LinkArgument"
)

// Kind is the tag of the Action sum type.
type Kind int

const (
	Shift Kind = iota
	Reduce
	Node
	Implicit
	LeftEdge
	RightEdge
	LeftRemote
	RightRemote
	Swap
	Finish
)

// String renders the kind as the short mnemonic used in the log trail.
func (k Kind) String() string {
	switch k {
	case Shift:
		return "SHIFT"
	case Reduce:
		return "REDUCE"
	case Node:
		return "NODE"
	case Implicit:
		return "IMPLICIT"
	case LeftEdge:
		return "LEFT_EDGE"
	case RightEdge:
		return "RIGHT_EDGE"
	case LeftRemote:
		return "LEFT_REMOTE"
	case RightRemote:
		return "RIGHT_REMOTE"
	case Swap:
		return "SWAP"
	case Finish:
		return "FINISH"
	default:
		return "UNKNOWN"
	}
}

// Action is a tagged union over the ten action kinds. Only the fields
// relevant to Kind are meaningful; callers should construct values with the
// constructor functions below rather than the struct literal directly.
type Action struct {
	Kind Kind

	// Tag is the edge label for Node, Implicit, LeftEdge, RightEdge,
	// LeftRemote, RightRemote.
	Tag EdgeTag

	// Distance is the swap distance for Swap (>= 1). Zero means "not set";
	// callers should treat it as 1 (a simple, non-compound swap).
	Distance int

	// OrigNodeID references a node in a gold graph, set only during
	// training when the action was derived by an oracle. Nil at inference.
	OrigNodeID *string
}

// NewShift returns a SHIFT action.
func NewShift() Action { return Action{Kind: Shift} }

// NewReduce returns a REDUCE action.
func NewReduce() Action { return Action{Kind: Reduce} }

// NewNode returns a NODE action with the given edge tag.
func NewNode(tag EdgeTag) Action { return Action{Kind: Node, Tag: tag} }

// NewNodeGold returns a NODE action carrying a gold-graph node reference.
func NewNodeGold(tag EdgeTag, origNodeID string) Action {
	return Action{Kind: Node, Tag: tag, OrigNodeID: &origNodeID}
}

// NewImplicit returns an IMPLICIT action with the given edge tag.
func NewImplicit(tag EdgeTag) Action { return Action{Kind: Implicit, Tag: tag} }

// NewImplicitGold returns an IMPLICIT action carrying a gold-graph node reference.
func NewImplicitGold(tag EdgeTag, origNodeID string) Action {
	return Action{Kind: Implicit, Tag: tag, OrigNodeID: &origNodeID}
}

// NewLeftEdge returns a LEFT_EDGE action with the given edge tag.
func NewLeftEdge(tag EdgeTag) Action { return Action{Kind: LeftEdge, Tag: tag} }

// NewRightEdge returns a RIGHT_EDGE action with the given edge tag.
func NewRightEdge(tag EdgeTag) Action { return Action{Kind: RightEdge, Tag: tag} }

// NewLeftRemote returns a LEFT_REMOTE action with the given edge tag.
func NewLeftRemote(tag EdgeTag) Action { return Action{Kind: LeftRemote, Tag: tag} }

// NewRightRemote returns a RIGHT_REMOTE action with the given edge tag.
func NewRightRemote(tag EdgeTag) Action { return Action{Kind: RightRemote, Tag: tag} }

// NewSwap returns a SWAP action with the given distance (>= 1).
func NewSwap(distance int) Action { return Action{Kind: Swap, Distance: distance} }

// NewFinish returns a FINISH action.
func NewFinish() Action { return Action{Kind: Finish} }

// Is reports whether the action's kind matches any of the given kinds. This
// mirrors the Python action.is_type(...), which accepts several kinds at
// once (e.g. to test "is this any kind of edge action").
func (a Action) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// Remote reports whether the action creates a remote edge.
func (a Action) Remote() bool {
	return a.Kind == LeftRemote || a.Kind == RightRemote
}

// EffectiveDistance returns the swap distance, defaulting to 1 when unset.
func (a Action) EffectiveDistance() int {
	if a.Distance <= 0 {
		return 1
	}
	return a.Distance
}

// String renders the action in the form used by the log trail, e.g.
// "NODE(X)" or "SWAP(2)".
func (a Action) String() string {
	switch a.Kind {
	case Node, Implicit, LeftEdge, RightEdge, LeftRemote, RightRemote:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Tag)
	case Swap:
		return fmt.Sprintf("%s(%d)", a.Kind, a.EffectiveDistance())
	default:
		return a.Kind.String()
	}
}
