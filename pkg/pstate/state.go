package pstate

import (
	"fmt"

	"github.com/yesoreyeram/transect/pkg/action"
	"github.com/yesoreyeram/transect/pkg/config"
)

// State is the parser's working state: the append-only node arena, the
// stack/buffer over it, and the bookkeeping needed to turn a completed
// transition sequence into a passage. One State is created per passage and
// is not safe for concurrent use from multiple goroutines; a server
// handling several requests gives each its own State and Options.
type State struct {
	// Nodes is the arena: every Node ever created, terminals first (in
	// token order) followed by the root and then non-terminals/implicit
	// nodes in creation order. Each Node's Index is its position here;
	// create_passage reads the slice without reordering it.
	Nodes []*Node

	// Terminals is a fixed-order view over the terminal nodes, captured
	// once at construction, used to fix up gold tags and compute the
	// node ratio.
	Terminals []*Node

	// Tokens is the paragraph structure the terminals were built from:
	// Tokens[p][i] is the surface text of the i-th token of paragraph p.
	Tokens [][]string

	// Root is the single node created to anchor the graph; it is never
	// part of Buffer and starts as the only element of Stack.
	Root *Node

	Stack  []*Node
	Buffer []*Node

	// Finished is set by a FINISH transition and never cleared.
	Finished bool

	// PassageID is carried through to passage.Builder.
	PassageID string

	Opts *config.Options

	log []string
}

// New constructs a State for parsing plain text: paragraphs is a slice of
// token-text paragraphs with no gold graph available. callback, if
// non-nil, runs once after terminal nodes are created and before the
// buffer/stack are set up, the seam pkg/tagger.RuleBasedTagger fills in to
// assign terminal tags.
func New(paragraphs [][]string, passageID string, opts *config.Options, callback func(*State)) *State {
	s := &State{
		Tokens:    paragraphs,
		PassageID: passageID,
		Opts:      opts,
	}
	for _, paragraph := range paragraphs {
		for _, token := range paragraph {
			text := token
			s.Nodes = append(s.Nodes, &Node{
				Index:     len(s.Nodes),
				Text:      &text,
				SwapIndex: float64(len(s.Nodes)),
			})
		}
	}
	if callback != nil {
		callback(s)
	}
	s.Terminals = append([]*Node(nil), s.Nodes...)
	s.Buffer = append([]*Node(nil), s.Nodes...)
	root := s.newNode(nil, "", false, nil, nil)
	s.Root = root
	s.Stack = []*Node{root}
	return s
}

// GoldTerminal describes one terminal position when constructing a State
// from a gold graph, as an oracle does during training.
type GoldTerminal struct {
	Text          string
	Tag           string
	OrigNodeID    *string
	OrigNodeIndex *int
}

// NewFromGold constructs a State for training: terminals carry their gold
// tag and a reference back into the gold graph (OrigNodeID/OrigNodeIndex),
// which an oracle consults to derive the correct action at each step.
// rootOrigID, if non-nil, is recorded on the root node the same way.
func NewFromGold(paragraphs [][]GoldTerminal, passageID string, opts *config.Options, rootOrigID *string, callback func(*State)) *State {
	s := &State{
		PassageID: passageID,
		Opts:      opts,
	}
	for _, paragraph := range paragraphs {
		var texts []string
		for _, g := range paragraph {
			text := g.Text
			texts = append(texts, text)
			s.Nodes = append(s.Nodes, &Node{
				Index:         len(s.Nodes),
				Text:          &text,
				Tag:           g.Tag,
				OrigNodeID:    g.OrigNodeID,
				OrigNodeIndex: g.OrigNodeIndex,
				SwapIndex:     float64(len(s.Nodes)),
			})
		}
		s.Tokens = append(s.Tokens, texts)
	}
	if callback != nil {
		callback(s)
	}
	s.Terminals = append([]*Node(nil), s.Nodes...)
	s.Buffer = append([]*Node(nil), s.Nodes...)
	root := s.newNode(nil, "", false, rootOrigID, nil)
	s.Root = root
	s.Stack = []*Node{root}
	return s
}

func (s *State) newNode(text *string, tag string, implicit bool, origNodeID *string, origNodeIndex *int) *Node {
	n := &Node{
		Index:         len(s.Nodes),
		Text:          text,
		Tag:           tag,
		Implicit:      implicit,
		OrigNodeID:    origNodeID,
		OrigNodeIndex: origNodeIndex,
	}
	n.SwapIndex = float64(n.Index)
	s.Nodes = append(s.Nodes, n)
	s.log = append(s.log, fmt.Sprintf("node: %s", n))
	return n
}

// Log returns the trail of node/edge creations and swaps recorded by the
// most recent Transition call, in the same shape as the reference
// implementation's per-step self.log: reset at the start of each
// Transition, appended to as the transition is carried out.
func (s *State) Log() []string {
	return s.log
}

// IsValid reports whether action would be accepted by AssertValid.
func (s *State) IsValid(a action.Action) bool {
	return s.AssertValid(a) == nil
}

// AssertValid checks whether a is legal to apply in the current state,
// returning an error wrapping ErrInvalidAction describing the first
// violated precondition, or nil if a may be applied.
func (s *State) AssertValid(a action.Action) error {
	switch {
	case a.Is(action.Finish):
		if len(s.Root.Outgoing) == 0 {
			return invalid("root must have at least one child at the end of the parse")
		}
		for _, t := range s.Terminals {
			if len(t.Incoming) == 0 {
				return invalid("every terminal must have a parent at the end of the parse: %s", t)
			}
		}
		return nil

	case a.Is(action.Shift):
		if len(s.Buffer) == 0 {
			return invalid("buffer must not be empty in order to shift from it")
		}
		return nil
	}

	if len(s.Stack) == 0 {
		return invalid("action requires non-empty stack: %s", a)
	}
	s0 := s.Stack[len(s.Stack)-1]

	switch {
	case a.Is(action.Node):
		if s0 == s.Root {
			return invalid("the root may not have parents")
		}
		if (s0.Text != nil) != (a.Tag == action.Terminal) {
			return invalid("edge tag must be Terminal iff child is terminal")
		}
		return s.assertNodeRatio()

	case a.Is(action.Implicit):
		if s0.Text != nil {
			return invalid("terminals may not have (implicit) children")
		}
		if s0.Implicit {
			return invalid("implicit node loop")
		}
		return s.assertNodeRatio()

	case a.Is(action.Reduce):
		if s0 == s.Root && len(s0.Outgoing) == 0 {
			return invalid("may not reduce the root without children")
		}
		return nil

	case a.Is(action.LeftEdge, action.LeftRemote, action.RightEdge, action.RightRemote):
		if len(s.Stack) < 2 {
			return invalid("action requires at least two stack elements: %s", a)
		}
		parent, child := s.parentChild(a)
		if child == s.Root {
			return invalid("root may not be the child")
		}
		if parent.Text != nil {
			return invalid("terminal may not be the parent")
		}
		if parent == s.Root && child.Text != nil {
			return invalid("root->terminal edge")
		}
		for _, c := range parent.Children {
			if c == child {
				return invalid("edge must not already exist")
			}
		}
		if (child.Text != nil) != (a.Tag == action.Terminal) {
			return invalid("edge tag must be Terminal iff child is terminal")
		}
		for _, d := range child.Descendants() {
			if d == parent {
				return invalid("detected cycle created by edge: %s -%s-> %s", parent, a.Tag, child)
			}
		}
		return nil

	case a.Is(action.Swap):
		if len(s.Stack) < 2 {
			return invalid("action requires at least two stack elements: %s", a)
		}
		distance := a.EffectiveDistance()
		if distance < 1 || distance >= len(s.Stack) {
			return invalid("invalid swap distance: %d", distance)
		}
		swapped := s.Stack[len(s.Stack)-distance-1]
		if s0.Text != nil && swapped.Text != nil {
			return invalid("swapping terminals is not allowed")
		}
		if s0.Text == nil && swapped.SwapIndex > s0.SwapIndex {
			return invalid("swapping already-swapped nodes")
		}
		return nil
	}

	return invalid("unrecognized action: %s", a)
}

// Transition applies a, which must already satisfy AssertValid. If
// Opts.Verify is set, AssertValid is re-checked first and the
// stack/buffer-disjointness invariant is re-checked after.
func (s *State) Transition(a action.Action) error {
	if s.Opts != nil && s.Opts.Verify {
		if err := s.AssertValid(a); err != nil {
			return err
		}
	}
	s.log = nil

	switch {
	case a.Is(action.Shift):
		n := s.Buffer[0]
		s.Buffer = s.Buffer[1:]
		s.Stack = append(s.Stack, n)

	case a.Is(action.Node):
		top := s.Stack[len(s.Stack)-1]
		parent := s.newNode(nil, "", false, a.OrigNodeID, nil)
		parent.UpdateSwapIndex(top, s.Buffer)
		if err := s.addEdge(&Edge{Parent: parent, Child: top, Tag: a.Tag}); err != nil {
			return err
		}
		s.Buffer = append([]*Node{parent}, s.Buffer...)

	case a.Is(action.Implicit):
		top := s.Stack[len(s.Stack)-1]
		child := s.newNode(nil, "", true, a.OrigNodeID, nil)
		child.UpdateSwapIndex(top, s.Buffer)
		if err := s.addEdge(&Edge{Parent: top, Child: child, Tag: a.Tag}); err != nil {
			return err
		}
		s.Buffer = append([]*Node{child}, s.Buffer...)

	case a.Is(action.Reduce):
		s.Stack = s.Stack[:len(s.Stack)-1]

	case a.Is(action.LeftEdge, action.LeftRemote, action.RightEdge, action.RightRemote):
		parent, child := s.parentChild(a)
		if err := s.addEdge(&Edge{Parent: parent, Child: child, Tag: a.Tag, Remote: a.Remote()}); err != nil {
			return err
		}

	case a.Is(action.Swap):
		distance := a.EffectiveDistance()
		n := len(s.Stack)
		sliceStart := n - distance - 1
		sliceEnd := n - 1
		swapped := s.Stack[sliceStart:sliceEnd]
		top := s.Stack[n-1]
		s.log = append(s.log, fmt.Sprintf("%s <--> %s", joinNodes(swapped), top))
		// Python does self.buffer.extendleft(reversed(stack[s])): pushing a
		// reversed sequence onto the front of a deque one at a time undoes
		// the reversal, so the net effect is prepending swapped in its
		// original (bottom-to-top) order.
		prefix := append([]*Node{}, swapped...)
		s.Buffer = append(prefix, s.Buffer...)
		s.Stack = append(append([]*Node{}, s.Stack[:sliceStart]...), s.Stack[sliceEnd:]...)

	case a.Is(action.Finish):
		s.Finished = true

	default:
		return invalid("unrecognized action: %s", a)
	}

	if s.Opts != nil && s.Opts.Verify {
		inBuffer := make(map[*Node]bool, len(s.Buffer))
		for _, n := range s.Buffer {
			inBuffer[n] = true
		}
		for _, n := range s.Stack {
			if inBuffer[n] {
				return fault("stack and buffer overlap: %s", n)
			}
		}
	}
	return nil
}

func (s *State) addEdge(e *Edge) error {
	if err := e.Add(); err != nil {
		return err
	}
	s.log = append(s.log, fmt.Sprintf("edge: %s", e))
	return nil
}

func (s *State) parentChild(a action.Action) (*Node, *Node) {
	switch {
	case a.Is(action.LeftEdge, action.LeftRemote):
		return s.Stack[len(s.Stack)-1], s.Stack[len(s.Stack)-2]
	case a.Is(action.RightEdge, action.RightRemote):
		return s.Stack[len(s.Stack)-2], s.Stack[len(s.Stack)-1]
	default:
		return nil, nil
	}
}

func (s *State) assertNodeRatio() error {
	ratio := float64(len(s.Nodes))/float64(len(s.Terminals)) - 1
	maxRatio := 0.0
	if s.Opts != nil {
		maxRatio = s.Opts.MaxNodesRatio
	}
	if ratio > maxRatio {
		return invalid("reached maximum ratio (%.3f) of non-terminals to terminals", maxRatio)
	}
	return nil
}

func joinNodes(nodes []*Node) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += ", "
		}
		out += n.String()
	}
	return out
}

// String renders the stack and buffer, in the same "stack: [...] buffer:
// [...]" shape the reference implementation prints for debugging.
func (s *State) String() string {
	return fmt.Sprintf("stack: [%-20s] buffer: [%s]", joinNodes(s.Stack), joinNodes(s.Buffer))
}
