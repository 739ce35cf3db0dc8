package passage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/yesoreyeram/transect/pkg/action"
	"github.com/yesoreyeram/transect/pkg/config"
	"github.com/yesoreyeram/transect/pkg/graph"
	"github.com/yesoreyeram/transect/pkg/pstate"
	"github.com/yesoreyeram/transect/pkg/tagger"
)

// Builder materializes a finished pstate.State into a Passage.
type Builder struct {
	Opts *config.Options

	// Warn, if set, is called for non-fatal conditions noticed during
	// materialization: a linkage group with fewer than two arguments, or
	// (when Opts.Verbose) a gold terminal tag diverging from a fresh
	// classification. It is never called with a nil error.
	Warn func(error)

	// classifier independently derives a terminal's tag from its surface
	// text, used only to detect gold/predicted tag divergence; it never
	// decides the tag that ends up on the built Passage.
	classifier *tagger.RuleBasedTagger

	nextSeq int
}

// NewBuilder returns a Builder using opts for verification/verbosity, or
// config.Default() if opts is nil.
func NewBuilder(opts *config.Options) *Builder {
	if opts == nil {
		opts = config.Default()
	}
	classifier, err := tagger.NewRuleBasedTagger(tagger.DefaultRules(), "Word")
	if err != nil {
		// DefaultRules is a fixed, known-good expression; NewRuleBasedTagger
		// only fails to compile a malformed rule.
		panic(fmt.Sprintf("passage: default classifier failed to compile: %v", err))
	}
	return &Builder{Opts: opts, classifier: classifier}
}

// Create runs the seven-step materialization algorithm against a finished
// state: s.Finished need not be true (callers may also materialize a
// partial parse for diagnostics), but s.Root must be set.
func (b *Builder) Create(s *pstate.State) (*Passage, error) {
	passageID := s.PassageID
	if passageID == "" {
		passageID = uuid.NewString()
	}

	paragraphs := make([]string, len(s.Tokens))
	paragraphLengths := make([]int, len(s.Tokens))
	for i, tokens := range s.Tokens {
		paragraphs[i] = norm.NFC.String(strings.Join(tokens, " "))
		paragraphLengths[i] = len(tokens)
	}

	terminals := make([]*Node, len(s.Terminals))
	for i, n := range s.Terminals {
		tag := n.Tag
		if tag == "" {
			tag = "Word"
		}
		// fix_terminal_tags: when a gold tag is known for this terminal,
		// compare it against a freshly derived guess and report any
		// divergence. The known (gold) tag always wins; this never changes
		// which tag ends up on the built Passage.
		if n.OrigNodeID != nil && n.Text != nil {
			fresh := b.classifier.Classify(*n.Text)
			if fresh != tag && b.Opts.Verbose && b.Warn != nil {
				b.Warn(fmt.Errorf("%w: %q for terminal %q, reclassified as %q", ErrTerminalTagMismatch, tag, *n.Text, fresh))
			}
		}
		out := &Node{Text: n.Text, Tag: tag, OrigID: n.OrigNodeID, ID: b.newID()}
		terminals[i] = out
		n.Materialized = out
	}

	order, positionOf := b.topologicalOrder(s)

	root := &Node{ID: b.newID(), OrigID: s.Root.OrigNodeID}
	s.Root.Materialized = root

	collapsed := make(map[*pstate.Node]bool)
	var remotes []remoteEdge
	var linkageSources []*pstate.Node

	for _, p := range order {
		if collapsed[p] {
			continue
		}
		if p.IsLinkage() {
			linkageSources = append(linkageSources, p)
			continue
		}
		pOut, ok := p.Materialized.(*Node)
		if !ok {
			// p was not reached through any non-remote edge (it is only the
			// target of remote edges); it gets its own output node here,
			// which the remote pass below links under its remote parents.
			pOut = &Node{ID: b.newID(), Implicit: p.Implicit, OrigID: p.OrigNodeID}
			p.Materialized = pOut
		}
		for _, e := range p.Outgoing {
			if e.Remote {
				remotes = append(remotes, remoteEdge{parent: p, edge: e})
				continue
			}
			if err := b.materializeChild(pOut, e, collapsed); err != nil {
				return nil, err
			}
		}
	}

	for _, r := range remotes {
		parentOut, ok := r.parent.Materialized.(*Node)
		if !ok {
			continue
		}
		childOut := materializedNode(r.edge.Child)
		if childOut == nil {
			continue
		}
		parentOut.Outgoing = append(parentOut.Outgoing, &Edge{Tag: r.edge.Tag, Child: childOut, Remote: true})
	}

	linkages := make([]*Linkage, 0, len(linkageSources))
	for _, l := range linkageSources {
		lk := &Linkage{OrigID: l.OrigNodeID}
		for _, e := range l.Outgoing {
			child := materializedNode(e.Child)
			if child == nil {
				continue
			}
			switch e.Tag {
			case action.LinkRelation:
				lk.Relation = child
			case action.LinkArgument:
				lk.Arguments = append(lk.Arguments, child)
			}
		}
		if len(lk.Arguments) < 2 && b.Warn != nil {
			b.Warn(fmt.Errorf("%w: passage %s linkage has %d argument(s)", ErrTooFewLinkageArguments, passageID, len(lk.Arguments)))
		}
		linkages = append(linkages, lk)
	}

	b.sortOutgoing(s, positionOf)

	return &Passage{
		ID:               passageID,
		Paragraphs:       paragraphs,
		ParagraphLengths: paragraphLengths,
		Terminals:        terminals,
		Root:             root,
		Linkages:         linkages,
	}, nil
}

type remoteEdge struct {
	parent *pstate.Node
	edge   *pstate.Edge
}

// materializeChild attaches p's edge-tagged child under pOut, handling the
// punctuation-group special case: a non-terminal with exactly one outgoing
// edge to a punctuation terminal collapses into a single output node
// standing in for both, attached directly under pOut.
func (b *Builder) materializeChild(pOut *Node, e *pstate.Edge, collapsed map[*pstate.Node]bool) error {
	c := e.Child

	if !c.IsTerminal() && len(c.Outgoing) == 1 {
		only := c.Outgoing[0]
		if only.Child.IsTerminal() && only.Child.Tag == "Punctuation" && !only.Remote {
			if c.Materialized != nil {
				return fmt.Errorf("%w: %s", ErrNodeMaterializedTwice, c)
			}
			punctChild := only.Child
			group := &Node{ID: b.newID(), Text: punctChild.Text, Tag: "Punctuation", OrigID: punctChild.OrigNodeID}
			pOut.Outgoing = append(pOut.Outgoing, &Edge{Tag: e.Tag, Child: group})
			c.Materialized = group
			punctChild.Materialized = group
			collapsed[c] = true
			return nil
		}
	}

	if c.IsTerminal() {
		if c.Materialized == nil {
			return fmt.Errorf("%w: terminal %s reached before its own slot was built", ErrNodeMaterializedTwice, c)
		}
		childOut := c.Materialized.(*Node)
		pOut.Outgoing = append(pOut.Outgoing, &Edge{Tag: e.Tag, Child: childOut})
		return nil
	}

	if c.Materialized != nil {
		return fmt.Errorf("%w: %s", ErrNodeMaterializedTwice, c)
	}
	childOut := &Node{ID: b.newID(), Implicit: c.Implicit, OrigID: c.OrigNodeID}
	pOut.Outgoing = append(pOut.Outgoing, &Edge{Tag: e.Tag, Child: childOut})
	c.Materialized = childOut
	return nil
}

func materializedNode(n *pstate.Node) *Node {
	if n.Materialized == nil {
		return nil
	}
	out, _ := n.Materialized.(*Node)
	return out
}

// topologicalOrder returns s.Nodes ordered so every edge's parent (plain or
// remote) precedes its child, breaking ties within a level by OrigNodeIndex
// when set, falling back to Index otherwise. It also returns each node's
// rank in that order, for the final re-sort of the output edges.
func (b *Builder) topologicalOrder(s *pstate.State) ([]*pstate.Node, map[*pstate.Node]int) {
	n := len(s.Nodes)
	indexOf := make(map[*pstate.Node]int, n)
	for i, nd := range s.Nodes {
		indexOf[nd] = i
	}

	children := make([][]int, n)
	parents := make([][]int, n)
	for i, nd := range s.Nodes {
		for _, c := range nd.Children {
			children[i] = append(children[i], indexOf[c])
		}
		for _, p := range nd.Parents {
			parents[i] = append(parents[i], indexOf[p])
		}
	}

	key := func(i int) int {
		if s.Nodes[i].OrigNodeIndex != nil {
			return *s.Nodes[i].OrigNodeIndex
		}
		return s.Nodes[i].Index
	}

	ranks := graph.LeveledOrder(n, children, parents, key)
	order := make([]*pstate.Node, len(ranks))
	positionOf := make(map[*pstate.Node]int, len(ranks))
	for pos, idx := range ranks {
		order[pos] = s.Nodes[idx]
		positionOf[s.Nodes[idx]] = pos
	}
	return order, positionOf
}

// sortOutgoing re-sorts every node's output edges by the output rank (or
// OrigNodeIndex, when present) of the target's pstate counterpart, matching
// the reference implementation's final re-sort after topological_sort.
func (b *Builder) sortOutgoing(s *pstate.State, positionOf map[*pstate.Node]int) {
	rank := func(n *pstate.Node) int {
		if n.OrigNodeIndex != nil {
			return *n.OrigNodeIndex
		}
		return positionOf[n]
	}
	for _, nd := range s.Nodes {
		out, ok := nd.Materialized.(*Node)
		if !ok {
			continue
		}
		// Create appends non-remote children in nd.Outgoing's relative order,
		// then remote children afterward in their own relative order: a
		// stable partition, not a straight copy of nd.Outgoing.
		var children []*pstate.Node
		for _, e := range nd.Outgoing {
			if !e.Remote {
				children = append(children, e.Child)
			}
		}
		for _, e := range nd.Outgoing {
			if e.Remote {
				children = append(children, e.Child)
			}
		}
		if len(children) != len(out.Outgoing) {
			continue
		}
		idx := make([]int, len(out.Outgoing))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool { return rank(children[idx[i]]) < rank(children[idx[j]]) })
		sorted := make([]*Edge, len(out.Outgoing))
		for i, j := range idx {
			sorted[i] = out.Outgoing[j]
		}
		out.Outgoing = sorted
	}
}

func (b *Builder) newID() string {
	b.nextSeq++
	return fmt.Sprintf("n%d", b.nextSeq)
}
