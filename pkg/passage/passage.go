package passage

import "github.com/yesoreyeram/transect/pkg/action"

// Node is a vertex in the final, immutable output graph. It mirrors the
// shape of pstate.Node deliberately: Text is non-nil for a terminal, Tag
// carries a terminal's lexical category ("Word", "Punctuation", ...), and
// Outgoing holds every edge this node is the parent of, sorted by the same
// level-then-origin key used for the topological sort.
type Node struct {
	ID       string  `json:"id"`
	Text     *string `json:"text,omitempty"`
	Tag      string  `json:"tag,omitempty"`
	Implicit bool    `json:"implicit,omitempty"`
	OrigID   *string `json:"orig_id,omitempty"`
	Outgoing []*Edge `json:"outgoing,omitempty"`
}

// IsTerminal reports whether the node represents an input token (or, in the
// punctuation-collapse case, stands in for one).
func (n *Node) IsTerminal() bool {
	return n.Text != nil
}

// Edge is a directed labeled edge in the output graph.
type Edge struct {
	Tag    action.EdgeTag `json:"tag"`
	Child  *Node          `json:"child"`
	Remote bool           `json:"remote,omitempty"`
}

// Linkage groups a relation node together with its argument nodes, mirroring
// the LinkRelation/LinkArgument edges collected on a single pstate.Node
// flagged IsLinkage.
type Linkage struct {
	OrigID    *string `json:"orig_id,omitempty"`
	Relation  *Node   `json:"relation,omitempty"`
	Arguments []*Node `json:"arguments,omitempty"`
}

// Passage is the complete, immutable output of Builder.Create.
type Passage struct {
	// ID identifies the passage; it is copied from the State's PassageID, or
	// a freshly generated UUID when none was given.
	ID string `json:"id"`

	// Paragraphs holds the NFC-normalized, whitespace-joined reconstruction
	// of each input paragraph's tokens.
	Paragraphs []string `json:"paragraphs"`

	// ParagraphLengths holds, for each entry in Paragraphs, how many leading
	// terminals of Terminals belong to it; Terminals[n:n+ParagraphLengths[i]]
	// (n the sum of prior lengths) are paragraph i's tokens.
	ParagraphLengths []int `json:"paragraph_lengths"`

	// Terminals holds every terminal node, in input order, independent of
	// where the topological sort placed them in the tree.
	Terminals []*Node `json:"terminals"`

	// Root is the single top-level node every non-linkage node descends
	// from through Outgoing edges.
	Root *Node `json:"root"`

	// Linkages holds every linkage group found in the state's graph.
	Linkages []*Linkage `json:"linkages,omitempty"`
}
