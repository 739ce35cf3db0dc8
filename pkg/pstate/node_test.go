package pstate

import (
	"testing"

	"github.com/yesoreyeram/transect/pkg/action"
)

func textNode(idx int, text string) *Node {
	t := text
	return &Node{Index: idx, Text: &t, SwapIndex: float64(idx)}
}

func nonTermNode(idx int) *Node {
	return &Node{Index: idx, SwapIndex: float64(idx)}
}

func TestUpdateSwapIndex_EmptyBuffer(t *testing.T) {
	s := textNode(0, "a")
	n := nonTermNode(1)
	n.UpdateSwapIndex(s, nil)
	if n.SwapIndex != 1 {
		t.Errorf("SwapIndex = %v, want unchanged 1", n.SwapIndex)
	}
}

func TestUpdateSwapIndex_TerminalBufferHead(t *testing.T) {
	s := nonTermNode(0)
	n := nonTermNode(3)
	b := textNode(1, "b")
	n.UpdateSwapIndex(s, []*Node{b})
	if n.SwapIndex != 3 {
		t.Errorf("SwapIndex = %v, want unchanged 3 (buffer head is a terminal)", n.SwapIndex)
	}
}

func TestUpdateSwapIndex_Averages(t *testing.T) {
	s := nonTermNode(0)
	s.SwapIndex = 0
	n := nonTermNode(5)
	b := nonTermNode(2)
	b.SwapIndex = 2 // less than n.SwapIndex (5), and not a terminal: triggers averaging
	n.UpdateSwapIndex(s, []*Node{b})
	want := (0.0 + 2.0) / 2
	if n.SwapIndex != want {
		t.Errorf("SwapIndex = %v, want %v", n.SwapIndex, want)
	}
}

func TestUpdateSwapIndex_BufferHeadAlreadyAfter(t *testing.T) {
	s := nonTermNode(0)
	n := nonTermNode(1)
	b := nonTermNode(2)
	b.SwapIndex = 10 // already greater than n's swap index: no update
	n.UpdateSwapIndex(s, []*Node{b})
	if n.SwapIndex != 1 {
		t.Errorf("SwapIndex = %v, want unchanged 1", n.SwapIndex)
	}
}

func TestAncestorsDescendants(t *testing.T) {
	root := nonTermNode(0)
	mid := nonTermNode(1)
	leaf := textNode(2, "x")

	e1 := &Edge{Parent: root, Child: mid, Tag: "H"}
	if err := e1.Add(); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	e2 := &Edge{Parent: mid, Child: leaf, Tag: action.Terminal}
	if err := e2.Add(); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	desc := root.Descendants()
	if len(desc) != 2 {
		t.Fatalf("root.Descendants() = %v, want 2 nodes", desc)
	}
	anc := leaf.Ancestors()
	if len(anc) != 2 {
		t.Fatalf("leaf.Ancestors() = %v, want 2 nodes", anc)
	}
}

func TestIsLinkage(t *testing.T) {
	relationNode := nonTermNode(0)
	arg1 := nonTermNode(1)
	arg2 := nonTermNode(2)
	linkage := nonTermNode(3)

	for _, e := range []*Edge{
		{Parent: linkage, Child: relationNode, Tag: action.LinkRelation},
		{Parent: linkage, Child: arg1, Tag: action.LinkArgument},
		{Parent: linkage, Child: arg2, Tag: action.LinkArgument},
	} {
		if err := e.Add(); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if !linkage.IsLinkage() {
		t.Error("IsLinkage() = false, want true")
	}
	if relationNode.IsLinkage() {
		t.Error("relationNode.IsLinkage() = true, want false (no outgoing edges)")
	}
}

func TestIsTerminal(t *testing.T) {
	if !textNode(0, "a").IsTerminal() {
		t.Error("terminal node reports IsTerminal() = false")
	}
	if nonTermNode(0).IsTerminal() {
		t.Error("non-terminal node reports IsTerminal() = true")
	}
}
