package action

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Shift, "SHIFT"},
		{Reduce, "REDUCE"},
		{Node, "NODE"},
		{Implicit, "IMPLICIT"},
		{LeftEdge, "LEFT_EDGE"},
		{RightEdge, "RIGHT_EDGE"},
		{LeftRemote, "LEFT_REMOTE"},
		{RightRemote, "RIGHT_REMOTE"},
		{Swap, "SWAP"},
		{Finish, "FINISH"},
		{Kind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		name string
		a    Action
		want string
	}{
		{"node", NewNode("H"), "NODE(H)"},
		{"left edge", NewLeftEdge(Terminal), "LEFT_EDGE(Terminal)"},
		{"swap default distance", NewSwap(0), "SWAP(1)"},
		{"swap explicit distance", NewSwap(3), "SWAP(3)"},
		{"shift", NewShift(), "SHIFT"},
		{"finish", NewFinish(), "FINISH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	a := NewReduce()
	if !a.Is(Shift, Reduce) {
		t.Error("expected Is to match Reduce among multiple kinds")
	}
	if a.Is(Shift, Node) {
		t.Error("expected Is to reject a non-matching kind")
	}
}

func TestRemote(t *testing.T) {
	tests := []struct {
		a    Action
		want bool
	}{
		{NewLeftRemote("H"), true},
		{NewRightRemote("H"), true},
		{NewLeftEdge("H"), false},
		{NewRightEdge("H"), false},
	}
	for _, tt := range tests {
		if got := tt.a.Remote(); got != tt.want {
			t.Errorf("%s.Remote() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestEffectiveDistance(t *testing.T) {
	if got := NewSwap(0).EffectiveDistance(); got != 1 {
		t.Errorf("zero distance should default to 1, got %d", got)
	}
	if got := NewSwap(-1).EffectiveDistance(); got != 1 {
		t.Errorf("negative distance should default to 1, got %d", got)
	}
	if got := NewSwap(5).EffectiveDistance(); got != 5 {
		t.Errorf("explicit distance should be preserved, got %d", got)
	}
}

func TestNodeGoldCarriesOrigNodeID(t *testing.T) {
	a := NewNodeGold("H", "orig-1")
	if a.OrigNodeID == nil || *a.OrigNodeID != "orig-1" {
		t.Errorf("expected OrigNodeID to be set to orig-1, got %v", a.OrigNodeID)
	}
	if a.Kind != Node || a.Tag != "H" {
		t.Errorf("expected Kind=Node Tag=H, got Kind=%v Tag=%v", a.Kind, a.Tag)
	}
}

func TestImplicitGoldCarriesOrigNodeID(t *testing.T) {
	a := NewImplicitGold("H", "orig-2")
	if a.OrigNodeID == nil || *a.OrigNodeID != "orig-2" {
		t.Errorf("expected OrigNodeID to be set to orig-2, got %v", a.OrigNodeID)
	}
	if a.Kind != Implicit {
		t.Errorf("expected Kind=Implicit, got %v", a.Kind)
	}
}
