package tree

import (
	"errors"
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func sample(t *testing.T) *Tree {
	t.Helper()
	tr, err := Build("root", []Item{
		{ID: "a", Name: "A", Children: []Item{
			{ID: "a1", Name: "A1", Value: f(3)},
			{ID: "a2", Name: "A2", Value: f(2)},
		}},
		{ID: "b", Name: "B", Value: f(5)},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr
}

func TestBuildCompletesValues(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  float64
	}{
		{"missing sums children", []Item{{Children: []Item{{Value: f(2)}, {Value: f(3)}}}}, 5},
		{"nan sums children", []Item{{Value: f(math.NaN()), Children: []Item{{Value: f(4)}}}}, 4},
		{"negative clamps", []Item{{Value: f(-3)}}, 0},
		{"explicit kept", []Item{{Value: f(9), Children: []Item{{Value: f(1)}}}}, 9},
		{"leaf without value", []Item{{Name: "x"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build("r", tt.items)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := tr.Root.Children[0].Value; got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if tr.Root.Value != tt.want {
				t.Errorf("root value = %v, want %v", tr.Root.Value, tt.want)
			}
		})
	}
}

func TestBuildIndexes(t *testing.T) {
	tr := sample(t)

	if tr.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", tr.Len())
	}
	for i, n := range tr.Nodes() {
		if n.DataIndex != i {
			t.Errorf("%s DataIndex = %d, want %d", n.ID, n.DataIndex, i)
		}
	}
	a1 := tr.NodeByID("a1")
	if a1 == nil || a1.Depth != 2 || a1.Parent.ID != "a" {
		t.Fatalf("a1 not indexed correctly: %+v", a1)
	}
	if tr.NodeByID("missing") != nil {
		t.Error("NodeByID(missing) should be nil")
	}
}

func TestBuildGeneratesStableIDs(t *testing.T) {
	items := []Item{{Name: "x", Value: f(1)}, {Name: "x", Value: f(2)}}
	t1, err := Build("r", items)
	if err != nil {
		t.Fatal(err)
	}
	t2, _ := Build("r", items)

	id0, id1 := t1.Root.Children[0].ID, t1.Root.Children[1].ID
	if id0 == "" || id0 == id1 {
		t.Errorf("generated ids not unique: %q %q", id0, id1)
	}
	if t2.Root.Children[0].ID != id0 {
		t.Errorf("generated ids not deterministic")
	}
}

func TestBuildDuplicateID(t *testing.T) {
	_, err := Build("r", []Item{{ID: "x"}, {ID: "x"}})
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("err = %v, want ErrDuplicateNodeID", err)
	}
}

func TestBuildRootID(t *testing.T) {
	tests := []struct {
		name      string
		items     []Item
		keepsName bool
	}{
		{"unclaimed", []Item{{ID: "a"}}, true},
		{"claimed at depth 1", []Item{{ID: "r"}}, false},
		{"claimed deeper", []Item{{ID: "a", Children: []Item{{ID: "r"}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build("r", tt.items)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := tr.Root.ID == "r"; got != tt.keepsName {
				t.Errorf("root id = %q, keeps name = %v, want %v", tr.Root.ID, got, tt.keepsName)
			}
			if tr.Root.Name != "r" {
				t.Errorf("root name = %q, want r", tr.Root.Name)
			}
		})
	}
}

func TestContainsAndPath(t *testing.T) {
	tr := sample(t)
	a, a1, b := tr.NodeByID("a"), tr.NodeByID("a1"), tr.NodeByID("b")

	tests := []struct {
		name  string
		outer *Node
		inner *Node
		want  bool
	}{
		{"self", a, a, true},
		{"child", a, a1, true},
		{"root contains all", tr.Root, a1, true},
		{"sibling", a, b, false},
		{"reverse", a1, a, false},
		{"nil", a, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}

	path := a1.PathToRoot()
	if len(path) != 3 || path[0] != tr.Root || path[1] != a || path[2] != a1 {
		t.Errorf("PathToRoot() = %v", path)
	}
}

func TestSetLayoutMerge(t *testing.T) {
	tr := sample(t)
	n := tr.NodeByID("a")

	n.SetLayout(LayoutPatch{X: Float(1), Y: Float(2), Width: Float(3), Height: Float(4)}, false)
	n.SetLayout(LayoutPatch{IsInView: Bool(true), State: State(ForcedLeaf)}, true)

	l := n.Layout()
	if l.X != 1 || l.Y != 2 || l.Width != 3 || l.Height != 4 || !l.IsInView || !l.IsLeafRoot() {
		t.Errorf("merged layout = %+v", l)
	}

	n.SetLayout(LayoutPatch{Width: Float(10)}, false)
	if l := n.Layout(); l.X != 0 || l.Width != 10 || l.IsInView {
		t.Errorf("overwritten layout = %+v", l)
	}

	tr.ClearLayouts()
	if l := n.Layout(); l != (Layout{}) {
		t.Errorf("cleared layout = %+v", l)
	}
}

func TestStyleResolution(t *testing.T) {
	tr := sample(t)
	tr.Base = Style{BorderWidth: 1, GapWidth: 2, VisibleMin: 10, UpperLabelHeight: 20}
	tr.Levels = []StyleOverride{
		{},
		{BorderWidth: f(4), UpperLabel: Bool(true)},
	}
	b := tr.NodeByID("b")
	b.Override = &StyleOverride{GapWidth: f(7)}

	if s := tr.Root.Style(); s.BorderWidth != 1 || s.HeaderHeight() != 0 {
		t.Errorf("root style = %+v", s)
	}
	if s := tr.NodeByID("a").Style(); s.BorderWidth != 4 || s.GapWidth != 2 || s.HeaderHeight() != 20 {
		t.Errorf("level style = %+v", s)
	}
	if s := b.Style(); s.BorderWidth != 4 || s.GapWidth != 7 {
		t.Errorf("node style = %+v", s)
	}
	if s := tr.NodeByID("a1").Style(); s.BorderWidth != 1 {
		t.Errorf("depth beyond levels = %+v", s)
	}
}
