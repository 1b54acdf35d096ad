package drill

import (
	"testing"

	"github.com/matzehuels/treemap/pkg/tree"
)

func v(x float64) *float64 { return &x }

func sample(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build("root", []tree.Item{
		{ID: "a", Children: []tree.Item{
			{ID: "a1", Children: []tree.Item{{ID: "a1x", Value: v(1)}}},
			{ID: "a2", Value: v(2)},
		}},
		{ID: "b", Value: v(3)},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestResetViewRoot(t *testing.T) {
	tr := sample(t)
	m := New(tr)

	if m.ViewRoot() != tr.Root {
		t.Fatalf("initial view root = %v, want root", m.ViewRoot().ID)
	}

	a1 := tr.NodeByID("a1")
	m.ResetViewRoot(a1)
	if m.ViewRoot() != a1 {
		t.Errorf("view root = %s, want a1", m.ViewRoot().ID)
	}

	m.ResetViewRoot(nil)
	if m.ViewRoot() != a1 {
		t.Errorf("nil reset changed view root to %s", m.ViewRoot().ID)
	}

	other := sample(t)
	m.ResetViewRoot(other.NodeByID("b"))
	if m.ViewRoot() != tr.Root {
		t.Errorf("foreign node should fall back to root, got %s", m.ViewRoot().ID)
	}
}

func TestSetTreeRevalidates(t *testing.T) {
	tr := sample(t)
	m := New(tr)
	m.ResetViewRoot(tr.NodeByID("a"))

	replacement := sample(t)
	m.SetTree(replacement)
	if m.ViewRoot() != replacement.Root {
		t.Errorf("view root after replacement = %v, want new root", m.ViewRoot().ID)
	}

	m.SetTree(nil)
	if m.ViewRoot() != nil || m.ViewPath() != nil {
		t.Error("nil tree should clear the view root")
	}
}

func TestDirection(t *testing.T) {
	tr := sample(t)
	m := New(tr)
	m.ResetViewRoot(tr.NodeByID("a1"))

	tests := []struct {
		target string
		want   Direction
	}{
		{"root", Rollup},
		{"a", Rollup},
		{"a1", Drilldown},
		{"a1x", Drilldown},
		{"b", Drilldown},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := m.Direction(tr.NodeByID(tt.target)); got != tt.want {
				t.Errorf("Direction(%s) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestViewPath(t *testing.T) {
	tr := sample(t)
	m := New(tr)
	m.ResetViewRoot(tr.NodeByID("a1x"))

	var ids []string
	for _, n := range m.ViewPath() {
		ids = append(ids, n.ID)
	}
	want := []string{"root", "a", "a1", "a1x"}
	if len(ids) != len(want) {
		t.Fatalf("ViewPath() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ViewPath()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestResolve(t *testing.T) {
	tr := sample(t)
	m := New(tr)
	other := sample(t)

	tests := []struct {
		name string
		ref  any
		want *tree.Node
	}{
		{"id", "a2", tr.NodeByID("a2")},
		{"node", tr.NodeByID("b"), tr.NodeByID("b")},
		{"unknown id", "zzz", nil},
		{"stale node", other.NodeByID("b"), nil},
		{"nil node", (*tree.Node)(nil), nil},
		{"unsupported", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}
