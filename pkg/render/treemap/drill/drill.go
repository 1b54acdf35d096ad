// Package drill tracks the view root of a treemap: the node currently shown
// as the top of the rendered subtree after zero or more drill-downs.
package drill

import "github.com/matzehuels/treemap/pkg/tree"

// Direction hints the transition a view root change implies.
type Direction uint8

const (
	// None means the view root did not change.
	None Direction = iota
	// Drilldown moves the view root to a descendant or across the tree.
	Drilldown
	// Rollup moves the view root to one of its ancestors.
	Rollup
)

func (d Direction) String() string {
	switch d {
	case Drilldown:
		return "drillDown"
	case Rollup:
		return "rollUp"
	default:
		return "none"
	}
}

// Manager holds the view root of one tree. The zero value is ready to use
// once a tree is set.
type Manager struct {
	tree     *tree.Tree
	viewRoot *tree.Node
}

// New returns a Manager viewing the root of t.
func New(t *tree.Tree) *Manager {
	m := &Manager{}
	m.SetTree(t)
	return m
}

// Tree returns the managed tree.
func (m *Manager) Tree() *tree.Tree {
	return m.tree
}

// SetTree replaces the tree. The current view root is kept if the new tree
// still contains it, otherwise the view falls back to the new root.
func (m *Manager) SetTree(t *tree.Tree) {
	m.tree = t
	m.ResetViewRoot(nil)
}

// ResetViewRoot moves the view to n. A nil n keeps the current view root.
// A view root outside the tree silently resets to the tree root.
func (m *Manager) ResetViewRoot(n *tree.Node) {
	if n != nil {
		m.viewRoot = n
	}
	if m.tree == nil || m.tree.Root == nil {
		m.viewRoot = nil
		return
	}
	root := m.tree.Root
	if m.viewRoot == nil || (m.viewRoot != root && !root.Contains(m.viewRoot)) {
		m.viewRoot = root
	}
}

// ViewRoot returns the current view root.
func (m *Manager) ViewRoot() *tree.Node {
	return m.viewRoot
}

// ViewPath returns the chain from the tree root to the view root, inclusive.
func (m *Manager) ViewPath() []*tree.Node {
	if m.viewRoot == nil {
		return nil
	}
	return m.viewRoot.PathToRoot()
}

// AboveViewRoot reports whether n is a strict ancestor of the view root.
func (m *Manager) AboveViewRoot(n *tree.Node) bool {
	if n == nil || m.viewRoot == nil {
		return false
	}
	for p := m.viewRoot.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Direction returns the transition moving the view root to target implies.
// The comparison is strict: a target equal to the view root is a drilldown.
func (m *Manager) Direction(target *tree.Node) Direction {
	if m.AboveViewRoot(target) {
		return Rollup
	}
	return Drilldown
}

// Resolve maps a node or id reference to a node of the current tree. It
// returns nil for unknown ids and for nodes of another tree.
func (m *Manager) Resolve(ref any) *tree.Node {
	if m.tree == nil || m.tree.Root == nil {
		return nil
	}
	switch r := ref.(type) {
	case *tree.Node:
		if r != nil && m.tree.Root.Contains(r) {
			return r
		}
	case string:
		return m.tree.NodeByID(r)
	}
	return nil
}
