// Package tree provides the hierarchical data model consumed by the treemap
// layout engine.
//
// A [Tree] owns every [Node] and an arena of [Layout] records indexed by each
// node's pre-order DataIndex. Parent pointers are navigational only; the tree
// is the sole owner of node lifetime. Layouts are written by the engine each
// pass and read back by renderers.
//
// # Building
//
// Trees are normally built from decoded data with [Build], which wraps the
// top-level items in a synthetic root and completes missing values:
//
//	t, err := tree.Build("flare", items)
//	node := t.NodeByID("flare/analytics")
//
// # Style Resolution
//
// [Node.Style] resolves visual options through the chain
// node override -> level override -> tree base style.
package tree

import (
	"errors"
)

// ErrDuplicateNodeID is returned when two items declare the same explicit id.
var ErrDuplicateNodeID = errors.New("duplicate node id")

// Tree is a rooted hierarchy of nodes plus the layout arena for them.
type Tree struct {
	Root *Node

	// Base is the series-wide style every node falls back to.
	Base Style
	// Levels holds per-depth overrides; Levels[d] applies to nodes at depth d.
	Levels []StyleOverride

	nodes   []*Node
	byID    map[string]*Node
	layouts []Layout
}

// New creates a tree rooted at root, indexing every descendant. Parent, Depth
// and DataIndex are assigned in pre-order; previously assigned values are
// overwritten. It returns ErrDuplicateNodeID if two nodes share a non-empty ID.
func New(root *Node) (*Tree, error) {
	t := &Tree{Root: root, byID: make(map[string]*Node)}
	if root == nil {
		return t, nil
	}
	var err error
	var walk func(n, parent *Node, depth int)
	walk = func(n, parent *Node, depth int) {
		n.Parent = parent
		n.Depth = depth
		n.DataIndex = len(t.nodes)
		n.tree = t
		t.nodes = append(t.nodes, n)
		if n.ID != "" {
			if _, dup := t.byID[n.ID]; dup && err == nil {
				err = errors.Join(ErrDuplicateNodeID, errors.New(n.ID))
			}
			t.byID[n.ID] = n
		}
		for _, c := range n.Children {
			walk(c, n, depth+1)
		}
	}
	walk(root, nil, 0)
	if err != nil {
		return nil, err
	}
	t.layouts = make([]Layout, len(t.nodes))
	return t, nil
}

// Nodes returns every node in pre-order. The slice must not be modified.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NodeByID returns the node with the given id, or nil.
func (t *Tree) NodeByID(id string) *Node {
	if t == nil {
		return nil
	}
	return t.byID[id]
}

// ClearLayouts resets every layout record in the arena. View children are
// cleared as well so a following pass starts from a blank state.
func (t *Tree) ClearLayouts() {
	for i := range t.layouts {
		t.layouts[i] = Layout{}
	}
	for _, n := range t.nodes {
		n.ViewChildren = nil
	}
}

// Walk visits nodes in pre-order, stopping descent below a node when fn
// returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if t.Root == nil {
		return
	}
	var visit func(n *Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(t.Root)
}

// Node is a single item of the hierarchy.
type Node struct {
	ID    string
	Name  string
	Value float64

	// Children are kept in data order.
	Children []*Node
	// Parent is a non-owning back reference; nil for the root.
	Parent *Node

	Depth     int
	DataIndex int

	// ViewChildren is engine-owned scratch: the children that survived
	// filtering in the last layout pass, in layout order.
	ViewChildren []*Node

	Link   string
	Target string

	// Override holds per-node style options taking precedence over levels.
	Override *StyleOverride

	removed bool
	tree    *Tree
}

// Tree returns the owning tree, or nil if the node was never indexed.
func (n *Node) Tree() *Tree {
	return n.tree
}

// IsRemoved reports whether the node has been filtered out of the data.
func (n *Node) IsRemoved() bool {
	return n.removed
}

// SetRemoved marks the node as filtered out. Removed nodes are skipped by
// the layout engine.
func (n *Node) SetRemoved(removed bool) {
	n.removed = removed
}

// IsLeaf reports whether the node has no data children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.Parent {
		if c == n {
			return true
		}
	}
	return false
}

// PathToRoot returns the chain from the tree root down to n, inclusive.
func (n *Node) PathToRoot() []*Node {
	var path []*Node
	for c := n; c != nil; c = c.Parent {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Label returns the display name, falling back to the id.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}
