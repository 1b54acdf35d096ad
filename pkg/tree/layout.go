package tree

// LeafState describes how a node's children are presented after layout.
type LeafState uint8

const (
	// Expanded nodes have their view children laid out.
	Expanded LeafState = iota
	// Collapsed nodes had their children hidden because an ancestor's area
	// fell below childrenVisibleMin.
	Collapsed
	// ForcedLeaf nodes have children but sit at the configured leaf depth;
	// renderers show them as drillable leaves.
	ForcedLeaf
)

func (s LeafState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case ForcedLeaf:
		return "forced-leaf"
	default:
		return "expanded"
	}
}

// Layout is the per-node result of a layout pass. X and Y are relative to the
// parent's rect.
type Layout struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Area   float64

	BorderWidth      float64
	UpperHeight      float64
	UpperLabelHeight float64

	// DataExtent is [min, max] of the view children's values.
	DataExtent [2]float64

	State LeafState

	IsInView        bool
	Invisible       bool
	IsAboveViewRoot bool
}

// IsLeafRoot reports whether the node was collapsed by the leaf depth limit.
func (l Layout) IsLeafRoot() bool {
	return l.State == ForcedLeaf
}

// LayoutPatch is a partial layout; nil fields are left untouched when merged.
type LayoutPatch struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	Area   *float64

	BorderWidth      *float64
	UpperHeight      *float64
	UpperLabelHeight *float64

	DataExtent *[2]float64
	State      *LeafState

	IsInView        *bool
	Invisible       *bool
	IsAboveViewRoot *bool
}

// Float returns a pointer to v for building patches.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v for building patches.
func Bool(v bool) *bool { return &v }

// State returns a pointer to s for building patches.
func State(s LeafState) *LeafState { return &s }

// PatchOf returns a patch setting every field of l.
func PatchOf(l Layout) LayoutPatch {
	return LayoutPatch{
		X: &l.X, Y: &l.Y, Width: &l.Width, Height: &l.Height, Area: &l.Area,
		BorderWidth:      &l.BorderWidth,
		UpperHeight:      &l.UpperHeight,
		UpperLabelHeight: &l.UpperLabelHeight,
		DataExtent:       &l.DataExtent,
		State:            &l.State,
		IsInView:         &l.IsInView,
		Invisible:        &l.Invisible,
		IsAboveViewRoot:  &l.IsAboveViewRoot,
	}
}

func (p LayoutPatch) apply(l *Layout) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setB := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&l.X, p.X)
	setF(&l.Y, p.Y)
	setF(&l.Width, p.Width)
	setF(&l.Height, p.Height)
	setF(&l.Area, p.Area)
	setF(&l.BorderWidth, p.BorderWidth)
	setF(&l.UpperHeight, p.UpperHeight)
	setF(&l.UpperLabelHeight, p.UpperLabelHeight)
	if p.DataExtent != nil {
		l.DataExtent = *p.DataExtent
	}
	if p.State != nil {
		l.State = *p.State
	}
	setB(&l.IsInView, p.IsInView)
	setB(&l.Invisible, p.Invisible)
	setB(&l.IsAboveViewRoot, p.IsAboveViewRoot)
}

// Layout returns a copy of the node's current layout record.
func (n *Node) Layout() Layout {
	if n.tree == nil || n.DataIndex >= len(n.tree.layouts) {
		return Layout{}
	}
	return n.tree.layouts[n.DataIndex]
}

// SetLayout writes p into the arena. With merge the fields set in p are
// copied over the existing record; otherwise the record is reset first.
func (n *Node) SetLayout(p LayoutPatch, merge bool) {
	if n.tree == nil || n.DataIndex >= len(n.tree.layouts) {
		return
	}
	l := &n.tree.layouts[n.DataIndex]
	if !merge {
		*l = Layout{}
	}
	p.apply(l)
}
