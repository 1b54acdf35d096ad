package layout

import "github.com/matzehuels/treemap/pkg/tree"

// Action identifies what triggered a layout pass.
type Action uint8

const (
	// ActionRender lays out from the current state.
	ActionRender Action = iota
	// ActionMove pans: only the root position and pruning are recomputed.
	ActionMove
	// ActionZoomToNode lays the view root out on a virtual canvas sized so
	// the target covers the zoom ratio of the container, centred on it.
	ActionZoomToNode
	// ActionRootToNode lays out a new view root at container size.
	ActionRootToNode
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionZoomToNode:
		return "zoomToNode"
	case ActionRootToNode:
		return "rootToNode"
	default:
		return "render"
	}
}

// Request describes one layout pass.
type Request struct {
	Action Action
	// Target is the resolved node of a zoom or root action.
	Target *tree.Node
	// RootRect overrides the root size (render) and position (render, move).
	RootRect *Rect
	// Container is the layout box in canvas coordinates.
	Container Rect
	// CanvasWidth and CanvasHeight size the clip; zero means the container's
	// far edges.
	CanvasWidth  float64
	CanvasHeight float64
}

// Result summarizes a pass. Per-node layouts are read from the tree.
type Result struct {
	// Width and Height are the root size the view root was laid out at.
	Width  float64
	Height float64
	// X and Y are the tree root's offset in the container.
	X float64
	Y float64
	// AbovePath lists the ancestors of the view root, tree root first.
	AbovePath []*tree.Node
}

// Run performs a full layout pass of t with viewRoot as the top of the
// rendered subtree. A nil viewRoot means the tree root.
func Run(t *tree.Tree, viewRoot *tree.Node, req Request, opts Options) Result {
	if t == nil || t.Root == nil {
		return Result{}
	}
	if viewRoot == nil {
		viewRoot = t.Root
	}

	abovePath := AbovePath(viewRoot)
	res := Result{AbovePath: abovePath}

	if req.Action != ActionMove {
		w, h := req.Container.Width, req.Container.Height
		switch {
		case req.Action == ActionZoomToNode:
			w, h = EstimateRootSize(req.Target, viewRoot, opts.zoomRatio(), w, h)
		case req.Action == ActionRender && req.RootRect != nil:
			w, h = req.RootRect.Width, req.RootRect.Height
		}

		t.ClearLayouts()
		viewRoot.SetLayout(tree.LayoutPatch{
			X: tree.Float(0), Y: tree.Float(0),
			Width: &w, Height: &h,
			Area: tree.Float(w * h),
		}, false)

		Squarify(viewRoot, opts, false, 0)
		supplementAbovePath(abovePath, viewRoot)
	}

	vl := viewRoot.Layout()
	res.Width, res.Height = vl.Width, vl.Height

	res.X, res.Y = rootPosition(req)
	t.Root.SetLayout(tree.LayoutPatch{X: &res.X, Y: &res.Y}, true)

	cw, ch := req.CanvasWidth, req.CanvasHeight
	if cw == 0 {
		cw = req.Container.Right()
	}
	if ch == 0 {
		ch = req.Container.Bottom()
	}
	Prune(t.Root, NewRect(-req.Container.X, -req.Container.Y, cw, ch), abovePath, viewRoot)

	return res
}

// supplementAbovePath gives every ancestor of the view root the view root's
// layout, so the path renders as nested frames of the same size.
func supplementAbovePath(abovePath []*tree.Node, viewRoot *tree.Node) {
	vl := viewRoot.Layout()
	for i, n := range abovePath {
		child := viewRoot
		if i+1 < len(abovePath) {
			child = abovePath[i+1]
		}
		l := vl
		if l.DataExtent == [2]float64{} {
			l.DataExtent = [2]float64{child.Value, child.Value}
		}
		n.SetLayout(tree.PatchOf(l), false)
	}
}

// rootPosition returns the tree root offset: the explicit root rect of a
// render or move, otherwise the translation that centres the target in the
// container.
func rootPosition(req Request) (float64, float64) {
	if req.RootRect != nil && (req.Action == ActionRender || req.Action == ActionMove) {
		return req.RootRect.X, req.RootRect.Y
	}
	if req.Target == nil || (req.Action != ActionZoomToNode && req.Action != ActionRootToNode) {
		return 0, 0
	}

	l := req.Target.Layout()
	cx, cy := l.Width/2, l.Height/2
	for n := req.Target; n != nil; n = n.Parent {
		nl := n.Layout()
		cx += nl.X
		cy += nl.Y
	}
	return req.Container.Width/2 - cx, req.Container.Height/2 - cy
}

// AbsoluteRect returns n's rect in container coordinates by accumulating
// the parent-relative offsets up to the tree root.
func AbsoluteRect(n *tree.Node) Rect {
	l := n.Layout()
	r := NewRect(0, 0, l.Width, l.Height)
	for c := n; c != nil; c = c.Parent {
		cl := c.Layout()
		r.X += cl.X
		r.Y += cl.Y
	}
	return r
}
