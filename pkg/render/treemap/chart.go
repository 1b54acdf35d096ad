package treemap

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb"
	"github.com/matzehuels/treemap/pkg/render/treemap/drill"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Result describes the outcome of one action.
type Result struct {
	Action    layout.Action
	Direction drill.Direction
	// Width and Height are the size the view root was laid out at.
	Width  float64
	Height float64
	// X and Y are the tree root's offset in the container.
	X        float64
	Y        float64
	ViewRoot *tree.Node
	ViewPath []*tree.Node
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger actions are reported to at debug level.
func WithLogger(l *log.Logger) Option { return func(c *Chart) { c.logger = l } }

// Chart is an interactive treemap. It is not safe for concurrent use.
type Chart struct {
	series config.Series
	opts   layout.Options
	drill  *drill.Manager
	logger *log.Logger

	colorIndex map[string]int
	rendered   bool
}

// New returns a chart of t with the series options s. The series style is
// installed on t.
func New(t *tree.Tree, s config.Series, opts ...Option) *Chart {
	c := &Chart{
		series:     s,
		opts:       s.LayoutOptions(),
		colorIndex: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	s.Apply(t)
	c.drill = drill.New(t)
	c.indexColors(t)
	return c
}

// Tree returns the charted tree.
func (c *Chart) Tree() *tree.Tree { return c.drill.Tree() }

// Series returns the series options.
func (c *Chart) Series() config.Series { return c.series }

// ViewRoot returns the node currently shown as the top of the chart.
func (c *Chart) ViewRoot() *tree.Node { return c.drill.ViewRoot() }

// ViewPath returns the nodes from the tree root to the view root.
func (c *Chart) ViewPath() []*tree.Node { return c.drill.ViewPath() }

// Rendered reports whether a layout pass has run since the last data change.
func (c *Chart) Rendered() bool { return c.rendered }

// SetTree replaces the data. The view root is kept when t has a node with
// the same id and reset to the new root otherwise. Color indexes of known
// ids survive.
func (c *Chart) SetTree(t *tree.Tree) {
	prev := nodeID(c.ViewRoot())
	c.series.Apply(t)
	c.drill.SetTree(t)
	if t != nil && prev != "" {
		c.drill.ResetViewRoot(t.NodeByID(prev))
	}
	c.indexColors(t)
	c.rendered = false
	c.logger.Debug("tree replaced", "nodes", treeLen(t), "viewRoot", nodeID(c.ViewRoot()))
}

// Render lays out the chart from the current state. A non-nil rootRect sets
// the size and position of the root.
func (c *Chart) Render(rootRect *layout.Rect) Result {
	return c.run(layout.Request{Action: layout.ActionRender, RootRect: rootRect}, drill.None)
}

// Move pans the root to rect's position, keeping the current layout.
func (c *Chart) Move(rect layout.Rect) Result {
	if !c.rendered {
		return c.Render(&rect)
	}
	return c.run(layout.Request{Action: layout.ActionMove, RootRect: &rect}, drill.None)
}

// ZoomToNode enlarges the current view so the node ref covers the zoom ratio
// of the container and centres it. The view root does not change. ref is a
// *tree.Node or a node id; an unknown ref is ignored and ok is false.
func (c *Chart) ZoomToNode(ref any) (res Result, ok bool) {
	target := c.drill.Resolve(ref)
	if target == nil {
		c.logger.Debug("zoomToNode ignored", "ref", ref)
		return Result{}, false
	}
	c.logger.Debug("zoomToNode", "target", target.ID)
	return c.run(layout.Request{Action: layout.ActionZoomToNode, Target: target}, drill.None), true
}

// RootToNode makes the node ref the view root and lays it out at container
// size. ref is resolved like ZoomToNode; an unknown ref is ignored.
func (c *Chart) RootToNode(ref any) (res Result, ok bool) {
	target := c.drill.Resolve(ref)
	if target == nil {
		c.logger.Debug("rootToNode ignored", "ref", ref)
		return Result{}, false
	}
	dir := c.drill.Direction(target)
	c.drill.ResetViewRoot(target)
	c.logger.Debug("rootToNode", "target", target.ID, "direction", dir)
	return c.run(layout.Request{Action: layout.ActionRootToNode, Target: target}, dir), true
}

func (c *Chart) run(req layout.Request, dir drill.Direction) Result {
	t := c.Tree()
	if t == nil || t.Root == nil {
		return Result{Action: req.Action, Direction: dir}
	}
	req.Container = c.series.Container()

	r := layout.Run(t, c.ViewRoot(), req, c.opts)
	c.rendered = true
	return Result{
		Action:    req.Action,
		Direction: dir,
		Width:     r.Width,
		Height:    r.Height,
		X:         r.X,
		Y:         r.Y,
		ViewRoot:  c.ViewRoot(),
		ViewPath:  c.ViewPath(),
	}
}

// NodeAt returns the deepest rendered node of the view whose rect contains
// the container point (x, y), or nil.
func (c *Chart) NodeAt(x, y float64) *tree.Node {
	vr := c.ViewRoot()
	if vr == nil || !c.rendered {
		return nil
	}
	var found *tree.Node
	var visit func(n *tree.Node)
	visit = func(n *tree.Node) {
		l := n.Layout()
		if l.IsInView && !l.Invisible {
			if !layout.AbsoluteRect(n).Contains(x, y) {
				return
			}
			found = n
		}
		for _, ch := range n.ViewChildren {
			visit(ch)
		}
	}
	visit(vr)
	return found
}

// ColorIndex returns the palette index of id. Indexes are handed out in the
// order ids are first seen and never change for the life of the chart.
func (c *Chart) ColorIndex(id string) int {
	idx, ok := c.colorIndex[id]
	if !ok {
		idx = len(c.colorIndex)
		c.colorIndex[id] = idx
	}
	return idx
}

// indexColors registers the top-level branches of t, which own the palette.
func (c *Chart) indexColors(t *tree.Tree) {
	if t == nil || t.Root == nil {
		return
	}
	for _, n := range t.Root.Children {
		c.ColorIndex(n.ID)
	}
}

// Click is the outcome of a click on the chart.
type Click struct {
	// Node is the clicked node; nil when the click missed.
	Node *tree.Node
	// Acted reports whether a zoom or root action ran; Result holds it.
	Acted  bool
	Result Result
	// Link and LinkTarget are set when the node's link should be opened.
	Link       string
	LinkTarget string
}

// Click applies the series nodeClick policy at the container point (x, y).
// A forced leaf always drills into itself; other nodes zoom or report their
// link depending on the policy.
func (c *Chart) Click(x, y float64) Click {
	if c.series.NodeClick == config.NodeClickNone || c.series.NodeClick == "" {
		return Click{}
	}
	n := c.NodeAt(x, y)
	if n == nil {
		return Click{}
	}
	out := Click{Node: n}
	switch {
	case n.Layout().IsLeafRoot():
		out.Result, out.Acted = c.RootToNode(n)
	case c.series.NodeClick == config.NodeClickZoom:
		out.Result, out.Acted = c.ZoomToNode(n)
	case c.series.NodeClick == config.NodeClickLink && n.Link != "":
		out.Link = n.Link
		out.LinkTarget = n.Target
		if out.LinkTarget == "" {
			out.LinkTarget = "blank"
		}
	}
	return out
}

// BreadcrumbTarget returns the node the breadcrumb trail ends at: the view
// root when a leaf depth is set, otherwise the node at the container centre,
// falling back to the tree root.
func (c *Chart) BreadcrumbTarget() *tree.Node {
	if c.opts.LeafDepth != nil {
		return c.ViewRoot()
	}
	cx, cy := c.series.Container().Center()
	if n := c.NodeAt(cx, cy); n != nil {
		return n
	}
	if t := c.Tree(); t != nil {
		return t.Root
	}
	return nil
}

// Breadcrumb returns the trail to BreadcrumbTarget sized with m.
func (c *Chart) Breadcrumb(m breadcrumb.Measurer) []breadcrumb.Item {
	return breadcrumb.Build(c.BreadcrumbTarget(), c.series.BreadcrumbOptions(m))
}

// Navigate handles a click on the breadcrumb item for n: ancestors of the
// view root become the view root, anything else is zoomed to.
func (c *Chart) Navigate(n *tree.Node) (Result, bool) {
	if c.drill.AboveViewRoot(n) {
		return c.RootToNode(n)
	}
	return c.ZoomToNode(n)
}

func treeLen(t *tree.Tree) int {
	if t == nil {
		return 0
	}
	return t.Len()
}

func nodeID(n *tree.Node) string {
	if n == nil {
		return ""
	}
	return n.ID
}
