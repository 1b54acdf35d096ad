package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/treemap/pkg/tree"
)

// Squarify partitions the node's current layout rect among its view
// children and recurses into them.
//
// The node's Width and Height must already be set. The rect is shrunk by
// the border (and upper label band) less half the gap, children are sorted
// and filtered, then packed row by row along the shorter side of the
// remaining space, keeping the worst aspect ratio in each row as low as
// possible. hideChildren suppresses the children of every descendant.
func Squarify(n *tree.Node, opts Options, hideChildren bool, depth int) {
	if n.IsRemoved() {
		return
	}

	l := n.Layout()
	style := n.Style()

	borderWidth := style.BorderWidth
	halfGap := style.GapWidth / 2
	labelHeight := style.HeaderHeight()
	upperHeight := math.Max(borderWidth, labelHeight)
	offset := math.Max(borderWidth-halfGap, 0)
	offsetUpper := math.Max(upperHeight-halfGap, 0)

	n.SetLayout(tree.LayoutPatch{
		BorderWidth:      &borderWidth,
		UpperHeight:      &upperHeight,
		UpperLabelHeight: &labelHeight,
	}, true)

	width := math.Max(l.Width-2*offset, 0)
	height := math.Max(l.Height-offset-offsetUpper, 0)
	totalArea := width * height

	children := initChildren(n, style, totalArea, opts, hideChildren, depth)
	if len(children) == 0 {
		return
	}

	rect := Rect{X: offset, Y: offsetUpper, Width: width, Height: height}
	fixed := math.Min(width, height)
	ratio := opts.squareRatio()
	best := math.Inf(1)
	var r row

	for i := 0; i < len(children); {
		r.push(children[i])
		score := r.worst(fixed, ratio)

		if score <= best || r.len() == 1 {
			i++
			best = score
			continue
		}

		r.pop()
		r.position(fixed, &rect, halfGap, false)
		fixed = math.Min(rect.Width, rect.Height)
		r.reset()
		best = math.Inf(1)
	}

	if r.len() > 0 {
		r.position(fixed, &rect, halfGap, true)
	}

	if !hideChildren && style.ChildrenVisibleMin != nil && totalArea < *style.ChildrenVisibleMin {
		hideChildren = true
	}

	for _, c := range children {
		Squarify(c, opts, hideChildren, depth+1)
	}
}

// initChildren assigns each surviving child its area share and records the
// result as the node's view children.
func initChildren(n *tree.Node, style tree.Style, totalArea float64, opts Options, hideChildren bool, depth int) []*tree.Node {
	overLeafDepth := opts.overLeafDepth(depth)

	if hideChildren && !overLeafDepth {
		if len(n.Children) > 0 {
			n.SetLayout(tree.LayoutPatch{State: tree.State(tree.Collapsed)}, true)
		}
		n.ViewChildren = nil
		return nil
	}

	children := make([]*tree.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.IsRemoved() {
			children = append(children, c)
		}
	}
	sortChildren(children, opts.Sort)

	sum, extent := statistic(children)
	if sum == 0 {
		n.ViewChildren = nil
		return nil
	}

	sum, children = filterByThreshold(style.VisibleMin, totalArea, sum, opts.Sort, children)
	if sum == 0 {
		n.ViewChildren = nil
		return nil
	}

	for _, c := range children {
		area := value(c) / sum * totalArea
		c.SetLayout(tree.LayoutPatch{Area: &area}, false)
	}

	if overLeafDepth {
		if len(children) > 0 {
			n.SetLayout(tree.LayoutPatch{State: tree.State(tree.ForcedLeaf)}, true)
		}
		children = nil
	}

	n.ViewChildren = children
	n.SetLayout(tree.LayoutPatch{DataExtent: &extent}, true)
	return children
}

// value returns the node value with NaN and negatives treated as zero.
func value(n *tree.Node) float64 {
	if math.IsNaN(n.Value) || n.Value < 0 {
		return 0
	}
	return n.Value
}

// sortChildren orders by value with DataIndex as tiebreak, so equal values
// keep a deterministic order.
func sortChildren(children []*tree.Node, order SortOrder) {
	switch order {
	case SortAsc:
		slices.SortStableFunc(children, func(a, b *tree.Node) int {
			if c := cmp.Compare(value(a), value(b)); c != 0 {
				return c
			}
			return cmp.Compare(a.DataIndex, b.DataIndex)
		})
	case SortDesc:
		slices.SortStableFunc(children, func(a, b *tree.Node) int {
			if c := cmp.Compare(value(b), value(a)); c != 0 {
				return c
			}
			return cmp.Compare(b.DataIndex, a.DataIndex)
		})
	}
}

// statistic returns the value sum and the [min, max] value extent.
func statistic(children []*tree.Node) (float64, [2]float64) {
	var sum float64
	extent := [2]float64{math.Inf(1), math.Inf(-1)}
	for _, c := range children {
		v := value(c)
		sum += v
		extent[0] = math.Min(extent[0], v)
		extent[1] = math.Max(extent[1], v)
	}
	if len(children) == 0 {
		extent = [2]float64{math.NaN(), math.NaN()}
	}
	return sum, extent
}

// filterByThreshold drops children whose share of totalArea is below
// visibleMin, walking from the smallest value up and renormalizing the sum
// after each drop. Unsorted children are never filtered.
func filterByThreshold(visibleMin, totalArea, sum float64, order SortOrder, children []*tree.Node) (float64, []*tree.Node) {
	if order == SortNone {
		return sum, children
	}

	n := len(children)
	deletePoint := n
	for i := n - 1; i >= 0; i-- {
		idx := i
		if order == SortAsc {
			idx = n - i - 1
		}
		v := value(children[idx])
		if v/sum*totalArea < visibleMin {
			deletePoint = i
			sum -= v
		}
	}

	if order == SortAsc {
		return sum, children[n-deletePoint:]
	}
	return sum, children[:deletePoint]
}

// row is the strip of children currently being packed.
type row struct {
	nodes []*tree.Node
	areas []float64
	area  float64
}

func (r *row) len() int { return len(r.nodes) }

func (r *row) push(n *tree.Node) {
	a := n.Layout().Area
	r.nodes = append(r.nodes, n)
	r.areas = append(r.areas, a)
	r.area += a
}

func (r *row) pop() {
	last := len(r.nodes) - 1
	r.area -= r.areas[last]
	r.nodes = r.nodes[:last]
	r.areas = r.areas[:last]
}

func (r *row) reset() {
	r.nodes = r.nodes[:0]
	r.areas = r.areas[:0]
	r.area = 0
}

// worst scores the row by its most distorted member; lower is squarer.
func (r *row) worst(fixed, ratio float64) float64 {
	areaMax := 0.0
	areaMin := math.Inf(1)
	for _, a := range r.areas {
		if a != 0 {
			areaMin = math.Min(areaMin, a)
			areaMax = math.Max(areaMax, a)
		}
	}

	squareArea := r.area * r.area
	if squareArea == 0 {
		return math.Inf(1)
	}
	f := fixed * fixed * ratio
	return math.Max(f*areaMax/squareArea, squareArea/(f*areaMin))
}

// position lays the row out as a band across rect and shrinks rect by the
// band. When fixed equals the rect width the band is horizontal and members
// advance left to right; otherwise it is vertical and they advance top to
// bottom. flush stretches the band over the remaining space.
func (r *row) position(fixed float64, rect *Rect, halfGap float64, flush bool) {
	horizontal := fixed == rect.Width

	start, span := rect.Y, rect.Height
	crossStart, crossSpan := rect.X, rect.Width
	if horizontal {
		start, span = rect.X, rect.Width
		crossStart, crossSpan = rect.Y, rect.Height
	}

	last := start
	other := 0.0
	if fixed != 0 {
		other = r.area / fixed
	}
	if flush || other > crossSpan {
		other = crossSpan
	}

	for i, n := range r.nodes {
		step := 0.0
		if other != 0 {
			step = r.areas[i] / other
		}

		across := math.Max(other-2*halfGap, 0)
		remain := start + span - last
		mod := step
		if i == len(r.nodes)-1 || remain < step {
			mod = remain
		}
		along := math.Max(mod-2*halfGap, 0)

		crossPos := crossStart + math.Min(halfGap, across/2)
		alongPos := last + math.Min(halfGap, along/2)

		var p tree.LayoutPatch
		if horizontal {
			p = tree.LayoutPatch{X: tree.Float(alongPos), Y: tree.Float(crossPos), Width: tree.Float(along), Height: tree.Float(across)}
		} else {
			p = tree.LayoutPatch{X: tree.Float(crossPos), Y: tree.Float(alongPos), Width: tree.Float(across), Height: tree.Float(along)}
		}
		n.SetLayout(p, true)

		last += mod
	}

	if horizontal {
		rect.Y += other
		rect.Height -= other
	} else {
		rect.X += other
		rect.Width -= other
	}
}
