// Package breadcrumb builds the navigation trail from the tree root to a
// node, sized for display as a row of chevron chips.
package breadcrumb

import (
	"github.com/matzehuels/treemap/pkg/tree"
)

// Defaults for Options.
const (
	DefaultPadding        = 8
	DefaultItemGap        = 8
	DefaultArrowLength    = 5
	DefaultEmptyItemWidth = 25
	DefaultHeight         = 22
)

// Options control item sizing.
type Options struct {
	// Measurer sizes labels; nil uses FaceMeasurer with the default face.
	Measurer Measurer
	// AvailableWidth is the room for the whole trail; zero disables
	// collapsing.
	AvailableWidth float64
	Padding        float64
	ItemGap        float64
	EmptyItemWidth float64
	// ArrowLength is how far chevron arrows and notches reach.
	ArrowLength float64
}

// DefaultOptions returns the standard chip metrics.
func DefaultOptions() Options {
	return Options{
		Padding:        DefaultPadding,
		ItemGap:        DefaultItemGap,
		EmptyItemWidth: DefaultEmptyItemWidth,
		ArrowLength:    DefaultArrowLength,
	}
}

// Item is one entry of the trail. A collapsed item has an empty label and
// the empty item width.
type Item struct {
	Node      *tree.Node
	Label     string
	Width     float64
	Collapsed bool
}

// Build returns the trail from the tree root down to target, root first.
//
// Each item is as wide as its label plus padding on both sides, but never
// narrower than EmptyItemWidth. When the trail including item gaps is wider
// than AvailableWidth, items are collapsed starting from the root end until
// it fits or every item is collapsed.
func Build(target *tree.Node, opts Options) []Item {
	if target == nil {
		return nil
	}
	m := opts.Measurer
	if m == nil {
		m = FaceMeasurer{}
	}

	path := target.PathToRoot()
	items := make([]Item, len(path))
	var total float64
	for i, n := range path {
		label := n.Label()
		w := max(m.Measure(label)+2*opts.Padding, opts.EmptyItemWidth)
		items[i] = Item{Node: n, Label: label, Width: w}
		total += w + opts.ItemGap
	}

	if opts.AvailableWidth <= 0 {
		return items
	}
	for i := range items {
		if total <= opts.AvailableWidth {
			break
		}
		total -= items[i].Width - opts.EmptyItemWidth
		items[i].Width = opts.EmptyItemWidth
		items[i].Label = ""
		items[i].Collapsed = true
	}
	return items
}

// Point is a polygon vertex.
type Point struct {
	X, Y float64
}

// Chevron returns the outline of a chip at (x, y). Every chip but the head
// has a notch cut into its back edge, and every chip but the tail has an
// arrow on its front edge; both extend arrow units past the chip.
func Chevron(x, y, w, h, arrow float64, head, tail bool) []Point {
	back := x
	if !head {
		back = x - arrow
	}
	pts := []Point{
		{back, y},
		{x + w, y},
	}
	if !tail {
		pts = append(pts, Point{x + w + arrow, y + h/2})
	}
	pts = append(pts, Point{x + w, y + h}, Point{back, y + h})
	if !head {
		pts = append(pts, Point{x, y + h/2})
	}
	return pts
}

// Chip is a positioned trail item.
type Chip struct {
	Item
	X, Y, Height float64
	Head, Tail   bool
	Points       []Point
}

// Layout positions items left to right starting at (x, y).
func Layout(items []Item, x, y, height float64, opts Options) []Chip {
	chips := make([]Chip, len(items))
	for i, it := range items {
		head, tail := i == 0, i == len(items)-1
		chips[i] = Chip{
			Item:   it,
			X:      x,
			Y:      y,
			Height: height,
			Head:   head,
			Tail:   tail,
			Points: Chevron(x, y, it.Width, height, opts.ArrowLength, head, tail),
		}
		x += it.Width + opts.ItemGap
	}
	return chips
}

// Hit returns the chip containing the point, or nil.
func Hit(chips []Chip, px, py float64) *Chip {
	for i := range chips {
		c := &chips[i]
		if px >= c.X && px <= c.X+c.Width && py >= c.Y && py <= c.Y+c.Height {
			return c
		}
	}
	return nil
}
