package scene

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/tree"
)

// BreadcrumbMargin separates the container from the breadcrumb row.
const BreadcrumbMargin = 8

// =============================================================================
// Layout - Rendered Chart State
// =============================================================================

// Layout is one rendered chart state.
type Layout struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Action    string   `json:"action"`
	Direction string   `json:"direction"`
	ViewRoot  string   `json:"view_root"`
	ViewPath  []string `json:"view_path,omitempty"`

	// Root placement in the container.
	RootX      float64 `json:"root_x"`
	RootY      float64 `json:"root_y"`
	RootWidth  float64 `json:"root_width"`
	RootHeight float64 `json:"root_height"`

	Colors     []string `json:"colors,omitempty"`
	Cells      []Cell   `json:"cells"`
	Breadcrumb []Crumb  `json:"breadcrumb,omitempty"`
}

// TotalHeight is the height of the container plus the breadcrumb row.
func (l Layout) TotalHeight() float64 {
	if len(l.Breadcrumb) == 0 {
		return l.Height
	}
	c := l.Breadcrumb[0]
	return max(l.Height, c.Y+c.Height+BreadcrumbMargin)
}

// =============================================================================
// Cell - Positioned Node
// =============================================================================

// Cell is a node of the drill scope with its absolute rectangle.
type Cell struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Depth  int     `json:"depth"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	BorderWidth float64 `json:"border_width,omitempty"`
	UpperHeight float64 `json:"upper_height,omitempty"`

	// State is "expanded", "collapsed" or "forced-leaf".
	State         string `json:"state"`
	Leaf          bool   `json:"leaf,omitempty"`
	Invisible     bool   `json:"invisible,omitempty"`
	AboveViewRoot bool   `json:"above_view_root,omitempty"`

	// ColorIndex picks from the palette; -1 for the tree root.
	ColorIndex  int    `json:"color_index"`
	Color       string `json:"color,omitempty"`
	BorderColor string `json:"border_color,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Drawn reports whether sinks paint the cell.
func (c Cell) Drawn() bool {
	return !c.Invisible && !c.AboveViewRoot && c.Width > 0 && c.Height > 0
}

// =============================================================================
// Crumb - Breadcrumb Chip
// =============================================================================

// Point is a polygon vertex.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Crumb is a positioned breadcrumb chip.
type Crumb struct {
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Collapsed bool    `json:"collapsed,omitempty"`
	Points    []Point `json:"points"`
}

// =============================================================================
// Construction
// =============================================================================

// FromChart snapshots the chart after the action that produced res. Labels
// of the breadcrumb are measured with m; nil uses the PNG font face.
func FromChart(c *treemap.Chart, res treemap.Result, m breadcrumb.Measurer) Layout {
	s := c.Series()
	l := Layout{
		Name:       s.Name,
		Width:      s.Width,
		Height:     s.Height,
		Action:     res.Action.String(),
		Direction:  res.Direction.String(),
		RootX:      res.X,
		RootY:      res.Y,
		RootWidth:  res.Width,
		RootHeight: res.Height,
		Colors:     s.Colors,
		Cells:      []Cell{},
	}
	if res.ViewRoot != nil {
		l.ViewRoot = res.ViewRoot.ID
	}
	for _, n := range res.ViewPath {
		l.ViewPath = append(l.ViewPath, n.ID)
	}

	t := c.Tree()
	if t == nil {
		return l
	}
	for _, n := range t.Nodes() {
		nl := n.Layout()
		if !nl.IsInView {
			continue
		}
		l.Cells = append(l.Cells, cellOf(c, n, nl))
	}

	if s.Breadcrumb.Show {
		opts := s.BreadcrumbOptions(m)
		chips := breadcrumb.Layout(c.Breadcrumb(m), 0, s.Height+BreadcrumbMargin, s.Breadcrumb.Height, opts)
		for _, ch := range chips {
			cr := Crumb{
				ID:        ch.Node.ID,
				Label:     ch.Label,
				X:         ch.X,
				Y:         ch.Y,
				Width:     ch.Width,
				Height:    ch.Height,
				Collapsed: ch.Collapsed,
			}
			for _, p := range ch.Points {
				cr.Points = append(cr.Points, Point{X: p.X, Y: p.Y})
			}
			l.Breadcrumb = append(l.Breadcrumb, cr)
		}
	}
	return l
}

func cellOf(c *treemap.Chart, n *tree.Node, nl tree.Layout) Cell {
	r := layout.AbsoluteRect(n)
	style := n.Style()
	cell := Cell{
		ID:            n.ID,
		Label:         n.Label(),
		Value:         n.Value,
		Depth:         n.Depth,
		X:             r.X,
		Y:             r.Y,
		Width:         r.Width,
		Height:        r.Height,
		BorderWidth:   nl.BorderWidth,
		UpperHeight:   nl.UpperHeight,
		State:         nl.State.String(),
		Leaf:          len(n.ViewChildren) == 0,
		Invisible:     nl.Invisible,
		AboveViewRoot: nl.IsAboveViewRoot,
		ColorIndex:    -1,
		Color:         style.Color,
		BorderColor:   style.BorderColor,
		Link:          n.Link,
	}
	if branch := topBranch(n); branch != nil {
		cell.ColorIndex = c.ColorIndex(branch.ID)
	}
	return cell
}

// topBranch returns the depth-1 ancestor of n, or n itself at depth 1.
func topBranch(n *tree.Node) *tree.Node {
	for ; n != nil; n = n.Parent {
		if n.Depth == 1 {
			return n
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidData, err, "unmarshal layout")
	}
	if !(l.Width > 0) || !(l.Height > 0) {
		return Layout{}, errors.New(errors.ErrCodeInvalidData, "layout must have a positive size")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
