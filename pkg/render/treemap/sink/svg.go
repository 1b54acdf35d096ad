package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/treemap/pkg/render/treemap/styles"
	"github.com/matzehuels/treemap/pkg/scene"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	labels bool
}

// WithStyle sets the colour scheme; the default is styles.ForLayout.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutLabels omits cell labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG renders l as an SVG document.
func RenderSVG(l scene.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.ForLayout(l)
	}

	var buf bytes.Buffer
	w, h := px(l.Width), px(l.TotalHeight())
	canvas := svg.New(&buf)
	canvas.Start(w, h)
	canvas.Title(l.Name)
	canvas.Rect(0, 0, w, h, fill(r.style.Background()))

	for _, c := range l.Cells {
		if !c.Drawn() {
			continue
		}
		drawCellSVG(canvas, &r, c)
	}
	for i, c := range l.Breadcrumb {
		drawCrumbSVG(canvas, r.style, c, i == len(l.Breadcrumb)-1)
	}

	canvas.End()
	return buf.Bytes()
}

func drawCellSVG(canvas *svg.SVG, r *svgRenderer, c scene.Cell) {
	if c.Link != "" {
		canvas.Link(styles.EscapeXML(c.Link), styles.EscapeXML(c.Label))
		defer canvas.LinkEnd()
	}
	canvas.Gid("cell-" + c.ID)
	defer canvas.Gend()

	style := fill(r.style.Fill(c))
	if c.BorderWidth > 0 {
		style += fmt.Sprintf(";stroke:%s;stroke-width:%g", styles.Hex(r.style.Stroke(c)), c.BorderWidth)
	} else {
		style += fmt.Sprintf(";stroke:%s;stroke-width:1", styles.Hex(r.style.Stroke(c)))
	}
	canvas.Rect(px(c.X), px(c.Y), px(c.Width), px(c.Height), style)

	if !r.labels || (!c.Leaf && c.UpperHeight == 0) {
		return
	}
	size := styles.FontSize(c)
	label := styles.TruncateLabel(c, size)
	if label == "" {
		return
	}
	x, y := styles.LabelOrigin(c)
	canvas.Text(px(x), px(y+size), label,
		fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:sans-serif", styles.Hex(r.style.Label(c)), size))
}

func drawCrumbSVG(canvas *svg.SVG, st styles.Style, c scene.Crumb, current bool) {
	xs := make([]int, len(c.Points))
	ys := make([]int, len(c.Points))
	for i, p := range c.Points {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	canvas.Polygon(xs, ys, fill(st.Crumb(current)))
	if c.Label != "" {
		canvas.Text(px(c.X+c.Width/2), px(c.Y+c.Height/2+4), c.Label,
			"fill:#fff;font-size:12px;font-family:sans-serif;text-anchor:middle")
	}
}

func fill(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("fill:#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func px(v float64) int { return int(math.Round(v)) }
