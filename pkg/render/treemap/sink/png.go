package sink

import (
	"bytes"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb"
	"github.com/matzehuels/treemap/pkg/render/treemap/styles"
	"github.com/matzehuels/treemap/pkg/scene"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style styles.Style
	scale float64
}

// WithPNGStyle sets the colour scheme; the default is styles.ForLayout.
func WithPNGStyle(s styles.Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// RenderPNG renders l as a PNG image. Labels use basicfont.Face7x13 and are
// truncated to the cell width.
func RenderPNG(l scene.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.ForLayout(l)
	}
	if !(r.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive (got %g)", r.scale)
	}

	w, h := px(l.Width*r.scale), px(l.TotalHeight()*r.scale)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty canvas %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetColor(r.style.Background())
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	measure := breadcrumb.FaceMeasurer{Face: basicfont.Face7x13}
	for _, c := range l.Cells {
		if !c.Drawn() {
			continue
		}
		drawCellPNG(dc, r.style, measure, c)
	}
	for i, c := range l.Breadcrumb {
		drawCrumbPNG(dc, r.style, c, i == len(l.Breadcrumb)-1)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawCellPNG(dc *gg.Context, st styles.Style, m breadcrumb.Measurer, c scene.Cell) {
	dc.SetColor(st.Fill(c))
	dc.DrawRectangle(c.X, c.Y, c.Width, c.Height)
	dc.Fill()
	dc.SetColor(st.Stroke(c))
	dc.SetLineWidth(max(c.BorderWidth, 1))
	dc.DrawRectangle(c.X, c.Y, c.Width, c.Height)
	dc.Stroke()

	if !c.Leaf && c.UpperHeight == 0 {
		return
	}
	if c.Height < float64(basicfont.Face7x13.Height+4) {
		return
	}
	x, y := styles.LabelOrigin(c)
	label := fitLabel(c.Label, c.Width-2*(x-c.X), m)
	if label == "" {
		return
	}
	dc.SetColor(st.Label(c))
	dc.DrawStringAnchored(label, x, y, 0, 1)
}

// fitLabel drops runes from s until it measures at most width.
func fitLabel(s string, width float64, m breadcrumb.Measurer) string {
	if m.Measure(s) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cut := string(runes[:n]) + ".."
		if m.Measure(cut) <= width {
			return cut
		}
	}
	return ""
}

func drawCrumbPNG(dc *gg.Context, st styles.Style, c scene.Crumb, current bool) {
	if len(c.Points) == 0 {
		return
	}
	dc.SetColor(st.Crumb(current))
	dc.NewSubPath()
	dc.MoveTo(c.Points[0].X, c.Points[0].Y)
	for _, p := range c.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.Fill()
	if c.Label != "" {
		dc.SetHexColor("#ffffff")
		dc.DrawStringAnchored(c.Label, c.X+c.Width/2, c.Y+c.Height/2, 0.5, 0.35)
	}
}
