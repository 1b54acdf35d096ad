package styles

import (
	"bytes"
	"encoding/xml"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treemap/pkg/scene"
)

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.6
	fontSizeMin     = 8.0
	fontSizeMax     = 14.0
	labelPadding    = 4.0
)

// FontSize returns the label size that fits c, or zero when the cell is
// too small for the minimum size.
func FontSize(c scene.Cell) float64 {
	h := c.Height
	if c.UpperHeight > 0 {
		h = c.UpperHeight
	}
	size := min(fontSizeMax, h*fontHeightRatio)
	if size < fontSizeMin || c.Width < 2*labelPadding+fontSizeMin*fontCharWidth*2 {
		return 0
	}
	return size
}

// TruncateLabel shortens the label of c to the cells that fit its width at
// fontSize, marking the cut with "..".
func TruncateLabel(c scene.Cell, fontSize float64) string {
	if fontSize <= 0 {
		return ""
	}
	maxCells := int((c.Width - 2*labelPadding) / (fontSize * fontCharWidth))
	return Truncate(c.Label, maxCells)
}

// Truncate shortens s to at most width display cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 2 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "..")
}

// LabelOrigin returns the top-left of the label area of c.
func LabelOrigin(c scene.Cell) (float64, float64) {
	return c.X + c.BorderWidth + labelPadding, c.Y + c.BorderWidth + labelPadding
}

// EscapeXML escapes s for use in XML attributes and text.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
