package breadcrumb

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the display width of a label.
type Measurer interface {
	Measure(s string) float64
}

// FaceMeasurer measures in pixels with a font face. A nil Face uses
// basicfont.Face7x13, the face the PNG sink draws labels with.
type FaceMeasurer struct {
	Face font.Face
}

// Measure returns the advance width of s.
func (m FaceMeasurer) Measure(s string) float64 {
	face := m.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64
}

// CellMeasurer measures in terminal cells, counting wide runes twice.
type CellMeasurer struct{}

// Measure returns the cell width of s.
func (CellMeasurer) Measure(s string) float64 {
	return float64(runewidth.StringWidth(s))
}
