// Package styles defines the colours and label metrics treemap sinks draw
// with.
package styles

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/scene"
)

// Style defines the visual appearance of a rendered treemap.
type Style interface {
	// Background is the canvas colour.
	Background() color.RGBA
	// Fill is the cell body colour.
	Fill(c scene.Cell) color.RGBA
	// Stroke is the cell border colour.
	Stroke(c scene.Cell) color.RGBA
	// Label is the cell text colour.
	Label(c scene.Cell) color.RGBA
	// Crumb is the fill of a breadcrumb chip; the tail chip is current.
	Crumb(current bool) color.RGBA
}

// DefaultPalette colours the top-level branches in data order.
var DefaultPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// Simple fills each branch with one palette colour, lightening with depth.
type Simple struct {
	palette []color.RGBA
	border  color.RGBA
}

// NewSimple returns a Simple style over palette. An empty palette uses
// DefaultPalette.
func NewSimple(palette []string) (*Simple, error) {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	s := &Simple{border: color.RGBA{0xff, 0xff, 0xff, 0xff}}
	for _, p := range palette {
		c, err := ParseHex(p)
		if err != nil {
			return nil, err
		}
		s.palette = append(s.palette, c)
	}
	return s, nil
}

// ForLayout returns a Simple style over the layout's palette, falling back
// to DefaultPalette when it holds an invalid colour.
func ForLayout(l scene.Layout) *Simple {
	if s, err := NewSimple(l.Colors); err == nil {
		return s
	}
	s, _ := NewSimple(nil)
	return s
}

func (s *Simple) Background() color.RGBA { return color.RGBA{0xff, 0xff, 0xff, 0xff} }

func (s *Simple) Fill(c scene.Cell) color.RGBA {
	if c.Color != "" {
		if col, err := ParseHex(c.Color); err == nil {
			return col
		}
	}
	if c.ColorIndex < 0 {
		return color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	}
	base := s.palette[c.ColorIndex%len(s.palette)]
	return Lighten(base, 0.12*float64(max(c.Depth-1, 0)))
}

func (s *Simple) Stroke(c scene.Cell) color.RGBA {
	if c.BorderColor != "" {
		if col, err := ParseHex(c.BorderColor); err == nil {
			return col
		}
	}
	return s.border
}

func (s *Simple) Label(c scene.Cell) color.RGBA {
	f := s.Fill(c)
	if luminance(f) > 0.6 {
		return color.RGBA{0x33, 0x33, 0x33, 0xff}
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

func (s *Simple) Crumb(current bool) color.RGBA {
	if current {
		return color.RGBA{0x5b, 0x6a, 0x83, 0xff}
	}
	return color.RGBA{0x87, 0x94, 0xa9, 0xff}
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color: %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid color: %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten mixes c towards white by amount in [0, 1].
func Lighten(c color.RGBA, amount float64) color.RGBA {
	amount = min(max(amount, 0), 1)
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*amount + 0.5) }
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

func luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
