package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/render/treemap/styles"
	"github.com/matzehuels/treemap/pkg/scene"
)

func paintedLayout() scene.Layout {
	return scene.Layout{
		Width:  10,
		Height: 4,
		Cells: []scene.Cell{
			{ID: "root", Label: "root", Depth: 0, Width: 10, Height: 4, ColorIndex: -1},
			{ID: "a", Label: "alpha", Depth: 1, Width: 6, Height: 4},
			{ID: "b", Label: "漢", Depth: 1, X: 6, Width: 4, Height: 4, ColorIndex: 1},
			{ID: "hidden", Label: "hidden", Depth: 2, Width: 2, Height: 2, Invisible: true},
		},
	}
}

func TestCanvasPaint(t *testing.T) {
	cv := newCanvas(paintedLayout(), 10, 4)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 1},
		{5, 3, 1},
		{6, 0, 2},
		{9, 3, 2},
		{-1, 0, -1},
		{10, 0, -1},
		{0, 4, -1},
	}
	for _, tt := range tests {
		if got := cv.at(tt.x, tt.y); got != tt.want {
			t.Errorf("at(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	if got := cv.selectable(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("selectable() = %v, want [1 2]", got)
	}
}

func TestCanvasLabels(t *testing.T) {
	cv := newCanvas(paintedLayout(), 10, 4)

	if got := strings.Join(cv.glyphs[0][1:6], ""); got != "alpha" {
		t.Errorf("label of a = %q, want alpha", got)
	}
	if cv.glyphs[0][7] != "漢" || cv.glyphs[0][8] != "" {
		t.Errorf("wide rune should take two columns, got %q %q", cv.glyphs[0][7], cv.glyphs[0][8])
	}
	if cv.glyphs[1][1] != " " {
		t.Errorf("labels belong on the top row only, got %q", cv.glyphs[1][1])
	}
}

func TestCanvasLabelTruncated(t *testing.T) {
	l := scene.Layout{Width: 6, Height: 1, Cells: []scene.Cell{
		{ID: "x", Label: "configuration", Depth: 1, Width: 6, Height: 1},
	}}
	cv := newCanvas(l, 6, 1)
	if got := strings.Join(cv.glyphs[0][1:], ""); got != "con.." {
		t.Errorf("truncated label = %q, want con..", got)
	}
}

func TestCanvasRender(t *testing.T) {
	l := paintedLayout()
	cv := newCanvas(l, 10, 4)
	out := cv.render(styles.ForLayout(l), 1)
	if lines := strings.Count(out, "\n") + 1; lines != 4 {
		t.Errorf("render() has %d rows, want 4", lines)
	}
	if !strings.Contains(out, "alpha") {
		t.Error("render() should contain the cell label")
	}
}

func TestNearest(t *testing.T) {
	// 2x2 grid:
	//   0 1
	//   2 3
	cells := []scene.Cell{
		{X: 0, Y: 0, Width: 4, Height: 4},
		{X: 4, Y: 0, Width: 4, Height: 4},
		{X: 0, Y: 4, Width: 4, Height: 4},
		{X: 4, Y: 4, Width: 4, Height: 4},
	}
	all := []int{0, 1, 2, 3}

	tests := []struct {
		name   string
		from   int
		dx, dy int
		want   int
	}{
		{"right", 0, 1, 0, 1},
		{"down", 0, 0, 1, 2},
		{"left edge stays", 0, -1, 0, 0},
		{"up", 3, 0, -1, 1},
		{"left", 3, -1, 0, 2},
		{"out of range", 7, 1, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearest(cells, all, tt.from, tt.dx, tt.dy); got != tt.want {
				t.Errorf("nearest(%d, %d, %d) = %d, want %d", tt.from, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}
