package cli

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treemap/pkg/render/treemap/styles"
	"github.com/matzehuels/treemap/pkg/scene"
)

// canvas rasterises a layout whose units are terminal cells. Every grid
// position records the deepest drawn cell covering it.
type canvas struct {
	w, h   int
	owner  [][]int    // index into cells, -1 for background
	glyphs [][]string // label text, "" for the trailing half of wide runes
	cells  []scene.Cell
}

func newCanvas(l scene.Layout, w, h int) *canvas {
	cv := &canvas{w: w, h: h, cells: l.Cells}
	cv.owner = make([][]int, h)
	cv.glyphs = make([][]string, h)
	for y := range h {
		cv.owner[y] = slices.Repeat([]int{-1}, w)
		cv.glyphs[y] = slices.Repeat([]string{" "}, w)
	}

	order := make([]int, 0, len(l.Cells))
	for i, c := range l.Cells {
		if c.Drawn() {
			order = append(order, i)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int { return l.Cells[a].Depth - l.Cells[b].Depth })

	for _, i := range order {
		x0, y0, x1, y1 := cv.bounds(l.Cells[i])
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cv.owner[y][x] = i
				cv.glyphs[y][x] = " "
			}
		}
		cv.label(l.Cells[i], x0, y0, x1, y1)
	}
	return cv
}

// bounds returns the cell rectangle snapped to the grid and clipped.
func (cv *canvas) bounds(c scene.Cell) (x0, y0, x1, y1 int) {
	x0 = clampInt(int(math.Round(c.X)), 0, cv.w)
	y0 = clampInt(int(math.Round(c.Y)), 0, cv.h)
	x1 = clampInt(int(math.Round(c.X+c.Width)), 0, cv.w)
	y1 = clampInt(int(math.Round(c.Y+c.Height)), 0, cv.h)
	return
}

func (cv *canvas) label(c scene.Cell, x0, y0, x1, y1 int) {
	if y1 <= y0 || x1-x0 < 3 {
		return
	}
	text := styles.Truncate(c.Label, x1-x0-1)
	x := x0 + 1
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 || x+rw > x1 {
			break
		}
		cv.glyphs[y0][x] = string(r)
		if rw == 2 {
			cv.glyphs[y0][x+1] = ""
		}
		x += rw
	}
}

// at returns the index of the cell at (x, y), or -1.
func (cv *canvas) at(x, y int) int {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return -1
	}
	return cv.owner[y][x]
}

// selectable returns the cells that own at least one grid position, in
// layout order.
func (cv *canvas) selectable() []int {
	seen := make(map[int]bool)
	for _, row := range cv.owner {
		for _, i := range row {
			if i >= 0 {
				seen[i] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range cv.cells {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out
}

// render draws the grid with st, highlighting the cell at index selected.
func (cv *canvas) render(st styles.Style, selected int) string {
	var b strings.Builder
	for y := range cv.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cv.w; {
			i := cv.owner[y][x]
			end := x
			var run strings.Builder
			for end < cv.w && cv.owner[y][end] == i {
				run.WriteString(cv.glyphs[y][end])
				end++
			}
			b.WriteString(cv.style(st, i, i == selected).Render(run.String()))
			x = end
		}
	}
	return b.String()
}

func (cv *canvas) style(st styles.Style, i int, selected bool) lipgloss.Style {
	if i < 0 {
		return lipgloss.NewStyle().Background(lipgloss.Color(styles.Hex(st.Background())))
	}
	c := cv.cells[i]
	fill := st.Fill(c)
	if selected {
		fill = styles.Lighten(fill, 0.35)
	}
	s := lipgloss.NewStyle().
		Background(lipgloss.Color(styles.Hex(fill))).
		Foreground(lipgloss.Color(styles.Hex(st.Label(c))))
	if selected {
		s = s.Bold(true)
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// nearest returns the candidate whose centre lies in direction (dx, dy)
// from the cell at index from, preferring small offsets across the
// direction. It returns from when nothing lies that way.
func nearest(cells []scene.Cell, candidates []int, from, dx, dy int) int {
	if from < 0 || from >= len(cells) {
		return from
	}
	fx, fy := centre(cells[from])
	best, bestScore := from, math.Inf(1)
	for _, i := range candidates {
		if i == from {
			continue
		}
		cx, cy := centre(cells[i])
		along := (cx-fx)*float64(dx) + (cy-fy)*float64(dy)
		if along <= 0 {
			continue
		}
		across := math.Abs((cx-fx)*float64(dy)) + math.Abs((cy-fy)*float64(dx))
		if score := along + 2*across; score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func centre(c scene.Cell) (float64, float64) {
	return c.X + c.Width/2, c.Y + c.Height/2
}
