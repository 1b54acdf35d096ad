package layout

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns the area, zero for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the centre point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// ContainsRect reports whether other lies fully inside r, within eps.
func (r Rect) ContainsRect(other Rect, eps float64) bool {
	return other.X >= r.X-eps && other.Y >= r.Y-eps &&
		other.Right() <= r.Right()+eps && other.Bottom() <= r.Bottom()+eps
}

// Intersects reports whether the rectangles overlap. Touching edges count
// as overlapping, so zero-sized cells on the clip border stay visible.
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() < other.X || other.Right() < r.X ||
		r.Bottom() < other.Y || other.Bottom() < r.Y)
}
