package model

// Point is a 2D coordinate. Whether it is in world or screen space depends
// on context; the camera converts between the two.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle. Edges on the
// left/top are inclusive, right/bottom exclusive, so adjacent rectangles
// never both claim a boundary point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering both r and o. A zero-size
// rectangle acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.W, o.X+o.W)
	y1 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }
