package tess

// Rect is an axis-aligned rectangle. Left <= Right and Top <= Bottom for a
// sorted rectangle; the zero value is an empty rectangle at the origin.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// RectXYWH creates a rectangle from its origin and size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right - Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) * 0.5, Y: (r.Top + r.Bottom) * 0.5}
}

// Outset grows the rectangle by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float32) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// BoundsOf returns the smallest rectangle containing all points.
// It returns the zero Rect for an empty slice.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return Rect{Left: lo.X, Top: lo.Y, Right: hi.X, Bottom: hi.Y}
}

// TransformRect returns the bounds of r's four corners mapped by m.
func TransformRect(m Matrix, r Rect) Rect {
	corners := [4]Point{
		{r.Left, r.Top}, {r.Right, r.Top},
		{r.Right, r.Bottom}, {r.Left, r.Bottom},
	}
	m.TransformPoints(corners[:], corners[:])
	return BoundsOf(corners[:])
}

