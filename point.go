package tess

import "github.com/chewxy/math32"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the negated vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Perp returns the vector rotated 90 degrees counter-clockwise in a
// y-down coordinate system: (x, y) -> (-y, x).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math32.IsNaN(p.X) && !math32.IsNaN(p.Y) &&
		!math32.IsInf(p.X, 0) && !math32.IsInf(p.Y, 0)
}

// Min returns the component-wise minimum.
func (p Point) Min(q Point) Point {
	return Point{X: math32.Min(p.X, q.X), Y: math32.Min(p.Y, q.Y)}
}

// Max returns the component-wise maximum.
func (p Point) Max(q Point) Point {
	return Point{X: math32.Max(p.X, q.X), Y: math32.Max(p.Y, q.Y)}
}
