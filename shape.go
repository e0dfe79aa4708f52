package tess

import "fmt"

// Shape is the geometry of one draw. It is a closed sum type: the only
// implementations are EmptyShape, LineShape, RectShape, RRectShape and
// PathShape.
type Shape interface {
	// Bounds returns the shape's local-space bounds.
	Bounds() Rect

	isShape()
}

// EmptyShape draws nothing.
type EmptyShape struct{}

// LineShape is a single segment. It has no fill area but strokes normally.
type LineShape struct {
	P0, P1 Point
}

// RectShape is an axis-aligned rectangle.
type RectShape struct {
	Rect Rect
}

// RRectShape is a rectangle with elliptical corners of radii RX, RY.
type RRectShape struct {
	Rect   Rect
	RX, RY float32
}

// PathShape is arbitrary path geometry.
type PathShape struct {
	Path *Path
}

func (EmptyShape) isShape() {}
func (LineShape) isShape()  {}
func (RectShape) isShape()  {}
func (RRectShape) isShape() {}
func (PathShape) isShape()  {}

// Bounds implements Shape.
func (EmptyShape) Bounds() Rect { return Rect{} }

// Bounds implements Shape.
func (s LineShape) Bounds() Rect { return BoundsOf([]Point{s.P0, s.P1}) }

// Bounds implements Shape.
func (s RectShape) Bounds() Rect { return s.Rect }

// Bounds implements Shape.
func (s RRectShape) Bounds() Rect { return s.Rect }

// Bounds implements Shape.
func (s PathShape) Bounds() Rect {
	if s.Path == nil {
		return Rect{}
	}
	return s.Path.Bounds()
}

// AsPath converts any shape to path form. EmptyShape and a PathShape with a
// nil path yield an empty path.
func AsPath(s Shape) *Path {
	p := NewPath()
	switch s := s.(type) {
	case EmptyShape:
	case LineShape:
		p.MoveTo(s.P0.X, s.P0.Y)
		p.LineTo(s.P1.X, s.P1.Y)
	case RectShape:
		p.AddRect(s.Rect)
	case RRectShape:
		p.AddRRect(s.Rect, s.RX, s.RY)
	case PathShape:
		if s.Path != nil {
			return s.Path
		}
	default:
		panic(fmt.Sprintf("tess: unknown shape %T", s))
	}
	return p
}

// IsFillable reports whether a fill of s can cover any pixels.
func IsFillable(s Shape) bool {
	switch s := s.(type) {
	case EmptyShape, LineShape:
		return false
	case RectShape:
		return !s.Rect.IsEmpty()
	case RRectShape:
		return !s.Rect.IsEmpty()
	case PathShape:
		return s.Path != nil && !s.Path.IsEmpty()
	default:
		panic(fmt.Sprintf("tess: unknown shape %T", s))
	}
}
