package tess

import (
	"fmt"
	"iter"

	"github.com/chewxy/math32"
)

// Verb identifies one command in a path's verb stream.
type Verb uint8

const (
	// VerbMove starts a new contour.
	VerbMove Verb = iota
	// VerbLine draws a straight segment.
	VerbLine
	// VerbQuad draws a quadratic Bezier curve.
	VerbQuad
	// VerbConic draws a rational quadratic Bezier curve with a weight.
	VerbConic
	// VerbCubic draws a cubic Bezier curve.
	VerbCubic
	// VerbClose closes the current contour.
	VerbClose
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "Move"
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbConic:
		return "Conic"
	case VerbCubic:
		return "Cubic"
	case VerbClose:
		return "Close"
	default:
		return fmt.Sprintf("Verb(%d)", uint8(v))
	}
}

// PointCount returns how many new points the verb appends to the point buffer.
func (v Verb) PointCount() int {
	switch v {
	case VerbMove, VerbLine:
		return 1
	case VerbQuad, VerbConic:
		return 2
	case VerbCubic:
		return 3
	default:
		return 0
	}
}

// ConicWeightCircle is the conic weight that traces a quarter circle.
const ConicWeightCircle = 0.70710678118654752440

// Path is an ordered verb stream with a flat point buffer and a parallel
// conic-weight buffer. Paths are built by the caller and read-only to the
// tessellators.
type Path struct {
	verbs   []Verb
	points  []Point
	weights []float32

	// lastMove is the index in points of the current contour's start, or -1.
	lastMove int
	// open is true while a contour is accepting segments.
	open bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:    make([]Verb, 0, 16),
		points:   make([]Point, 0, 32),
		lastMove: -1,
	}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.lastMove = len(p.points)
	p.verbs = append(p.verbs, VerbMove)
	p.points = append(p.points, Pt(x, y))
	p.open = true
}

// injectMove starts a contour at the previous contour's start (or the origin)
// when a segment is appended without a preceding MoveTo.
func (p *Path) injectMove() {
	if p.open {
		return
	}
	var start Point
	if p.lastMove >= 0 {
		start = p.points[p.lastMove]
	}
	p.MoveTo(start.X, start.Y)
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.injectMove()
	p.verbs = append(p.verbs, VerbLine)
	p.points = append(p.points, Pt(x, y))
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.injectMove()
	p.verbs = append(p.verbs, VerbQuad)
	p.points = append(p.points, Pt(cx, cy), Pt(x, y))
}

// ConicTo draws a conic with control point (cx, cy) and weight w.
// A weight of 1 is a quadratic; non-positive or non-finite weights degrade to
// a line to the end point.
func (p *Path) ConicTo(cx, cy, x, y, w float32) {
	if !(w > 0) || math32.IsInf(w, 1) {
		p.LineTo(x, y)
		return
	}
	if w == 1 {
		p.QuadTo(cx, cy, x, y)
		return
	}
	p.injectMove()
	p.verbs = append(p.verbs, VerbConic)
	p.points = append(p.points, Pt(cx, cy), Pt(x, y))
	p.weights = append(p.weights, w)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.injectMove()
	p.verbs = append(p.verbs, VerbCubic)
	p.points = append(p.points, Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y))
}

// Close closes the current contour. Closing an already-closed or empty
// contour is a no-op.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.open = false
}

// Reset removes all verbs while keeping the allocated storage.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.weights = p.weights[:0]
	p.lastMove = -1
	p.open = false
}

// Verbs returns the verb stream. The slice must not be modified.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the point buffer. The slice must not be modified.
func (p *Path) Points() []Point { return p.points }

// Weights returns the conic weights, one per VerbConic.
func (p *Path) Weights() []float32 { return p.weights }

// CountVerbs returns the number of verbs.
func (p *Path) CountVerbs() int { return len(p.verbs) }

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// LastPoint returns the last point in the buffer.
func (p *Path) LastPoint() (Point, bool) {
	if len(p.points) == 0 {
		return Point{}, false
	}
	return p.points[len(p.points)-1], true
}

// Bounds returns the bounds of all points, control points included.
func (p *Path) Bounds() Rect {
	return BoundsOf(p.points)
}

// IsFinite reports whether every point and weight is finite.
func (p *Path) IsFinite() bool {
	for _, pt := range p.points {
		if !pt.IsFinite() {
			return false
		}
	}
	for _, w := range p.weights {
		if math32.IsNaN(w) || math32.IsInf(w, 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		verbs:    append([]Verb(nil), p.verbs...),
		points:   append([]Point(nil), p.points...),
		weights:  append([]float32(nil), p.weights...),
		lastMove: p.lastMove,
		open:     p.open,
	}
}

// Transform returns a copy of the path with every point mapped by m.
// Conic weights are left unchanged, which is exact for affine matrices.
func (p *Path) Transform(m Matrix) *Path {
	out := p.Clone()
	m.TransformPoints(out.points, out.points)
	return out
}

// Segment is one verb with its points as yielded by [Path.Segments].
//
// Pts holds the verb's full control polygon, including the previous end
// point for drawing verbs:
//
//	Move:  [p]
//	Line:  [p0 p1]
//	Quad:  [p0 p1 p2]
//	Conic: [p0 p1 p2] with W set
//	Cubic: [p0 p1 p2 p3]
//	Close: [last start]
//
// Pts is only valid until the iteration advances.
type Segment struct {
	Verb Verb
	Pts  []Point
	W    float32
}

// Segments returns an iterator over the verb stream. The sequence is finite
// and may be iterated any number of times.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		var closePts [2]Point
		ptIdx, wIdx, moveIdx := 0, 0, 0
		for _, v := range p.verbs {
			var seg Segment
			switch v {
			case VerbMove:
				moveIdx = ptIdx
				seg = Segment{Verb: v, Pts: p.points[ptIdx : ptIdx+1]}
			case VerbClose:
				closePts[0] = p.points[ptIdx-1]
				closePts[1] = p.points[moveIdx]
				seg = Segment{Verb: v, Pts: closePts[:]}
			default:
				n := v.PointCount()
				seg = Segment{Verb: v, Pts: p.points[ptIdx-1 : ptIdx+n]}
				if v == VerbConic {
					seg.W = p.weights[wIdx]
					wIdx++
				}
			}
			ptIdx += v.PointCount()
			if !yield(seg) {
				return
			}
		}
	}
}

// AddRect appends a closed clockwise rectangle contour.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
}

// AddOval appends a closed ellipse inscribed in r, built from four conics.
func (p *Path) AddOval(r Rect) {
	c := r.Center()
	const w = ConicWeightCircle
	p.MoveTo(r.Right, c.Y)
	p.ConicTo(r.Right, r.Bottom, c.X, r.Bottom, w)
	p.ConicTo(r.Left, r.Bottom, r.Left, c.Y, w)
	p.ConicTo(r.Left, r.Top, c.X, r.Top, w)
	p.ConicTo(r.Right, r.Top, r.Right, c.Y, w)
	p.Close()
}

// AddCircle appends a closed circle.
func (p *Path) AddCircle(cx, cy, radius float32) {
	p.AddOval(Rect{Left: cx - radius, Top: cy - radius, Right: cx + radius, Bottom: cy + radius})
}

// AddRRect appends a closed rounded rectangle with corner radii rx, ry.
// Radii are clamped to half the rectangle size; zero radii produce a plain
// rectangle.
func (p *Path) AddRRect(r Rect, rx, ry float32) {
	rx = math32.Min(math32.Max(rx, 0), r.Width()/2)
	ry = math32.Min(math32.Max(ry, 0), r.Height()/2)
	if rx == 0 || ry == 0 {
		p.AddRect(r)
		return
	}
	const w = ConicWeightCircle
	p.MoveTo(r.Left+rx, r.Top)
	p.LineTo(r.Right-rx, r.Top)
	p.ConicTo(r.Right, r.Top, r.Right, r.Top+ry, w)
	p.LineTo(r.Right, r.Bottom-ry)
	p.ConicTo(r.Right, r.Bottom, r.Right-rx, r.Bottom, w)
	p.LineTo(r.Left+rx, r.Bottom)
	p.ConicTo(r.Left, r.Bottom, r.Left, r.Bottom-ry, w)
	p.LineTo(r.Left, r.Top+ry)
	p.ConicTo(r.Left, r.Top, r.Left+rx, r.Top, w)
	p.Close()
}

// AddPath appends all contours of other.
func (p *Path) AddPath(other *Path) {
	for seg := range other.Segments() {
		switch seg.Verb {
		case VerbMove:
			p.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case VerbLine:
			p.LineTo(seg.Pts[1].X, seg.Pts[1].Y)
		case VerbQuad:
			p.QuadTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case VerbConic:
			p.ConicTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y, seg.W)
		case VerbCubic:
			p.CubicTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y, seg.Pts[3].X, seg.Pts[3].Y)
		case VerbClose:
			p.Close()
		}
	}
}
