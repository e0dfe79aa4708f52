// Package middleout triangulates polygon fans in "middle-out" order.
//
// Instead of fanning every vertex from the first one, middle-out emits the
// triangle {0, N/2, N} first and then recurses on each half. The triangles
// stay well shaped on long contours and the fan depth is logarithmic. The
// recursion is unrolled into a small stack: each entry remembers how many
// original vertices separate it from the entry below it, and two entries with
// equal spans are merged into a triangle as soon as a third vertex arrives.
package middleout

import (
	"math/bits"

	"github.com/gogpu/tess"
)

// Triangle is three fan vertices in emission order.
type Triangle [3]tess.Point

type vertex struct {
	delta int
	pt    tess.Point
}

// Triangulator consumes the vertices of one or more closed polygons and
// emits their fan triangles in middle-out order.
type Triangulator struct {
	stack []vertex
	emit  func(Triangle)
	count int
}

// NewTriangulator returns a triangulator whose first polygon starts at start.
// maxExpectedVertices sizes the stack so the hot loop never reallocates; more
// vertices still work.
func NewTriangulator(start tess.Point, maxExpectedVertices int, emit func(Triangle)) *Triangulator {
	// The stack holds at most one entry per set bit of the vertex count plus
	// the start point.
	depth := bits.Len(uint(maxExpectedVertices)) + 1
	t := &Triangulator{
		stack: make([]vertex, 1, depth),
		emit:  emit,
	}
	t.stack[0] = vertex{delta: 0, pt: start}
	return t
}

// PushVertex adds the next polygon vertex. Pushing the polygon's start point
// closes it and begins a new polygon from the same start.
func (t *Triangulator) PushVertex(pt tess.Point) {
	if pt == t.stack[0].pt {
		t.Close()
		return
	}
	// Each pop merges two spans of equal length into one twice as long.
	delta := 1
	for top := len(t.stack) - 1; top > 0 && t.stack[top].delta == delta; top-- {
		t.emitTriangle(t.stack[top-1].pt, t.stack[top].pt, pt)
		t.stack = t.stack[:top]
		delta *= 2
	}
	t.stack = append(t.stack, vertex{delta: delta, pt: pt})
}

// Close finishes the current polygon by fanning the remaining stack entries
// back to the start point. The next polygon starts at the same point.
func (t *Triangulator) Close() {
	start := t.stack[0].pt
	for top := len(t.stack) - 1; top > 1; top-- {
		t.emitTriangle(t.stack[top-1].pt, t.stack[top].pt, start)
	}
	t.stack = t.stack[:1]
}

// CloseAndMove finishes the current polygon and starts a new one at pt.
func (t *Triangulator) CloseAndMove(pt tess.Point) {
	t.Close()
	t.stack[0] = vertex{delta: 0, pt: pt}
}

// Count returns the number of triangles emitted so far.
func (t *Triangulator) Count() int {
	return t.count
}

func (t *Triangulator) emitTriangle(a, b, c tess.Point) {
	t.count++
	if t.emit != nil {
		t.emit(Triangle{a, b, c})
	}
}

// Triangulate returns the middle-out triangulation of the closed polygon pts.
func Triangulate(pts []tess.Point) []Triangle {
	if len(pts) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(pts)-2)
	t := NewTriangulator(pts[0], len(pts), func(tri Triangle) {
		tris = append(tris, tri)
	})
	for _, p := range pts[1:] {
		t.PushVertex(p)
	}
	t.Close()
	return tris
}
