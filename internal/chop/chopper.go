package chop

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/wangs"
)

// MaxDepth bounds how many times a curve may be halved. It allows one level
// per doubling of the parametric and radial segment estimates plus one, so a
// chop that stops converging because of float precision still terminates.
func MaxDepth(segments, radialSegments float32) int {
	d := wangs.NextLog2(segments) + wangs.NextLog2(radialSegments) + 1
	if d < 1 {
		d = 1
	}
	return d
}

type frame struct {
	c     Curve
	depth int
}

// Chopper splits curves on an explicit stack instead of the call stack. A
// zero Chopper is ready to use; it keeps its stack between calls.
type Chopper struct {
	stack []frame

	// Exhausted counts pieces emitted because their depth ran out while
	// still over budget.
	Exhausted int
}

// Split pushes c and repeatedly splits the top of the stack while tooBig
// reports true and depth remains. Pieces are emitted in curve order. at picks
// the split parameter; nil splits at T = 0.5.
func (ch *Chopper) Split(c Curve, maxDepth int, tooBig func(Curve) bool, at func(Curve) float32, emit func(Curve)) {
	ch.stack = append(ch.stack[:0], frame{c: c, depth: maxDepth})
	for len(ch.stack) > 0 {
		f := ch.stack[len(ch.stack)-1]
		ch.stack = ch.stack[:len(ch.stack)-1]

		if !tooBig(f.c) {
			emit(f.c)
			continue
		}
		if f.depth <= 0 {
			ch.Exhausted++
			tess.Logger().Debug("chop: depth exhausted", "verb", f.c.Verb, "start", f.c.Pts[0])
			emit(f.c)
			continue
		}

		t := float32(0.5)
		if at != nil {
			t = at(f.c)
		}
		first, second := f.c.Split(t)
		// Second half goes underneath so the first is popped next.
		ch.stack = append(ch.stack,
			frame{c: second, depth: f.depth - 1},
			frame{c: first, depth: f.depth - 1})
	}
}

// Chop splits c at T = 0.5 until every piece needs at most maxSegments line
// segments at the given precision. The comparison is done on 4th powers, the
// same domain the estimate is computed in.
func (ch *Chopper) Chop(c Curve, precision, maxSegments float32, x wangs.VectorXform, emit func(Curve)) {
	budget := maxSegments * maxSegments * maxSegments * maxSegments
	n4 := c.SegmentsPow4(precision, x)
	depth := MaxDepth(wangs.Root4(n4), 1)
	ch.Split(c, depth, func(c Curve) bool {
		return c.SegmentsPow4(precision, x) > budget
	}, nil, emit)
}

// MaxSegmentsPerCurve is the most segments any single curve is allowed to
// need before [PreChopPathCurves] breaks it up.
const MaxSegmentsPerCurve = 1024

// PreChopPathCurves returns a copy of path in which every curve needing more
// than MaxSegmentsPerCurve segments in device space has been chopped, and
// every curve whose control points lie entirely outside viewport (outset by a
// pixel) has been replaced by a line to its end point. Lines keep the winding
// of the culled piece intact. Points stay in path space.
func PreChopPathCurves(precision float32, path *tess.Path, m tess.Matrix, viewport tess.Rect) *tess.Path {
	x, _ := wangs.NewVectorXform(m)
	cull := viewport.Outset(1, 1)
	out := tess.NewPath()
	var ch Chopper

	emit := func(c Curve) {
		var dev [4]tess.Point
		n := 3
		if c.Verb == tess.VerbCubic {
			n = 4
		}
		m.TransformPoints(dev[:n], c.Pts[:n])
		if !cull.Intersects(tess.BoundsOf(dev[:n])) {
			end := c.End()
			out.LineTo(end.X, end.Y)
			return
		}
		switch c.Verb {
		case tess.VerbQuad:
			out.QuadTo(c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y)
		case tess.VerbConic:
			out.ConicTo(c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y, c.W)
		case tess.VerbCubic:
			out.CubicTo(c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y, c.Pts[3].X, c.Pts[3].Y)
		}
	}

	for seg := range path.Segments() {
		switch seg.Verb {
		case tess.VerbMove:
			out.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case tess.VerbLine:
			out.LineTo(seg.Pts[1].X, seg.Pts[1].Y)
		case tess.VerbClose:
			out.Close()
		case tess.VerbQuad:
			ch.Chop(Quad([3]tess.Point(seg.Pts)), precision, MaxSegmentsPerCurve, x, emit)
		case tess.VerbConic:
			ch.Chop(Conic([3]tess.Point(seg.Pts), seg.W), precision, MaxSegmentsPerCurve, x, emit)
		case tess.VerbCubic:
			ch.Chop(Cubic([4]tess.Point(seg.Pts)), precision, MaxSegmentsPerCurve, x, emit)
		}
	}
	return out
}

// IsFlat reports whether every control point of c lies within tolerance of
// the chord.
func IsFlat(c Curve, tolerance float32) bool {
	n := 3
	if c.Verb == tess.VerbCubic {
		n = 4
	}
	a, b := c.Pts[0], c.Pts[n-1]
	ab := b.Sub(a)
	l := ab.Length()
	for _, p := range c.Pts[1 : n-1] {
		var d float32
		if l == 0 {
			d = p.Distance(a)
		} else {
			d = math32.Abs(ab.Cross(p.Sub(a))) / l
		}
		if d > tolerance {
			return false
		}
	}
	return true
}
