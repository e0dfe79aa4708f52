package chop

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/wangs"
)

// Curve is one quadratic, conic or cubic being chopped. Quadratics and conics
// use Pts[0:3]; W is only meaningful for conics.
type Curve struct {
	Verb tess.Verb
	Pts  [4]tess.Point
	W    float32
}

// Quad returns a quadratic curve.
func Quad(p [3]tess.Point) Curve {
	return Curve{Verb: tess.VerbQuad, Pts: [4]tess.Point{p[0], p[1], p[2]}}
}

// Conic returns a conic curve.
func Conic(p [3]tess.Point, w float32) Curve {
	return Curve{Verb: tess.VerbConic, Pts: [4]tess.Point{p[0], p[1], p[2]}, W: w}
}

// Cubic returns a cubic curve.
func Cubic(p [4]tess.Point) Curve {
	return Curve{Verb: tess.VerbCubic, Pts: p}
}

// P3 returns the first three control points.
func (c Curve) P3() [3]tess.Point {
	return [3]tess.Point{c.Pts[0], c.Pts[1], c.Pts[2]}
}

// End returns the curve's end point.
func (c Curve) End() tess.Point {
	if c.Verb == tess.VerbCubic {
		return c.Pts[3]
	}
	return c.Pts[2]
}

// Split chops the curve at t.
func (c Curve) Split(t float32) (Curve, Curve) {
	switch c.Verb {
	case tess.VerbCubic:
		s := CubicAt(c.Pts, t)
		return Cubic([4]tess.Point{s[0], s[1], s[2], s[3]}), Cubic([4]tess.Point{s[3], s[4], s[5], s[6]})
	case tess.VerbConic:
		s, w0, w1 := ConicAt(c.P3(), c.W, t)
		return Conic([3]tess.Point{s[0], s[1], s[2]}, w0), Conic([3]tess.Point{s[2], s[3], s[4]}, w1)
	default:
		s := QuadAt(c.P3(), t)
		return Quad([3]tess.Point{s[0], s[1], s[2]}), Quad([3]tess.Point{s[2], s[3], s[4]})
	}
}

// MidTangent returns the T where the curve's tangent bisects its end
// tangents.
func (c Curve) MidTangent() float32 {
	switch c.Verb {
	case tess.VerbCubic:
		return FindCubicMidTangent(c.Pts)
	case tess.VerbConic:
		return ConicMidTangent(c.P3(), c.W)
	default:
		return FindQuadMidTangent(c.P3())
	}
}

// SegmentsPow4 returns the curve's Wang's formula estimate raised to the 4th
// power, whatever its type.
func (c Curve) SegmentsPow4(precision float32, x wangs.VectorXform) float32 {
	switch c.Verb {
	case tess.VerbCubic:
		return wangs.CubicPow4(precision, c.Pts, x)
	case tess.VerbConic:
		n2 := wangs.ConicPow2(precision, c.P3(), c.W, x)
		return n2 * n2
	default:
		return wangs.QuadraticPow4(precision, c.P3(), x)
	}
}

// Eval returns the point on the curve at t.
func (c Curve) Eval(t float32) tess.Point {
	switch c.Verb {
	case tess.VerbCubic:
		return EvalCubic(c.Pts, t)
	case tess.VerbConic:
		return EvalConic(c.P3(), c.W, t)
	default:
		return EvalQuad(c.P3(), t)
	}
}
