package chop

import "github.com/gogpu/tess"

// EvalQuad returns the point on the quadratic p at t.
func EvalQuad(p [3]tess.Point, t float32) tess.Point {
	mt := 1 - t
	a, b, c := mt*mt, 2*mt*t, t*t
	return tess.Pt(a*p[0].X+b*p[1].X+c*p[2].X, a*p[0].Y+b*p[1].Y+c*p[2].Y)
}

// EvalCubic returns the point on the cubic p at t.
func EvalCubic(p [4]tess.Point, t float32) tess.Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return tess.Pt(
		a*p[0].X+b*p[1].X+c*p[2].X+d*p[3].X,
		a*p[0].Y+b*p[1].Y+c*p[2].Y+d*p[3].Y,
	)
}

// EvalConic returns the point on the conic (p, w) at t.
func EvalConic(p [3]tess.Point, w, t float32) tess.Point {
	mt := 1 - t
	a, b, c := mt*mt, 2*w*mt*t, t*t
	d := a + b + c
	return tess.Pt((a*p[0].X+b*p[1].X+c*p[2].X)/d, (a*p[0].Y+b*p[1].Y+c*p[2].Y)/d)
}

// CubicTangent returns the (unnormalized) derivative of the cubic p at t.
func CubicTangent(p [4]tess.Point, t float32) tess.Point {
	mt := 1 - t
	a := p[1].Sub(p[0]).Mul(3 * mt * mt)
	b := p[2].Sub(p[1]).Mul(6 * mt * t)
	c := p[3].Sub(p[2]).Mul(3 * t * t)
	return a.Add(b).Add(c)
}

// QuadTangent returns the derivative of the quadratic p at t.
func QuadTangent(p [3]tess.Point, t float32) tess.Point {
	return p[1].Sub(p[0]).Mul(2 * (1 - t)).Add(p[2].Sub(p[1]).Mul(2 * t))
}

// LineToCubic returns a cubic tracing the segment p0-p1 with control points at
// 1/3 and 2/3.
func LineToCubic(p0, p1 tess.Point) [4]tess.Point {
	return [4]tess.Point{p0, p0.Lerp(p1, 1.0/3), p0.Lerp(p1, 2.0/3), p1}
}

// QuadToCubic returns the cubic equivalent of the quadratic p.
func QuadToCubic(p [3]tess.Point) [4]tess.Point {
	return [4]tess.Point{
		p[0],
		p[0].Lerp(p[1], 2.0/3),
		p[2].Lerp(p[1], 2.0/3),
		p[2],
	}
}

// ConicTangent returns a vector in the direction of the conic's derivative at
// t. Its length is not the derivative's.
func ConicTangent(p [3]tess.Point, w, t float32) tess.Point {
	p20 := p[2].Sub(p[0])
	p10 := p[1].Sub(p[0])
	a := p20.Mul(w - 1)
	b := p20.Sub(p10.Mul(2 * w))
	c := p10.Mul(w)
	return a.Mul(t * t).Add(b.Mul(t)).Add(c)
}
