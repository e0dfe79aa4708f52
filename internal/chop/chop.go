// Package chop subdivides Bezier curves and conics: de Casteljau chops at one
// or two parameter values, equal-T splits into a known number of pieces, and
// the tangent analysis strokes need to split cubics at inflections, cusps and
// 180 degree rotations.
package chop

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// QuadAt splits the quadratic p at t. The result shares its middle point:
// [0..2] is the first half and [2..4] the second.
func QuadAt(p [3]tess.Point, t float32) [5]tess.Point {
	ab := p[0].Lerp(p[1], t)
	bc := p[1].Lerp(p[2], t)
	abc := ab.Lerp(bc, t)
	return [5]tess.Point{p[0], ab, abc, bc, p[2]}
}

// QuadAtHalf splits the quadratic p at t = 0.5.
func QuadAtHalf(p [3]tess.Point) [5]tess.Point {
	return QuadAt(p, 0.5)
}

// CubicAt splits the cubic p at t. [0..3] is the first half and [3..6] the
// second.
func CubicAt(p [4]tess.Point, t float32) [7]tess.Point {
	ab := p[0].Lerp(p[1], t)
	bc := p[1].Lerp(p[2], t)
	cd := p[2].Lerp(p[3], t)
	abc := ab.Lerp(bc, t)
	bcd := bc.Lerp(cd, t)
	abcd := abc.Lerp(bcd, t)
	return [7]tess.Point{p[0], ab, abc, abcd, bcd, cd, p[3]}
}

// CubicAtHalf splits the cubic p at t = 0.5.
func CubicAtHalf(p [4]tess.Point) [7]tess.Point {
	return CubicAt(p, 0.5)
}

// CubicAt2 splits the cubic p at t0 < t1 into three cubics sharing end
// points: [0..3], [3..6] and [6..9].
func CubicAt2(p [4]tess.Point, t0, t1 float32) [10]tess.Point {
	var out [10]tess.Point
	first := CubicAt(p, t0)
	copy(out[:4], first[:4])

	// Rescale t1 into the remainder [t0, 1].
	u := float32(1)
	if t0 < 1 {
		u = (t1 - t0) / (1 - t0)
	}
	second := CubicAt([4]tess.Point{first[3], first[4], first[5], first[6]}, u)
	copy(out[3:], second[:])
	return out
}

// ConicAt splits the conic (p, w) at t. The halves are (pts[0..2], w0) and
// (pts[2..4], w1). The chop is done on the homogeneous control points so both
// halves keep the rational parametrization.
func ConicAt(p [3]tess.Point, w, t float32) (pts [5]tess.Point, w0, w1 float32) {
	// Homogeneous coordinates: (x*w, y*w, w).
	type hpt struct{ x, y, z float32 }
	lerp := func(a, b hpt) hpt {
		return hpt{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t, a.z + (b.z-a.z)*t}
	}
	h0 := hpt{p[0].X, p[0].Y, 1}
	h1 := hpt{p[1].X * w, p[1].Y * w, w}
	h2 := hpt{p[2].X, p[2].Y, 1}

	h01 := lerp(h0, h1)
	h12 := lerp(h1, h2)
	mid := lerp(h01, h12)

	project := func(h hpt) tess.Point { return tess.Pt(h.x/h.z, h.y/h.z) }
	pts = [5]tess.Point{p[0], project(h01), project(mid), project(h12), p[2]}

	// Normalize so each half's end points have weight 1.
	root := math32.Sqrt(mid.z)
	w0 = h01.z / root
	w1 = h12.z / root
	return pts, w0, w1
}

// ConicAtHalf splits the conic (p, w) at t = 0.5. Both halves get the same
// weight sqrt((1+w)/2).
func ConicAtHalf(p [3]tess.Point, w float32) (pts [5]tess.Point, newW float32) {
	pts, newW, _ = ConicAt(p, w, 0.5)
	return pts, newW
}

// CubicEqual splits the cubic p into n pieces of equal parametric length and
// appends them to dst as 3n+1 points. Each step chops T = 1/k off what is
// left with k pieces remaining, so no error accumulates from repeated
// bisection.
func CubicEqual(p [4]tess.Point, n int, dst []tess.Point) []tess.Point {
	dst = append(dst, p[0])
	for k := n; k > 1; k-- {
		c := CubicAt(p, 1/float32(k))
		dst = append(dst, c[1], c[2], c[3])
		p = [4]tess.Point{c[3], c[4], c[5], c[6]}
	}
	return append(dst, p[1], p[2], p[3])
}

// QuadEqual splits the quadratic p into n equal-T pieces, appending 2n+1
// points to dst.
func QuadEqual(p [3]tess.Point, n int, dst []tess.Point) []tess.Point {
	dst = append(dst, p[0])
	for k := n; k > 1; k-- {
		q := QuadAt(p, 1/float32(k))
		dst = append(dst, q[1], q[2])
		p = [3]tess.Point{q[2], q[3], q[4]}
	}
	return append(dst, p[1], p[2])
}

// ConicEqual splits the conic (p, w) into n equal-T pieces. Points (2n+1) are
// appended to dst and weights (n) to weights. The remainder stays in
// homogeneous form between steps; renormalizing it would change its
// parametrization and move later chops off T = k/n.
func ConicEqual(p [3]tess.Point, w float32, n int, dst []tess.Point, weights []float32) ([]tess.Point, []float32) {
	type hpt struct{ x, y, z float32 }
	lerp := func(a, b hpt, t float32) hpt {
		return hpt{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t, a.z + (b.z-a.z)*t}
	}
	project := func(h hpt) tess.Point { return tess.Pt(h.x/h.z, h.y/h.z) }
	// emit appends the piece (a, b, c) with its ends normalized to weight 1.
	emit := func(a, b, c hpt) {
		dst = append(dst, project(b), project(c))
		weights = append(weights, b.z/math32.Sqrt(a.z*c.z))
	}

	h0 := hpt{p[0].X, p[0].Y, 1}
	h1 := hpt{p[1].X * w, p[1].Y * w, w}
	h2 := hpt{p[2].X, p[2].Y, 1}
	dst = append(dst, p[0])
	for k := n; k > 1; k-- {
		t := 1 / float32(k)
		h01, h12 := lerp(h0, h1, t), lerp(h1, h2, t)
		mid := lerp(h01, h12, t)
		emit(h0, h01, mid)
		h0, h1 = mid, h12
	}
	emit(h0, h1, h2)
	// The last point is exact.
	dst[len(dst)-1] = p[2]
	return dst, weights
}
