package chop

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// CuspEpsilon is the parametric margin kept clear of each end point when
// looking for chop points. Roots closer than this to 0 or 1 are ignored, and
// a discriminant within (a*CuspEpsilon/2)^2 of zero is treated as a cusp.
const CuspEpsilon = 1.0 / (1 << 11)

// FindCubicConvex180Chops returns up to two T values that split the cubic p
// into pieces that are each convex and rotate no more than 180 degrees.
// areCusps is true when the returned values are cusps (or the 180 degree
// turnarounds of a flat cubic), which stroking rounds with a circle.
func FindCubicConvex180Chops(p [4]tess.Point) (t [2]float32, n int, areCusps bool) {
	// The inflection function is a*T^2 + b*T + c with
	//
	//	a = A x B, b = A x C, c = B x C
	//
	// in the cubic's power basis, scaled so that b/-2 appears in the
	// discriminant.
	C := p[1].Sub(p[0])
	D := p[2].Sub(p[1])
	E := p[3].Sub(p[0])
	B := D.Sub(C)
	A := D.Mul(-3).Add(E)

	a := A.Cross(B)
	b := A.Cross(C)
	c := B.Cross(C)
	bOverMinus2 := -0.5 * b
	discr := bOverMinus2*bOverMinus2 - a*c

	// Roots this close together are a cusp. Dividing the threshold by 2
	// mirrors the epsilon applied to the roots themselves.
	cuspThreshold := a * (CuspEpsilon / 2)
	cuspThreshold *= cuspThreshold

	if discr < -cuspThreshold {
		// No inflections: the curve is convex but may still rotate more than
		// 180 degrees. Chop where the tangent is parallel to tan0 again,
		// the nonzero root of b*T^2 + 2c*T = 0.
		root := c / bOverMinus2
		if CuspEpsilon < root && root < 1-CuspEpsilon {
			t[0] = root
			return t, 1, false
		}
		return t, 0, false
	}

	areCusps = discr <= cuspThreshold
	if areCusps {
		if a != 0 || b != 0 || c != 0 {
			// A single cusp where the double root lands.
			root := bOverMinus2 / a
			if CuspEpsilon < root && root < 1-CuspEpsilon {
				t[0] = root
				return t, 1, true
			}
			return t, 0, true
		}

		// The cubic is a flat line. Find the points where it turns around
		// by solving for T where the derivative is perpendicular to the
		// line: tan0 . (A*T^2 + 2B*T + C) = 0.
		tan0 := C
		if tan0.X == 0 {
			tan0.X = p[2].X - p[0].X
		}
		if tan0.Y == 0 {
			tan0.Y = p[2].Y - p[0].Y
		}
		a = tan0.Dot(A)
		bOverMinus2 = -tan0.Dot(B)
		c = tan0.Dot(C)
		discr = math32.Max(bOverMinus2*bOverMinus2-a*c, 0)
	}

	// Solve the quadratic with the numerically stable form.
	q := math32.Sqrt(discr)
	q = math32.Copysign(q, bOverMinus2) + bOverMinus2
	roots := [2]float32{q / a, c / q}
	for _, r := range roots {
		if CuspEpsilon < r && r < 1-CuspEpsilon {
			t[n] = r
			n++
		}
	}
	if n == 2 {
		if t[0] > t[1] {
			t[0], t[1] = t[1], t[0]
		} else if t[0] == t[1] {
			n = 1
		}
	}
	return t, n, areCusps
}

// FindBisector returns a vector (not normalized) bisecting the angle between
// the tangents a and b. When the tangents point more than 90 degrees apart
// both are rotated first so the sum is well conditioned.
func FindBisector(a, b tess.Point) tess.Point {
	var v0, v1 tess.Point
	switch {
	case a.Dot(b) >= 0:
		v0, v1 = a, b
	case a.Cross(b) >= 0:
		v0 = tess.Pt(-a.Y, a.X)
		v1 = tess.Pt(b.Y, -b.X)
	default:
		v0 = tess.Pt(a.Y, -a.X)
		v1 = tess.Pt(-b.Y, b.X)
	}
	return v0.Normalize().Add(v1.Normalize())
}

// FindQuadMidTangent returns the T where the quadratic's tangent bisects
// the angle between its end tangents.
func FindQuadMidTangent(p [3]tess.Point) float32 {
	tan0 := p[1].Sub(p[0])
	tan1 := p[2].Sub(p[1])
	bisector := FindBisector(tan0, tan1.Neg())

	// The tangent is linear in T: tan0 + (tan1-tan0)*T. Solve for the T
	// where it is perpendicular to the bisector.
	denom := tan0.Sub(tan1).Dot(bisector)
	t := tan0.Dot(bisector) / denom
	if !(t > 0 && t < 1) {
		t = 0.5
	}
	return t
}

// FindCubicMidTangent returns the T where the cubic's tangent bisects the
// angle between its end tangents. The cubic must be convex and rotate no more
// than 180 degrees; see [FindCubicConvex180Chops].
func FindCubicMidTangent(p [4]tess.Point) float32 {
	tan0 := p[1].Sub(p[0])
	if p[0] == p[1] {
		tan0 = p[2].Sub(p[0])
	}
	tan1 := p[3].Sub(p[2])
	if p[2] == p[3] {
		tan1 = p[3].Sub(p[1])
	}
	bisector := FindBisector(tan0, tan1.Neg())

	// Power basis derivative coefficients, scaled by 1/3:
	// tangent(T) = A*T^2 + 2B'*T + C with B' = B/2.
	A := p[3].Sub(p[0]).Add(p[1].Sub(p[2]).Mul(3))
	B := p[0].Sub(p[1].Mul(2)).Add(p[2]).Mul(2)
	C := p[1].Sub(p[0])

	// Find T where the tangent is perpendicular to the bisector.
	a := bisector.Dot(A)
	b := bisector.Dot(B)
	c := bisector.Dot(C)
	if discr := b*b - 4*a*c; discr > 0 {
		return solveQuadraticForMidTangent(a, b, c, discr)
	}

	// The cubic is flat: the mid tangent is where the curve turns around,
	// i.e. where the tangent is perpendicular to tan0.
	a = tan0.Dot(A)
	b = tan0.Dot(B)
	t := -b / (2 * a)
	if !(t > 0 && t < 1) {
		t = 0.5
	}
	return t
}

// ConicMidTangent returns the T where the conic's tangent bisects the angle
// between its end tangents.
func ConicMidTangent(p [3]tess.Point, w float32) float32 {
	tan0 := p[1].Sub(p[0])
	tan1 := p[2].Sub(p[1])
	bisector := FindBisector(tan0, tan1.Neg())

	// The conic's tangent direction is a quadratic in T with these
	// coefficients; the weight cancels out of the denominator.
	p20 := p[2].Sub(p[0])
	p10 := p[1].Sub(p[0])
	A := p20.Mul(w - 1)
	B := p20.Sub(p10.Mul(2 * w))
	C := p10.Mul(w)

	a := bisector.Dot(A)
	b := bisector.Dot(B)
	c := bisector.Dot(C)
	return solveQuadraticForMidTangent(a, b, c, b*b-4*a*c)
}

// solveQuadraticForMidTangent returns the root of a*T^2 + b*T + c closest to
// 0.5, or 0.5 when there is no usable root in (0, 1).
func solveQuadraticForMidTangent(a, b, c, discr float32) float32 {
	q := -0.5 * (b + math32.Copysign(math32.Sqrt(math32.Max(discr, 0)), b))
	t := q / a
	if r := c / q; math32.Abs(r-0.5) < math32.Abs(t-0.5) {
		t = r
	}
	if !(t > 0 && t < 1) {
		t = 0.5
	}
	return t
}

// ConicHasCusp reports whether the conic (or quadratic) p folds back on
// itself: its control polygon is collinear and turns around at p1.
func ConicHasCusp(p [3]tess.Point) bool {
	a := p[1].Sub(p[0])
	b := p[2].Sub(p[1])
	return a.Cross(b) == 0 && a.Dot(b) < 0
}
