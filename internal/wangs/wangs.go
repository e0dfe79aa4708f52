// Package wangs estimates how many line segments a Bezier curve needs.
//
// Wang's formula bounds the distance between a polynomial curve and its
// chord-wise linearization after n equal-T steps:
//
//	n = sqrt(d(d-1)/8 * precision * max|P[i-1] - 2P[i] + P[i+1]|)
//
// where d is the degree and precision is the reciprocal of the tolerance in
// pixels. Conics use the rational analogue from Zheng and Sederberg,
// "Estimating tessellation parameter intervals for rational curves and
// surfaces" (ACM TOG 19(1), 2000).
//
// The raw estimates are returned raised to the 4th power (2nd for conics) so
// that callers comparing against a power-of-two budget never take a root.
package wangs

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// DefaultPrecision keeps linearized curves within 1/4 pixel of the true curve.
const DefaultPrecision = 4

// lengthTerm returns d(d-1)/8 * precision for a curve of the given degree.
func lengthTerm(degree int, precision float32) float32 {
	return float32(degree*(degree-1)) / 8 * precision
}

// lengthTermPow2 returns lengthTerm squared.
func lengthTermPow2(degree int, precision float32) float32 {
	l := lengthTerm(degree, precision)
	return l * l
}

// QuadraticPow4 returns the number of segments the quadratic p needs, raised
// to the 4th power.
func QuadraticPow4(precision float32, p [3]tess.Point, x VectorXform) float32 {
	v := x.Map(p[0].Sub(p[1].Mul(2)).Add(p[2]))
	return v.LengthSquared() * lengthTermPow2(2, precision)
}

// Quadratic returns the number of segments the quadratic p needs.
func Quadratic(precision float32, p [3]tess.Point, x VectorXform) float32 {
	return Root4(QuadraticPow4(precision, p, x))
}

// QuadraticLog2 returns ceil(log2(Quadratic(...))).
func QuadraticLog2(precision float32, p [3]tess.Point, x VectorXform) int {
	return NextLog16(QuadraticPow4(precision, p, x))
}

// CubicPow4 returns the number of segments the cubic p needs, raised to the
// 4th power.
func CubicPow4(precision float32, p [4]tess.Point, x VectorXform) float32 {
	a := x.Map(p[0].Sub(p[1].Mul(2)).Add(p[2]))
	b := x.Map(p[1].Sub(p[2].Mul(2)).Add(p[3]))
	return math32.Max(a.LengthSquared(), b.LengthSquared()) * lengthTermPow2(3, precision)
}

// Cubic returns the number of segments the cubic p needs.
func Cubic(precision float32, p [4]tess.Point, x VectorXform) float32 {
	return Root4(CubicPow4(precision, p, x))
}

// CubicLog2 returns ceil(log2(Cubic(...))).
func CubicLog2(precision float32, p [4]tess.Point, x VectorXform) int {
	return NextLog16(CubicPow4(precision, p, x))
}

// WorstCaseCubicPow4 returns the most segments any cubic with a device-space
// bounding box of the given size could need, raised to the 4th power.
func WorstCaseCubicPow4(precision, devWidth, devHeight float32) float32 {
	return 4 * lengthTermPow2(3, precision) * (devWidth*devWidth + devHeight*devHeight)
}

// WorstCaseCubic returns the root of WorstCaseCubicPow4.
func WorstCaseCubic(precision, devWidth, devHeight float32) float32 {
	return Root4(WorstCaseCubicPow4(precision, devWidth, devHeight))
}

// WorstCaseCubicLog2 returns ceil(log2(WorstCaseCubic(...))).
func WorstCaseCubicLog2(precision, devWidth, devHeight float32) int {
	return NextLog16(WorstCaseCubicPow4(precision, devWidth, devHeight))
}

// ConicPow2 returns the number of segments the conic (p, w) needs, squared.
// Points are mapped by x first; the formula works on the curve translated to
// its bounding box center, which keeps it stable far from the origin.
func ConicPow2(precision float32, p [3]tess.Point, w float32, x VectorXform) float32 {
	p0, p1, p2 := x.Map(p[0]), x.Map(p[1]), x.Map(p[2])

	c := p0.Min(p1).Min(p2).Add(p0.Max(p1).Max(p2)).Mul(0.5)
	p0, p1, p2 = p0.Sub(c), p1.Sub(c), p2.Sub(c)

	maxLen := math32.Sqrt(math32.Max(p0.LengthSquared(), math32.Max(p1.LengthSquared(), p2.LengthSquared())))

	dp := p0.Add(p2).Sub(p1.Mul(2 * w))
	dw := math32.Abs(2 - 2*w)

	// The paper's epsilon is 1/precision.
	rpMinus1 := math32.Max(0, maxLen*precision-1)
	numer := dp.Length()*precision + rpMinus1*dw
	denom := 4 * math32.Min(w, 1)
	return numer / denom
}

// Conic returns the number of segments the conic (p, w) needs.
func Conic(precision float32, p [3]tess.Point, w float32, x VectorXform) float32 {
	return math32.Sqrt(ConicPow2(precision, p, w, x))
}

// ConicLog2 returns ceil(log2(Conic(...))).
func ConicLog2(precision float32, p [3]tess.Point, w float32, x VectorXform) int {
	return NextLog4(ConicPow2(precision, p, w, x))
}

// Root4 returns the 4th root of x.
func Root4(x float32) float32 {
	return math32.Sqrt(math32.Sqrt(x))
}

// NextLog2 returns ceil(log2(x)), or 0 for x <= 1 and NaN. It reads the IEEE
// exponent directly: adding just under one mantissa step bumps the exponent
// for every value that is not an exact power of two.
func NextLog2(x float32) int {
	bits := math.Float32bits(x)
	bits += 1<<23 - 1
	exp := int(int32(bits)>>23) - 127
	return exp &^ (exp >> 31)
}

// NextLog4 returns ceil(log2(sqrt(x))).
func NextLog4(x float32) int {
	return (NextLog2(x) + 1) >> 1
}

// NextLog16 returns ceil(log2(sqrt(sqrt(x)))).
func NextLog16(x float32) int {
	return (NextLog2(x) + 3) >> 2
}
