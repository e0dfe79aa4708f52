package tess

import "github.com/chewxy/math32"

// PerspectiveEpsilon is the largest perspective coefficient, relative to the
// homogeneous scale I, for which a matrix is still treated as affine by
// [Matrix.IsNearlyAffine].
const PerspectiveEpsilon = 1.0 / (1 << 12)

// Matrix represents a 2D projective transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//	| g  h  i |
//
// This represents the transformation:
//
//	w  = g*x + h*y + i
//	x' = (a*x + b*y + c) / w
//	y' = (d*x + e*y + f) / w
//
// Affine matrices have g = h = 0 and i = 1. The tessellators require affine
// transforms; see [Matrix.HasPerspective].
type Matrix struct {
	A, B, C float32
	D, E, F float32
	G, H, I float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Matrix {
	m := Identity()
	m.C, m.F = x, y
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	m := Identity()
	m.A, m.E = x, y
	return m
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Matrix {
	sin, cos := math32.Sincos(angle)
	m := Identity()
	m.A, m.B = cos, -sin
	m.D, m.E = sin, cos
	return m
}

// Skew creates a skew matrix.
func Skew(x, y float32) Matrix {
	m := Identity()
	m.B, m.D = x, y
	return m
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D + m.C*other.G,
		B: m.A*other.B + m.B*other.E + m.C*other.H,
		C: m.A*other.C + m.B*other.F + m.C*other.I,
		D: m.D*other.A + m.E*other.D + m.F*other.G,
		E: m.D*other.B + m.E*other.E + m.F*other.H,
		F: m.D*other.C + m.E*other.F + m.F*other.I,
		G: m.G*other.A + m.H*other.D + m.I*other.G,
		H: m.G*other.B + m.H*other.E + m.I*other.H,
		I: m.G*other.C + m.H*other.F + m.I*other.I,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	x := m.A*p.X + m.B*p.Y + m.C
	y := m.D*p.X + m.E*p.Y + m.F
	if !m.HasPerspective() {
		return Point{X: x, Y: y}
	}
	w := m.G*p.X + m.H*p.Y + m.I
	return Point{X: x / w, Y: y / w}
}

// TransformPoints maps src into dst, which must be at least as long as src.
// src and dst may alias.
func (m Matrix) TransformPoints(dst, src []Point) {
	for i, p := range src {
		dst[i] = m.TransformPoint(p)
	}
}

// TransformVector applies the linear part of the transformation to a vector.
// Perspective is ignored.
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	c00 := m.E*m.I - m.F*m.H
	c01 := m.F*m.G - m.D*m.I
	c02 := m.D*m.H - m.E*m.G
	det := m.A*c00 + m.B*c01 + m.C*c02
	if math32.Abs(det) < 1e-12 {
		return Identity()
	}

	inv := 1 / det
	return Matrix{
		A: c00 * inv,
		B: (m.C*m.H - m.B*m.I) * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: c01 * inv,
		E: (m.A*m.I - m.C*m.G) * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
		G: c02 * inv,
		H: (m.B*m.G - m.A*m.H) * inv,
		I: (m.A*m.E - m.B*m.D) * inv,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1 && !m.HasPerspective()
}

// HasPerspective reports whether the bottom row differs from (0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.G != 0 || m.H != 0 || m.I != 1
}

// IsNearlyAffine reports whether the perspective row is small enough, relative
// to I, that the matrix can be treated as affine after dividing by I.
func (m Matrix) IsNearlyAffine() bool {
	if m.I == 0 || math32.IsNaN(m.I) {
		return false
	}
	tol := PerspectiveEpsilon * math32.Abs(m.I)
	return math32.Abs(m.G) <= tol && math32.Abs(m.H) <= tol
}

// Affine returns m with the perspective row dropped and the linear part
// divided by I. The second result is false if m is not nearly affine, in which
// case the identity is returned.
func (m Matrix) Affine() (Matrix, bool) {
	if !m.HasPerspective() {
		return m, true
	}
	if !m.IsNearlyAffine() {
		return Identity(), false
	}
	inv := 1 / m.I
	return Matrix{
		A: m.A * inv, B: m.B * inv, C: m.C * inv,
		D: m.D * inv, E: m.E * inv, F: m.F * inv,
		G: 0, H: 0, I: 1,
	}, true
}

// MaxScale returns the largest factor by which the linear part stretches a
// unit vector (the larger singular value).
func (m Matrix) MaxScale() float32 {
	a, b, d, e := m.A, m.B, m.D, m.E
	// Singular values of [[a b] [d e]] are sqrt of the eigenvalues of M^T M.
	s := a*a + b*b + d*d + e*e
	det := a*e - b*d
	disc := s*s - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math32.Sqrt((s + math32.Sqrt(disc)) / 2)
}
