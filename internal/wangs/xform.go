package wangs

import "github.com/gogpu/tess"

// VectorXform is the linear part of an affine matrix, used to measure control
// polygon differences in device space. Differences are translation invariant,
// so only the 2x2 part matters.
type VectorXform struct {
	c0, c1 tess.Point
}

// Identity returns the identity transform.
func Identity() VectorXform {
	return VectorXform{c0: tess.Pt(1, 0), c1: tess.Pt(0, 1)}
}

// NewVectorXform extracts the linear part of m. A matrix that is not nearly
// affine cannot be represented; the identity is returned with ok == false and
// estimates are then made in local space.
func NewVectorXform(m tess.Matrix) (x VectorXform, ok bool) {
	a, ok := m.Affine()
	if !ok {
		tess.Logger().Debug("wangs: perspective matrix, estimating in local space",
			"g", m.G, "h", m.H, "i", m.I)
		return Identity(), false
	}
	return VectorXform{c0: tess.Pt(a.A, a.D), c1: tess.Pt(a.B, a.E)}, true
}

// Map applies the transform to a vector.
func (x VectorXform) Map(v tess.Point) tess.Point {
	return tess.Point{
		X: x.c0.X*v.X + x.c1.X*v.Y,
		Y: x.c0.Y*v.X + x.c1.Y*v.Y,
	}
}
