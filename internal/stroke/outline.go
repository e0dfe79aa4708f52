package stroke

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/patch"
	"github.com/gogpu/tess/internal/wangs"
)

// Outline evaluates one stroke patch on the CPU, the same coverage the stroke
// vertex shader produces, as a list of polygons. The first polygon is the
// curve swept by the stroke radius: offset points forward along one side and
// back along the other. A second polygon, the join fan from [ExpandJoin],
// follows when the patch joins a previous stroke. Circle patches produce a
// single circle polygon.
func Outline(p patch.Patch, precision float32) [][]tess.Point {
	r := p.Stroke.Radius
	if r <= 0 {
		return nil
	}
	perRadian := NumRadialSegmentsPerRadian(r, precision)

	if p.IsCircle() {
		n := int(math32.Max(math32.Ceil(2*math.Pi*perRadian), 4))
		circle := make([]tess.Point, n)
		for i := range circle {
			sin, cos := math32.Sincos(2 * math.Pi * float32(i) / float32(n))
			circle[i] = p.Pts[0].Add(tess.Pt(cos, sin).Mul(r))
		}
		return [][]tess.Point{circle}
	}

	eval, tangent := curveFuncs(p)
	tan0, tan1 := tangent(0), tangent(1)

	param := float32(1)
	if !p.IsLine() {
		var n4 float32
		if p.Type == patch.CurveConic {
			n2 := wangs.ConicPow2(precision, [3]tess.Point(p.Pts[:3]), p.W, wangs.Identity())
			n4 = n2 * n2
		} else {
			n4 = wangs.CubicPow4(precision, p.Pts, wangs.Identity())
		}
		param = math32.Max(math32.Ceil(wangs.Root4(n4)), 1)
	}
	rotation := math32.Atan2(math32.Abs(tan0.Cross(tan1)), tan0.Dot(tan1))
	n := int(param + math32.Ceil(rotation*perRadian))

	sweep := make([]tess.Point, 2*(n+1))
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		pt := eval(t)
		tan := tangent(t)
		switch {
		case tan != (tess.Point{}):
		case i == 0:
			tan = tan1
		default:
			tan = tan0
		}
		norm := tan.Normalize().Perp().Mul(r)
		sweep[i] = pt.Add(norm)
		sweep[len(sweep)-1-i] = pt.Sub(norm)
	}
	polys := [][]tess.Point{sweep}

	if jcp := p.JoinControlPoint; jcp != p.Pts[0] {
		if fan := ExpandJoin(p.Pts[0], p.Pts[0].Sub(jcp), tan0, p.Stroke, precision); fan != nil {
			polys = append(polys, fan)
		}
	}
	return polys
}

// curveFuncs returns the point and tangent functions of a patch. Tangents
// that vanish at an end fall back to the first distinct control point.
func curveFuncs(p patch.Patch) (eval, tangent func(float32) tess.Point) {
	if p.Type == patch.CurveConic {
		pts := [3]tess.Point(p.Pts[:3])
		return func(t float32) tess.Point { return chop.EvalConic(pts, p.W, t) },
			func(t float32) tess.Point { return chop.ConicTangent(pts, p.W, t) }
	}
	if p.IsLine() {
		d := p.Pts[3].Sub(p.Pts[0])
		return func(t float32) tess.Point { return p.Pts[0].Lerp(p.Pts[3], t) },
			func(float32) tess.Point { return d }
	}
	pts := p.Pts
	return func(t float32) tess.Point { return chop.EvalCubic(pts, t) },
		func(t float32) tess.Point {
			tan := chop.CubicTangent(pts, t)
			if tan != (tess.Point{}) {
				return tan
			}
			s := Step{Verb: VerbCubic, Pts: pts}
			if t < 0.5 {
				return s.startTangent()
			}
			return s.endTangent()
		}
}
