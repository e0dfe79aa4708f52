package stroke

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/patch"
)

// NumFixedEdgesInJoin returns how many edges a stroke instance spends on its
// join before the radial and parametric edges of the curve itself. Round
// joins also spend radial edges on their arc.
func NumFixedEdgesInJoin(j tess.LineJoin) int {
	switch j {
	case tess.LineJoinMiter:
		return 4
	default:
		return 3
	}
}

// NumFixedEdgesInJoinType is NumFixedEdgesInJoin for the encoded join type of
// a stroke patch.
func NumFixedEdgesInJoinType(joinType float32) int {
	if joinType > 0 {
		return NumFixedEdgesInJoin(tess.LineJoinMiter)
	}
	return NumFixedEdgesInJoin(tess.LineJoinBevel)
}

// NumRadialSegmentsPerRadian returns how many segments per radian of rotation
// keep an arc of the given device radius within 1/precision pixels.
func NumRadialSegmentsPerRadian(radius, precision float32) float32 {
	cosTheta := 1 - (1/precision)/radius
	return 0.5 / math32.Acos(math32.Max(cosTheta, -1))
}

// MaxRadialSegmentsInStroke returns the radial segments needed for a half
// turn, the most a convex stroke piece can rotate.
func MaxRadialSegmentsInStroke(radius, precision float32) float32 {
	return math32.Max(math32.Ceil(NumRadialSegmentsPerRadian(radius, precision)*math.Pi), 1)
}

// outerNormal returns the unit normal of tan on the outside of a turn whose
// direction is the sign of cross.
func outerNormal(tan tess.Point, cross float32) tess.Point {
	tan = tan.Normalize()
	if cross >= 0 {
		return tess.Pt(tan.Y, -tan.X)
	}
	return tess.Pt(-tan.Y, tan.X)
}

// ExpandJoin returns the join at center between a stroke arriving along tan0
// and one leaving along tan1, as a triangle fan:
//
//	[center, outer edge of the incoming stroke, ..., outer edge of the outgoing stroke]
//
// Miter joins return 4 points; past the miter limit the tip collapses onto
// the bevel. Bevel joins return 3. Round joins return 3 plus one point per
// extra radial segment. A zero tangent yields nil.
func ExpandJoin(center, tan0, tan1 tess.Point, sp patch.StrokeParams, precision float32) []tess.Point {
	if tan0 == (tess.Point{}) || tan1 == (tess.Point{}) {
		return nil
	}
	cross := tan0.Cross(tan1)
	dot := tan0.Dot(tan1)
	r := sp.Radius
	n0 := outerNormal(tan0, cross)
	n1 := outerNormal(tan1, cross)
	prev := center.Add(n0.Mul(r))
	next := center.Add(n1.Mul(r))

	switch {
	case sp.JoinType > 0:
		tip := prev.Lerp(next, 0.5)
		hypot := tan0.Length() * tan1.Length()
		if 2*hypot < (hypot+dot)*sp.JoinType*sp.JoinType {
			// The tip lies on the outer bisector at r / cos(turn/2).
			bisector := n0.Add(n1)
			tip = center.Add(bisector.Mul(r / (1 + n0.Dot(n1))))
		}
		return []tess.Point{center, prev, tip, next}

	case sp.JoinType < 0:
		theta := math32.Atan2(math32.Abs(cross), dot)
		n := int(math32.Ceil(theta * NumRadialSegmentsPerRadian(r, precision)))
		if n < 1 {
			n = 1
		}
		step := theta / float32(n)
		if cross < 0 {
			step = -step
		}
		out := make([]tess.Point, 0, n+2)
		out = append(out, center, prev)
		for k := 1; k < n; k++ {
			sin, cos := math32.Sincos(step * float32(k))
			v := tess.Pt(n0.X*cos-n0.Y*sin, n0.X*sin+n0.Y*cos)
			out = append(out, center.Add(v.Mul(r)))
		}
		return append(out, next)

	default:
		return []tess.Point{center, prev, next}
	}
}
