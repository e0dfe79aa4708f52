// Package patch serializes curves, triangles and stroke segments into the
// fixed-size patch records a GPU tessellation shader consumes, and manages the
// chunked vertex storage they are written into.
//
// Every patch starts with four control points (32 bytes). Conics and
// triangles are flagged in the fourth point with IEEE infinity so a shader
// can tell them apart without an explicit tag:
//
//	cubic:    p0 p1 p2 p3
//	conic:    p0 p1 p2 {w, +Inf}
//	triangle: p0 p1 p2 {+Inf, +Inf}
//	line:     p0 p0 p1 p1
//
// Optional attributes follow in a fixed order, each present only when its
// bit is set in the writer's [Attribs]:
//
//	FanPoint          float32x2
//	Color             float32x4
//	ExplicitCurveType float32
//	StrokeParams      float32x2 (radius, join type)
//	JoinControlPoint  float32x2
//
// The shader consuming the buffer must be built for the same Attribs.
package patch

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// Attribs selects the optional per-patch attributes.
type Attribs uint8

const (
	// AttribFanPoint adds the wedge fan point.
	AttribFanPoint Attribs = 1 << iota
	// AttribColor adds a per-patch RGBA color.
	AttribColor
	// AttribExplicitCurveType adds a float curve type tag for shaders that
	// cannot rely on infinity detection.
	AttribExplicitCurveType
	// AttribStrokeParams adds the stroke radius and join type.
	AttribStrokeParams
	// AttribJoinControlPoint adds the previous patch's outgoing control
	// point, used to build joins.
	AttribJoinControlPoint
)

// Sizes in bytes.
const (
	pointsSize           = 4 * 8
	fanPointSize         = 8
	colorSize            = 16
	curveTypeSize        = 4
	strokeParamsSize     = 8
	joinControlPointSize = 8
)

var attribNames = []struct {
	a    Attribs
	name string
}{
	{AttribFanPoint, "FanPoint"},
	{AttribColor, "Color"},
	{AttribExplicitCurveType, "ExplicitCurveType"},
	{AttribStrokeParams, "StrokeParams"},
	{AttribJoinControlPoint, "JoinControlPoint"},
}

// Has reports whether every bit of b is set in a.
func (a Attribs) Has(b Attribs) bool {
	return a&b == b
}

// Stride returns the size in bytes of one patch record.
func (a Attribs) Stride() int {
	n := pointsSize
	if a.Has(AttribFanPoint) {
		n += fanPointSize
	}
	if a.Has(AttribColor) {
		n += colorSize
	}
	if a.Has(AttribExplicitCurveType) {
		n += curveTypeSize
	}
	if a.Has(AttribStrokeParams) {
		n += strokeParamsSize
	}
	if a.Has(AttribJoinControlPoint) {
		n += joinControlPointSize
	}
	return n
}

func (a Attribs) String() string {
	if a == 0 {
		return "None"
	}
	var names []string
	for _, n := range attribNames {
		if a.Has(n.a) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// CurveType is the explicit curve type tag.
type CurveType uint8

const (
	CurveCubic CurveType = iota
	CurveConic
	CurveTriangle
)

func (t CurveType) String() string {
	switch t {
	case CurveCubic:
		return "Cubic"
	case CurveConic:
		return "Conic"
	case CurveTriangle:
		return "Triangle"
	default:
		return "CurveType(?)"
	}
}

// StrokeParams is the per-patch stroke attribute. JoinType is the miter
// limit for miter joins, -1 for round joins and 0 for bevel joins.
type StrokeParams struct {
	Radius   float32
	JoinType float32
}

// Join type encodings.
const (
	JoinTypeRound float32 = -1
	JoinTypeBevel float32 = 0
)

// NewStrokeParams returns the attribute for a stroke style. Hairlines get a
// zero radius.
func NewStrokeParams(style tess.StrokeStyle) StrokeParams {
	sp := StrokeParams{Radius: style.Radius()}
	switch style.Join {
	case tess.LineJoinRound:
		sp.JoinType = JoinTypeRound
	case tess.LineJoinBevel:
		sp.JoinType = JoinTypeBevel
	default:
		sp.JoinType = math32.Max(style.MiterLimit, 1)
	}
	return sp
}

// Patch is a decoded patch record.
type Patch struct {
	Type CurveType
	// Pts holds the control points. For conics and triangles only the first
	// three are meaningful.
	Pts [4]tess.Point
	// W is the conic weight.
	W float32

	FanPoint         tess.Point
	Color            tess.Color
	Stroke           StrokeParams
	JoinControlPoint tess.Point
}

// IsLine reports whether the patch is a cubic encoding a straight line as
// p0 p0 p1 p1.
func (p Patch) IsLine() bool {
	return p.Type == CurveCubic && p.Pts[0] == p.Pts[1] && p.Pts[2] == p.Pts[3]
}

// IsCircle reports whether the patch is a stroke circle: four copies of one
// point.
func (p Patch) IsCircle() bool {
	return p.IsLine() && p.Pts[0] == p.Pts[3]
}
