package tessellate

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/internal/wangs"
)

// Fixed-count limits.
const (
	// MaxFixedResolveLevel is the finest resolve level a fixed-count fill
	// template is built for.
	MaxFixedResolveLevel = 5
	// MaxFixedSegments is the segment budget of one fixed-count fill patch.
	MaxFixedSegments = 1 << MaxFixedResolveLevel
	// MaxStrokeEdges caps the edges of one fixed-count stroke instance.
	MaxStrokeEdges = 1<<14 - 1
)

// ResolveLevel returns the resolve level covering a batch whose worst curve
// needs n4^(1/4) segments: ceil(log2(segments)) clamped to
// [0, MaxFixedResolveLevel].
func ResolveLevel(n4 float32) int {
	return min(max(wangs.NextLog16(n4), 0), MaxFixedResolveLevel)
}

// NumCurveTrianglesAtResolveLevel returns the triangles in a curve template
// of 1<<level segments.
func NumCurveTrianglesAtResolveLevel(level int) int {
	return (1 << level) - 1
}

// NumWedgeTrianglesAtResolveLevel returns the triangles in a wedge template:
// the curve triangles plus the one reaching the fan point.
func NumWedgeTrianglesAtResolveLevel(level int) int {
	return 1 << level
}

// StrokeEdgeCount returns the edges one fixed-count stroke instance draws:
// the join's fixed edges plus the worst parametric and radial segment
// counts, capped at MaxStrokeEdges.
func StrokeEdgeCount(joinEdges int, maxParametricPow4, maxRadial float32) int {
	param := math32.Max(math32.Ceil(wangs.Root4(maxParametricPow4)), 1)
	n := float32(joinEdges) + param + math32.Max(maxRadial, 1)
	if n >= MaxStrokeEdges {
		return MaxStrokeEdges
	}
	return int(n)
}

// Preallocation heuristics: curves are chopped a quarter of the time.
func curvePreallocCount(verbs, fanTriangles int) int { return verbs*5/4 + fanTriangles }
func wedgePreallocCount(verbs, contours int) int     { return verbs*5/4 + contours }
func strokePreallocCount(verbs, contours int) int    { return verbs*5/4 + 2*contours }
