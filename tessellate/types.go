package tessellate

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/patch"
)

// Re-exported patch types, so callers outside this module can configure
// attributes and read results.
type (
	// Attribs selects the optional per-patch attributes.
	Attribs = patch.Attribs
	// Allocator hands out vertex storage for patch chunks.
	Allocator = patch.Allocator
	// Arena is a CPU Allocator with an optional byte budget.
	Arena = patch.Arena
	// VertexChunkArray is the chunked patch stream a Prepare call produces.
	VertexChunkArray = patch.VertexChunkArray
	// Patch is one decoded patch record.
	Patch = patch.Patch
	// CurveType is a decoded patch's kind.
	CurveType = patch.CurveType
)

// Decoded patch kinds.
const (
	CurveTypeCubic    = patch.CurveCubic
	CurveTypeConic    = patch.CurveConic
	CurveTypeTriangle = patch.CurveTriangle
)

// Optional patch attributes.
const (
	AttribFanPoint          = patch.AttribFanPoint
	AttribColor             = patch.AttribColor
	AttribExplicitCurveType = patch.AttribExplicitCurveType
	AttribStrokeParams      = patch.AttribStrokeParams
	AttribJoinControlPoint  = patch.AttribJoinControlPoint
)

// NewArena returns a CPU allocator limited to budgetBytes. Zero means
// unlimited.
func NewArena(budgetBytes int) *Arena { return patch.NewArena(budgetBytes) }

// Decode parses every patch in res.
func Decode(res Result) ([]Patch, error) {
	if res.Chunks == nil {
		return nil, nil
	}
	return patch.DecodeChunks(res.Chunks, res.Attribs)
}

// PathDraw is one filled shape.
type PathDraw struct {
	Shape  tess.Shape
	Matrix tess.Matrix
	// Color is written when AttribColor is enabled.
	Color tess.Color
}

// DrawList is a batch of fills prepared together.
type DrawList []PathDraw

// PathStroke is one stroked shape.
type PathStroke struct {
	Shape  tess.Shape
	Matrix tess.Matrix
	Style  tess.StrokeStyle
	Color  tess.Color
}

// StrokeList is a batch of strokes prepared together.
type StrokeList []PathStroke

// Result is the output of one Prepare call.
type Result struct {
	// Chunks holds the patch stream, in path traversal order.
	Chunks *VertexChunkArray
	// Attribs is the attribute mask the patches were written with.
	Attribs Attribs
	Mode    Mode
	// PatchCount is the number of patches written.
	PatchCount int
	// Dropped counts patches lost to allocation failure.
	Dropped int
	// ResolveLevel is log2 of the segment count every fill patch of the
	// batch is drawn with in fixed-count mode.
	ResolveLevel int
	// FixedVertexCount is how many template vertices one instance draws
	// in fixed-count mode: the index count for fills, twice the edge count
	// for strokes.
	FixedVertexCount int
	// FixedEdgeCount is the number of edges one stroke instance draws in
	// fixed-count mode. Zero for fills.
	FixedEdgeCount int
	// Exhausted counts curve pieces written above the segment budget
	// because chopping hit its depth bound.
	Exhausted int
	// Template is the mesh a fixed-count draw instances. Nil in hardware
	// mode and for empty results.
	Template *Template
}

// IsEmpty reports whether the result holds no patches.
func (r Result) IsEmpty() bool { return r.PatchCount == 0 }

// InstanceCount is the number of instances a fixed-count draw issues.
func (r Result) InstanceCount() int { return r.PatchCount }

// devicePath maps p into device space, pre-chopping it against the
// viewport when one is set.
func (c *config) devicePath(p *tess.Path, m tess.Matrix) *tess.Path {
	if c.hasViewport {
		p = chop.PreChopPathCurves(c.precision, p, m, c.viewport)
	}
	if a, ok := m.Affine(); ok {
		m = a
	} else {
		logger().Debug("perspective transform, projecting control points")
	}
	if m.IsIdentity() {
		return p
	}
	return p.Transform(m)
}

// countContours returns the number of Move verbs in p.
func countContours(p *tess.Path) int {
	n := 0
	for _, v := range p.Verbs() {
		if v == tess.VerbMove {
			n++
		}
	}
	return n
}

// countFanTriangles returns how many triangles the inner fan of p has: two
// fewer than the on-curve points of each contour.
func countFanTriangles(p *tess.Path) int {
	total, pts := 0, 0
	flush := func() {
		if pts > 2 {
			total += pts - 2
		}
		pts = 0
	}
	for _, v := range p.Verbs() {
		switch v {
		case tess.VerbMove:
			flush()
			pts = 1
		case tess.VerbClose:
		default:
			pts++
		}
	}
	flush()
	return total
}
