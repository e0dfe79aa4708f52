package tessellate

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/middleout"
	"github.com/gogpu/tess/internal/patch"
)

// curveAttribs are the optional attributes a curve tessellator can fill.
const curveAttribs = AttribColor | AttribExplicitCurveType

// PathCurveTessellator fills paths with two kinds of patches: triangles of
// a middle-out fan over each contour's on-curve points, and one patch per
// curve covering the area between its chord and the curve. Lines add only
// fan vertices.
type PathCurveTessellator struct {
	cfg config
}

// NewCurveTessellator returns a curve tessellator.
func NewCurveTessellator(opts ...Option) (*PathCurveTessellator, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.attribs &= curveAttribs
	return &PathCurveTessellator{cfg: cfg}, nil
}

// Attribs returns the attribute mask patches are written with.
func (t *PathCurveTessellator) Attribs() Attribs { return t.cfg.attribs }

// Prepare writes the patches of every fill in list.
func (t *PathCurveTessellator) Prepare(list DrawList) Result {
	paths := make([]*tess.Path, len(list))
	verbs, fan := 0, 0
	for i, d := range list {
		if !tess.IsFillable(d.Shape) {
			continue
		}
		paths[i] = t.cfg.devicePath(tess.AsPath(d.Shape), d.Matrix)
		verbs += paths[i].CountVerbs()
		fan += countFanTriangles(paths[i])
	}

	w := patch.NewWriter(patch.Config{
		Attribs:       t.cfg.attribs,
		Precision:     t.cfg.precision,
		MaxSegments:   t.cfg.writerMaxSegments(),
		FillTriangles: true,
		Allocator:     t.cfg.alloc,
		PreallocCount: t.cfg.prealloc(curvePreallocCount(verbs, fan)),
	})
	for i, p := range paths {
		if p == nil {
			continue
		}
		w.UpdateColorAttrib(list[i].Color)
		middleout.WritePathInnerFan(p, tess.Identity(), func(tri middleout.Triangle) {
			w.WriteTriangle(tri[0], tri[1], tri[2])
		})
		writeCurves(w, p)
	}
	return t.cfg.fillResult(w, NumCurveTrianglesAtResolveLevel)
}

// writeCurves writes every curve of p; lines are skipped.
func writeCurves(w *patch.Writer, p *tess.Path) {
	for seg := range p.Segments() {
		switch seg.Verb {
		case tess.VerbQuad:
			w.WriteQuadratic([3]tess.Point(seg.Pts))
		case tess.VerbConic:
			w.WriteConic([3]tess.Point(seg.Pts), seg.W)
		case tess.VerbCubic:
			w.WriteCubic([4]tess.Point(seg.Pts))
		}
	}
}

// fillResult closes w and computes the fixed-count draw parameters of a
// fill batch.
func (c *config) fillResult(w *patch.Writer, trianglesAt func(level int) int) Result {
	level := ResolveLevel(w.RequiredSegmentsPow4())
	if w.Triangles() > 0 {
		// A triangle patch needs the template's middle vertex.
		level = max(level, 1)
	}
	res := Result{
		Chunks:       w.Close(),
		Attribs:      c.attribs,
		Mode:         c.mode,
		PatchCount:   w.PatchCount(),
		Dropped:      w.Dropped(),
		ResolveLevel: level,
	}
	res.FixedVertexCount = 3 * trianglesAt(level)
	res.Template = c.static.For(res)
	if res.Dropped > 0 {
		logger().Warn("patches dropped", "dropped", res.Dropped, "written", res.PatchCount)
	}
	return res
}
