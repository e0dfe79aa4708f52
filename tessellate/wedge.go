package tessellate

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/middleout"
	"github.com/gogpu/tess/internal/patch"
)

const wedgeAttribs = AttribFanPoint | AttribColor | AttribExplicitCurveType

// PathWedgeTessellator fills paths with wedges: every verb, lines included,
// becomes a patch that is triangulated together with its contour's fan
// point. No separate inner fan is needed.
type PathWedgeTessellator struct {
	cfg    config
	parser middleout.MidpointContourParser
}

// NewWedgeTessellator returns a wedge tessellator.
func NewWedgeTessellator(opts ...Option) (*PathWedgeTessellator, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.attribs = cfg.attribs&wedgeAttribs | AttribFanPoint
	return &PathWedgeTessellator{cfg: cfg}, nil
}

// Attribs returns the attribute mask patches are written with.
func (t *PathWedgeTessellator) Attribs() Attribs { return t.cfg.attribs }

// Prepare writes the wedges of every fill in list.
func (t *PathWedgeTessellator) Prepare(list DrawList) Result {
	paths := make([]*tess.Path, len(list))
	verbs, contours := 0, 0
	for i, d := range list {
		if !tess.IsFillable(d.Shape) {
			continue
		}
		paths[i] = t.cfg.devicePath(tess.AsPath(d.Shape), d.Matrix)
		verbs += paths[i].CountVerbs()
		contours += countContours(paths[i])
	}

	w := patch.NewWriter(patch.Config{
		Attribs:       t.cfg.attribs,
		Precision:     t.cfg.precision,
		MaxSegments:   t.cfg.writerMaxSegments(),
		Allocator:     t.cfg.alloc,
		PreallocCount: t.cfg.prealloc(wedgePreallocCount(verbs, contours)),
	})
	for i, p := range paths {
		if p == nil {
			continue
		}
		w.UpdateColorAttrib(list[i].Color)
		for _, c := range t.parser.Contours(p) {
			w.UpdateFanPointAttrib(c.Midpoint)
			for _, seg := range c.Segments {
				switch seg.Verb {
				case tess.VerbLine:
					w.WriteLineAsCubic(seg.Pts[0], seg.Pts[1])
				case tess.VerbQuad:
					w.WriteQuadratic([3]tess.Point(seg.Pts))
				case tess.VerbConic:
					w.WriteConic([3]tess.Point(seg.Pts), seg.W)
				case tess.VerbCubic:
					w.WriteCubic([4]tess.Point(seg.Pts))
				}
			}
			if c.End != c.Start {
				w.WriteLineAsCubic(c.End, c.Start)
			}
		}
	}
	return t.cfg.fillResult(w, NumWedgeTrianglesAtResolveLevel)
}
