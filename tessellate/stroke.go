package tessellate

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/patch"
	"github.com/gogpu/tess/internal/stroke"
)

const strokeAttribs = AttribStrokeParams | AttribJoinControlPoint | AttribColor | AttribExplicitCurveType

// HairlineRadius is the device-space radius hairline strokes are drawn
// with.
const HairlineRadius = 0.5

// StrokeTessellator writes stroke patches. Each patch carries the previous
// patch's outgoing control point so the shader can build the join between
// them; caps and cusps become circles and lines.
type StrokeTessellator struct {
	cfg config
}

// NewStrokeTessellator returns a stroke tessellator.
func NewStrokeTessellator(opts ...Option) (*StrokeTessellator, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.attribs = cfg.attribs&strokeAttribs | AttribStrokeParams | AttribJoinControlPoint
	return &StrokeTessellator{cfg: cfg}, nil
}

// Attribs returns the attribute mask patches are written with.
func (t *StrokeTessellator) Attribs() Attribs { return t.cfg.attribs }

// DeviceRadius returns the device-space radius a stroke of style is drawn
// with under m. Non-uniform scales are approximated by the larger scale.
func DeviceRadius(style tess.StrokeStyle, m tess.Matrix) float32 {
	if style.IsHairline() {
		return HairlineRadius
	}
	if a, ok := m.Affine(); ok {
		m = a
	}
	return style.Radius() * m.MaxScale()
}

// Prepare writes the patches of every stroke in list.
func (t *StrokeTessellator) Prepare(list StrokeList) Result {
	paths := make([]*tess.Path, len(list))
	verbs, contours := 0, 0
	for i, s := range list {
		if _, empty := s.Shape.(tess.EmptyShape); empty || s.Shape == nil {
			continue
		}
		paths[i] = tess.AsPath(s.Shape)
		verbs += paths[i].CountVerbs()
		contours += countContours(paths[i])
	}

	// Hardware tessellation chops by parametric plus radial segments in
	// the stroke writer; fixed-count chops parametric segments only.
	writerMax, strokeMax := MaxFixedSegments, 0
	if t.cfg.mode == HardwareTessellation {
		writerMax, strokeMax = 0, t.cfg.maxSegments
	}
	w := patch.NewWriter(patch.Config{
		Attribs:       t.cfg.attribs,
		Precision:     t.cfg.precision,
		MaxSegments:   writerMax,
		Allocator:     t.cfg.alloc,
		PreallocCount: t.cfg.prealloc(strokePreallocCount(verbs, contours)),
	})

	var (
		maxRadial float32
		joinEdges int
		exhausted int
	)
	for i, p := range paths {
		if p == nil {
			continue
		}
		s := list[i]
		radius := DeviceRadius(s.Style, s.Matrix)
		sp := patch.NewStrokeParams(s.Style)
		sp.Radius = radius
		w.UpdateStrokeParamsAttrib(sp)
		w.UpdateColorAttrib(s.Color)

		sw := stroke.NewWriter(w, t.cfg.precision, radius, strokeMax)
		sw.Write(stroke.Steps(p, s.Matrix, s.Style, radius))
		exhausted += sw.Exhausted()

		maxRadial = math32.Max(maxRadial, stroke.MaxRadialSegmentsInStroke(radius, t.cfg.precision))
		joinEdges = max(joinEdges, stroke.NumFixedEdgesInJoin(s.Style.Join))
	}

	res := Result{
		Attribs:   t.cfg.attribs,
		Mode:      t.cfg.mode,
		Exhausted: exhausted,
	}
	if joinEdges > 0 {
		res.FixedEdgeCount = StrokeEdgeCount(joinEdges, w.RequiredSegmentsPow4(), maxRadial)
		res.FixedVertexCount = 2 * res.FixedEdgeCount
	}
	res.Chunks = w.Close()
	res.PatchCount = w.PatchCount()
	res.Dropped = w.Dropped()
	res.Template = t.cfg.static.For(res)
	if res.Dropped > 0 {
		logger().Warn("stroke patches dropped", "dropped", res.Dropped, "written", res.PatchCount)
	}
	if exhausted > 0 {
		logger().Debug("stroke chop depth exhausted", "pieces", exhausted)
	}
	return res
}
