package stroke

import (
	"iter"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/patch"
	"github.com/gogpu/tess/internal/wangs"
)

// Writer emits a stroke verb stream as patches. Curves are first chopped
// into convex pieces rotating at most 180 degrees, with cusps replaced by a
// circle and lines, then halved at their mid tangent while they need more
// than the segment budget.
type Writer struct {
	w         *patch.Writer
	precision float32
	maxSegs   float32
	perRadian float32
	chopper   chop.Chopper
}

// NewWriter returns a Writer writing into w. radius is the device-space
// stroke radius. maxSegments bounds the parametric plus radial segments of
// one patch; zero means no bound.
func NewWriter(w *patch.Writer, precision, radius float32, maxSegments int) *Writer {
	sw := &Writer{w: w, precision: precision, maxSegs: float32(maxSegments)}
	if radius > 0 {
		sw.perRadian = NumRadialSegmentsPerRadian(radius, precision)
	}
	return sw
}

// Exhausted returns how many pieces were written over budget because the
// chop depth ran out.
func (sw *Writer) Exhausted() int { return sw.chopper.Exhausted }

// Write writes every step.
func (sw *Writer) Write(steps iter.Seq[Step]) {
	for s := range steps {
		switch s.Verb {
		case VerbLine:
			sw.w.WriteLine(s.Pts[0], s.Pts[1])
		case VerbQuad:
			sw.writeQuadOrConic(chop.Quad([3]tess.Point(s.Pts[:3])))
		case VerbConic:
			sw.writeQuadOrConic(chop.Conic([3]tess.Point(s.Pts[:3]), s.W))
		case VerbCubic:
			sw.writeCubic(s.Pts)
		case VerbCircle:
			sw.w.WriteCircle(s.Pts[0])
			// Nothing joins a cap.
			sw.w.UpdateJoinControlPointAttrib(s.Pts[0])
		case VerbMoveWithinContour:
			sw.w.UpdateJoinControlPointAttrib(s.Pts[0])
		case VerbContourFinished:
			sw.w.WriteDeferredStrokePatch()
		}
	}
}

func (sw *Writer) writeQuadOrConic(c chop.Curve) {
	p := c.P3()
	if !chop.ConicHasCusp(p) {
		sw.writeConvex(c)
		return
	}
	// A flat curve that turns around: stroke it as two lines meeting at the
	// turnaround, with a circle covering the point.
	cusp := c.Eval(c.MidTangent())
	sw.w.WriteCircle(cusp)
	sw.w.WriteLine(p[0], cusp)
	sw.w.WriteLine(cusp, p[2])
}

func (sw *Writer) writeCubic(p [4]tess.Point) {
	t, n, cusps := chop.FindCubicConvex180Chops(p)
	switch n {
	case 0:
		sw.writeConvex(chop.Cubic(p))
	case 1:
		c := chop.CubicAt(p, t[0])
		if cusps {
			sw.w.WriteCircle(c[3])
			// Collapse the control points next to the cusp onto it so both
			// halves start and end with tangents pointing at it.
			c[2], c[4] = c[3], c[3]
		}
		sw.writeConvex(chop.Cubic([4]tess.Point(c[0:4])))
		sw.writeConvex(chop.Cubic([4]tess.Point(c[3:7])))
	default:
		c := chop.CubicAt2(p, t[0], t[1])
		if cusps {
			sw.w.WriteCircle(c[3])
			sw.w.WriteCircle(c[6])
			sw.w.WriteLine(c[0], c[3])
			sw.w.WriteLine(c[3], c[6])
			sw.w.WriteLine(c[6], c[9])
			return
		}
		for i := 0; i < 3; i++ {
			sw.writeConvex(chop.Cubic([4]tess.Point(c[3*i : 3*i+4])))
		}
	}
}

// writeConvex writes a convex piece, halving it at its mid tangent until it
// fits the segment budget. The chop depth is sized for at most
// MaxSegmentsPerCurve segments; larger pieces are emitted once it runs out.
func (sw *Writer) writeConvex(c chop.Curve) {
	if sw.maxSegs <= 0 {
		sw.emit(c)
		return
	}
	param, radial := sw.segments(c)
	if param+radial <= sw.maxSegs {
		sw.emit(c)
		return
	}
	depth := chop.MaxDepth(math32.Min(param, chop.MaxSegmentsPerCurve), math32.Min(radial, chop.MaxSegmentsPerCurve))
	sw.chopper.Split(c, depth, func(c chop.Curve) bool {
		param, radial := sw.segments(c)
		return param+radial > sw.maxSegs
	}, chop.Curve.MidTangent, sw.emit)
}

// segments returns the parametric and radial segments a convex piece needs.
func (sw *Writer) segments(c chop.Curve) (param, radial float32) {
	param = math32.Max(math32.Ceil(wangs.Root4(c.SegmentsPow4(sw.precision, wangs.Identity()))), 1)
	s := stepOf(c)
	tan0, tan1 := s.startTangent(), s.endTangent()
	rotation := math32.Atan2(math32.Abs(tan0.Cross(tan1)), tan0.Dot(tan1))
	radial = math32.Max(math32.Ceil(rotation*sw.perRadian), 1)
	return param, radial
}

func (sw *Writer) emit(c chop.Curve) {
	switch c.Verb {
	case tess.VerbCubic:
		sw.w.WriteCubic(c.Pts)
	case tess.VerbConic:
		sw.w.WriteConic(c.P3(), c.W)
	default:
		sw.w.WriteQuadratic(c.P3())
	}
}

func stepOf(c chop.Curve) Step {
	switch c.Verb {
	case tess.VerbCubic:
		return Step{Verb: VerbCubic, Pts: c.Pts}
	case tess.VerbConic:
		return Step{Verb: VerbConic, Pts: c.Pts, W: c.W}
	default:
		return Step{Verb: VerbQuad, Pts: c.Pts}
	}
}
