package patch

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/middleout"
	"github.com/gogpu/tess/internal/wangs"
)

// MaxSegmentsPerCurve bounds the estimate used to decide how many pieces a
// curve is chopped into. Curves needing more should be pre-chopped.
const MaxSegmentsPerCurve = chop.MaxSegmentsPerCurve

// Config configures a Writer.
type Config struct {
	Attribs Attribs
	// Precision is the reciprocal of the pixel tolerance.
	Precision float32
	// MaxSegments is the most line segments the GPU will produce for one
	// patch. Curves needing more are chopped into equal-T pieces. Zero
	// disables chopping; the requirement is still recorded.
	MaxSegments int
	// FillTriangles middle-out triangulates the end points of chopped
	// pieces so a separate inner fan stays watertight.
	FillTriangles bool
	// DiscardFlatCurves skips curves that need a single segment. Only valid
	// when another pass covers the chord, as the curve tessellator's inner
	// fan does.
	DiscardFlatCurves bool
	// Allocator backs the vertex chunks. Nil uses an unlimited Arena.
	Allocator Allocator
	// PreallocCount sizes the first chunk.
	PreallocCount int
}

type pending struct {
	pts       [4]tess.Point
	curveType CurveType
	fan       tess.Point
	color     tess.Color
	stroke    StrokeParams
}

// Writer serializes patches into a VertexChunkArray.
//
// Stroke writers (Attribs with AttribJoinControlPoint) track the previous
// patch's outgoing control point. The first patch of each contour has no
// predecessor yet, so it is held back until [Writer.WriteDeferredStrokePatch]
// supplies the contour's final control point and closes the loop.
type Writer struct {
	attribs       Attribs
	precision     float32
	maxSegsPow4   float32
	fillTriangles bool
	discardFlat   bool

	arr     VertexChunkArray
	builder *ChunkBuilder

	fan    tess.Point
	color  tess.Color
	stroke StrokeParams
	join   tess.Point

	trackJoins  bool
	hasJoin     bool
	deferred    pending
	hasDeferred bool

	requiredPow4 float32
	triangles    int
	ptsScratch   []tess.Point
	wScratch     []float32
	triScratch   []tess.Point
}

// NewWriter returns a Writer for cfg.
func NewWriter(cfg Config) *Writer {
	if cfg.Precision <= 0 {
		cfg.Precision = wangs.DefaultPrecision
	}
	alloc := cfg.Allocator
	if alloc == nil {
		alloc = NewArena(0)
	}
	w := &Writer{
		attribs:       cfg.Attribs,
		precision:     cfg.Precision,
		fillTriangles: cfg.FillTriangles,
		discardFlat:   cfg.DiscardFlatCurves,
		trackJoins:    cfg.Attribs.Has(AttribJoinControlPoint),
		color:         tess.White,
	}
	if cfg.MaxSegments > 0 {
		m := float32(cfg.MaxSegments)
		w.maxSegsPow4 = m * m * m * m
	}
	prealloc := cfg.PreallocCount
	if prealloc <= 0 {
		prealloc = DefaultMinChunkPatches
	}
	w.builder = NewChunkBuilder(alloc, &w.arr, cfg.Attribs.Stride(), prealloc)
	return w
}

// Attribs returns the writer's attribute mask.
func (w *Writer) Attribs() Attribs { return w.attribs }

// UpdateFanPointAttrib sets the fan point written with subsequent patches.
func (w *Writer) UpdateFanPointAttrib(p tess.Point) { w.fan = p }

// UpdateColorAttrib sets the color written with subsequent patches.
func (w *Writer) UpdateColorAttrib(c tess.Color) { w.color = c }

// UpdateStrokeParamsAttrib sets the stroke parameters written with
// subsequent patches.
func (w *Writer) UpdateStrokeParamsAttrib(sp StrokeParams) { w.stroke = sp }

// UpdateJoinControlPointAttrib sets the control point the next patch joins
// from. Setting it to the next patch's first point means "no join".
func (w *Writer) UpdateJoinControlPointAttrib(p tess.Point) {
	w.join = p
	w.hasJoin = true
}

// RequiredSegmentsPow4 returns the largest segment requirement, raised to the
// 4th power, of any patch written so far. With chopping enabled it never
// exceeds MaxSegments^4.
func (w *Writer) RequiredSegmentsPow4() float32 { return w.requiredPow4 }

// Triangles returns how many triangle patches have been written.
func (w *Writer) Triangles() int { return w.triangles }

// WriteCubic writes the cubic p, chopping it if it needs too many segments.
func (w *Writer) WriteCubic(p [4]tess.Point) {
	n4 := wangs.CubicPow4(w.precision, p, wangs.Identity())
	if w.discardFlat && n4 <= 1 {
		return
	}
	if n := w.accountForCurve(n4); n > 1 {
		w.ptsScratch = chop.CubicEqual(p, n, w.ptsScratch[:0])
		for i := 0; i < n; i++ {
			w.writePatch([4]tess.Point(w.ptsScratch[3*i:3*i+4]), CurveCubic)
		}
		w.fillChopTriangles(w.ptsScratch, 3)
		return
	}
	w.writePatch(p, CurveCubic)
}

// WriteQuadratic writes the quadratic p as the equivalent cubic.
func (w *Writer) WriteQuadratic(p [3]tess.Point) {
	n4 := wangs.QuadraticPow4(w.precision, p, wangs.Identity())
	if w.discardFlat && n4 <= 1 {
		return
	}
	if n := w.accountForCurve(n4); n > 1 {
		w.ptsScratch = chop.QuadEqual(p, n, w.ptsScratch[:0])
		for i := 0; i < n; i++ {
			w.writePatch(chop.QuadToCubic([3]tess.Point(w.ptsScratch[2*i:2*i+3])), CurveCubic)
		}
		w.fillChopTriangles(w.ptsScratch, 2)
		return
	}
	w.writePatch(chop.QuadToCubic(p), CurveCubic)
}

// WriteConic writes the conic (p, weight).
func (w *Writer) WriteConic(p [3]tess.Point, weight float32) {
	n2 := wangs.ConicPow2(w.precision, p, weight, wangs.Identity())
	if w.discardFlat && n2 <= 1 {
		return
	}
	if n := w.accountForCurve(n2 * n2); n > 1 {
		w.ptsScratch, w.wScratch = chop.ConicEqual(p, weight, n, w.ptsScratch[:0], w.wScratch[:0])
		for i := 0; i < n; i++ {
			q := w.ptsScratch[2*i : 2*i+3]
			w.writePatch(conicPoints(q[0], q[1], q[2], w.wScratch[i]), CurveConic)
		}
		w.fillChopTriangles(w.ptsScratch, 2)
		return
	}
	w.writePatch(conicPoints(p[0], p[1], p[2], weight), CurveConic)
}

// WriteLine writes a straight line as the degenerate cubic p0 p0 p1 p1.
func (w *Writer) WriteLine(p0, p1 tess.Point) {
	w.writePatch([4]tess.Point{p0, p0, p1, p1}, CurveCubic)
}

// WriteLineAsCubic writes a straight line as a cubic with control points at
// 1/3 and 2/3, which parametrizes it uniformly.
func (w *Writer) WriteLineAsCubic(p0, p1 tess.Point) {
	w.writePatch(chop.LineToCubic(p0, p1), CurveCubic)
}

// WriteTriangle writes a filled triangle.
func (w *Writer) WriteTriangle(a, b, c tess.Point) {
	inf := math32.Inf(1)
	w.triangles++
	w.emit([4]tess.Point{a, b, c, {X: inf, Y: inf}}, CurveTriangle, w.join)
}

// WriteCircle writes a stroke circle centered on p: four copies of p whose
// join control point is p itself. Circles are never deferred and leave the
// tracked join untouched.
func (w *Writer) WriteCircle(p tess.Point) {
	w.emit([4]tess.Point{p, p, p, p}, CurveCubic, p)
}

// WriteDeferredStrokePatch flushes the contour's held-back first patch with
// the current join control point and resets join tracking for the next
// contour.
func (w *Writer) WriteDeferredStrokePatch() {
	if w.hasDeferred {
		d := w.deferred
		fan, color, stroke := w.fan, w.color, w.stroke
		w.fan, w.color, w.stroke = d.fan, d.color, d.stroke
		w.emit(d.pts, d.curveType, w.join)
		w.fan, w.color, w.stroke = fan, color, stroke
		w.hasDeferred = false
	}
	w.hasJoin = false
}

// Close finishes writing and returns the chunks. The writer must not be
// used afterwards.
func (w *Writer) Close() *VertexChunkArray {
	w.WriteDeferredStrokePatch()
	w.builder.Close()
	return &w.arr
}

// PatchCount returns the number of records stored so far.
func (w *Writer) PatchCount() int { return w.arr.PatchCount() }

// Dropped returns the number of records lost to allocation failure.
func (w *Writer) Dropped() int { return w.builder.Dropped() }

// accountForCurve records a curve's requirement and returns how many pieces
// it must be chopped into, or 0 if it fits as is.
func (w *Writer) accountForCurve(n4 float32) int {
	if !(n4 > 0) {
		n4 = 0
	}
	if w.maxSegsPow4 == 0 || n4 <= w.maxSegsPow4 {
		w.requiredPow4 = math32.Max(w.requiredPow4, n4)
		return 0
	}
	const maxPow4 = float32(MaxSegmentsPerCurve) * MaxSegmentsPerCurve * MaxSegmentsPerCurve * MaxSegmentsPerCurve
	w.requiredPow4 = math32.Max(w.requiredPow4, w.maxSegsPow4)
	return int(math32.Ceil(wangs.Root4(math32.Min(n4, maxPow4) / w.maxSegsPow4)))
}

// fillChopTriangles triangulates the on-curve end points of chopped pieces
// (every step-th point) when triangle filling is on.
func (w *Writer) fillChopTriangles(pts []tess.Point, step int) {
	if !w.fillTriangles {
		return
	}
	w.triScratch = w.triScratch[:0]
	for i := 0; i < len(pts); i += step {
		w.triScratch = append(w.triScratch, pts[i])
	}
	for _, t := range middleout.Triangulate(w.triScratch) {
		w.WriteTriangle(t[0], t[1], t[2])
	}
}

func conicPoints(p0, p1, p2 tess.Point, weight float32) [4]tess.Point {
	return [4]tess.Point{p0, p1, p2, {X: weight, Y: math32.Inf(1)}}
}

// writePatch emits a curve patch, deferring it if it is the first stroke of
// a contour, and updates the tracked join control point.
func (w *Writer) writePatch(p [4]tess.Point, curveType CurveType) {
	if w.trackJoins && !w.hasJoin {
		w.deferred = pending{pts: p, curveType: curveType, fan: w.fan, color: w.color, stroke: w.stroke}
		w.hasDeferred = true
	} else {
		w.emit(p, curveType, w.join)
	}
	if w.trackJoins {
		w.UpdateJoinControlPointAttrib(outgoingControlPoint(p, curveType))
	}
}

// outgoingControlPoint returns the last control point distinct from the end
// point, which fixes the outgoing tangent.
func outgoingControlPoint(p [4]tess.Point, curveType CurveType) tess.Point {
	if curveType == CurveCubic {
		switch {
		case p[2] != p[3]:
			return p[2]
		case p[1] != p[3]:
			return p[1]
		default:
			return p[0]
		}
	}
	if p[1] != p[2] {
		return p[1]
	}
	return p[0]
}

// emit serializes one record.
func (w *Writer) emit(p [4]tess.Point, curveType CurveType, join tess.Point) {
	buf := w.builder.Append()
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, pt := range p {
		put(pt.X)
		put(pt.Y)
	}
	if w.attribs.Has(AttribFanPoint) {
		put(w.fan.X)
		put(w.fan.Y)
	}
	if w.attribs.Has(AttribColor) {
		put(w.color.R)
		put(w.color.G)
		put(w.color.B)
		put(w.color.A)
	}
	if w.attribs.Has(AttribExplicitCurveType) {
		put(float32(curveType))
	}
	if w.attribs.Has(AttribStrokeParams) {
		put(w.stroke.Radius)
		put(w.stroke.JoinType)
	}
	if w.attribs.Has(AttribJoinControlPoint) {
		put(join.X)
		put(join.Y)
	}
}
