package stroke

import (
	"iter"

	"github.com/gogpu/tess"
)

// Verb is one step of a stroke.
type Verb uint8

const (
	VerbLine Verb = iota
	VerbQuad
	VerbConic
	VerbCubic
	// VerbCircle is a round cap or dot centered on Pts[0].
	VerbCircle
	// VerbMoveWithinContour moves to Pts[0] without ending the contour. The
	// next stroke starts there with no join.
	VerbMoveWithinContour
	// VerbContourFinished ends the contour.
	VerbContourFinished
)

func (v Verb) String() string {
	switch v {
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbConic:
		return "Conic"
	case VerbCubic:
		return "Cubic"
	case VerbCircle:
		return "Circle"
	case VerbMoveWithinContour:
		return "MoveWithinContour"
	case VerbContourFinished:
		return "ContourFinished"
	default:
		return "Verb(?)"
	}
}

// Step is one element of the stroke verb stream. Points are in device space.
type Step struct {
	Verb Verb
	Pts  [4]tess.Point
	W    float32
}

// start returns the step's first point.
func (s Step) start() tess.Point { return s.Pts[0] }

// end returns the step's last on-curve point.
func (s Step) end() tess.Point {
	switch s.Verb {
	case VerbLine:
		return s.Pts[1]
	case VerbQuad, VerbConic:
		return s.Pts[2]
	case VerbCubic:
		return s.Pts[3]
	default:
		return s.Pts[0]
	}
}

func (s Step) ctrl() []tess.Point {
	switch s.Verb {
	case VerbLine:
		return s.Pts[:2]
	case VerbQuad, VerbConic:
		return s.Pts[:3]
	case VerbCubic:
		return s.Pts[:4]
	default:
		return s.Pts[:1]
	}
}

// startTangent returns the direction the step leaves its first point.
func (s Step) startTangent() tess.Point {
	pts := s.ctrl()
	for _, p := range pts[1:] {
		if p != pts[0] {
			return p.Sub(pts[0])
		}
	}
	return tess.Point{}
}

// endTangent returns the direction the step arrives at its last point.
func (s Step) endTangent() tess.Point {
	pts := s.ctrl()
	end := pts[len(pts)-1]
	for i := len(pts) - 2; i >= 0; i-- {
		if pts[i] != end {
			return end.Sub(pts[i])
		}
	}
	return tess.Point{}
}

func (s Step) degenerate() bool {
	pts := s.ctrl()
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

// Steps returns the stroke verb stream for p under m. radius is the device
// space stroke radius used for caps; a zero radius (hairline) draws no caps.
func Steps(p *tess.Path, m tess.Matrix, style tess.StrokeStyle, radius float32) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		var (
			contour []Step
			start   tess.Point
			closed  bool
		)
		flush := func() bool {
			defer func() { contour, closed = contour[:0], false }()
			return finishContour(contour, start, closed, style.Cap, radius, yield)
		}

		for seg := range p.Segments() {
			var st Step
			switch seg.Verb {
			case tess.VerbMove:
				if !flush() {
					return
				}
				start = m.TransformPoint(seg.Pts[0])
				continue
			case tess.VerbClose:
				closed = true
				if !flush() {
					return
				}
				continue
			case tess.VerbLine:
				st.Verb = VerbLine
			case tess.VerbQuad:
				st.Verb = VerbQuad
			case tess.VerbConic:
				st.Verb, st.W = VerbConic, seg.W
			case tess.VerbCubic:
				st.Verb = VerbCubic
			}
			m.TransformPoints(st.Pts[:len(seg.Pts)], seg.Pts)
			contour = append(contour, st)
		}
		flush()
	}
}

// finishContour yields one contour's strokes followed by its closing line or
// caps. It reports false when the consumer stopped early.
func finishContour(strokes []Step, start tess.Point, closed bool, cap tess.LineCap, radius float32, yield func(Step) bool) bool {
	drawn := len(strokes) > 0 || closed
	n := 0
	for _, s := range strokes {
		if !s.degenerate() {
			strokes[n] = s
			n++
		}
	}
	strokes = strokes[:n]

	if len(strokes) == 0 {
		// A contour with no length at all. It only shows with caps.
		if !drawn || radius == 0 {
			return true
		}
		switch cap {
		case tess.LineCapRound:
			return yield(Step{Verb: VerbCircle, Pts: [4]tess.Point{start}}) &&
				yield(Step{Verb: VerbContourFinished})
		case tess.LineCapSquare:
			from := start.Sub(tess.Pt(radius, 0))
			to := start.Add(tess.Pt(radius, 0))
			return yield(Step{Verb: VerbMoveWithinContour, Pts: [4]tess.Point{from}}) &&
				yield(Step{Verb: VerbLine, Pts: [4]tess.Point{from, to}}) &&
				yield(Step{Verb: VerbContourFinished})
		}
		return true
	}

	for _, s := range strokes {
		if !yield(s) {
			return false
		}
	}
	first, last := strokes[0], strokes[len(strokes)-1]

	if closed {
		if end := last.end(); end != first.start() {
			if !yield(Step{Verb: VerbLine, Pts: [4]tess.Point{end, first.start()}}) {
				return false
			}
		}
		return yield(Step{Verb: VerbContourFinished})
	}

	if radius == 0 {
		cap = tess.LineCapButt
	}
	switch cap {
	case tess.LineCapRound:
		// Circles end the join chain; the start cap goes last so the first
		// stroke does not join the last one.
		if !yield(Step{Verb: VerbCircle, Pts: [4]tess.Point{last.end()}}) ||
			!yield(Step{Verb: VerbCircle, Pts: [4]tess.Point{first.start()}}) {
			return false
		}
	case tess.LineCapSquare:
		end := last.end()
		endCap := end.Add(last.endTangent().Normalize().Mul(radius))
		begin := first.start()
		beginCap := begin.Sub(first.startTangent().Normalize().Mul(radius))
		if !yield(Step{Verb: VerbLine, Pts: [4]tess.Point{end, endCap}}) ||
			!yield(Step{Verb: VerbMoveWithinContour, Pts: [4]tess.Point{beginCap}}) ||
			!yield(Step{Verb: VerbLine, Pts: [4]tess.Point{beginCap, begin}}) {
			return false
		}
	default:
		if !yield(Step{Verb: VerbMoveWithinContour, Pts: [4]tess.Point{first.start()}}) {
			return false
		}
	}
	return yield(Step{Verb: VerbContourFinished})
}
