package middleout

import "github.com/gogpu/tess"

// Contour is one contour of a path as seen by [MidpointContourParser].
type Contour struct {
	// Segments are the contour's drawing verbs, Move and Close excluded.
	Segments []tess.Segment
	// Midpoint is the mean of every verb's end point, plus the start point
	// when the contour does not already end there.
	Midpoint tess.Point
	// Start is the contour's first point.
	Start tess.Point
	// End is the last on-curve point.
	End tess.Point
}

// MidpointContourParser splits a path into contours and computes a fan point
// for each before any of the contour's patches are written.
type MidpointContourParser struct {
	segs []tess.Segment
	pts  []tess.Point
}

// Contours returns every non-empty contour of p. The returned slices are
// reused by the next call.
func (mp *MidpointContourParser) Contours(p *tess.Path) []Contour {
	mp.segs = mp.segs[:0]
	mp.pts = mp.pts[:0]

	type span struct{ from, to int }
	var (
		spans []span
		cur   = -1
	)
	flush := func() {
		if cur >= 0 && len(mp.segs) > cur {
			spans = append(spans, span{cur, len(mp.segs)})
		}
		cur = -1
	}
	for seg := range p.Segments() {
		switch seg.Verb {
		case tess.VerbMove:
			flush()
			cur = len(mp.segs)
		case tess.VerbClose:
			flush()
		default:
			if cur < 0 {
				cur = len(mp.segs)
			}
			// Copy the points: Segment.Pts is only valid during iteration.
			off := len(mp.pts)
			mp.pts = append(mp.pts, seg.Pts...)
			seg.Pts = mp.pts[off:len(mp.pts):len(mp.pts)]
			mp.segs = append(mp.segs, seg)
		}
	}
	flush()

	contours := make([]Contour, 0, len(spans))
	for _, s := range spans {
		segs := mp.segs[s.from:s.to]
		start := segs[0].Pts[0]
		last := segs[len(segs)-1].Pts
		end := last[len(last)-1]

		var sum tess.Point
		n := 0
		for _, seg := range segs {
			sum = sum.Add(seg.Pts[len(seg.Pts)-1])
			n++
		}
		if end != start {
			sum = sum.Add(start)
			n++
		}
		contours = append(contours, Contour{
			Segments: segs,
			Midpoint: sum.Mul(1 / float32(n)),
			Start:    start,
			End:      end,
		})
	}
	return contours
}

// WritePathInnerFan middle-out triangulates the on-curve points of every
// contour in p after mapping them by m, and returns the triangle count.
// Curves contribute only their end points; the patches drawn for them cover
// the area between the chord and the curve.
func WritePathInnerFan(p *tess.Path, m tess.Matrix, emit func(Triangle)) int {
	var t *Triangulator
	total := 0
	for seg := range p.Segments() {
		switch seg.Verb {
		case tess.VerbMove:
			pt := m.TransformPoint(seg.Pts[0])
			if t == nil {
				t = NewTriangulator(pt, p.CountVerbs(), emit)
			} else {
				t.CloseAndMove(pt)
			}
		case tess.VerbClose:
		default:
			if t != nil {
				t.PushVertex(m.TransformPoint(seg.Pts[len(seg.Pts)-1]))
			}
		}
	}
	if t != nil {
		t.Close()
		total = t.Count()
	}
	return total
}
