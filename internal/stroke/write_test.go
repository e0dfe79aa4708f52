package stroke

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/patch"
)

const strokeAttribs = patch.AttribStrokeParams | patch.AttribJoinControlPoint

func strokePatches(t *testing.T, path string, style tess.StrokeStyle, maxSegments int) ([]patch.Patch, *Writer) {
	t.Helper()
	pw := patch.NewWriter(patch.Config{Attribs: strokeAttribs, Precision: 4})
	pw.UpdateStrokeParamsAttrib(patch.NewStrokeParams(style))
	sw := NewWriter(pw, 4, style.Radius(), maxSegments)
	sw.Write(Steps(tess.MustParsePathData(path), tess.Identity(), style, style.Radius()))
	patches, err := patch.DecodeChunks(pw.Close(), strokeAttribs)
	if err != nil {
		t.Fatalf("DecodeChunks: %v", err)
	}
	return patches, sw
}

func joins(patches []patch.Patch) []patch.Patch {
	var out []patch.Patch
	for _, p := range patches {
		if p.JoinControlPoint != p.Pts[0] {
			out = append(out, p)
		}
	}
	return out
}

func TestWriteRightAngle(t *testing.T) {
	for _, tt := range []struct {
		join      tess.LineJoin
		wantEdges int
		wantTip   bool
	}{
		{tess.LineJoinMiter, 4, true},
		{tess.LineJoinBevel, 3, false},
	} {
		t.Run(tt.join.String(), func(t *testing.T) {
			style := tess.DefaultStrokeStyle().WithWidth(10).WithJoin(tt.join)
			patches, _ := strokePatches(t, "M0 0 L100 0 L100 100", style, 0)
			if len(patches) != 2 {
				t.Fatalf("got %d patches, want 2", len(patches))
			}

			js := joins(patches)
			if len(js) != 1 {
				t.Fatalf("got %d join patches, want 1", len(js))
			}
			j := js[0]
			if j.Pts[0] != tess.Pt(100, 0) || j.JoinControlPoint != tess.Pt(0, 0) {
				t.Errorf("join patch starts at %v joining from %v", j.Pts[0], j.JoinControlPoint)
			}
			if got := NumFixedEdgesInJoinType(j.Stroke.JoinType); got != tt.wantEdges {
				t.Errorf("fixed join edges = %d, want %d", got, tt.wantEdges)
			}

			polys := Outline(j, 4)
			if len(polys) != 2 {
				t.Fatalf("Outline returned %d polygons, want sweep and join", len(polys))
			}
			fan := polys[1]
			if len(fan) != tt.wantEdges {
				t.Fatalf("join fan has %d points, want %d", len(fan), tt.wantEdges)
			}
			hasTip := false
			for _, p := range fan {
				if p.Distance(tess.Pt(105, -5)) < 1e-3 {
					hasTip = true
				}
			}
			if hasTip != tt.wantTip {
				t.Errorf("join fan %v: miter tip present = %v, want %v", fan, hasTip, tt.wantTip)
			}
		})
	}
}

func TestWriteClosedContourJoinsFirstPatch(t *testing.T) {
	style := tess.DefaultStrokeStyle().WithWidth(4)
	patches, _ := strokePatches(t, "M0 0 L10 0 L10 10 Z", style, 0)

	// The first line is held back until the closing line supplies its join.
	var got [][2]tess.Point
	for _, p := range patches {
		got = append(got, [2]tess.Point{p.Pts[0], p.JoinControlPoint})
	}
	want := [][2]tess.Point{
		{{X: 10, Y: 0}, {X: 0, Y: 0}},
		{{X: 10, Y: 10}, {X: 10, Y: 0}},
		{{X: 0, Y: 0}, {X: 10, Y: 10}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patch starts and join points mismatch (-want +got):\n%s", diff)
	}
	if n := len(joins(patches)); n != 3 {
		t.Errorf("closed triangle has %d joins, want 3", n)
	}
}

func TestWriteRoundCaps(t *testing.T) {
	style := tess.DefaultStrokeStyle().WithWidth(4).WithCap(tess.LineCapRound)
	patches, _ := strokePatches(t, "M0 0 L10 0", style, 0)

	circles := 0
	for _, p := range patches {
		if p.IsCircle() {
			circles++
		}
	}
	if circles != 2 {
		t.Errorf("got %d circles, want 2", circles)
	}
	if n := len(joins(patches)); n != 0 {
		t.Errorf("open capped line has %d joins, want 0", n)
	}
}

func TestWriteCusps(t *testing.T) {
	style := tess.DefaultStrokeStyle().WithWidth(2)
	tests := []struct {
		name        string
		path        string
		wantCircles int
		wantLines   int
	}{
		{"quad turnaround", "M0 0 Q100 0 50 0", 1, 2},
		{"cubic cusp", "M0 0 C100 100 0 100 100 0", 1, 0},
		{"flat cubic two cusps", "M0 0 C100 0 -100 0 0 0", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, _ := strokePatches(t, tt.path, style, 0)
			circles, lines := 0, 0
			for _, p := range patches {
				switch {
				case p.IsCircle():
					circles++
				case p.IsLine():
					lines++
				}
			}
			if circles != tt.wantCircles || lines != tt.wantLines {
				t.Errorf("got %d circles and %d lines, want %d and %d", circles, lines, tt.wantCircles, tt.wantLines)
			}
		})
	}
}

func TestWriteChopsToBudget(t *testing.T) {
	const maxSegments = 8
	style := tess.DefaultStrokeStyle().WithWidth(20)
	patches, sw := strokePatches(t, "M0 0 C0 500 500 500 500 0", style, maxSegments)
	if len(patches) < 2 {
		t.Fatalf("big arch was not chopped: %d patches", len(patches))
	}
	if sw.Exhausted() != 0 {
		t.Fatalf("chop depth exhausted %d times", sw.Exhausted())
	}
	for i, p := range patches {
		if p.IsLine() {
			continue
		}
		param, radial := sw.segments(chop.Cubic(p.Pts))
		if param+radial > maxSegments {
			t.Errorf("patch %d needs %v+%v segments, budget %d", i, param, radial, maxSegments)
		}
	}
	// The pieces still meet end to end.
	for i := 1; i < len(patches); i++ {
		if d := patches[i].Pts[0].Distance(patches[i-1].Pts[3]); d > 1e-3 && patches[i].Pts[0] != tess.Pt(0, 0) {
			t.Errorf("gap of %v between patches %d and %d", d, i-1, i)
		}
	}
}

func TestWriteHugeCurveDepthIsBounded(t *testing.T) {
	const maxSegments = 8
	style := tess.DefaultStrokeStyle().WithWidth(2)
	path := tess.NewPath()
	path.MoveTo(0, 0)
	path.CubicTo(0, 1e15, 1e15, 1e15, 1e15, 0)

	pw := patch.NewWriter(patch.Config{Attribs: strokeAttribs, Precision: 4})
	pw.UpdateStrokeParamsAttrib(patch.NewStrokeParams(style))
	sw := NewWriter(pw, 4, style.Radius(), maxSegments)
	sw.Write(Steps(path, tess.Identity(), style, style.Radius()))
	patches, err := patch.DecodeChunks(pw.Close(), strokeAttribs)
	if err != nil {
		t.Fatalf("DecodeChunks: %v", err)
	}

	// Tens of millions of segments are needed; the depth stops at what
	// MaxSegmentsPerCurve segments and a few radial ones would take.
	if sw.Exhausted() == 0 {
		t.Error("chop depth never ran out")
	}
	if len(patches) == 0 || len(patches) > 1<<15 {
		t.Errorf("got %d patches", len(patches))
	}
}

func TestOutlineCircle(t *testing.T) {
	p := patch.Patch{
		Type:   patch.CurveCubic,
		Pts:    [4]tess.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}},
		Stroke: patch.StrokeParams{Radius: 3},
	}
	p.JoinControlPoint = p.Pts[0]
	polys := Outline(p, 4)
	if len(polys) != 1 {
		t.Fatalf("circle outline has %d polygons, want 1", len(polys))
	}
	for _, q := range polys[0] {
		if d := q.Distance(p.Pts[0]); math32.Abs(d-3) > 1e-4 {
			t.Errorf("circle point %v at distance %v, want 3", q, d)
		}
	}
}

func TestOutlineSweepWidth(t *testing.T) {
	p := patch.Patch{
		Type:   patch.CurveCubic,
		Pts:    [4]tess.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}},
		Stroke: patch.StrokeParams{Radius: 2},
	}
	polys := Outline(p, 4)
	if len(polys) != 1 {
		t.Fatalf("line outline has %d polygons, want 1 (no join)", len(polys))
	}
	want := []tess.Point{{X: 0, Y: 2}, {X: 10, Y: 2}, {X: 10, Y: -2}, {X: 0, Y: -2}}
	if diff := cmp.Diff(want, polys[0], approxPoints); diff != "" {
		t.Errorf("line sweep mismatch (-want +got):\n%s", diff)
	}

	p.Stroke.Radius = 0
	if got := Outline(p, 4); got != nil {
		t.Errorf("hairline outline = %v, want nil", got)
	}
}
