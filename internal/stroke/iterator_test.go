package stroke

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/tess"
)

func line(a, b tess.Point) Step { return Step{Verb: VerbLine, Pts: [4]tess.Point{a, b}} }
func circle(p tess.Point) Step  { return Step{Verb: VerbCircle, Pts: [4]tess.Point{p}} }
func move(p tess.Point) Step    { return Step{Verb: VerbMoveWithinContour, Pts: [4]tess.Point{p}} }

var finished = Step{Verb: VerbContourFinished}

func collect(p *tess.Path, m tess.Matrix, style tess.StrokeStyle) []Step {
	var out []Step
	for s := range Steps(p, m, style, style.Radius()*m.MaxScale()) {
		out = append(out, s)
	}
	return out
}

func TestSteps(t *testing.T) {
	width10 := tess.DefaultStrokeStyle().WithWidth(10)
	pt := tess.Pt

	tests := []struct {
		name  string
		path  string
		style tess.StrokeStyle
		want  []Step
	}{
		{
			name:  "open butt",
			path:  "M0 0 L100 0 L100 100",
			style: width10,
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				line(pt(100, 0), pt(100, 100)),
				move(pt(0, 0)),
				finished,
			},
		},
		{
			name:  "closed adds closing line",
			path:  "M0 0 L100 0 L100 100 Z",
			style: width10,
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				line(pt(100, 0), pt(100, 100)),
				line(pt(100, 100), pt(0, 0)),
				finished,
			},
		},
		{
			name:  "closed at start",
			path:  "M0 0 L100 0 L0 0 Z",
			style: width10,
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				line(pt(100, 0), pt(0, 0)),
				finished,
			},
		},
		{
			name:  "round caps",
			path:  "M0 0 L100 0",
			style: width10.WithCap(tess.LineCapRound),
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				circle(pt(100, 0)),
				circle(pt(0, 0)),
				finished,
			},
		},
		{
			name:  "square caps",
			path:  "M0 0 L100 0",
			style: width10.WithCap(tess.LineCapSquare),
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				line(pt(100, 0), pt(105, 0)),
				move(pt(-5, 0)),
				line(pt(-5, 0), pt(0, 0)),
				finished,
			},
		},
		{
			name:  "degenerate line dropped",
			path:  "M0 0 L0 0 L100 0",
			style: width10,
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				move(pt(0, 0)),
				finished,
			},
		},
		{
			name:  "zero length round",
			path:  "M10 10 L10 10",
			style: width10.WithCap(tess.LineCapRound),
			want:  []Step{circle(pt(10, 10)), finished},
		},
		{
			name:  "zero length square",
			path:  "M10 10 L10 10",
			style: width10.WithCap(tess.LineCapSquare),
			want: []Step{
				move(pt(5, 10)),
				line(pt(5, 10), pt(15, 10)),
				finished,
			},
		},
		{
			name:  "closed point round",
			path:  "M10 10 Z",
			style: width10.WithCap(tess.LineCapRound),
			want:  []Step{circle(pt(10, 10)), finished},
		},
		{
			name:  "zero length butt",
			path:  "M10 10 L10 10",
			style: width10,
			want:  nil,
		},
		{
			name:  "lone move",
			path:  "M10 10",
			style: width10.WithCap(tess.LineCapRound),
			want:  nil,
		},
		{
			name:  "two contours",
			path:  "M0 0 L10 0 M20 0 L30 0",
			style: width10,
			want: []Step{
				line(pt(0, 0), pt(10, 0)),
				move(pt(0, 0)),
				finished,
				line(pt(20, 0), pt(30, 0)),
				move(pt(20, 0)),
				finished,
			},
		},
		{
			name:  "curves pass through",
			path:  "M0 0 Q50 50 100 0",
			style: width10,
			want: []Step{
				{Verb: VerbQuad, Pts: [4]tess.Point{pt(0, 0), pt(50, 50), pt(100, 0)}},
				move(pt(0, 0)),
				finished,
			},
		},
		{
			name:  "zero radius has no caps",
			path:  "M0 0 L100 0",
			style: tess.DefaultStrokeStyle().WithWidth(0).WithCap(tess.LineCapSquare),
			want: []Step{
				line(pt(0, 0), pt(100, 0)),
				move(pt(0, 0)),
				finished,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tess.MustParsePathData(tt.path), tess.Identity(), tt.style)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Steps(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestStepsDeviceSpace(t *testing.T) {
	style := tess.DefaultStrokeStyle().WithWidth(2).WithCap(tess.LineCapSquare)
	got := collect(tess.MustParsePathData("M0 0 L10 0"), tess.Scale(3, 3), style)
	want := []Step{
		line(tess.Pt(0, 0), tess.Pt(30, 0)),
		line(tess.Pt(30, 0), tess.Pt(33, 0)),
		move(tess.Pt(-3, 0)),
		line(tess.Pt(-3, 0), tess.Pt(0, 0)),
		finished,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scaled square caps mismatch (-want +got):\n%s", diff)
	}
}

func TestStepsStopsEarly(t *testing.T) {
	p := tess.MustParsePathData("M0 0 L10 0 L10 10 Z M20 20 L30 30")
	n := 0
	for range Steps(p, tess.Identity(), tess.DefaultStrokeStyle(), 0.5) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d steps after break, want 2", n)
	}
}

func TestVerbString(t *testing.T) {
	if got := VerbMoveWithinContour.String(); got != "MoveWithinContour" {
		t.Errorf("String() = %q", got)
	}
}
