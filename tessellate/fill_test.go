package tessellate

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/wangs"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approxPoint = cmp.Comparer(func(a, b tess.Point) bool { return a.Distance(b) <= 1e-3 })

func pathDraw(d string, m tess.Matrix) PathDraw {
	return PathDraw{Shape: tess.PathShape{Path: tess.MustParsePathData(d)}, Matrix: m, Color: tess.White}
}

func decode(t *testing.T, res Result) []Patch {
	t.Helper()
	patches, err := Decode(res)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(patches) != res.PatchCount {
		t.Fatalf("decoded %d patches, PatchCount = %d", len(patches), res.PatchCount)
	}
	return patches
}

// bowl needs about 21 segments at precision 4: both second differences
// have length 100*sqrt(2).
const bowl = "M0 0 C100 0 100 100 0 100 Z"

func TestResolveLevel(t *testing.T) {
	for _, tt := range []struct {
		segments float32
		want     int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{16, 4},
		{17, 5},
		{32, 5},
		{1000, 5},
	} {
		n4 := tt.segments * tt.segments * tt.segments * tt.segments
		if got := ResolveLevel(n4); got != tt.want {
			t.Errorf("ResolveLevel(%v^4) = %d, want %d", tt.segments, got, tt.want)
		}
	}
}

func TestCurvePrepareResolveLevel(t *testing.T) {
	tests := []struct {
		name      string
		m         tess.Matrix
		wantLevel int
	}{
		{"identity", tess.Identity(), 5},
		{"quarter scale", tess.Scale(0.25, 0.25), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := NewCurveTessellator()
			if err != nil {
				t.Fatal(err)
			}
			res := ct.Prepare(DrawList{pathDraw(bowl, tt.m)})
			if res.ResolveLevel != tt.wantLevel {
				t.Errorf("ResolveLevel = %d, want %d", res.ResolveLevel, tt.wantLevel)
			}
			if want := 3 * NumCurveTrianglesAtResolveLevel(tt.wantLevel); res.FixedVertexCount != want {
				t.Errorf("FixedVertexCount = %d, want %d", res.FixedVertexCount, want)
			}
			// Two on-curve points: no fan triangles, one curve.
			if res.PatchCount != 1 {
				t.Errorf("PatchCount = %d, want 1", res.PatchCount)
			}
		})
	}
}

func TestCurveInnerFan(t *testing.T) {
	ct, err := NewCurveTessellator()
	if err != nil {
		t.Fatal(err)
	}
	res := ct.Prepare(DrawList{pathDraw("M0 0 L100 0 L100 100 L0 100 Z", tess.Translate(10, 20))})
	patches := decode(t, res)
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2 fan triangles", len(patches))
	}
	var area float32
	for _, p := range patches {
		if p.Type != CurveTypeTriangle {
			t.Errorf("patch type = %v, want Triangle", p.Type)
		}
		a, b, c := p.Pts[0], p.Pts[1], p.Pts[2]
		area += math32.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
		for _, pt := range p.Pts[:3] {
			if !tess.RectXYWH(10, 20, 100, 100).Contains(pt) {
				t.Errorf("triangle vertex %v outside the translated square", pt)
			}
		}
	}
	if math32.Abs(area-10000) > 1e-2 {
		t.Errorf("fan area = %v, want 10000", area)
	}
	if res.ResolveLevel != 1 {
		t.Errorf("ResolveLevel = %d, want 1 for triangle patches", res.ResolveLevel)
	}
}

func TestCurveHardwareChops(t *testing.T) {
	ct, err := NewCurveTessellator(WithMode(HardwareTessellation), WithMaxSegments(8))
	if err != nil {
		t.Fatal(err)
	}
	res := ct.Prepare(DrawList{pathDraw(bowl, tess.Identity())})
	patches := decode(t, res)

	var curves, triangles int
	for _, p := range patches {
		if p.Type == CurveTypeTriangle {
			triangles++
		} else {
			curves++
		}
	}
	// 21 segments at 8 per patch: three pieces and the two triangles that
	// fill between their chords and the original chord.
	if curves != 3 || triangles != 2 {
		t.Errorf("got %d curves, %d triangles, want 3, 2", curves, triangles)
	}
	if res.Mode != HardwareTessellation {
		t.Errorf("Mode = %v", res.Mode)
	}
}

func TestWedgePrepare(t *testing.T) {
	wt, err := NewWedgeTessellator()
	if err != nil {
		t.Fatal(err)
	}
	res := wt.Prepare(DrawList{pathDraw("M0 0 L100 0 L100 100", tess.Identity())})
	patches := decode(t, res)
	if len(patches) != 3 {
		t.Fatalf("got %d wedges, want 2 lines and the implicit close", len(patches))
	}
	fan := tess.Pt(200.0/3, 100.0/3)
	ends := []tess.Point{tess.Pt(100, 0), tess.Pt(100, 100), tess.Pt(0, 0)}
	for i, p := range patches {
		diff(t, fan, p.FanPoint, approxPoint)
		diff(t, ends[i], p.Pts[3], approxPoint)
		// Lines are uniform cubics, not p0 p0 p1 p1.
		if p.IsLine() {
			t.Errorf("wedge %d written as a degenerate line", i)
		}
	}
	if res.ResolveLevel != 0 || res.FixedVertexCount != 3 {
		t.Errorf("ResolveLevel, FixedVertexCount = %d, %d, want 0, 3", res.ResolveLevel, res.FixedVertexCount)
	}
}

func TestWedgeFanPointPerContour(t *testing.T) {
	wt, err := NewWedgeTessellator()
	if err != nil {
		t.Fatal(err)
	}
	res := wt.Prepare(DrawList{
		{Shape: tess.RectShape{Rect: tess.RectXYWH(0, 0, 10, 10)}, Matrix: tess.Identity()},
		{Shape: tess.RectShape{Rect: tess.RectXYWH(100, 0, 10, 10)}, Matrix: tess.Identity()},
	})
	patches := decode(t, res)
	if len(patches) != 8 {
		t.Fatalf("got %d wedges, want 8", len(patches))
	}
	for i, p := range patches {
		want := tess.Pt(5, 5)
		if i >= 4 {
			want = tess.Pt(105, 5)
		}
		diff(t, want, p.FanPoint, approxPoint)
	}
}

func TestPointCubicIsHarmless(t *testing.T) {
	const point = "M10 10 C10 10 10 10 10 10 Z"
	ct, err := NewCurveTessellator()
	if err != nil {
		t.Fatal(err)
	}
	wt, err := NewWedgeTessellator()
	if err != nil {
		t.Fatal(err)
	}
	for name, res := range map[string]Result{
		"curve": ct.Prepare(DrawList{pathDraw(point, tess.Identity())}),
		"wedge": wt.Prepare(DrawList{pathDraw(point, tess.Identity())}),
	} {
		t.Run(name, func(t *testing.T) {
			patches := decode(t, res)
			if len(patches) > 1 {
				t.Errorf("got %d patches, want at most 1", len(patches))
			}
			for _, p := range patches {
				for _, pt := range p.Pts {
					if pt != tess.Pt(10, 10) {
						t.Errorf("control point %v, want (10, 10)", pt)
					}
				}
			}
			if res.ResolveLevel != 0 {
				t.Errorf("ResolveLevel = %d, want 0", res.ResolveLevel)
			}
		})
	}
}

func TestSkipsUnfillableShapes(t *testing.T) {
	ct, err := NewCurveTessellator()
	if err != nil {
		t.Fatal(err)
	}
	res := ct.Prepare(DrawList{
		{Shape: tess.EmptyShape{}, Matrix: tess.Identity()},
		{Shape: tess.LineShape{P0: tess.Pt(0, 0), P1: tess.Pt(10, 10)}, Matrix: tess.Identity()},
		{Shape: tess.RectShape{}, Matrix: tess.Identity()},
	})
	if !res.IsEmpty() {
		t.Errorf("PatchCount = %d, want 0", res.PatchCount)
	}
}

func TestViewportCullsOffscreenCurves(t *testing.T) {
	const offscreen = "M200 200 C300 200 300 300 200 300 Z"
	for _, tt := range []struct {
		name string
		opts []Option
		want int
	}{
		{"no viewport", nil, 1},
		{"viewport", []Option{WithViewport(tess.RectXYWH(0, 0, 100, 100))}, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := NewCurveTessellator(tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			res := ct.Prepare(DrawList{pathDraw(offscreen, tess.Identity())})
			if res.PatchCount != tt.want {
				t.Errorf("PatchCount = %d, want %d", res.PatchCount, tt.want)
			}
		})
	}
}

func TestColorAttrib(t *testing.T) {
	wt, err := NewWedgeTessellator(WithAttribs(AttribColor))
	if err != nil {
		t.Fatal(err)
	}
	red := tess.RGBA(1, 0, 0, 1)
	res := wt.Prepare(DrawList{{Shape: tess.RectShape{Rect: tess.RectXYWH(0, 0, 1, 1)}, Matrix: tess.Identity(), Color: red}})
	for _, p := range decode(t, res) {
		diff(t, red, p.Color)
	}
}

func TestAllocatorExhaustionDropsPatches(t *testing.T) {
	stride := (AttribFanPoint).Stride()
	wt, err := NewWedgeTessellator(WithAllocator(NewArena(stride)))
	if err != nil {
		t.Fatal(err)
	}
	res := wt.Prepare(DrawList{pathDraw("M0 0 L100 0 L100 100 L0 100 Z", tess.Identity())})
	if res.PatchCount+res.Dropped != 4 {
		t.Errorf("PatchCount + Dropped = %d + %d, want 4", res.PatchCount, res.Dropped)
	}
	if res.Dropped == 0 {
		t.Error("no patches dropped with a one-patch budget")
	}
}

func TestCountHelpers(t *testing.T) {
	p := tess.MustParsePathData("M0 0 L10 0 Q10 10 0 10 Z M20 20 L30 20 M40 40 L50 40 L50 50 L40 50 Z")
	if got := countContours(p); got != 3 {
		t.Errorf("countContours = %d, want 3", got)
	}
	// 3 points -> 1, 2 points -> 0, 4 points -> 2.
	if got := countFanTriangles(p); got != 3 {
		t.Errorf("countFanTriangles = %d, want 3", got)
	}
	if got := curvePreallocCount(p.CountVerbs(), 3); got != p.CountVerbs()*5/4+3 {
		t.Errorf("curvePreallocCount = %d", got)
	}
}

func TestWangAgreesWithPrepare(t *testing.T) {
	pts := [4]tess.Point{tess.Pt(0, 0), tess.Pt(100, 0), tess.Pt(100, 100), tess.Pt(0, 100)}
	want := ResolveLevel(wangs.CubicPow4(wangs.DefaultPrecision, pts, wangs.Identity()))
	wt, err := NewWedgeTessellator()
	if err != nil {
		t.Fatal(err)
	}
	if got := wt.Prepare(DrawList{pathDraw(bowl, tess.Identity())}).ResolveLevel; got != want {
		t.Errorf("ResolveLevel = %d, want %d", got, want)
	}
}
