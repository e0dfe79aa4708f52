package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/tessellate"
)

func covered(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) != color.RGBA{255, 255, 255, 255}
}

func TestRenderFill(t *testing.T) {
	tests := []struct {
		name string
		new  func() (func(tessellate.DrawList) tessellate.Result, error)
	}{
		{"curves", func() (func(tessellate.DrawList) tessellate.Result, error) {
			ct, err := tessellate.NewCurveTessellator()
			if err != nil {
				return nil, err
			}
			return ct.Prepare, nil
		}},
		{"wedges", func() (func(tessellate.DrawList) tessellate.Result, error) {
			wt, err := tessellate.NewWedgeTessellator()
			if err != nil {
				return nil, err
			}
			return wt.Prepare, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prepare, err := tt.new()
			if err != nil {
				t.Fatal(err)
			}
			// A disc of radius 20 around (32, 32) built from two half circles.
			p := tess.MustParsePathData("M12 32 A20 20 0 0 1 52 32 A20 20 0 0 1 12 32 Z")
			res := prepare(tessellate.DrawList{{Shape: tess.PathShape{Path: p}, Matrix: tess.Identity()}})
			patches, err := tessellate.Decode(res)
			if err != nil {
				t.Fatal(err)
			}
			img := Render(res, patches, 64, 64, 4)
			for _, pt := range []image.Point{{32, 32}, {32, 15}, {48, 32}} {
				if !covered(img, pt.X, pt.Y) {
					t.Errorf("pixel %v inside the disc not covered", pt)
				}
			}
			for _, pt := range []image.Point{{2, 2}, {60, 60}, {32, 55}} {
				if covered(img, pt.X, pt.Y) {
					t.Errorf("pixel %v outside the disc covered", pt)
				}
			}
		})
	}
}

func TestRenderStroke(t *testing.T) {
	st, err := tessellate.NewStrokeTessellator()
	if err != nil {
		t.Fatal(err)
	}
	style := tess.DefaultStrokeStyle().WithWidth(6)
	res := st.Prepare(tessellate.StrokeList{{
		Shape:  tess.PathShape{Path: tess.MustParsePathData("M10 32 L54 32")},
		Matrix: tess.Identity(),
		Style:  style,
	}})
	patches, err := tessellate.Decode(res)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(res, patches, 64, 64, 4)
	if !covered(img, 32, 31) || !covered(img, 32, 33) {
		t.Error("stroke body not covered")
	}
	if covered(img, 32, 40) || covered(img, 4, 32) {
		t.Error("pixels beyond the stroke covered")
	}
}

func TestStrokeStyleFlags(t *testing.T) {
	s, err := strokeStyle(3, "Round", "bevel")
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 3 || s.Cap != tess.LineCapRound || s.Join != tess.LineJoinBevel {
		t.Errorf("style = %+v", s)
	}
	if _, err := strokeStyle(1, "flat", "miter"); err == nil {
		t.Error("unknown cap accepted")
	}
	if _, err := strokeStyle(1, "butt", "sharp"); err == nil {
		t.Error("unknown join accepted")
	}
}

func TestLoadPath(t *testing.T) {
	if _, err := loadPath("", "", "", 12); err == nil {
		t.Error("no input accepted")
	}
	p, err := loadPath("M0 0 L10 0 L10 10 Z", "", "", 12)
	if err != nil || p.CountVerbs() != 4 {
		t.Errorf("loadPath = %v, %v", p, err)
	}
	p, err = loadPath("", "", "Hi", 24)
	if err != nil || p.IsEmpty() {
		t.Errorf("text path = %v, %v", p, err)
	}
}

func TestPrintSummary(t *testing.T) {
	ct, err := tessellate.NewCurveTessellator()
	if err != nil {
		t.Fatal(err)
	}
	res := ct.Prepare(tessellate.DrawList{{
		Shape:  tess.PathShape{Path: tess.MustParsePathData("M0 0 C100 0 100 100 0 100 Z")},
		Matrix: tess.Identity(),
	}})
	patches, err := tessellate.Decode(res)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printSummary(&buf, res, patches)
	out := buf.String()
	for _, want := range []string{"patches:   1 (cubic 1", "level:     5", "vertices:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
