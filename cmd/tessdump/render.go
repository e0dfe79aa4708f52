package main

import (
	"image"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/chop"
	"github.com/gogpu/tess/internal/stroke"
	"github.com/gogpu/tess/internal/wangs"
	"github.com/gogpu/tess/tessellate"
)

// maxRenderSegments bounds the flattening of one fill patch.
const maxRenderSegments = 1024

var (
	fillColor   = colornames.Steelblue
	strokeColor = colornames.Darkorange
)

// Render rasterizes decoded patches onto a white image. Fill patches
// accumulate winding in one pass, the way the stencil pass counts it; every
// stroke polygon is composited on its own.
func Render(res tessellate.Result, patches []tessellate.Patch, width, height int, precision float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := vector.NewRasterizer(width, height)
	if res.Attribs.Has(tessellate.AttribStrokeParams) {
		src := image.NewUniform(strokeColor)
		for _, p := range patches {
			for _, poly := range stroke.Outline(p, precision) {
				r.Reset(width, height)
				addPolygon(r, poly)
				r.Draw(img, img.Bounds(), src, image.Point{})
			}
		}
		return img
	}

	wedges := res.Attribs.Has(tessellate.AttribFanPoint)
	for _, p := range patches {
		addPolygon(r, fillPolygon(p, wedges, precision))
	}
	r.Draw(img, img.Bounds(), image.NewUniform(fillColor), image.Point{})
	return img
}

// fillPolygon returns the region one fill patch covers: the triangle itself,
// the curve closed by its chord, or the curve fanned to the wedge's fan point.
func fillPolygon(p tessellate.Patch, wedge bool, precision float32) []tess.Point {
	if p.Type == tessellate.CurveTypeTriangle {
		return p.Pts[:3]
	}
	var n float32
	if p.Type == tessellate.CurveTypeConic {
		n = math32.Sqrt(wangs.ConicPow2(precision, [3]tess.Point(p.Pts[:3]), p.W, wangs.Identity()))
	} else {
		n = wangs.Root4(wangs.CubicPow4(precision, p.Pts, wangs.Identity()))
	}
	segs := int(math32.Min(math32.Max(math32.Ceil(n), 1), maxRenderSegments))

	poly := make([]tess.Point, 0, segs+2)
	for i := 0; i <= segs; i++ {
		t := float32(i) / float32(segs)
		if p.Type == tessellate.CurveTypeConic {
			poly = append(poly, chop.EvalConic([3]tess.Point(p.Pts[:3]), p.W, t))
		} else {
			poly = append(poly, chop.EvalCubic(p.Pts, t))
		}
	}
	if wedge {
		poly = append(poly, p.FanPoint)
	}
	return poly
}

func addPolygon(r *vector.Rasterizer, poly []tess.Point) {
	if len(poly) < 3 {
		return
	}
	r.MoveTo(poly[0].X, poly[0].Y)
	for _, pt := range poly[1:] {
		r.LineTo(pt.X, pt.Y)
	}
	r.ClosePath()
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
