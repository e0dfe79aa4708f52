// Package glyph turns text into path geometry for the tessellators.
//
// A [Font] loads glyph outlines with golang.org/x/image/font/sfnt and
// converts them to closed [tess.Path] contours. A [Shaper] runs text through
// go-text's HarfBuzz port to pick glyphs and positions.
//
//	f, err := glyph.Parse(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := glyph.NewShaper().Layout(f, "Hello", 48, tess.Pt(10, 60))
//	res := wedges.Prepare(tessellate.DrawList{{Shape: tess.PathShape{Path: p}, Matrix: tess.Identity()}})
package glyph
