package glyph

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/tess"
)

// Glyph is one shaped glyph, positioned relative to the run's origin on
// the baseline.
type Glyph struct {
	ID ID
	// Cluster is the index of the first rune of the normalized text the
	// glyph was shaped from.
	Cluster int
	X, Y    float32
	Advance float32
}

// Shaper shapes text into glyphs with HarfBuzz-level shaping: kerning,
// ligatures and complex scripts. Text is NFC-normalized first so composed
// and decomposed input shape alike.
//
// Shaper is safe for concurrent use.
type Shaper struct {
	pool sync.Pool
	lang language.Language
}

// NewShaper returns a Shaper for English-tagged text.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		lang: language.NewLanguage("en"),
	}
}

// Shape shapes text left to right at size pixels per em.
func (s *Shaper) Shape(f *Font, text string, size float32) []Glyph {
	if text == "" || f == nil {
		return nil
	}
	runes := []rune(norm.NFC.String(text))
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.shape),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  s.lang,
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	glyphs := make([]Glyph, len(out.Glyphs))
	var x float32
	for i, g := range out.Glyphs {
		adv := fromFixed(g.Advance)
		glyphs[i] = Glyph{
			ID:      ID(uint16(g.GlyphID)),
			Cluster: g.TextIndex(),
			X:       x + fromFixed(g.XOffset),
			Y:       -fromFixed(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	return glyphs
}

// Layout shapes text and returns the outlines of every glyph as one path,
// with the baseline starting at origin.
func (s *Shaper) Layout(f *Font, text string, size float32, origin tess.Point) (*tess.Path, error) {
	p := tess.NewPath()
	for _, g := range s.Shape(f, text, size) {
		outline, err := f.Outline(g.ID, size)
		if err != nil {
			return nil, err
		}
		if outline.IsEmpty() {
			continue
		}
		p.AddPath(outline.Transform(tess.Translate(origin.X+g.X, origin.Y+g.Y)))
	}
	return p, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
