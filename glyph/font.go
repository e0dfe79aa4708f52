package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/cache"
)

// Sentinel errors for the glyph package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("glyph: invalid font data")
)

// DefaultOutlineCacheSize is the number of glyph outlines a Font keeps.
const DefaultOutlineCacheSize = 1024

// ID is a glyph index within a font.
type ID uint16

type outlineKey struct {
	id   ID
	size float32
}

// Font is a parsed TrueType or OpenType font. It is safe for concurrent
// use.
type Font struct {
	name  string
	upem  int
	sfnt  *sfnt.Font
	shape *font.Font

	mu  sync.Mutex
	buf sfnt.Buffer

	outlines *cache.Cache[outlineKey, *tess.Path]
}

// Parse parses font data. The data must not be modified afterwards.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}

	f := &Font{
		sfnt:     sf,
		shape:    face.Font,
		upem:     int(sf.UnitsPerEm()),
		outlines: cache.New[outlineKey, *tess.Path](DefaultOutlineCacheSize),
	}
	if name, err := sf.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.name = name
	}
	return f, nil
}

// Name returns the font's full name, or "" if it has none.
func (f *Font) Name() string { return f.name }

// UnitsPerEm returns the font's design units per em.
func (f *Font) UnitsPerEm() int { return f.upem }

// Index returns the glyph for r, or 0 (the missing glyph) if the font has
// none.
func (f *Font) Index(r rune) ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, err := f.sfnt.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return ID(gid)
}

// Advance returns the horizontal advance of a glyph at size pixels per em.
func (f *Font) Advance(id ID, size float32) (float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(id), toFixed(size), 0)
	if err != nil {
		return 0, fmt.Errorf("glyph: advance of %d: %w", id, err)
	}
	return fromFixed(adv), nil
}

// Outline returns the outline of a glyph at size pixels per em, with the
// origin on the baseline and y pointing down. Every contour is closed.
// Glyphs without an outline, such as spaces, yield an empty path.
//
// Outlines are cached; the returned path is shared and must not be
// modified.
func (f *Font) Outline(id ID, size float32) (*tess.Path, error) {
	key := outlineKey{id, size}
	if p, ok := f.outlines.Get(key); ok {
		return p, nil
	}

	f.mu.Lock()
	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	if err != nil {
		f.mu.Unlock()
		return nil, fmt.Errorf("glyph: outline of %d: %w", id, err)
	}
	p := segmentsToPath(segs)
	f.mu.Unlock()

	f.outlines.Set(key, p)
	return p, nil
}

// segmentsToPath converts sfnt segments to a path. The segments alias the
// font buffer, so this runs under the font lock.
func segmentsToPath(segs sfnt.Segments) *tess.Path {
	p := tess.NewPath()
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			a := point(s.Args[0])
			p.MoveTo(a.X, a.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			a := point(s.Args[0])
			p.LineTo(a.X, a.Y)
		case sfnt.SegmentOpQuadTo:
			c, a := point(s.Args[0]), point(s.Args[1])
			p.QuadTo(c.X, c.Y, a.X, a.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, a := point(s.Args[0]), point(s.Args[1]), point(s.Args[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		}
	}
	if open {
		p.Close()
	}
	return p
}

func point(p fixed.Point26_6) tess.Point {
	return tess.Pt(fromFixed(p.X), fromFixed(p.Y))
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
