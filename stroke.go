package tess

// LineCap specifies the shape of open contour end points.
type LineCap uint8

const (
	// LineCapButt ends the stroke flush with the end point.
	LineCapButt LineCap = iota
	// LineCapRound adds a half circle of stroke radius.
	LineCapRound
	// LineCapSquare extends the stroke by the stroke radius.
	LineCapSquare
)

// LineJoin specifies the shape of corners between segments.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges to meet, falling back to bevel
	// past the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound fills the corner with a circular arc.
	LineJoinRound
	// LineJoinBevel connects the outer corners with a straight edge.
	LineJoinBevel
)

func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return "LineCap(?)"
	}
}

func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return "LineJoin(?)"
	}
}

// StrokeStyle defines how a path is stroked.
type StrokeStyle struct {
	// Width is the stroke width in local units. Zero means a hairline:
	// one device pixel wide regardless of the transform.
	Width float32

	// Cap is the shape of open contour ends. Default: LineCapButt
	Cap LineCap

	// Join is the shape of corners. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the ratio of miter length to stroke width past which
	// miter joins become bevels. Default: 4 (matches SVG)
	MiterLimit float32
}

// DefaultStrokeStyle returns a 1-unit butt-capped, miter-joined stroke.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4,
	}
}

// WithWidth returns a copy of the style with the given width.
func (s StrokeStyle) WithWidth(w float32) StrokeStyle {
	s.Width = w
	return s
}

// WithCap returns a copy of the style with the given cap.
func (s StrokeStyle) WithCap(c LineCap) StrokeStyle {
	s.Cap = c
	return s
}

// WithJoin returns a copy of the style with the given join.
func (s StrokeStyle) WithJoin(j LineJoin) StrokeStyle {
	s.Join = j
	return s
}

// WithMiterLimit returns a copy of the style with the given miter limit.
func (s StrokeStyle) WithMiterLimit(limit float32) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// IsHairline reports whether the stroke is a hairline.
func (s StrokeStyle) IsHairline() bool {
	return s.Width == 0
}

// Radius returns half the stroke width.
func (s StrokeStyle) Radius() float32 {
	return s.Width * 0.5
}
