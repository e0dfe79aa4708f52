package tessellate

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/internal/patch"
	"github.com/gogpu/tess/internal/wangs"
)

// Mode selects how the GPU expands patches into triangles.
type Mode uint8

const (
	// FixedCount draws every patch of a batch as an instance of one
	// template mesh sized by the batch's resolve level (or fixed edge
	// count for strokes). It needs no tessellation shaders.
	FixedCount Mode = iota
	// HardwareTessellation feeds patches to a tessellation pipeline that
	// picks the segment count per patch, up to the hardware limit set with
	// WithMaxSegments.
	HardwareTessellation
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case FixedCount:
		return "FixedCount"
	case HardwareTessellation:
		return "HardwareTessellation"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// DefaultMaxSegments is the hardware segment limit assumed when
// WithMaxSegments is not given. It matches the smallest
// maxTessellationSegments real hardware reports.
const DefaultMaxSegments = 64

// Option configures a tessellator during creation.
//
// Example:
//
//	// Fixed-count wedges with the default tolerance
//	t, err := tessellate.NewWedgeTessellator()
//
//	// Hardware tessellation with a coarser tolerance and per-patch colors
//	t, err := tessellate.NewCurveTessellator(
//	    tessellate.WithMode(tessellate.HardwareTessellation),
//	    tessellate.WithPrecision(2),
//	    tessellate.WithAttribs(tessellate.AttribColor),
//	)
type Option func(*config)

// config holds the validated settings of a tessellator.
type config struct {
	precision   float32
	maxSegments int
	mode        Mode
	attribs     patch.Attribs
	alloc       patch.Allocator
	minChunk    int
	viewport    tess.Rect
	hasViewport bool
	static      *StaticBuffers
}

// defaultConfig returns the default tessellator settings.
func defaultConfig() config {
	return config{
		precision:   wangs.DefaultPrecision,
		maxSegments: DefaultMaxSegments,
		mode:        FixedCount,
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.precision > 0) || math32.IsInf(cfg.precision, 1) {
		return config{}, fmt.Errorf("%w: %v", tess.ErrInvalidPrecision, cfg.precision)
	}
	if cfg.maxSegments < 1 || cfg.maxSegments > patch.MaxSegmentsPerCurve {
		return config{}, fmt.Errorf("%w: %d", tess.ErrInvalidSegmentLimit, cfg.maxSegments)
	}
	if cfg.minChunk < 0 {
		cfg.minChunk = 0
	}
	if cfg.static == nil {
		cfg.static = NewStaticBuffers(0)
	}
	return cfg, nil
}

// writerMaxSegments is the equal-T chop limit handed to the patch writer.
func (c *config) writerMaxSegments() int {
	if c.mode == FixedCount {
		return MaxFixedSegments
	}
	return c.maxSegments
}

// prealloc applies the WithMinChunkPatches floor to a preallocation count.
func (c *config) prealloc(n int) int {
	return max(n, c.minChunk)
}

// WithPrecision sets the tolerance as its reciprocal: curves are
// tessellated to within 1/precision pixels. The default is 4 (a quarter
// pixel). Values that are not finite and positive make the constructor
// fail with tess.ErrInvalidPrecision.
func WithPrecision(precision float32) Option {
	return func(c *config) {
		c.precision = precision
	}
}

// WithMaxSegments sets the hardware tessellation limit, the most line
// segments the GPU produces for one patch. Curves needing more are chopped
// on the CPU. Only used in HardwareTessellation mode.
//
// Example:
//
//	limits := adapter.Limits()
//	t, err := tessellate.NewStrokeTessellator(
//	    tessellate.WithMode(tessellate.HardwareTessellation),
//	    tessellate.WithMaxSegments(int(limits.MaxTessellationSegments)),
//	)
func WithMaxSegments(n int) Option {
	return func(c *config) {
		c.maxSegments = n
	}
}

// WithMode selects fixed-count or hardware tessellation. The default is
// FixedCount.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithAttribs adds optional per-patch attributes. Attributes a tessellator
// always writes (the fan point for wedges, stroke params and join control
// points for strokes) are added automatically; ones it cannot fill are
// removed.
func WithAttribs(a Attribs) Option {
	return func(c *config) {
		c.attribs |= a
	}
}

// WithAllocator sets the storage behind the vertex chunks. The default is
// an unbounded CPU arena.
//
// Example:
//
//	// Simulate a small vertex pool: patches past 64 KB are dropped.
//	t, err := tessellate.NewCurveTessellator(
//	    tessellate.WithAllocator(tessellate.NewArena(64 << 10)),
//	)
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}

// WithMinChunkPatches sets a floor on the first chunk's patch count. Later
// chunks double from there.
func WithMinChunkPatches(n int) Option {
	return func(c *config) {
		c.minChunk = n
	}
}

// WithViewport enables culling against a device-space viewport. Curves
// whose worst-case segment count would exceed the tessellation limit are
// chopped first and the pieces entirely outside the viewport become lines.
func WithViewport(r tess.Rect) Option {
	return func(c *config) {
		c.viewport = r
		c.hasViewport = true
	}
}

// WithStaticBuffers shares a template cache between tessellators. Without
// it each tessellator builds its own.
func WithStaticBuffers(sb *StaticBuffers) Option {
	return func(c *config) {
		c.static = sb
	}
}
