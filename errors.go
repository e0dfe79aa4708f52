package tess

import "errors"

// Configuration and input errors. Geometry itself never fails: degenerate
// curves are absorbed into simpler shapes by the tessellators.
var (
	// ErrInvalidPrecision is returned when a tolerance is not a positive finite number.
	ErrInvalidPrecision = errors.New("tess: precision must be positive and finite")

	// ErrInvalidSegmentLimit is returned when a segment ceiling is below one.
	ErrInvalidSegmentLimit = errors.New("tess: max segments must be at least 1")

	// ErrInvalidPathData is returned by ParsePathData for malformed input.
	ErrInvalidPathData = errors.New("tess: invalid path data")
)
