package glyphfield

import "errors"

// Common errors returned by glyphfield operations.
var (
	// ErrInvalidDimensions is returned when a surface width or height is not positive.
	ErrInvalidDimensions = errors.New("glyphfield: invalid dimensions")

	// ErrNoFont is returned when no usable font source is available for the mask.
	ErrNoFont = errors.New("glyphfield: no font source")

	// ErrNoSurface is reported when the host cannot provide a drawing surface.
	ErrNoSurface = errors.New("glyphfield: no drawing surface")
)
