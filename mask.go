package glyphfield

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Font sizes used for the mask label.
const (
	// DesktopFontSize is the reference size; scale factors are relative to it.
	DesktopFontSize = 128.0

	// MobileFontSize is used when the viewport is narrower than MobileBreakpoint.
	MobileFontSize = 48.0
)

// FontSize returns the label font size for the given device class.
func FontSize(mobile bool) float64 {
	if mobile {
		return MobileFontSize
	}
	return DesktopFontSize
}

// Coverage is a read-only per-pixel opacity lookup.
// *gg.Mask implements Coverage.
type Coverage interface {
	Width() int
	Height() int
	At(x, y int) uint8
}

// RasterizeMask renders label centred on an off-screen surface of the given
// size and returns its alpha channel together with the scale factor
// FontSize(mobile) / DesktopFontSize.
//
// The label is placed the way a canvas draws with textAlign "center" and
// textBaseline "middle": its line box (ascent plus descent) is centred on the
// surface in both directions. The surface is discarded before returning, so the
// mask is never visible. Calling RasterizeMask twice with the same inputs
// produces identical masks.
func RasterizeMask(src *text.FontSource, label string, width, height int, mobile bool) (*gg.Mask, float64, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if src == nil {
		return nil, 0, ErrNoFont
	}

	size := FontSize(mobile)
	face := src.Face(size)

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.SetFont(face)
	dc.SetColor(gg.White.Color())
	// Anchors are relative to the line box, not the baseline.
	dc.DrawStringAnchored(label, float64(width)/2, float64(height)/2, 0.5, 0.5)

	return gg.NewMaskFromAlpha(dc.Image()), size / DesktopFontSize, nil
}

// loadFont parses font data into a reusable source.
func loadFont(data []byte) (*text.FontSource, error) {
	if len(data) == 0 {
		return nil, ErrNoFont
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("glyphfield: parse font: %w", err)
	}
	return src, nil
}
