package glyphfield

import (
	"math/rand/v2"

	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/text/unicode/norm"
)

// DefaultLabel is the text the particles resolve into.
const DefaultLabel = "Heisenbug"

// Option configures a Field during creation.
//
// Example:
//
//	// Default label, bold italic Go font, random seed
//	f, err := glyphfield.New()
//
//	// Reproducible run on a touch device
//	f, err := glyphfield.New(glyphfield.WithSeed(42), glyphfield.WithTouchSupport(true))
type Option func(*options)

// options holds optional configuration for Field creation.
type options struct {
	label    string
	fontData []byte
	rng      *rand.Rand
	touch    bool
}

// defaultOptions returns the default field options.
func defaultOptions() options {
	return options{
		label:    DefaultLabel,
		fontData: gobolditalic.TTF,
		rng:      nil, // Seeded from the runtime source in New if nil
	}
}

// WithLabel sets the text rendered into the mask.
// The label is normalized to NFC so that composed and decomposed input
// shape identically. An empty label is ignored.
func WithLabel(label string) Option {
	return func(o *options) {
		if label == "" {
			return
		}
		o.label = norm.NFC.String(label)
	}
}

// WithFontData sets the TrueType or OpenType data used to render the label.
// The default is the Go Bold Italic face.
func WithFontData(data []byte) Option {
	return func(o *options) {
		o.fontData = data
	}
}

// WithRand sets the random source for sampling, spawning and jitter.
// The field takes ownership of r; it must not be shared with other goroutines.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed is shorthand for WithRand with a PCG source seeded from seed.
// Two fields built with the same seed and driven identically render the same frames.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithTouchSupport declares whether the hosting device can deliver touch events.
// On touch-capable devices the pointer only repels particles while a touch is
// engaged, and leaving the surface with the mouse does not reset the pointer.
func WithTouchSupport(touch bool) Option {
	return func(o *options) {
		o.touch = touch
	}
}
