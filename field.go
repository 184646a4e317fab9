package glyphfield

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// MobileBreakpoint is the viewport width below which a field uses mobile
// density and font size.
const MobileBreakpoint = 768

// Action tells the host what to do after a frame.
type Action int

const (
	// ScheduleNext asks for another Step on the next display refresh.
	ScheduleNext Action = iota

	// Stop means the field is finished; no further Step will draw.
	Stop
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ScheduleNext:
		return "ScheduleNext"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// State is the lifecycle state of a Field.
type State int

const (
	// StateIdle means the field has no usable size yet.
	StateIdle State = iota

	// StateReseeding is held while Resize rebuilds the mask and populations.
	StateReseeding

	// StateRunning is the steady per-frame state.
	StateRunning

	// StateStopped is terminal; entered by Close or a missing surface.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateReseeding:
		return "Reseeding"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field is the particle text effect: a mask, the particle pool anchored on it,
// the debris behind it and the pointer driving both.
//
// Field is NOT safe for concurrent use.
type Field struct {
	label string
	font  *text.FontSource
	rng   *rand.Rand

	pointer *Pointer
	pool    *Pool
	debris  *DebrisField

	width, height int
	mobile        bool
	mask          *gg.Mask
	scale         float64
	target        int
	fill          int // target, or 0 when the mask has nothing to sample

	state State
	sized bool
}

// New creates a field in StateIdle. Call Resize before the first Step.
//
// Returns an error if the configured font cannot be parsed.
func New(opts ...Option) (*Field, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	src, err := loadFont(o.fontData)
	if err != nil {
		return nil, err
	}

	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Field{
		label:   o.label,
		font:    src,
		rng:     rng,
		pointer: NewPointer(o.touch),
		pool:    NewPool(rng),
		debris:  NewDebrisField(rng),
		state:   StateIdle,
	}, nil
}

// Label returns the text the particles resolve into.
func (f *Field) Label() string { return f.label }

// Description returns the static accessible description of the effect.
func (f *Field) Description() string {
	return "Interactive particle effect with " + f.label + " text"
}

// Pointer returns the input state shared with the host's event handling.
func (f *Field) Pointer() *Pointer { return f.pointer }

// Size returns the canvas size of the last Resize.
func (f *Field) Size() (width, height int) { return f.width, f.height }

// Mobile reports whether the last Resize classified the viewport as mobile.
func (f *Field) Mobile() bool { return f.mobile }

// Scale returns the mask font size relative to DesktopFontSize.
func (f *Field) Scale() float64 { return f.scale }

// Target returns the particle count the pool is topped up to.
func (f *Field) Target() int { return f.target }

// Mask returns the current label mask, or nil while idle.
func (f *Field) Mask() *gg.Mask { return f.mask }

// State returns the lifecycle state.
func (f *Field) State() State { return f.state }

// Particles returns the live particles; see Pool.Particles.
func (f *Field) Particles() []Particle { return f.pool.Particles() }

// Debris returns the live debris; see DebrisField.Objects.
func (f *Field) Debris() []Debris { return f.debris.Objects() }

// Resize rebuilds the field for a canvas of width×height pixels inside a
// viewport viewportWidth pixels wide. The device class, mask, particles and
// debris are all recomputed before Resize returns; nothing from the previous
// size survives. Non-positive dimensions leave the field idle and empty.
//
// Resize on a stopped field is a no-op.
func (f *Field) Resize(width, height, viewportWidth int) {
	if f.state == StateStopped {
		return
	}
	f.state = StateReseeding
	f.width, f.height = width, height
	f.mobile = viewportWidth < MobileBreakpoint
	f.pool.Reset()
	f.debris.Reset()
	f.mask, f.scale, f.target, f.fill = nil, 0, 0, 0

	mask, scale, err := RasterizeMask(f.font, f.label, width, height, f.mobile)
	if err != nil {
		if !errors.Is(err, ErrInvalidDimensions) {
			Logger().Warn("glyphfield: mask rasterization failed", "err", err)
		}
		f.state = StateIdle
		return
	}

	f.mask, f.scale = mask, scale
	f.target = TargetCount(width, height, f.mobile)
	if opaque(mask) {
		f.fill = f.target
	}
	seeded := f.pool.Seed(mask, f.fill)
	f.state = StateRunning

	if !f.sized {
		f.sized = true
		Logger().Info("glyphfield: sized", "width", width, "height", height, "mobile", f.mobile)
	}
	Logger().Debug("glyphfield: reseeded",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Bool("mobile", f.mobile),
		slog.Float64("scale", scale),
		slog.Int("target", f.target),
		slog.Int("seeded", seeded),
	)
}

// Step runs one frame on dst: clear, debris, then particles, so debris is
// always drawn behind the text. It returns ScheduleNext while the field is
// alive and Stop once it has been closed.
//
// A nil dst means the host could not provide a drawing surface; the field
// stops and never draws. Step on an idle field clears nothing and asks to be
// scheduled again, waiting for a usable Resize.
func (f *Field) Step(dst Painter) Action {
	switch f.state {
	case StateStopped:
		return Stop
	case StateIdle, StateReseeding:
		if dst == nil {
			f.fail()
			return Stop
		}
		return ScheduleNext
	}
	if dst == nil {
		f.fail()
		return Stop
	}

	dst.Clear()

	w, h := float64(f.width), float64(f.height)
	if err := f.debris.Update(w, h, dst); err != nil {
		Logger().Warn("glyphfield: debris draw failed", "err", err)
	}
	if err := f.pool.Update(f.mask, f.pointer.Influence(), f.fill, dst); err != nil {
		Logger().Warn("glyphfield: particle draw failed", "err", err)
	}
	return ScheduleNext
}

// Close stops the field and releases its populations. Later calls to Step
// return Stop without drawing. Close is idempotent.
func (f *Field) Close() {
	if f.state == StateStopped {
		return
	}
	f.state = StateStopped
	f.pool.Reset()
	f.debris.Reset()
	f.mask = nil
	Logger().Info("glyphfield: closed")
}

func (f *Field) fail() {
	Logger().Warn("glyphfield: stopping", "err", ErrNoSurface)
	f.Close()
}
