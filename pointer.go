package glyphfield

// Pointer normalizes mouse and single-touch input into one influence point in
// canvas-local coordinates. It is the only state shared between input
// delivery and the frame update: hosts call the event methods, Field.Step
// reads Influence.
type Pointer struct {
	originX, originY float64

	x, y    float64
	located bool // a position has been seen since the last reset

	engaged bool // a touch is down
	touch   bool // the device can deliver touch events
}

// NewPointer returns a pointer with no known location.
func NewPointer(touchCapable bool) *Pointer {
	return &Pointer{touch: touchCapable}
}

// SetOrigin sets the canvas offset within the viewport. Client coordinates
// passed to MouseMove and TouchMove are translated by it.
func (p *Pointer) SetOrigin(left, top float64) {
	p.originX, p.originY = left, top
}

// MouseMove records a pointer position in viewport coordinates.
func (p *Pointer) MouseMove(clientX, clientY float64) {
	p.moveTo(clientX, clientY)
}

// MouseLeave forgets the position when the pointer leaves the canvas.
// On touch-capable devices the position belongs to the touch lifecycle and is
// left alone.
func (p *Pointer) MouseLeave() {
	if !p.touch {
		p.reset()
	}
}

// TouchStart marks a touch as engaged.
func (p *Pointer) TouchStart() {
	p.engaged = true
}

// TouchMove records the first touch position of an event carrying touches
// active touches. It reports whether the host should suppress default
// scrolling, which is the case whenever a touch was consumed.
func (p *Pointer) TouchMove(clientX, clientY float64, touches int) bool {
	if touches <= 0 {
		return false
	}
	p.moveTo(clientX, clientY)
	return true
}

// TouchEnd disengages the touch and forgets the position.
func (p *Pointer) TouchEnd() {
	p.engaged = false
	p.reset()
}

// Engaged reports whether a touch is down.
func (p *Pointer) Engaged() bool { return p.engaged }

// TouchCapable reports whether the pointer was created for a touch device.
func (p *Pointer) TouchCapable() bool { return p.touch }

// Influence returns the influence for the current frame. It is active when a
// position is known and either a touch is engaged or the device has no touch
// support, in which case hovering is enough.
func (p *Pointer) Influence() Influence {
	return Influence{
		X:      p.x,
		Y:      p.y,
		Active: p.located && (p.engaged || !p.touch),
	}
}

func (p *Pointer) moveTo(clientX, clientY float64) {
	p.x = clientX - p.originX
	p.y = clientY - p.originY
	p.located = true
}

func (p *Pointer) reset() {
	p.x, p.y = 0, 0
	p.located = false
}
