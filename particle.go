package glyphfield

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// Particle tuning.
const (
	// SampleAttempts bounds the random probes made by a single Sample call.
	SampleAttempts = 100

	// OpacityThreshold is the mask value a probe must exceed to seed a particle.
	OpacityThreshold = 128

	// InfluenceRadius is the distance within which the pointer repels particles.
	InfluenceRadius = 120.0

	// MaxDisplacement is how far a particle is pushed when the pointer sits on it.
	MaxDisplacement = 40.0

	// ReturnRate is the fraction of the remaining distance to base covered per frame.
	ReturnRate = 0.1

	// PhaseStep is the glitter phase advance per frame.
	PhaseStep = 0.1

	// MobileDensity and DesktopDensity are particle counts for the reference area.
	MobileDensity  = 2000
	DesktopDensity = 5000

	// ReferenceArea is the canvas area (800x200) the densities are tuned for.
	ReferenceArea = 800 * 200
)

// Particle colours.
var (
	// IdleColor is drawn while a particle is outside the pointer's influence.
	IdleColor = gg.White

	// SkyAccent and IceAccent are the scattered-colour variants.
	SkyAccent = gg.Hex("#87CEEB")
	IceAccent = gg.Hex("#E0F6FF")
)

// Particle is a single mask-anchored dot.
type Particle struct {
	X, Y         float64 // current position
	BaseX, BaseY float64 // anchor on the mask, fixed for the particle's lifetime
	Size         float64 // side of the drawn square
	Color        gg.RGBA // idle colour
	Scattered    gg.RGBA // accent variant picked at creation
	Phase        float64 // glitter phase
	Life         int     // frames left before the particle is replaced
}

// Influence is a snapshot of the pointer as seen by one frame.
type Influence struct {
	X, Y   float64
	Active bool
}

// TargetCount returns how many particles a canvas of the given size should
// hold: the device-class density scaled by sqrt(area / ReferenceArea), so the
// visual density stays constant across viewports.
func TargetCount(width, height int, mobile bool) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	base := DesktopDensity
	if mobile {
		base = MobileDensity
	}
	area := float64(width) * float64(height)
	return int(math.Floor(float64(base) * math.Sqrt(area/ReferenceArea)))
}

// Pool owns the live particles of a field.
// The zero value is not usable; create pools with NewPool.
type Pool struct {
	particles []Particle
	rng       *rand.Rand
}

// NewPool returns an empty pool drawing randomness from rng.
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{rng: rng}
}

// Len returns the number of live particles.
func (p *Pool) Len() int { return len(p.particles) }

// Particles returns the live particles. The slice is owned by the pool and is
// only valid until the next Update, Seed or Reset.
func (p *Pool) Particles() []Particle { return p.particles }

// Reset discards every particle.
func (p *Pool) Reset() {
	clear(p.particles)
	p.particles = p.particles[:0]
}

// Sample probes up to SampleAttempts random pixels of m and returns a fresh
// particle anchored on the first one more opaque than OpacityThreshold.
// It reports false when every probe missed.
func (p *Pool) Sample(m Coverage) (Particle, bool) {
	if m == nil {
		return Particle{}, false
	}
	w, h := m.Width(), m.Height()
	if w <= 0 || h <= 0 {
		return Particle{}, false
	}

	for range SampleAttempts {
		x := p.rng.IntN(w)
		y := p.rng.IntN(h)
		if m.At(x, y) <= OpacityThreshold {
			continue
		}

		scattered := IceAccent
		if p.rng.Float64() > 0.5 {
			scattered = SkyAccent
		}
		fx, fy := float64(x), float64(y)
		return Particle{
			X:         fx,
			Y:         fy,
			BaseX:     fx,
			BaseY:     fy,
			Size:      0.5 + p.rng.Float64()*1.5,
			Color:     IdleColor,
			Scattered: scattered,
			Phase:     p.rng.Float64() * 2 * math.Pi,
			Life:      50 + p.rng.IntN(100),
		}, true
	}
	return Particle{}, false
}

// Seed makes one Sample call per particle missing from target and keeps the
// successful ones. A sparse mask therefore leaves the pool short; later
// top-ups fill the gap. It returns the number of particles added.
func (p *Pool) Seed(m Coverage, target int) int {
	added := 0
	for range target - len(p.particles) {
		pt, ok := p.Sample(m)
		if !ok {
			continue
		}
		p.particles = append(p.particles, pt)
		added++
	}
	return added
}

// opaque reports whether any pixel of m would be accepted by Sample.
func opaque(m Coverage) bool {
	if m == nil {
		return false
	}
	w, h := m.Width(), m.Height()
	for y := range h {
		for x := range w {
			if m.At(x, y) > OpacityThreshold {
				return true
			}
		}
	}
	return false
}

// Update advances every particle by one frame and draws it to dst.
//
// Particles within InfluenceRadius of an active influence are pushed away
// from it and glitter; all others ease towards their base and are drawn in
// IdleColor. Expired particles are resampled from m in place, or removed when
// sampling fails. Finally the pool is topped up towards target.
//
// The first Fill error is returned after the whole pool has been updated.
func (p *Pool) Update(m Coverage, in Influence, target int, dst Painter) error {
	var firstErr error

	for i := 0; i < len(p.particles); i++ {
		pt := &p.particles[i]
		col := step(pt, in)

		dst.SetRGBA(col.R, col.G, col.B, col.A)
		dst.DrawRectangle(pt.X, pt.Y, pt.Size, pt.Size)
		if err := dst.Fill(); err != nil && firstErr == nil {
			firstErr = err
		}

		pt.Life--
		if pt.Life > 0 {
			continue
		}
		if fresh, ok := p.Sample(m); ok {
			*pt = fresh
			continue
		}
		p.swapRemove(i)
		i-- // revisit the element swapped into slot i
	}

	p.Seed(m, target)
	return firstErr
}

// swapRemove deletes particle i by moving the last particle into its slot.
func (p *Pool) swapRemove(i int) {
	last := len(p.particles) - 1
	p.particles[i] = p.particles[last]
	p.particles[last] = Particle{}
	p.particles = p.particles[:last]
}

// step moves pt by one frame and returns the colour to draw it with.
func step(pt *Particle, in Influence) gg.RGBA {
	dx := in.X - pt.X
	dy := in.Y - pt.Y
	dist := math.Hypot(dx, dy)

	pt.Phase += PhaseStep

	if in.Active && dist < InfluenceRadius {
		force := (InfluenceRadius - dist) / InfluenceRadius
		// atan2(0, 0) is 0, so a pointer sitting exactly on the particle
		// pushes it along -x.
		angle := math.Atan2(dy, dx)
		pt.X = pt.BaseX - math.Cos(angle)*force*MaxDisplacement
		pt.Y = pt.BaseY - math.Sin(angle)*force*MaxDisplacement
		return glitter(pt.Phase)
	}

	pt.X += (pt.BaseX - pt.X) * ReturnRate
	pt.Y += (pt.BaseY - pt.Y) * ReturnRate
	return pt.Color
}

// glitter returns the shimmer colour for a scattered particle at phase.
// Two oscillations combine: sin(2·phase) picks blue or white, sin(phase)
// sets the brightness within that band.
func glitter(phase float64) gg.RGBA {
	intensity := (math.Sin(phase) + 1) / 2
	if math.Sin(phase*2) > 0 {
		b := math.Floor(135 + intensity*120)
		return gg.RGB(math.Floor(b*0.6)/255, math.Floor(b*0.8)/255, b/255)
	}
	w := math.Floor(200+intensity*55) / 255
	return gg.RGB(w, w, w)
}
