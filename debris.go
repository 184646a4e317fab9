package glyphfield

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// Debris tuning.
const (
	// SpawnChance is the per-frame probability of a new debris object.
	SpawnChance = 0.01

	// SpawnY is where debris appears, just above the visible area.
	SpawnY = -10.0

	// CullMargin is how far below the bottom edge debris travels before removal.
	CullMargin = 20.0

	// debrisVertices is the vertex count of the drawn polygon.
	debrisVertices = 6
)

// DebrisColor is the fill colour of debris; per-object opacity is applied on top.
var DebrisColor = gg.Hex("#666")

// Debris is one ambient drifting polygon.
type Debris struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	Rotation      float64
	RotationSpeed float64
	Opacity       float64
}

// DebrisField owns the debris drifting behind the particles.
type DebrisField struct {
	objects []Debris
	rng     *rand.Rand
	chance  float64
}

// NewDebrisField returns an empty debris field drawing randomness from rng.
func NewDebrisField(rng *rand.Rand) *DebrisField {
	return &DebrisField{rng: rng, chance: SpawnChance}
}

// Len returns the number of live debris objects.
func (d *DebrisField) Len() int { return len(d.objects) }

// Objects returns the live debris. The slice is owned by the field.
func (d *DebrisField) Objects() []Debris { return d.objects }

// Reset discards every object.
func (d *DebrisField) Reset() {
	d.objects = d.objects[:0]
}

// Spawn adds one debris object at a random x across width.
func (d *DebrisField) Spawn(width float64) {
	d.objects = append(d.objects, Debris{
		X:             d.rng.Float64() * width,
		Y:             SpawnY,
		VX:            d.rng.Float64() - 0.5,
		VY:            d.rng.Float64() + 0.5,
		Size:          d.rng.Float64()*2 + 1,
		RotationSpeed: (d.rng.Float64() - 0.5) * 0.1,
		Opacity:       d.rng.Float64()*0.2 + 0.1,
	})
}

// Update spawns debris with probability SpawnChance, moves and draws every
// object, and removes those that fell more than CullMargin below height.
func (d *DebrisField) Update(width, height float64, dst Painter) error {
	if d.rng.Float64() < d.chance {
		d.Spawn(width)
	}

	var firstErr error
	limit := height + CullMargin

	// Walk backwards so swap-removal only moves already visited objects.
	for i := len(d.objects) - 1; i >= 0; i-- {
		o := &d.objects[i]
		o.X += o.VX
		o.Y += o.VY
		o.Rotation += o.RotationSpeed

		if err := d.draw(o, dst); err != nil && firstErr == nil {
			firstErr = err
		}

		if o.Y > limit {
			last := len(d.objects) - 1
			d.objects[i] = d.objects[last]
			d.objects = d.objects[:last]
		}
	}
	return firstErr
}

// draw fills a hexagon around o whose vertex radii are re-jittered by ±20%
// on every call, so debris twinkles instead of keeping a fixed outline.
func (d *DebrisField) draw(o *Debris, dst Painter) error {
	dst.Push()
	defer dst.Pop()

	dst.Translate(o.X, o.Y)
	dst.Rotate(o.Rotation)
	dst.SetRGBA(DebrisColor.R, DebrisColor.G, DebrisColor.B, o.Opacity)

	for i := range debrisVertices {
		angle := float64(i) / debrisVertices * 2 * math.Pi
		r := o.Size * (0.8 + d.rng.Float64()*0.4)
		x, y := math.Cos(angle)*r, math.Sin(angle)*r
		if i == 0 {
			dst.MoveTo(x, y)
		} else {
			dst.LineTo(x, y)
		}
	}
	dst.ClosePath()
	return dst.Fill()
}
