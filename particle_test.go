package glyphfield

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/gg"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// rectMask returns a w×h mask that is fully opaque inside r and empty elsewhere.
func rectMask(w, h, x0, y0, x1, y1 int) *gg.Mask {
	m := gg.NewMask(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, 255)
		}
	}
	return m
}

// resting returns a particle sitting on its base with a long life.
func resting(x, y float64) Particle {
	return Particle{X: x, Y: y, BaseX: x, BaseY: y, Size: 1, Color: IdleColor, Life: 1000}
}

func dist(x0, y0, x1, y1 float64) float64 { return math.Hypot(x1-x0, y1-y0) }

func TestTargetCount(t *testing.T) {
	tests := []struct {
		w, h   int
		mobile bool
		want   int
	}{
		{800, 200, false, 5000},
		{800, 200, true, 2000},
		{1600, 400, false, 10000},
		{400, 100, false, 2500},
		{1920, 1080, false, 18000},
		{1920, 1080, true, 7200},
		{0, 200, false, 0},
		{800, -1, true, 0},
	}
	for _, tt := range tests {
		if got := TargetCount(tt.w, tt.h, tt.mobile); got != tt.want {
			t.Errorf("TargetCount(%d, %d, %v) = %d, want %d", tt.w, tt.h, tt.mobile, got, tt.want)
		}
	}
}

func TestTargetCountFormulaAndMonotonic(t *testing.T) {
	for _, mobile := range []bool{false, true} {
		base := DesktopDensity
		if mobile {
			base = MobileDensity
		}
		prev := -1
		for w := 10; w <= 2000; w += 37 {
			h := w / 3
			got := TargetCount(w, h, mobile)
			want := int(math.Floor(float64(base) * math.Sqrt(float64(w*h)/160000)))
			if got != want {
				t.Fatalf("TargetCount(%d, %d, %v) = %d, want %d", w, h, mobile, got, want)
			}
			if got < prev {
				t.Fatalf("TargetCount decreased from %d to %d at %dx%d", prev, got, w, h)
			}
			prev = got
		}
	}
}

func TestSampleOnOpaquePixel(t *testing.T) {
	p := NewPool(testRand())
	m := rectMask(100, 100, 20, 20, 80, 80)

	for range 200 {
		pt, ok := p.Sample(m)
		if !ok {
			t.Fatal("Sample() failed on a mask with an opaque region")
		}
		if m.At(int(pt.BaseX), int(pt.BaseY)) <= OpacityThreshold {
			t.Fatalf("base (%v, %v) is not opaque", pt.BaseX, pt.BaseY)
		}
		if pt.X != pt.BaseX || pt.Y != pt.BaseY {
			t.Fatalf("new particle at (%v, %v), want its base (%v, %v)", pt.X, pt.Y, pt.BaseX, pt.BaseY)
		}
		if pt.Size < 0.5 || pt.Size > 2 {
			t.Errorf("Size = %v, want [0.5, 2]", pt.Size)
		}
		if pt.Life < 50 || pt.Life >= 150 {
			t.Errorf("Life = %d, want [50, 150)", pt.Life)
		}
		if pt.Phase < 0 || pt.Phase >= 2*math.Pi {
			t.Errorf("Phase = %v, want [0, 2π)", pt.Phase)
		}
		if pt.Scattered != SkyAccent && pt.Scattered != IceAccent {
			t.Errorf("Scattered = %+v, want one of the accents", pt.Scattered)
		}
		if pt.Color != IdleColor {
			t.Errorf("Color = %+v, want IdleColor", pt.Color)
		}
	}
}

func TestSampleAccentsBothUsed(t *testing.T) {
	p := NewPool(testRand())
	m := rectMask(10, 10, 0, 0, 10, 10)
	sky, ice := 0, 0
	for range 1000 {
		pt, _ := p.Sample(m)
		if pt.Scattered == SkyAccent {
			sky++
		} else {
			ice++
		}
	}
	if sky < 400 || ice < 400 {
		t.Errorf("accent split = %d/%d, want roughly even", sky, ice)
	}
}

func TestSampleThreshold(t *testing.T) {
	p := NewPool(testRand())

	m := gg.NewMask(20, 20)
	m.Fill(OpacityThreshold)
	if _, ok := p.Sample(m); ok {
		t.Error("Sample() accepted a pixel at exactly the threshold")
	}

	m.Fill(OpacityThreshold + 1)
	if _, ok := p.Sample(m); !ok {
		t.Error("Sample() rejected a pixel above the threshold")
	}
}

func TestSampleExhaustion(t *testing.T) {
	p := NewPool(testRand())
	if _, ok := p.Sample(gg.NewMask(50, 50)); ok {
		t.Error("Sample() succeeded on an empty mask")
	}
	if _, ok := p.Sample(nil); ok {
		t.Error("Sample(nil) succeeded")
	}
	if _, ok := p.Sample(gg.NewMask(0, 0)); ok {
		t.Error("Sample() succeeded on a zero-size mask")
	}
}

func TestSeed(t *testing.T) {
	p := NewPool(testRand())
	full := rectMask(40, 40, 0, 0, 40, 40)

	if got := p.Seed(full, 100); got != 100 {
		t.Errorf("Seed() added %d, want 100", got)
	}
	if p.Len() != 100 {
		t.Errorf("Len() = %d, want 100", p.Len())
	}
	if got := p.Seed(full, 50); got != 0 || p.Len() != 100 {
		t.Errorf("Seed() below current size added %d, Len() = %d", got, p.Len())
	}

	p.Reset()
	if got := p.Seed(gg.NewMask(40, 40), 100); got != 0 || p.Len() != 0 {
		t.Errorf("Seed() on empty mask added %d, Len() = %d", got, p.Len())
	}
}

func TestRepulsionMovesAway(t *testing.T) {
	m := rectMask(400, 400, 0, 0, 400, 400)
	offsets := [][2]float64{
		{30, 0}, {0, 30}, {-50, 20}, {80, -80}, {1, 1}, {-119, 0}, {0, 119.9},
	}
	for _, off := range offsets {
		p := NewPool(testRand())
		p.particles = []Particle{resting(200, 200)}
		in := Influence{X: 200 + off[0], Y: 200 + off[1], Active: true}

		before := dist(200, 200, in.X, in.Y)
		if err := p.Update(m, in, 0, &recorder{}); err != nil {
			t.Fatalf("Update() = %v", err)
		}
		pt := p.Particles()[0]
		after := dist(pt.X, pt.Y, in.X, in.Y)

		if after <= before {
			t.Errorf("offset %v: distance %v -> %v, want strictly farther", off, before, after)
		}
		moved := dist(pt.BaseX, pt.BaseY, pt.X, pt.Y)
		wantMoved := (InfluenceRadius - before) / InfluenceRadius * MaxDisplacement
		if moved > MaxDisplacement+1e-9 || math.Abs(moved-wantMoved) > 1e-9 {
			t.Errorf("offset %v: displaced %v, want %v (max %v)", off, moved, wantMoved, MaxDisplacement)
		}
	}
}

func TestRepulsionExample(t *testing.T) {
	p := NewPool(testRand())
	p.particles = []Particle{resting(100, 100)}

	_ = p.Update(rectMask(200, 200, 0, 0, 200, 200), Influence{X: 130, Y: 100, Active: true}, 0, &recorder{})

	pt := p.Particles()[0]
	if math.Abs(pt.X-70) > 1e-9 || math.Abs(pt.Y-100) > 1e-9 {
		t.Errorf("particle at (%v, %v), want (70, 100)", pt.X, pt.Y)
	}
}

func TestRepulsionZeroDistance(t *testing.T) {
	p := NewPool(testRand())
	p.particles = []Particle{resting(100, 100)}

	_ = p.Update(rectMask(200, 200, 0, 0, 200, 200), Influence{X: 100, Y: 100, Active: true}, 0, &recorder{})

	pt := p.Particles()[0]
	if pt.X != 100-MaxDisplacement || pt.Y != 100 {
		t.Errorf("particle at (%v, %v), want (%v, 100) along the fallback angle 0", pt.X, pt.Y, 100-MaxDisplacement)
	}
}

func TestEaseTowardBase(t *testing.T) {
	m := rectMask(400, 400, 0, 0, 400, 400)
	tests := []struct {
		name string
		in   Influence
	}{
		{"inactive", Influence{}},
		{"inactive but close", Influence{X: 150, Y: 100, Active: false}},
		{"active but far", Influence{X: 390, Y: 390, Active: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(testRand())
			pt := resting(100, 100)
			pt.X, pt.Y = 150, 70
			p.particles = []Particle{pt}

			prev := dist(150, 70, 100, 100)
			for frame := range 30 {
				_ = p.Update(m, tt.in, 0, &recorder{})
				cur := p.Particles()[0]
				d := dist(cur.X, cur.Y, cur.BaseX, cur.BaseY)
				if math.Abs(d-prev*(1-ReturnRate)) > 1e-9 {
					t.Fatalf("frame %d: distance %v, want %v", frame, d, prev*(1-ReturnRate))
				}
				if cur.X < cur.BaseX || cur.Y > cur.BaseY {
					t.Fatalf("frame %d: overshot base to (%v, %v)", frame, cur.X, cur.Y)
				}
				prev = d
			}
		})
	}
}

func TestUpdateColors(t *testing.T) {
	m := rectMask(200, 200, 0, 0, 200, 200)
	p := NewPool(testRand())
	p.particles = []Particle{resting(10, 10), resting(150, 150)}

	r := &recorder{}
	_ = p.Update(m, Influence{X: 10, Y: 20, Active: true}, 0, r)

	var colors []op
	for _, o := range r.ops {
		if o.name == "SetRGBA" {
			colors = append(colors, o)
		}
	}
	if len(colors) != 2 {
		t.Fatalf("SetRGBA calls = %d, want 2", len(colors))
	}

	want := glitter(p.Particles()[0].Phase)
	got := colors[0].args
	if got[0] != want.R || got[1] != want.G || got[2] != want.B {
		t.Errorf("scattered colour = %v, want %+v", got, want)
	}
	if idle := colors[1].args; idle[0] != 1 || idle[1] != 1 || idle[2] != 1 || idle[3] != 1 {
		t.Errorf("idle colour = %v, want white", idle)
	}
}

func TestGlitter(t *testing.T) {
	tests := []struct {
		name    string
		phase   float64
		r, g, b float64
	}{
		// sin(π/2) > 0: blue band, intensity (√2/2+1)/2 -> 237.
		{"blue", math.Pi / 4, 142, 189, 237},
		// sin(3π/2) < 0: white band, same intensity -> 246.
		{"white", 3 * math.Pi / 4, 246, 246, 246},
		// sin(7π/2) < 0: white band, low intensity -> 208.
		{"dim white", 7 * math.Pi / 4, 208, 208, 208},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := glitter(tt.phase)
			if math.Abs(c.R*255-tt.r) > 1e-9 || math.Abs(c.G*255-tt.g) > 1e-9 || math.Abs(c.B*255-tt.b) > 1e-9 {
				t.Errorf("glitter(%v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.phase, c.R*255, c.G*255, c.B*255, tt.r, tt.g, tt.b)
			}
			if c.A != 1 {
				t.Errorf("alpha = %v, want 1", c.A)
			}
		})
	}
}

func TestPhaseAdvances(t *testing.T) {
	p := NewPool(testRand())
	p.particles = []Particle{resting(10, 10)}
	m := rectMask(50, 50, 0, 0, 50, 50)
	for range 5 {
		_ = p.Update(m, Influence{}, 0, &recorder{})
	}
	if got := p.Particles()[0].Phase; math.Abs(got-5*PhaseStep) > 1e-9 {
		t.Errorf("Phase = %v, want %v", got, 5*PhaseStep)
	}
}

func TestLifecycleReplace(t *testing.T) {
	// Only the right half is opaque; the expiring particle sits on the left.
	m := rectMask(100, 50, 50, 0, 100, 50)
	p := NewPool(testRand())
	old := resting(10, 10)
	old.Life = 1
	p.particles = []Particle{old}

	_ = p.Update(m, Influence{}, 0, &recorder{})

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	pt := p.Particles()[0]
	if pt.BaseX < 50 {
		t.Errorf("replacement base x = %v, want on the opaque half", pt.BaseX)
	}
	if m.At(int(pt.BaseX), int(pt.BaseY)) <= OpacityThreshold {
		t.Error("replacement base is not opaque")
	}
	if pt.Life < 50 || pt.Life >= 150 {
		t.Errorf("replacement Life = %d, want [50, 150)", pt.Life)
	}
}

func TestLifecycleRemove(t *testing.T) {
	empty := gg.NewMask(100, 100)
	p := NewPool(testRand())

	a, b, c := resting(1, 1), resting(2, 2), resting(3, 3)
	a.Life, b.Life, c.Life = 1, 5, 5
	p.particles = []Particle{a, b, c}

	r := &recorder{}
	_ = p.Update(empty, Influence{}, 10, r)

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	for _, pt := range p.Particles() {
		if pt.Life != 4 {
			t.Errorf("particle at base (%v, %v) has Life %d, want 4", pt.BaseX, pt.BaseY, pt.Life)
		}
		if pt.BaseX == 1 {
			t.Error("expired particle is still in the pool")
		}
	}
	if got := r.count("Fill"); got != 3 {
		t.Errorf("Fill calls = %d, want 3 (each particle drawn once)", got)
	}
}

func TestLifecycleNeverPersistsExpired(t *testing.T) {
	m := rectMask(60, 60, 20, 20, 40, 40)
	p := NewPool(testRand())
	p.Seed(m, 200)

	for frame := range 400 {
		if frame == 200 {
			m.Clear() // sampling now fails, expiring particles must go
		}
		_ = p.Update(m, Influence{}, 200, &recorder{})
		for _, pt := range p.Particles() {
			if pt.Life <= 0 || pt.Life >= 150 {
				t.Fatalf("frame %d: particle with Life %d persisted", frame, pt.Life)
			}
		}
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after the mask emptied, want 0", p.Len())
	}
}

func TestUpdateTopUp(t *testing.T) {
	p := NewPool(testRand())
	r := &recorder{}
	_ = p.Update(rectMask(30, 30, 0, 0, 30, 30), Influence{}, 25, r)

	if p.Len() != 25 {
		t.Errorf("Len() = %d, want 25", p.Len())
	}
	if r.count("Fill") != 0 {
		t.Error("topped-up particles should not be drawn until the next frame")
	}
}

func TestUpdateDrawsSquares(t *testing.T) {
	p := NewPool(testRand())
	pt := resting(12, 34)
	pt.Size = 1.5
	p.particles = []Particle{pt}

	r := &recorder{}
	_ = p.Update(rectMask(50, 50, 0, 0, 50, 50), Influence{}, 0, r)

	i := r.index("DrawRectangle")
	if i < 0 {
		t.Fatal("no DrawRectangle call")
	}
	if got := r.ops[i].args; got[0] != 12 || got[1] != 34 || got[2] != 1.5 || got[3] != 1.5 {
		t.Errorf("DrawRectangle%v, want (12, 34, 1.5, 1.5)", got)
	}
}

func TestUpdateReturnsFillError(t *testing.T) {
	want := errors.New("raster failure")
	p := NewPool(testRand())
	p.particles = []Particle{resting(1, 1), resting(2, 2)}

	r := &recorder{fillErr: want}
	err := p.Update(rectMask(10, 10, 0, 0, 10, 10), Influence{}, 0, r)
	if !errors.Is(err, want) {
		t.Errorf("Update() = %v, want %v", err, want)
	}
	if r.count("Fill") != 2 {
		t.Errorf("Fill calls = %d, want 2 (errors must not stop the frame)", r.count("Fill"))
	}
}
