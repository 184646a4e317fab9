// Command glyphshot renders the particle text effect headlessly and saves the
// last frame as a PNG.
//
// The pointer follows a scripted sweep from left to right across the label,
// then leaves the canvas for the settle frames so the particles can return.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/glyphfield"
	"github.com/gogpu/glyphfield/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file")
		width      = flag.Int("width", 0, "image width (default from config)")
		height     = flag.Int("height", 0, "image height (default from config)")
		viewport   = flag.Int("viewport", 0, "viewport width used for density and font size")
		frames     = flag.Int("frames", 0, "frames with the pointer sweeping")
		settle     = flag.Int("settle", 0, "frames after the pointer leaves")
		label      = flag.String("label", "", "text to render")
		seed       = flag.Uint64("seed", 0, "random seed (0 for random)")
		background = flag.String("background", "#000000", "background colour, empty for transparent")
		output     = flag.String("output", "", "output file")
		logLevel   = flag.String("log", "info", "log level")
	)
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		log.Fatal(err)
	}
	glyphfield.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	overrideInt(&cfg.Shot.Width, *width)
	overrideInt(&cfg.Shot.Height, *height)
	overrideInt(&cfg.Shot.Viewport, *viewport)
	overrideInt(&cfg.Shot.Frames, *frames)
	if *label != "" {
		cfg.Field.Label = *label
	}
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	if *output != "" {
		cfg.Shot.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	field, err := glyphfield.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create field: %v", err)
	}
	defer field.Close()

	shot := cfg.Shot
	dc := gg.NewContext(shot.Width, shot.Height)
	defer dc.Close()

	field.Resize(shot.Width, shot.Height, shot.Viewport)
	sweep(field, dc, shot.Width, shot.Height, shot.Frames)
	release(field.Pointer())
	for range *settle {
		field.Step(dc)
	}

	out := dc
	if *background != "" {
		out = gg.NewContext(shot.Width, shot.Height)
		defer out.Close()
		out.ClearWithColor(gg.Hex(*background))
		out.DrawImage(gg.ImageBufFromImage(dc.Image()), 0, 0)
	}
	if err := out.SavePNG(shot.Output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Frame saved to %s (%dx%d, %d particles)\n", shot.Output, shot.Width, shot.Height, len(field.Particles()))
}

// sweep moves the pointer along a shallow sine across the canvas, one step
// per frame. A touch-capable field is swept with a held touch, since hovering
// does not repel there.
func sweep(field *glyphfield.Field, dc *gg.Context, w, h, frames int) {
	p := field.Pointer()
	if p.TouchCapable() {
		p.TouchStart()
	}
	for i := range frames {
		t := float64(i) / float64(max(frames-1, 1))
		x := t * float64(w)
		y := float64(h)/2 + math.Sin(t*2*math.Pi)*float64(h)/6
		if p.TouchCapable() {
			p.TouchMove(x, y, 1)
		} else {
			p.MouseMove(x, y)
		}
		if field.Step(dc) == glyphfield.Stop {
			return
		}
	}
}

// release lifts the touch or moves the mouse off the canvas.
func release(p *glyphfield.Pointer) {
	if p.TouchCapable() {
		p.TouchEnd()
		return
	}
	p.MouseLeave()
}

func overrideInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
