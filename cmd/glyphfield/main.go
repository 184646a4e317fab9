// Command glyphfield shows the particle text effect in a resizable window.
// Move the mouse over the text to scatter it; Escape quits.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gogpu/glyphfield"
	"github.com/gogpu/glyphfield/integration/ebitenfield"
	"github.com/gogpu/glyphfield/internal/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file")
		width      = flag.Int("width", 0, "initial window width (default from config)")
		height     = flag.Int("height", 0, "initial window height (default from config)")
		label      = flag.String("label", "", "text to render")
		seed       = flag.Uint64("seed", 0, "random seed (0 for random)")
		touch      = flag.Bool("touch", ebitenfield.TouchCapable(), "treat the device as touch-first")
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
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *label != "" {
		cfg.Field.Label = *label
	}
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	cfg.Field.Touch = cfg.Field.Touch || *touch

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	field, err := glyphfield.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create field: %v", err)
	}

	game, err := ebitenfield.NewGame(field)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(field.Description())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("glyphfield: run failed", "err", err)
		os.Exit(1)
	}
}
