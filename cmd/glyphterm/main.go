// Command glyphterm renders the particle text effect in a terminal using
// half-block characters. Move the mouse over the text to scatter it; q,
// Escape or Ctrl-C quits.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/glyphfield"
	"github.com/gogpu/glyphfield/integration/termfield"
	"github.com/gogpu/glyphfield/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file")
		scale      = flag.Int("scale", 0, "canvas pixels per cell column (default from config)")
		fps        = flag.Int("fps", 0, "frames per second (default from config)")
		label      = flag.String("label", "", "text to render")
		seed       = flag.Uint64("seed", 0, "random seed (0 for random)")
		logFile    = flag.String("logfile", "", "write logs to this file instead of discarding them")
		logLevel   = flag.String("log", "info", "log level")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scale > 0 {
		cfg.Terminal.Scale = *scale
	}
	if *fps > 0 {
		cfg.Terminal.FPS = *fps
	}
	if *label != "" {
		cfg.Field.Label = *label
	}
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// The screen owns stderr's terminal, so logs only go to a file.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger, err := config.NewLogger(f, *logLevel)
		if err != nil {
			log.Fatal(err)
		}
		glyphfield.SetLogger(logger)
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	field, err := glyphfield.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create field: %v", err)
	}

	if err := run(field, cfg.Terminal); err != nil {
		log.Fatal(err)
	}
}

func run(field *glyphfield.Field, tc config.Terminal) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host, err := termfield.NewHost(screen, field,
		termfield.WithScale(tc.Scale),
		termfield.WithInterval(time.Second/time.Duration(tc.FPS)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
