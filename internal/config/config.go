// Package config reads the optional INI-style configuration file shared by
// the glyphfield commands.
//
// A file may set any subset of the sections below; unset values keep their
// defaults and command-line flags override both.
//
//	[Field]
//	Label = Heisenbug
//	FontFile = /usr/share/fonts/truetype/dejavu/DejaVuSerif-BoldItalic.ttf
//	Seed = 42
//	Touch = false
//
//	[Window]
//	Width = 1024
//	Height = 400
//
//	[Terminal]
//	Scale = 4
//	FPS = 60
//
//	[Shot]
//	Width = 800
//	Height = 200
//	Viewport = 1024
//	Frames = 90
//	Output = glyphfield.png
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/glyphfield"
	"gopkg.in/gcfg.v1"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Field configures the effect itself.
type Field struct {
	Label    string
	FontFile string
	Seed     uint64 // 0 picks a random seed
	Touch    bool
}

// Window configures the window host.
type Window struct {
	Width, Height int
}

// Terminal configures the terminal host.
type Terminal struct {
	Scale int
	FPS   int
}

// Shot configures the headless renderer.
type Shot struct {
	Width, Height int
	Viewport      int
	Frames        int
	Output        string
}

// Config is the whole file.
type Config struct {
	Field    Field
	Window   Window
	Terminal Terminal
	Shot     Shot
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Field:    Field{Label: glyphfield.DefaultLabel},
		Window:   Window{Width: 1024, Height: 400},
		Terminal: Terminal{Scale: 4, FPS: 60},
		Shot: Shot{
			Width:    800,
			Height:   200,
			Viewport: 1024,
			Frames:   90,
			Output:   "glyphfield.png",
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if err := gcfg.ReadFileInto(c, path); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse reads an in-memory configuration over the defaults.
func Parse(text string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(c, text); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Terminal.Scale < 1:
		return fmt.Errorf("%w: terminal scale %d", ErrInvalid, c.Terminal.Scale)
	case c.Terminal.FPS < 1 || c.Terminal.FPS > 240:
		return fmt.Errorf("%w: terminal fps %d", ErrInvalid, c.Terminal.FPS)
	case c.Shot.Width <= 0 || c.Shot.Height <= 0:
		return fmt.Errorf("%w: shot size %dx%d", ErrInvalid, c.Shot.Width, c.Shot.Height)
	case c.Shot.Viewport <= 0:
		return fmt.Errorf("%w: shot viewport %d", ErrInvalid, c.Shot.Viewport)
	case c.Shot.Frames < 1:
		return fmt.Errorf("%w: shot frames %d", ErrInvalid, c.Shot.Frames)
	case c.Shot.Output == "":
		return fmt.Errorf("%w: empty shot output", ErrInvalid)
	}
	return nil
}

// Options converts the [Field] section into field options, reading the font
// file if one is set.
func (c *Config) Options() ([]glyphfield.Option, error) {
	opts := []glyphfield.Option{
		glyphfield.WithLabel(c.Field.Label),
		glyphfield.WithTouchSupport(c.Field.Touch),
	}
	if c.Field.Seed != 0 {
		opts = append(opts, glyphfield.WithSeed(c.Field.Seed))
	}
	if c.Field.FontFile != "" {
		data, err := os.ReadFile(c.Field.FontFile)
		if err != nil {
			return nil, fmt.Errorf("config: font: %w", err)
		}
		opts = append(opts, glyphfield.WithFontData(data))
	}
	return opts, nil
}
