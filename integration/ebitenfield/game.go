// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenfield

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/glyphfield"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game runs a field as an ebiten.Game.
type Game struct {
	field  *glyphfield.Field
	canvas *Canvas
	input  inputState
	poller poller

	width, height int
	action        glyphfield.Action
	quitOnEscape  bool
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithQuitOnEscape makes Escape stop the field and end the game.
func WithQuitOnEscape(quit bool) GameOption {
	return func(g *Game) {
		g.quitOnEscape = quit
	}
}

// NewGame wraps field. The canvas is created at a placeholder size and
// resized on the first Layout.
func NewGame(field *glyphfield.Field, opts ...GameOption) (*Game, error) {
	if field == nil {
		return nil, errors.New("ebitenfield: nil field")
	}
	canvas, err := New(1, 1)
	if err != nil {
		return nil, err
	}
	g := &Game{field: field, canvas: canvas, quitOnEscape: true}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Field returns the hosted field.
func (g *Game) Field() *glyphfield.Field { return g.field }

// Update forwards input to the field's pointer.
func (g *Game) Update() error {
	if g.action == glyphfield.Stop {
		return ebiten.Termination
	}
	if g.quitOnEscape && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.field.Close()
		g.action = glyphfield.Stop
		return ebiten.Termination
	}
	g.input.apply(g.poller.poll(g.width, g.height), g.field.Pointer())
	return nil
}

// Draw steps the field on the canvas and presents it.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.action == glyphfield.Stop {
		return
	}
	err := g.canvas.Draw(func(dc *gg.Context) {
		g.action = g.field.Step(dc)
	})
	if err != nil {
		glyphfield.Logger().Warn("ebitenfield: draw failed", "err", err)
		g.field.Close()
		g.action = glyphfield.Stop
		return
	}

	img, err := g.canvas.Flush()
	if err != nil {
		glyphfield.Logger().Warn("ebitenfield: flush failed", "err", err)
		return
	}
	screen.DrawImage(img, &ebiten.DrawImageOptions{})
}

// Layout keeps the logical screen equal to the window and rebuilds the field
// when the window size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		if err := g.resize(outsideWidth, outsideHeight); err != nil {
			glyphfield.Logger().Warn("ebitenfield: resize failed", "err", err)
		}
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(width, height int) error {
	g.width, g.height = width, height
	g.field.Resize(width, height, width)
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := g.canvas.Resize(width, height); err != nil {
		return fmt.Errorf("ebitenfield: canvas: %w", err)
	}
	return nil
}

// Close stops the field and releases the canvas.
func (g *Game) Close() error {
	g.field.Close()
	g.action = glyphfield.Stop
	return g.canvas.Close()
}
