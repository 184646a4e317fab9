// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenfield

import (
	"runtime"

	"github.com/gogpu/glyphfield"
	"github.com/hajimehoshi/ebiten/v2"
)

// touchPlatform reports whether goos delivers touch instead of a cursor.
func touchPlatform(goos string) bool {
	return goos == "android" || goos == "ios"
}

// TouchCapable reports whether the running platform is touch-first.
// Pass it to glyphfield.WithTouchSupport.
func TouchCapable() bool {
	return touchPlatform(runtime.GOOS)
}

// touchPoint is one active touch in screen pixels.
type touchPoint struct {
	x, y int
}

// frameInput is the raw input snapshot of one tick.
type frameInput struct {
	cursorX, cursorY int
	touches          []touchPoint
	width, height    int
}

// inputState turns successive snapshots into Pointer events.
type inputState struct {
	inside   bool
	touching bool
}

// apply diffs in against the previous snapshot and forwards the changes to p.
func (s *inputState) apply(in frameInput, p *glyphfield.Pointer) {
	if !p.TouchCapable() {
		inside := in.cursorX >= 0 && in.cursorY >= 0 && in.cursorX < in.width && in.cursorY < in.height
		switch {
		case inside:
			p.MouseMove(float64(in.cursorX), float64(in.cursorY))
		case s.inside:
			p.MouseLeave()
		}
		s.inside = inside
	}

	if len(in.touches) > 0 {
		if !s.touching {
			p.TouchStart()
			s.touching = true
		}
		first := in.touches[0]
		p.TouchMove(float64(first.x), float64(first.y), len(in.touches))
		return
	}
	if s.touching {
		p.TouchEnd()
		s.touching = false
	}
}

// poller reads the current input from Ebitengine.
type poller struct {
	ids     []ebiten.TouchID
	touches []touchPoint
}

func (pl *poller) poll(width, height int) frameInput {
	x, y := ebiten.CursorPosition()
	pl.ids = ebiten.AppendTouchIDs(pl.ids[:0])
	pl.touches = pl.touches[:0]
	for _, id := range pl.ids {
		tx, ty := ebiten.TouchPosition(id)
		pl.touches = append(pl.touches, touchPoint{x: tx, y: ty})
	}
	return frameInput{
		cursorX: x,
		cursorY: y,
		touches: pl.touches,
		width:   width,
		height:  height,
	}
}
