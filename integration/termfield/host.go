// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termfield

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/glyphfield"
)

// DefaultInterval is the frame interval, about 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

// DefaultScale is the default number of canvas pixels per cell column.
const DefaultScale = 4

// Host drives a field on a tcell screen.
type Host struct {
	screen    tcell.Screen
	field     *glyphfield.Field
	presenter *Presenter
	canvas    *gg.Context
	interval  time.Duration
}

// Option configures a Host.
type Option func(*Host)

// WithScale sets the canvas pixels per cell column.
func WithScale(scale int) Option {
	return func(h *Host) {
		h.presenter = NewPresenter(scale)
	}
}

// WithInterval sets the frame interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.interval = d
		}
	}
}

// NewHost binds field to an initialized screen. The host does not own the
// screen; the caller finalizes it after Run returns.
func NewHost(screen tcell.Screen, field *glyphfield.Field, opts ...Option) (*Host, error) {
	if screen == nil || field == nil {
		return nil, errors.New("termfield: nil screen or field")
	}
	h := &Host{
		screen:    screen,
		field:     field,
		presenter: NewPresenter(DefaultScale),
		canvas:    gg.NewContext(1, 1),
		interval:  DefaultInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Run renders frames until ctx is done, the user quits or the field stops.
// The field is always closed on return. A quit by the user returns nil.
func (h *Host) Run(ctx context.Context) error {
	defer h.field.Close()
	defer h.canvas.Close()

	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()
	defer h.screen.DisableFocus()
	defer h.screen.DisableMouse()

	if err := h.resize(h.screen.Size()); err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go h.readEvents(events, done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			quit, err := h.handle(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if h.frame() == glyphfield.Stop {
				return nil
			}
		}
	}
}

// readEvents forwards screen events until the screen is finalized or done is
// closed.
func (h *Host) readEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle applies one event and reports whether the host should quit.
func (h *Host) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return true, nil
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		h.field.Pointer().MouseMove(h.presenter.CellToCanvas(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			h.field.Pointer().MouseLeave()
		}

	case *tcell.EventResize:
		h.screen.Sync()
		if err := h.resize(ev.Size()); err != nil {
			return false, err
		}
	}
	return false, nil
}

// resize rebuilds the canvas and the field for a cols×rows grid.
func (h *Host) resize(cols, rows int) error {
	width, height := h.presenter.CanvasSize(cols, rows)
	if width <= 0 || height <= 0 {
		h.field.Resize(0, 0, 0)
		return nil
	}
	if err := h.canvas.Resize(width, height); err != nil {
		return fmt.Errorf("termfield: canvas resize failed: %w", err)
	}
	h.screen.Clear()
	h.field.Resize(width, height, width)
	return nil
}

// frame steps the field and presents it.
func (h *Host) frame() glyphfield.Action {
	action := h.field.Step(h.canvas)
	if action == glyphfield.Stop || h.field.State() != glyphfield.StateRunning {
		return action
	}
	h.presenter.Present(h.screen, h.canvas.ResizeTarget())
	h.screen.Show()
	return action
}
