// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenfield

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("ebitenfield: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ebitenfield: invalid dimensions")
)

// Canvas pairs a gg.Context with the ebiten.Image it is presented through.
// The image is created lazily by Flush and recreated after a Resize.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	ctx         *gg.Context
	image       *ebiten.Image
	dirty       bool // pixmap changed since the last upload
	sizeChanged bool // image must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a canvas of the given size.
//
// Returns error if dimensions are invalid.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Canvas{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
		dirty:  true,
	}, nil
}

// Context returns the gg drawing context, or nil if the canvas is closed.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Draw calls fn with the gg context and marks the canvas dirty.
func (c *Canvas) Draw(fn func(*gg.Context)) error {
	if c.closed {
		return ErrCanvasClosed
	}
	fn(c.ctx)
	c.dirty = true
	return nil
}

// IsDirty reports whether the pixmap has changes not yet uploaded.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Resize changes the canvas dimensions and clears it.
// Resizing to the current size is a no-op.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}

	if err := c.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("ebitenfield: context resize failed: %w", err)
	}

	c.width = width
	c.height = height
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush uploads the pixmap into the canvas image if dirty and returns the
// image. It must be called from Ebitengine's Draw.
func (c *Canvas) Flush() (*ebiten.Image, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	if c.sizeChanged {
		if c.image != nil {
			c.image.Deallocate()
			c.image = nil
		}
		c.sizeChanged = false
	}

	if c.image == nil {
		c.image = ebiten.NewImage(c.width, c.height)
		c.dirty = true
	}
	if !c.dirty {
		return c.image, nil
	}

	c.image.WritePixels(c.ctx.ResizeTarget().Data())
	c.dirty = false
	return c.image, nil
}

// Close releases the image and the drawing context. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
	return nil
}
