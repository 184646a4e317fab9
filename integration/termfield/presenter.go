// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termfield

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
)

// HalfBlock is the rune every presented cell is drawn with.
const HalfBlock = '▀'

// Presenter converts a canvas pixmap into terminal cells.
type Presenter struct {
	scale int
}

// NewPresenter returns a presenter that maps scale×scale canvas pixels onto
// each half cell. Values below 1 are treated as 1.
func NewPresenter(scale int) *Presenter {
	return &Presenter{scale: max(scale, 1)}
}

// Scale returns the canvas pixels per cell column.
func (p *Presenter) Scale() int { return p.scale }

// CanvasSize returns the canvas size that covers a cols×rows grid.
func (p *Presenter) CanvasSize(cols, rows int) (width, height int) {
	return cols * p.scale, rows * 2 * p.scale
}

// CellToCanvas returns the canvas pixel at the centre of a cell.
func (p *Presenter) CellToCanvas(col, row int) (x, y float64) {
	k := float64(p.scale)
	return (float64(col) + 0.5) * k, (float64(row) + 0.5) * 2 * k
}

// Cell returns the average colours of the upper and lower half of a cell,
// composited over black.
func (p *Presenter) Cell(px *gg.Pixmap, col, row int) (top, bottom tcell.Color) {
	k := p.scale
	x0, y0 := col*k, row*2*k
	return p.block(px, x0, y0), p.block(px, x0, y0+k)
}

// block averages a k×k block. The pixmap holds premultiplied RGBA, so the
// colour channels already are the colour over black.
func (p *Presenter) block(px *gg.Pixmap, x0, y0 int) tcell.Color {
	w, h := px.Width(), px.Height()
	data := px.Data()
	var r, g, b, n int
	for y := y0; y < y0+p.scale && y < h; y++ {
		for x := x0; x < x0+p.scale && x < w; x++ {
			i := (y*w + x) * 4
			r += int(data[i])
			g += int(data[i+1])
			b += int(data[i+2])
			n++
		}
	}
	if n == 0 {
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(r/n), int32(g/n), int32(b/n))
}

// Present writes px into every cell of s that the pixmap covers.
func (p *Presenter) Present(s tcell.Screen, px *gg.Pixmap) {
	cols, rows := s.Size()
	cols = min(cols, px.Width()/p.scale)
	rows = min(rows, px.Height()/(2*p.scale))
	for row := range rows {
		for col := range cols {
			top, bottom := p.Cell(px, col, row)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.SetContent(col, row, HalfBlock, nil, style)
		}
	}
}
