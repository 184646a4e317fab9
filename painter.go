package glyphfield

// Painter is the subset of a 2D drawing context the field draws with.
// *gg.Context implements Painter.
type Painter interface {
	// Clear resets every pixel to transparent.
	Clear()

	SetRGBA(r, g, b, a float64)

	DrawRectangle(x, y, w, h float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	// Fill fills the current path and clears it.
	Fill() error

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
}
