// Package glyphfield renders an interactive particle field that resolves into
// a line of text.
//
// # Overview
//
// The label is rasterized once per size into an alpha mask. Particles are
// seeded on opaque mask pixels and ease back to those anchors every frame,
// scattering away from the pointer while it hovers (or, on touch devices,
// while a finger is down). Low-opacity debris polygons drift down behind the
// text.
//
// # Quick Start
//
//	f, err := glyphfield.New(glyphfield.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	dc := gg.NewContext(800, 200)
//	f.Resize(800, 200, 1280)
//
//	f.Pointer().MouseMove(400, 100)
//	for f.Step(dc) == glyphfield.ScheduleNext {
//	    // present dc, wait for the next display refresh
//	}
//
// # Frame Model
//
// A Field never schedules itself. The host calls Step once per display
// refresh and stops when Step returns Stop. Resize rebuilds the mask, the
// particle pool and the debris set synchronously, so the next Step always
// sees a consistent population.
//
// Input is delivered through the Field's Pointer, which is the only state
// shared between event handling and the frame update.
//
// # Hosts
//
// Any type with the methods of Painter can be drawn to; *gg.Context is the
// intended one. Ready-made hosts live in integration/ebitenfield (desktop and
// mobile windows) and integration/termfield (terminals with mouse reporting).
//
// # Coordinate System
//
// Canvas pixels, origin at the top-left, y increasing downwards. Angles are
// in radians.
//
// # Thread Safety
//
// Field, Pointer, Pool and DebrisField are NOT safe for concurrent use.
// Deliver input on the goroutine that calls Step.
package glyphfield
