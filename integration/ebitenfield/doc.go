// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenfield hosts a glyphfield.Field in an Ebitengine window.
//
// The field draws on a gg.Context owned by a Canvas. Each frame the canvas
// pixmap is uploaded into an *ebiten.Image and drawn onto the screen, so the
// effect runs on the CPU rasterizer while Ebitengine owns the window, the
// frame cadence and input delivery.
//
// # Quick Start
//
//	field, err := glyphfield.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	game, err := ebitenfield.NewGame(field)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer game.Close()
//
//	ebiten.SetWindowTitle(field.Description())
//	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
//	if err := ebiten.RunGame(game); err != nil {
//		log.Fatal(err)
//	}
//
// # Input
//
// Cursor positions inside the window become MouseMove calls and a cursor
// leaving the window becomes MouseLeave. The first touch down starts a touch,
// every frame with touches moves it, and releasing all touches ends it. On
// touch-capable platforms the cursor is ignored.
//
// # Sizing
//
// Layout reports the outside size unchanged. Whenever it changes the canvas is
// resized and the field is rebuilt with the window width as viewport width.
// A field that stops makes Update return ebiten.Termination.
package ebitenfield
