// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termfield hosts a glyphfield.Field in a terminal through tcell.
//
// The field draws on an off-screen gg.Context sized from the terminal grid.
// A Presenter folds the pixmap into half-block cells: every cell shows two
// vertically stacked blocks of scale×scale canvas pixels, the upper one as
// the foreground of '▀' and the lower one as its background.
//
// Mouse motion is mapped from cells back to canvas pixels, so the pointer
// repels particles at the resolution of the terminal. Losing focus counts as
// the pointer leaving the canvas. Pressing q, Escape or Ctrl-C stops the host.
package termfield
