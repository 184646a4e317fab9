package glyphfield

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silentHandler drops every record. A field running at 60 frames per second
// calls Logger on warn paths inside Step, so Enabled is false to skip
// building attributes.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h silentHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h silentHandler) WithGroup(string) slog.Handler           { return h }

var (
	silent  = slog.New(silentHandler{})
	current atomic.Pointer[slog.Logger]
)

func init() {
	current.Store(silent)
}

// SetLogger routes field diagnostics to l. Fields are silent until a host
// installs a logger; nil makes them silent again.
//
// What is logged:
//   - [slog.LevelDebug]: "glyphfield: reseeded" after every Resize, with the
//     canvas size, device class, scale, target and seeded counts
//   - [slog.LevelInfo]: "glyphfield: sized" on the first usable Resize and
//     "glyphfield: closed" on Close
//   - [slog.LevelWarn]: failed fills, failed mask rasterization and a missing
//     drawing surface
//
// The commands install a text handler chosen with their -log flag:
//
//	glyphfield.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed with SetLogger. The window and
// terminal hosts log through it as well. Safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}
