package tess

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so disabled call
// sites never format their attributes.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent = slog.New(discard{})
	active atomic.Pointer[slog.Logger]
)

func init() { active.Store(silent) }

// SetLogger routes the log output of tess and its sub-packages to l.
// Nothing is logged until it is called; nil silences logging again.
// It may be called while other goroutines tessellate.
//
// Levels:
//   - [slog.LevelDebug]: perspective projection, chop depth exhaustion
//   - [slog.LevelInfo]: GPU buffer uploads
//   - [slog.LevelWarn]: patches dropped because storage ran out
//
// Example:
//
//	tess.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the logger set by SetLogger. Sub-packages derive their
// loggers from it with a "pkg" attribute.
func Logger() *slog.Logger { return active.Load() }
