package tess_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/tessellate"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := tess.Logger()
	t.Cleanup(func() { tess.SetLogger(orig) })
	var buf bytes.Buffer
	tess.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLoggerSilentByDefault(t *testing.T) {
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if tess.Logger().Enabled(context.Background(), level) {
			t.Errorf("default logger enabled at %v", level)
		}
	}
}

func TestSetLoggerNil(t *testing.T) {
	captureLogs(t, slog.LevelDebug)
	tess.SetLogger(nil)
	l := tess.Logger()
	if l == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left logging enabled")
	}
}

func TestDroppedPatchesLogged(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)
	wt, err := tessellate.NewWedgeTessellator(tessellate.WithAllocator(tessellate.NewArena(tessellate.AttribFanPoint.Stride())))
	if err != nil {
		t.Fatal(err)
	}
	res := wt.Prepare(tessellate.DrawList{{
		Shape:  tess.RectShape{Rect: tess.RectXYWH(0, 0, 10, 10)},
		Matrix: tess.Identity(),
	}})
	if res.Dropped == 0 {
		t.Fatal("no patches dropped")
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "pkg=tessellate") {
		t.Errorf("warning not logged:\n%s", out)
	}
}

func TestPerspectiveLoggedAtDebug(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	ct, err := tessellate.NewCurveTessellator()
	if err != nil {
		t.Fatal(err)
	}
	m := tess.Identity()
	m.G = 0.01
	ct.Prepare(tessellate.DrawList{{Shape: tess.RectShape{Rect: tess.RectXYWH(0, 0, 10, 10)}, Matrix: m}})
	if !strings.Contains(buf.String(), "perspective") {
		t.Errorf("perspective fallback not logged:\n%s", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := tess.Logger()
	t.Cleanup(func() { tess.SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tess.Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			tess.SetLogger(slog.Default())
			tess.SetLogger(nil)
		}()
	}
	wg.Wait()
}
