package gpu

import (
	"log/slog"

	"github.com/gogpu/tess"
)

// slogger returns the logger for GPU uploads. It follows tess.SetLogger.
func slogger() *slog.Logger { return tess.Logger().With("pkg", "gpu") }
