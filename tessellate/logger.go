package tessellate

import (
	"log/slog"

	"github.com/gogpu/tess"
)

func logger() *slog.Logger { return tess.Logger().With("pkg", "tessellate") }
