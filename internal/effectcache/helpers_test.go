package effectcache

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/effectc/internal/ctxlog"
)

func withLogger(logger *slog.Logger) context.Context {
	return ctxlog.WithLogger(context.Background(), logger)
}
