package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Time starts an operation timer. The returned func logs the operation name,
// request id, duration, and the error pointed to by errp (if any).
//
//	defer obs.Time(ctx, "catalog.ListRoutes")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := Logger(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Warn("op failed", zap.String("op", name), zap.Int64("dur_ms", dur.Milliseconds()), zap.Error(*errp))
			return
		}
		logger.Debug("op done", zap.String("op", name), zap.Int64("dur_ms", dur.Milliseconds()))
	}
}
