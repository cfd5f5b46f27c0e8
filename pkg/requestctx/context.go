package requestctx

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const loggerContextKey contextKey = "leadcapture/pkg/requestctx/logger"

// WithLogger stores the request scoped log entry in context for downstream consumers.
func WithLogger(ctx context.Context, logger *log.Entry) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the log entry from context, falling back to the standard logger.
func Logger(ctx context.Context) *log.Entry {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey).(*log.Entry); ok && logger != nil {
			return logger
		}
	}
	return log.NewEntry(log.StandardLogger())
}
