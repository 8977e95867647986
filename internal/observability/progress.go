package observability

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

// ZapProgress returns a progress callback that logs each stage at debug level.
func ZapProgress(log *zap.Logger) pipeline.ProgressCallback {
	log = logger.WithFields(log)
	return func(ctx context.Context, event pipeline.ProgressEvent) {
		fields := []zap.Field{
			zap.String(logger.FieldStage, event.Stage),
			zap.Duration("duration", event.Duration),
		}
		if id, ok := RequestID(ctx); ok {
			fields = append(fields, zap.String(logger.FieldRequestID, id))
		}
		log.Debug(event.Message, fields...)
	}
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
