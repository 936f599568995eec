package logger

import (
	"context"
	"log/slog"
)

type batchIDKey struct{}

// WithBatchID returns a copy of ctx carrying the batch identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, batchIDKey{}, id)
}

// BatchIDFromContext returns the batch identifier stored in ctx, if any.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(batchIDKey{}).(string)
	return id, ok && id != ""
}

// BatchIDExtractor adds a "batch_id" attribute to every record logged with a
// context produced by WithBatchID.
func BatchIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := BatchIDFromContext(ctx); ok {
			return slog.String("batch_id", id), true
		}
		return slog.Attr{}, false
	}
}
