// Package logger provides structured logging with context extraction and Sentry integration.
//
// The package extends log/slog with two capabilities: automatic context-based
// attribute injection and optional Sentry error reporting.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"},
//		logger.BatchIDExtractor(),
//	)
//
//	ctx := logger.WithBatchID(context.Background(), "5f0c...")
//	log.InfoContext(ctx, "certificate sent", slog.String("email", "jane@example.com"))
//	// Output: time=... level=INFO msg="certificate sent" email=jane@example.com batch_id=5f0c...
//
// # Sentry Integration
//
// When Config.SentryDSN is set, records are sent to both the local handler and
// Sentry. Errors create Issues, warnings are stored as logs for context.
// If the DSN is empty or Sentry fails to initialize, logging continues locally.
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call, so values attached to the context after the
// logger was created are still picked up. LogHandlerDecorator can wrap any
// slog.Handler to add this behaviour.
package logger
