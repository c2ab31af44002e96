// Package logger provides the structured logging setup shared by the guide's
// engines.
//
// It extends log/slog with context-based attribute injection and optional
// Sentry forwarding. The locale and theme engines follow a "log and degrade"
// policy - nothing on their public surface throws for bad input or failed
// loads - so the log stream is the primary place those failures become
// visible, and it is worth making it rich.
//
// # Basic Usage
//
//	log := logger.New()
//	log.Warn("translation key not found", "key", "nav.settings", "locale", "ar")
//
// # Context Extractors
//
// An extractor pulls a session-scoped value out of context on every call:
//
//	sessionExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
//			return slog.String("session_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(sessionExtractor)
//
// # Sentry
//
// NewWithSentry forwards warnings and errors to Sentry when a DSN is
// configured and silently stays stdout-only when it is not, so development
// and production share one code path:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:      os.Getenv("SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	})
package logger
