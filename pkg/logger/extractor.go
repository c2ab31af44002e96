package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ExtractorHandler wraps a slog.Handler and injects context-extracted
// attributes on every log call, so request- or session-scoped values stay
// fresh without each call site repeating them.
type ExtractorHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewExtractorHandler creates a handler that runs the given extractors before
// delegating to next. Nil extractors are dropped so a misconfigured option
// cannot panic at log time.
func NewExtractorHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &ExtractorHandler{next: next, extractors: clean}
}

func (h *ExtractorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ExtractorHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}

	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ExtractorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ExtractorHandler{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

func (h *ExtractorHandler) WithGroup(name string) slog.Handler {
	return &ExtractorHandler{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}
