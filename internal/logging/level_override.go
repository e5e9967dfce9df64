package logging

import (
	"context"
	"log/slog"
)

// minLevelHandler drops records below a floor before they reach next, so one
// subtree of loggers can run quieter than the process-wide level.
type minLevelHandler struct {
	next  slog.Handler
	floor slog.Level
}

func (h *minLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.floor && h.next.Enabled(ctx, level)
}

func (h *minLevelHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.floor {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *minLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &minLevelHandler{next: h.next.WithAttrs(attrs), floor: h.floor}
}

func (h *minLevelHandler) WithGroup(name string) slog.Handler {
	return &minLevelHandler{next: h.next.WithGroup(name), floor: h.floor}
}

// WithLevelFloor returns a logger that suppresses records below floor. Batch
// runs use it to keep per-file INFO lines out of the terminal unless verbose
// output was requested. Applying a second floor replaces the first.
func WithLevelFloor(logger *slog.Logger, floor slog.Level) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	next := logger.Handler()
	if existing, ok := next.(*minLevelHandler); ok {
		next = existing.next
	}
	return slog.New(&minLevelHandler{next: next, floor: floor})
}
