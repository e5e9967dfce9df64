package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every child is nil")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if got := newTeeHandler(nil, inner); got != inner {
		t.Fatal("expected single child to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsChildLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	logger := slog.New(newTeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("debug only")
	if infoBuf.Len() != 0 {
		t.Fatalf("info child received debug record: %s", infoBuf.String())
	}
	if debugBuf.Len() == 0 {
		t.Fatal("debug child missed debug record")
	}
	if logger.Handler().Enabled(context.Background(), slog.LevelDebug-4) {
		t.Fatal("tee should not enable levels no child accepts")
	}
}

func TestTeeHandlerPropagatesAttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(newTeeHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil)))
	logger.With("source", "movie.srt").WithGroup("report").Info("done", "cues", 3)

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		out := buf.String()
		if !strings.Contains(out, `"source":"movie.srt"`) || !strings.Contains(out, `"report":{"cues":3}`) {
			t.Fatalf("%s child output missing attrs: %s", name, out)
		}
	}
}

type failingHandler struct{ NoopHandler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestTeeHandlerKeepsWritingAfterChildError(t *testing.T) {
	var buf bytes.Buffer
	handler := newTeeHandler(failingHandler{}, slog.NewJSONHandler(&buf, nil))
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	if err := handler.Handle(context.Background(), record); err == nil {
		t.Fatal("expected child error to surface")
	}
	if buf.Len() == 0 {
		t.Fatal("healthy child should still receive the record")
	}
}

func TestTeeLoggerNilBase(t *testing.T) {
	var buf bytes.Buffer
	TeeLogger(nil, slog.NewJSONHandler(&buf, nil)).Info("no base")
	if buf.Len() == 0 {
		t.Fatal("expected output from tee child")
	}
}
