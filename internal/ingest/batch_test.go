package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"subforge/internal/ingest"
	"subforge/internal/testsupport"
)

func TestIngestAllKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 12 {
		text := fmt.Sprintf("1\n00:00:01,000 --> 00:00:02,000\nfile %d\n", i)
		paths = append(paths, testsupport.WriteCaption(t, dir, fmt.Sprintf("f%02d.srt", i), text, nil))
	}
	missing := filepath.Join(dir, "missing.srt")
	paths = append(paths[:5], append([]string{missing}, paths[5:]...)...)

	var (
		mu    sync.Mutex
		calls []int
	)
	cfg := testsupport.NewConfig(t)
	opts := ingest.OptionsFromConfig(cfg, nil)
	opts.Progress = func(_ ingest.BatchItem, done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != len(paths) {
			t.Errorf("total = %d, want %d", total, len(paths))
		}
		calls = append(calls, done)
	}

	items := ingest.NewPipeline(opts).IngestAll(context.Background(), paths, 4)
	if len(items) != len(paths) {
		t.Fatalf("items = %d, want %d", len(items), len(paths))
	}
	for i, item := range items {
		if item.Path != paths[i] {
			t.Fatalf("item %d path = %s, want %s", i, item.Path, paths[i])
		}
		if item.Path == missing {
			if !errors.Is(item.Err, ingest.ErrFileUnavailable) || item.Result != nil {
				t.Fatalf("missing file item = %+v", item)
			}
			continue
		}
		if item.Err != nil || item.Result == nil {
			t.Fatalf("item %d failed: %v", i, item.Err)
		}
		if item.Result.Source != item.Path {
			t.Fatalf("item %d result source = %s", i, item.Result.Source)
		}
	}
	if len(calls) != len(paths) || calls[len(calls)-1] != len(paths) {
		t.Fatalf("progress calls = %v", calls)
	}
}

func TestIngestAllCanceled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		testsupport.WriteCaption(t, dir, "a.srt", "1\n00:00:01,000 --> 00:00:02,000\na\n", nil),
		testsupport.WriteCaption(t, dir, "b.srt", "1\n00:00:01,000 --> 00:00:02,000\nb\n", nil),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := ingest.NewPipeline(ingest.Options{}).IngestAll(ctx, paths, 2)
	for _, item := range items {
		if !errors.Is(item.Err, context.Canceled) {
			t.Fatalf("expected canceled item, got %+v", item)
		}
		if ingest.FailureKind(item.Err) != "canceled" {
			t.Fatalf("failure kind = %s", ingest.FailureKind(item.Err))
		}
	}
}

func TestIngestAllEmptyAndWorkerBounds(t *testing.T) {
	p := ingest.NewPipeline(ingest.Options{})
	if items := p.IngestAll(context.Background(), nil, 3); len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	path := testsupport.WriteCaption(t, t.TempDir(), "a.srt", "1\n00:00:01,000 --> 00:00:02,000\na\n", nil)
	items := p.IngestAll(context.Background(), []string{path}, 0)
	if len(items) != 1 || items[0].Err != nil {
		t.Fatalf("zero workers should still process: %+v", items)
	}
}
