package ingest_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"subforge/internal/charset"
	"subforge/internal/cues"
	"subforge/internal/ingest"
	"subforge/internal/logging"
	"subforge/internal/testsupport"
)

const cyrillicCaptions = "1\n00:00:01,000 --> 00:00:03,500\nПривет, Мир! Как дела у Тани?\n\n" +
	"2\n00:00:04,000 --> 00:00:06,000\nВсё хорошо, спасибо. До встречи\n"

func newPipeline(t *testing.T, opts ...testsupport.ConfigOption) *ingest.Pipeline {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	return ingest.NewPipeline(ingest.OptionsFromConfig(cfg, logging.NewNop()))
}

func TestIngestFileDecodesLegacyCodePage(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteCaption(t, dir, "ru.srt", cyrillicCaptions, charmap.Windows1251)

	res, err := newPipeline(t).IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if res.Resolution.Encoding != "windows-1251" {
		t.Fatalf("encoding = %s, want windows-1251", res.Resolution.Encoding)
	}
	if len(res.Cues) != 2 {
		t.Fatalf("cues = %d, want 2", len(res.Cues))
	}
	if res.Cues[0].Text != "Привет, Мир! Как дела у Тани?" {
		t.Fatalf("first cue text = %q", res.Cues[0].Text)
	}
	if res.Source != path || res.SHA256 == "" || res.RunID == "" {
		t.Fatalf("missing identity fields: %+v", res)
	}
	if res.Warning() != nil {
		t.Fatalf("unexpected warning: %v", res.Warning())
	}
}

func TestIngestFileMissing(t *testing.T) {
	_, err := newPipeline(t).IngestFile(context.Background(), filepath.Join(t.TempDir(), "nope.srt"))
	if !errors.Is(err, ingest.ErrFileUnavailable) {
		t.Fatalf("expected ErrFileUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope.srt") {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestIngestFileDirectory(t *testing.T) {
	_, err := newPipeline(t).IngestFile(context.Background(), t.TempDir())
	if !errors.Is(err, ingest.ErrFileUnavailable) {
		t.Fatalf("expected ErrFileUnavailable for a directory, got %v", err)
	}
}

func TestIngestFileCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newPipeline(t).IngestFile(ctx, "whatever.srt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIngestBytesRepairsAndReports(t *testing.T) {
	text := testsupport.SRT(
		"1\n00:00:01.000 --> 00:00:03,000\n<i>Hello</i> there",
		"2\n00:00:02,000 --> 00:00:05,000\nOverlapping line",
		"3\nno time range here",
		"4\n00:00:06,000 --> 00:00:07,000",
		"5\n0:00:08,5 --> 00:00:09,000\nshort {\\an8}millis",
	)
	res := newPipeline(t).IngestBytes(context.Background(), "mixed.srt", []byte(text))

	report := res.Report
	if report.Blocks != 5 || report.Parsed != 3 {
		t.Fatalf("blocks/parsed = %d/%d, want 5/3", report.Blocks, report.Parsed)
	}
	if report.Skipped[string(cues.SkipNoTimestamp)] != 1 || report.Skipped[string(cues.SkipNoText)] != 1 {
		t.Fatalf("unexpected skip counts: %v", report.Skipped)
	}
	if report.Repairs["separator"] != 1 || report.Repairs["hour_padding"] != 1 || report.Repairs["millis_width"] != 1 {
		t.Fatalf("unexpected repair counts: %v", report.Repairs)
	}
	if report.ClippedOverlap != 1 {
		t.Fatalf("clipped overlap = %d, want 1", report.ClippedOverlap)
	}
	if len(res.Cues) != 3 || report.Kept != 3 || report.Empty {
		t.Fatalf("kept %d cues, report %+v", len(res.Cues), report)
	}
	if res.Cues[0].Text != "Hello there" || res.Cues[2].Text != "short millis" {
		t.Fatalf("markup not stripped: %q / %q", res.Cues[0].Text, res.Cues[2].Text)
	}
	if msg := cues.CheckSequence(res.Cues, cues.DefaultLimits()); msg != "" {
		t.Fatalf("sequence invalid: %s", msg)
	}
	for i, cue := range res.Cues {
		if cue.Index != i+1 {
			t.Fatalf("cue %d has index %d", i, cue.Index)
		}
	}
}

// Overlapping cues: the earlier one is clipped to the successor's start.
func TestIngestBytesOverlapScenario(t *testing.T) {
	text := testsupport.SRT(
		"1\n00:00:01,000 --> 00:00:03,000\nfirst",
		"2\n00:00:02,000 --> 00:00:05,000\nsecond",
	)
	segs := newPipeline(t).IngestBytes(context.Background(), "a.srt", []byte(text)).Segments()
	want := []ingest.Segment{
		{StartUS: 1_000_000, EndUS: 2_000_000, Text: "first"},
		{StartUS: 2_000_000, EndUS: 5_000_000, Text: "second"},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %+v", segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestIngestBytesMinutesAsSecondsIsOptIn(t *testing.T) {
	text := "1\n00:03:00,800 --> 00:03:05,800\nline\n"

	plain := newPipeline(t).IngestBytes(context.Background(), "a.srt", []byte(text))
	if got := plain.Cues[0].Start; got != 180_800_000 {
		t.Fatalf("default start = %d, want 180800000", got)
	}

	repaired := newPipeline(t, testsupport.WithMinutesAsSeconds()).IngestBytes(context.Background(), "a.srt", []byte(text))
	cue := repaired.Cues[0]
	if cue.Start != 3_800_000 || cue.End != 5_800_000 {
		t.Fatalf("repaired cue = %s, want 00:00:03,800 --> 00:00:05,800", cues.FormatRange(cue.Start, cue.End))
	}
	if repaired.Report.Repairs["minutes_as_seconds"] == 0 {
		t.Fatalf("repair not counted: %v", repaired.Report.Repairs)
	}
}

func TestIngestBytesFitsTarget(t *testing.T) {
	text := testsupport.SRT(
		"1\n00:00:01,000 --> 00:00:03,000\nkept",
		"2\n00:00:09,500 --> 00:00:12,000\nclipped to the boundary",
		"3\n00:00:12,500 --> 00:00:14,000\nbeyond the target",
	)
	res := newPipeline(t, testsupport.WithTarget(10)).IngestBytes(context.Background(), "a.srt", []byte(text))
	if len(res.Cues) != 2 {
		t.Fatalf("cues = %d, want 2", len(res.Cues))
	}
	if last := res.Cues[1]; last.End != 10_000_000 || last.Duration() != 500_000 {
		t.Fatalf("last cue = %s", cues.FormatRange(last.Start, last.End))
	}
	if res.Report.ClippedFit != 1 || res.Report.DroppedFit != 1 {
		t.Fatalf("fit counts = clipped %d dropped %d", res.Report.ClippedFit, res.Report.DroppedFit)
	}
}

func TestIngestBytesEmptyResult(t *testing.T) {
	res := newPipeline(t).IngestBytes(context.Background(), "junk.srt", []byte("not a caption file\n\nat all\n"))
	if !res.Report.Empty || len(res.Cues) != 0 {
		t.Fatalf("expected empty report, got %+v", res.Report)
	}
	if len(res.Segments()) != 0 {
		t.Fatal("expected no segments")
	}
}

func TestIngestBytesLowConfidenceHintStillUsesLadder(t *testing.T) {
	opts := ingest.Options{
		Charset: charset.Options{
			Guesser: charset.GuesserFunc(func([]byte) (charset.Hint, bool) {
				return charset.Hint{Charset: "windows-1251", Language: "ru", Confidence: 0.2}, true
			}),
		},
	}
	res := ingest.NewPipeline(opts).IngestBytes(context.Background(), "utf8.srt", []byte(cyrillicCaptions))
	if res.Resolution.Encoding != charset.UTF8 || res.Resolution.Method != charset.MethodLadder {
		t.Fatalf("resolution = %s via %s, want utf-8 via ladder", res.Resolution.Encoding, res.Resolution.Method)
	}
	if res.Language != "ru" {
		t.Fatalf("language = %q, want ru", res.Language)
	}
}

func TestIngestBytesLossyFallbackWarns(t *testing.T) {
	opts := ingest.Options{Charset: charset.Options{Ladder: []string{charset.UTF8}}}
	data := []byte("1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n")
	res := ingest.NewPipeline(opts).IngestBytes(context.Background(), "latin.srt", data)
	if !res.Resolution.Lossy() {
		t.Fatalf("expected lossy fallback, got %s", res.Resolution.Method)
	}
	if !errors.Is(res.Warning(), ingest.ErrEncodingIndeterminate) {
		t.Fatalf("expected ErrEncodingIndeterminate warning, got %v", res.Warning())
	}
	if len(res.Cues) != 1 {
		t.Fatalf("lossy text should still yield cues, got %d", len(res.Cues))
	}
}

func TestIngestBytesUsesRunIDFromContext(t *testing.T) {
	ctx := logging.ContextWithRunID(context.Background(), "fixed-run")
	res := newPipeline(t).IngestBytes(ctx, "a.srt", []byte("1\n00:00:01,000 --> 00:00:02,000\nx\n"))
	if res.RunID != "fixed-run" {
		t.Fatalf("run id = %q, want fixed-run", res.RunID)
	}
}

func TestIngestIsDeterministic(t *testing.T) {
	p := newPipeline(t)
	data := []byte(cyrillicCaptions)
	first := p.IngestBytes(context.Background(), "a.srt", data)
	second := p.IngestBytes(context.Background(), "a.srt", data)
	if first.RunID == second.RunID {
		t.Fatal("each run should get its own id")
	}
	if cues.FormatSRT(first.Cues) != cues.FormatSRT(second.Cues) || first.SHA256 != second.SHA256 {
		t.Fatal("identical input should produce identical output")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTarget(1.5), testsupport.WithGuesser(), testsupport.WithMinutesAsSeconds())
	cfg.Timing.MinCueMS = 250
	cfg.Timing.MaxCueMS = 4000
	cfg.Timing.MaxTextRunes = 42
	cfg.Timing.StripMarkup = false

	opts := ingest.OptionsFromConfig(cfg, nil)
	if opts.TargetDuration != 1500*time.Millisecond {
		t.Errorf("target = %v", opts.TargetDuration)
	}
	if opts.Limits.MinDuration != 250*cues.Millisecond || opts.Limits.MaxDuration != 4*cues.Second {
		t.Errorf("limits = %+v", opts.Limits)
	}
	if opts.Limits.MaxTextRunes != 42 || opts.Limits.StripMarkup {
		t.Errorf("text limits = %+v", opts.Limits)
	}
	if !opts.Repair.MinutesAsSeconds {
		t.Error("minutes-as-seconds should be enabled")
	}
	if opts.Charset.Guesser == nil {
		t.Error("guesser should be configured")
	}
	if opts.Charset.DetectBytes != cfg.Encoding.DetectBytes {
		t.Errorf("detect bytes = %d", opts.Charset.DetectBytes)
	}

	if got := ingest.OptionsFromConfig(nil, nil); got.Limits != cues.DefaultLimits() {
		t.Errorf("nil config limits = %+v", got.Limits)
	}
}
