package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"subforge/internal/charset"
	"subforge/internal/cues"
	"subforge/internal/fileutil"
	"subforge/internal/language"
	"subforge/internal/logging"
)

// Pipeline runs the caption stages. It holds configuration only and is safe
// for concurrent use.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// NewPipeline fills unset limits with defaults.
func NewPipeline(opts Options) *Pipeline {
	if opts.Limits == (cues.Limits{}) {
		opts.Limits = cues.DefaultLimits()
	}
	return &Pipeline{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "ingest"),
	}
}

// IngestFile reads path with a single scoped open/read/close and runs the
// stages on its contents. Read failures wrap ErrFileUnavailable.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, Wrap(ErrFileUnavailable, "read", path, err)
	}
	return p.IngestBytes(ctx, path, data), nil
}

// IngestBytes runs every stage on data. name identifies the source in logs
// and in the Result. It always produces a Result; an empty cue list is
// reported through Report.Empty.
func (p *Pipeline) IngestBytes(ctx context.Context, name string, data []byte) *Result {
	started := time.Now()
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	ctx = logging.ContextWithSource(logging.ContextWithRunID(ctx, runID), name)
	logger := logging.WithContext(ctx, p.logger)

	result := &Result{
		RunID:  runID,
		Source: name,
		SHA256: fileutil.SHA256Hex(data),
		Bytes:  len(data),
	}

	charsetOpts := p.opts.Charset
	charsetOpts.Logger = logging.WithContext(ctx, charsetOpts.Logger)
	res := charset.NewResolver(charsetOpts).Resolve(data)
	result.Resolution = res
	if res.Hint != nil {
		result.Language = language.ToISO2(res.Hint.Language)
	}
	logger.Debug("encoding resolved",
		logging.String(logging.FieldStage, "charset"),
		logging.String("encoding", res.Encoding),
		logging.String("method", string(res.Method)),
		logging.Float64("score", res.Score),
		logging.Int("candidates", len(res.Candidates)),
	)

	raw, parsed := cues.Parse(res.Text)
	for _, block := range parsed.Results {
		if block.Kept() {
			continue
		}
		logger.Debug("block skipped",
			logging.String(logging.FieldStage, "parse"),
			logging.Int("block", block.Block),
			logging.String("reason", string(block.Skip)),
		)
	}

	timed, repaired := p.opts.Repair.Resolve(raw)
	valid, validated := cues.Validate(timed, p.opts.Limits)
	fitted, fit := cues.Fit(valid, p.opts.TargetDuration.Microseconds(), p.opts.Limits.MinDuration)

	result.Cues = fitted
	result.Report = buildReport(parsed, repaired, validated, fit)
	result.Elapsed = time.Since(started)

	attrs := []logging.Attr{
		logging.String("encoding", res.Encoding),
		logging.String("method", string(res.Method)),
		logging.Int("cues", result.Report.Kept),
		logging.Int("skipped", result.Report.SkippedTotal()),
		logging.Int("repairs", result.Report.RepairTotal()),
		logging.Int("dropped", result.Report.DroppedEmpty+result.Report.DroppedOverlap+result.Report.DroppedFit),
		logging.Int("truncated", result.Report.Truncated),
		logging.Duration("elapsed", result.Elapsed),
	}
	if result.Report.Empty {
		logging.WarnWithContext(logger, "no cues survived ingestion", "ingest_empty",
			append(attrs,
				logging.String(logging.FieldErrorHint, "check that the file is a caption file and that its timestamps parse"),
				logging.String(logging.FieldImpact, "no segments are produced for this file"),
			)...,
		)
		return result
	}
	logger.Info("ingest complete", logging.Args(attrs...)...)
	return result
}

func buildReport(parsed cues.ParseReport, repaired cues.RepairReport, validated cues.ValidationReport, fit cues.FitReport) Report {
	report := Report{
		Blocks:         parsed.Blocks,
		Parsed:         parsed.Kept,
		Split:          parsed.Split,
		Skipped:        make(map[string]int, len(parsed.Skipped)),
		Repairs:        make(map[string]int, len(repaired.Counts)),
		DroppedEmpty:   validated.DroppedEmpty,
		DroppedOverlap: validated.DroppedOverlap,
		Extended:       validated.Extended,
		Shortened:      validated.Shortened,
		ClippedOverlap: validated.Clipped,
		Truncated:      validated.Truncated,
		DroppedFit:     fit.DroppedShort + fit.DroppedTail,
		ClippedFit:     fit.Clipped,
		Kept:           fit.Kept,
	}
	for reason, n := range parsed.Skipped {
		report.Skipped[string(reason)] = n
	}
	for name, n := range repaired.Counts {
		report.Repairs[name] = n
	}
	report.Empty = report.Kept == 0
	return report
}
