package ingest

import (
	"log/slog"
	"time"

	"subforge/internal/charset"
	"subforge/internal/config"
	"subforge/internal/cues"
)

// Options configures a Pipeline.
type Options struct {
	Charset charset.Options
	Repair  cues.Repairer
	// Limits left at the zero value fall back to cues.DefaultLimits.
	Limits cues.Limits
	// TargetDuration <= 0 disables fitting.
	TargetDuration time.Duration
	Logger         *slog.Logger
	// Progress, when set, is called once per finished file during IngestAll.
	// Calls are serialized.
	Progress func(item BatchItem, done, total int)
}

// OptionsFromConfig maps configuration sections onto pipeline options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	if cfg == nil {
		return Options{Limits: cues.DefaultLimits(), Logger: logger}
	}
	opts := Options{
		Charset: charset.Options{
			DetectBytes:    cfg.Encoding.DetectBytes,
			HighConfidence: cfg.Encoding.HighConfidence,
			LowConfidence:  cfg.Encoding.LowConfidence,
			EarlyExit:      cfg.Encoding.EarlyExitScore,
			Logger:         logger,
		},
		Repair: cues.Repairer{MinutesAsSeconds: cfg.Timing.MinutesAsSeconds},
		Limits: cues.Limits{
			MinDuration:  int64(cfg.Timing.MinCueMS) * cues.Millisecond,
			MaxDuration:  int64(cfg.Timing.MaxCueMS) * cues.Millisecond,
			MaxTextRunes: cfg.Timing.MaxTextRunes,
			StripMarkup:  cfg.Timing.StripMarkup,
		},
		TargetDuration: time.Duration(cfg.Fit.TargetSeconds * float64(time.Second)),
		Logger:         logger,
	}
	if cfg.Encoding.UseGuesser {
		opts.Charset.Guesser = charset.NewChardetGuesser()
	}
	return opts
}
