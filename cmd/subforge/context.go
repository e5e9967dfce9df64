package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"subforge/internal/config"
	"subforge/internal/history"
	"subforge/internal/ingest"
	"subforge/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verbose      *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verbose:      verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// ensureLogger builds the CLI logger once and prunes expired log files.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		if dir := cfg.Paths.LogDir; dir != "" {
			logging.PruneLogs(logger, dir, cfg.Logging.RetentionDays, logging.DailyLogPath(dir, time.Now()))
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) isVerbose() bool {
	return c.verbose != nil && *c.verbose
}

// pipelineFlags carry per-invocation overrides of the config file.
type pipelineFlags struct {
	target           time.Duration
	minutesAsSeconds bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.target, "target", 0, "Fit cues into this total duration (e.g. 90s); overrides fit.target_seconds")
	cmd.Flags().BoolVar(&f.minutesAsSeconds, "minutes-as-seconds", false, "Reinterpret 00:SS:00 timestamps as seconds")
}

func (f *pipelineFlags) options(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) ingest.Options {
	opts := ingest.OptionsFromConfig(cfg, logger)
	if cmd.Flags().Changed("target") {
		opts.TargetDuration = f.target
	}
	if cmd.Flags().Changed("minutes-as-seconds") {
		opts.Repair.MinutesAsSeconds = f.minutesAsSeconds
	}
	return opts
}

// recordRuns stores runs in the history database when history is enabled.
// Failures are logged and never fail the command.
func (c *commandContext) recordRuns(ctx context.Context, logger *slog.Logger, runs ...history.Run) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.History.Enabled || len(runs) == 0 {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable; run not recorded", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.history_path or disable history.enabled"),
			logging.String(logging.FieldImpact, "run missing from subforge history"),
		)
		return
	}
	defer store.Close()
	for _, run := range runs {
		if _, err := store.Record(ctx, run); err != nil {
			logging.WarnWithContext(logger, "history record failed", "history_record_failed",
				logging.String(logging.FieldRunID, run.RunID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "run missing from subforge history"),
			)
		}
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
