package testsupport

import (
	"path/filepath"
	"testing"

	"subforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.HistoryPath = filepath.Join(base, "history", "history.db")
	cfgVal.Encoding.UseGuesser = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithGuesser enables the statistical charset guesser.
func WithGuesser() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.UseGuesser = true
	}
}

// WithTarget sets the fit target in seconds.
func WithTarget(seconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fit.TargetSeconds = seconds
	}
}

// WithMinutesAsSeconds enables the minutes-holds-seconds timestamp repair.
func WithMinutesAsSeconds() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timing.MinutesAsSeconds = true
	}
}

// WithoutHistory disables run recording.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
