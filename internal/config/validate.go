package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if c.Fit.TargetSeconds < 0 {
		return errors.New("fit.target_seconds must be >= 0")
	}
	if c.Batch.Workers <= 0 {
		return errors.New("batch.workers must be positive")
	}
	if c.History.Enabled && c.Paths.HistoryPath == "" {
		return errors.New("paths.history_path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if err := ensureUnitInterval(map[string]float64{
		"encoding.high_confidence":  c.Encoding.HighConfidence,
		"encoding.low_confidence":   c.Encoding.LowConfidence,
		"encoding.early_exit_score": c.Encoding.EarlyExitScore,
	}); err != nil {
		return err
	}
	if c.Encoding.LowConfidence >= c.Encoding.HighConfidence {
		return errors.New("encoding.low_confidence must be less than encoding.high_confidence")
	}
	if c.Encoding.DetectBytes <= 0 {
		return errors.New("encoding.detect_bytes must be positive")
	}
	return nil
}

func (c *Config) validateTiming() error {
	if err := ensurePositiveMap(map[string]int{
		"timing.min_cue_ms":     c.Timing.MinCueMS,
		"timing.max_cue_ms":     c.Timing.MaxCueMS,
		"timing.max_text_runes": c.Timing.MaxTextRunes,
	}); err != nil {
		return err
	}
	if c.Timing.MinCueMS >= c.Timing.MaxCueMS {
		return errors.New("timing.max_cue_ms must be greater than timing.min_cue_ms")
	}
	if c.Timing.MaxTextRunes <= 3 {
		return errors.New("timing.max_text_runes must leave room for the ellipsis (> 3)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureUnitInterval(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
