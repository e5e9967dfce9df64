package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	HistoryPath string `toml:"history_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Encoding contains configuration for byte encoding resolution.
type Encoding struct {
	// DetectBytes bounds the prefix used for guessing and trial decodes.
	DetectBytes int  `toml:"detect_bytes"`
	UseGuesser  bool `toml:"use_guesser"`
	// HighConfidence accepts the guesser's encoding family outright.
	HighConfidence float64 `toml:"high_confidence"`
	// LowConfidence is the floor below which the guess is ignored.
	LowConfidence  float64 `toml:"low_confidence"`
	EarlyExitScore float64 `toml:"early_exit_score"`
}

// Timing contains cue repair and validation limits.
type Timing struct {
	MinCueMS     int `toml:"min_cue_ms"`
	MaxCueMS     int `toml:"max_cue_ms"`
	MaxTextRunes int `toml:"max_text_runes"`
	// MinutesAsSeconds reinterprets "00:SS:00,mmm" as seconds. Off by default
	// because it rewrites legitimate minute marks.
	MinutesAsSeconds bool `toml:"minutes_as_seconds"`
	StripMarkup      bool `toml:"strip_markup"`
}

// Fit contains the target total duration. Zero disables fitting.
type Fit struct {
	TargetSeconds float64 `toml:"target_seconds"`
}

// Batch contains configuration for multi-file ingestion.
type Batch struct {
	Workers int `toml:"workers"`
}

// History contains configuration for the ingestion history store.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for subforge.
//
// Configuration sections by subsystem:
//   - Paths: log directory and history database location
//   - Logging: log format, level, and retention
//   - Encoding: charset guessing and ladder thresholds
//   - Timing: cue duration bounds, text limits, and timestamp repairs
//   - Fit: target total duration for the fitted sequence
//   - Batch: worker count for multi-file runs
//   - History: whether runs are recorded
type Config struct {
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
	Encoding Encoding `toml:"encoding"`
	Timing   Timing   `toml:"timing"`
	Fit      Fit      `toml:"fit"`
	Batch    Batch    `toml:"batch"`
	History  History  `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory and the history database's
// parent directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.History.Enabled && c.Paths.HistoryPath != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.HistoryPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}
