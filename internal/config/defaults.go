package config

const (
	defaultConfigPath     = "~/.config/subforge/config.toml"
	defaultLogDir         = "~/.local/share/subforge/logs"
	defaultHistoryPath    = "~/.local/share/subforge/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogRetention   = 30
	defaultDetectBytes    = 10 * 1024
	defaultHighConfidence = 0.7
	defaultLowConfidence  = 0.3
	defaultEarlyExitScore = 0.9
	defaultMinCueMS       = 500
	defaultMaxCueMS       = 10_000
	defaultMaxTextRunes   = 100
	defaultBatchWorkers   = 4
	logLevelEnv           = "SUBFORGE_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:      defaultLogDir,
			HistoryPath: defaultHistoryPath,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
		Encoding: Encoding{
			DetectBytes:    defaultDetectBytes,
			UseGuesser:     true,
			HighConfidence: defaultHighConfidence,
			LowConfidence:  defaultLowConfidence,
			EarlyExitScore: defaultEarlyExitScore,
		},
		Timing: Timing{
			MinCueMS:     defaultMinCueMS,
			MaxCueMS:     defaultMaxCueMS,
			MaxTextRunes: defaultMaxTextRunes,
			StripMarkup:  true,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		History: History{
			Enabled: true,
		},
	}
}
