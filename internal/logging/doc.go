// Package logging assembles structured slog loggers and formatting helpers used
// across subforge.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and injects run identifiers so every line written while ingesting
// one caption file can be grepped back together. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the pipeline.
package logging
