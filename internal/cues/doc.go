// Package cues turns decoded caption text into a validated, time-bounded cue
// sequence.
//
// The stages run strictly forward: Parse splits text into RawCue blocks,
// Repairer resolves their loose time fields into microseconds, Validate
// enforces ordering, non-overlap, duration bounds and text limits, and Fit
// trims the tail to a target duration. WriteSRT renders the result as a
// canonical SRT document.
//
// Every stage is a pure function over its input; none of them return errors.
// Anomalies are counted in the per-stage reports instead.
package cues
