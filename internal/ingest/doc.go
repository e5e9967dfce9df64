// Package ingest chains the caption stages into one pipeline.
//
// A run reads a caption file once, resolves its byte encoding, parses caption
// blocks, repairs timestamps, validates the sequence and fits it to a target
// duration. Every stage is a pure function of the previous stage's output;
// the pipeline only sequences them, logs a summary and assembles the Report.
//
// IngestAll fans independent files out over a bounded worker pool. Results
// come back in input order with per-file errors attached rather than aborting
// the batch.
package ingest
