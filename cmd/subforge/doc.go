// Package main hosts the subforge CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the caption ingestion pipeline on local
// files: detecting encodings, printing ingestion reports, exporting fitted
// cues as canonical SRT, batch conversion, run history and log viewing. It centralizes
// configuration resolution and logging setup so subcommands can focus on
// presentation.
//
// Keep this package lean: behaviour belongs in internal/ingest and the stage
// packages; commands here only parse flags, call the pipeline and render.
package main
