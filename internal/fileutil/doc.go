// Package fileutil holds the filesystem helpers used at the edges of the
// ingestion pipeline: a scoped whole-file read, atomic writes for exported
// captions, and content hashing for the history store.
package fileutil
