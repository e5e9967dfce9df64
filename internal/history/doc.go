// Package history records ingestion runs in SQLite.
//
// Each run stores the source path and digest, the resolved encoding and how it
// was chosen, the cue counts from the ingestion report and the export target.
// The store backs `subforge history` and lets repeat runs over the same file
// be spotted by digest.
//
// Schema changes bump schemaVersion in schema.go; users delete the database to
// adopt the new schema.
package history
