// Package logs reads back the JSON log files written by the subforge CLI.
//
// Tail returns the last matching entries of a log file together with the
// byte offset it stopped at, so callers can poll for new lines. Query filters
// entries by run id, component, minimum level and message text.
package logs
