package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileUnavailable marks a caption file that could not be opened or read.
	ErrFileUnavailable = errors.New("file unavailable")
	// ErrEncodingIndeterminate marks text recovered only by the lossy UTF-8
	// fallback. It is reported through Result.Warning, never returned.
	ErrEncodingIndeterminate = errors.New("encoding indeterminate")
)

// Wrap builds an error message that includes operation context while tagging
// it with marker for later classification.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		if err == nil {
			return errors.New(detail)
		}
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind maps an ingestion error to the short status stored in history
// and shown in batch summaries.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrFileUnavailable):
		return "file_unavailable"
	default:
		return "failed"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "ingest failure"
	}
	return strings.Join(parts, ": ")
}
