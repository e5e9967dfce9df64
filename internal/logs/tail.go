package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const pollInterval = 250 * time.Millisecond

// TailOptions controls a Tail call. A negative Offset reads the last Limit
// matching entries of the file; otherwise reading starts at Offset. With
// Follow set, Tail waits up to Wait for new entries when none are found.
type TailOptions struct {
	Offset int64
	Limit  int
	Follow bool
	Wait   time.Duration
	Query  Query
}

// TailResult holds matching entries and the offset to resume from.
type TailResult struct {
	Entries []Entry
	Offset  int64
}

// Tail reads matching entries from the JSON log at path. A missing file
// yields an empty result at offset zero.
func Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{Offset: opts.Offset}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return TailResult{Offset: opts.Offset}, fmt.Errorf("log path %q is a directory", path)
	}

	offset := opts.Offset
	limit := 0
	if offset < 0 {
		offset = 0
		limit = opts.Limit
	} else if offset > info.Size() {
		// Rotated or truncated underneath us.
		offset = 0
	}

	deadline := time.Now().Add(max(opts.Wait, 0))
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		entries, next, err := scan(path, offset, limit, opts.Query, opts.Follow)
		if err != nil {
			return TailResult{Offset: offset}, err
		}
		if len(entries) > 0 || !opts.Follow || !time.Now().Before(deadline) {
			return TailResult{Entries: entries, Offset: next}, nil
		}
		offset, limit = next, 0

		select {
		case <-ctx.Done():
			return TailResult{Offset: offset}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// scan reads lines from offset and keeps matching entries. A positive limit
// keeps only the last limit matches. A final line without a newline is
// consumed only when it is a complete entry and follow is off; otherwise it
// is left for the next call, since a writer may still be appending to it.
func scan(path string, offset int64, limit int, query Query, follow bool) ([]Entry, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	var entries []Entry
	for {
		line, err := reader.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			return nil, offset, fmt.Errorf("read log file: %w", err)
		}
		entry, ok := ParseEntry(line)
		if atEOF && (follow || !ok) {
			break
		}
		offset += int64(len(line))
		if ok && query.Match(entry) {
			entries = append(entries, entry)
			if limit > 0 && len(entries) > limit {
				entries = entries[1:]
			}
		}
		if atEOF {
			break
		}
	}
	return entries, offset, nil
}
