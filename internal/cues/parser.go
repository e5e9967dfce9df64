package cues

import (
	"regexp"
	"strconv"
	"strings"
)

// timeRangePattern accepts 1-2 digit hours, loose minute and second widths,
// an optional "," or "." millisecond part and the arrow variants seen in the
// wild. Anything after the end time (SRT position hints) is ignored.
var timeRangePattern = regexp.MustCompile(
	`^(\d{1,2}:\d{1,3}:\d{1,3}(?:[.,]\d+)?)\s*(?:[-=]+>|—>|→)\s*(\d{1,2}:\d{1,3}:\d{1,3}(?:[.,]\d+)?)(?:\s.*)?$`,
)

// SkipReason names why a block produced no RawCue.
type SkipReason string

const (
	// SkipNoTimestamp marks a block without a recognizable time range line.
	SkipNoTimestamp SkipReason = "no_timestamp"
	// SkipNoText marks a timed block whose text lines are all missing.
	SkipNoText SkipReason = "no_text"
)

// BlockResult is the tagged outcome for one block: exactly one of Cue or
// Skip is set.
type BlockResult struct {
	Block int
	Cue   *RawCue
	Skip  SkipReason
}

// Kept reports whether the block yielded a cue.
func (r BlockResult) Kept() bool {
	return r.Cue != nil
}

// ParseReport aggregates block results.
type ParseReport struct {
	Blocks  int
	Kept    int
	Split   int
	Skipped map[SkipReason]int
	Results []BlockResult
}

// SkippedTotal returns the number of blocks that yielded no cue.
func (r ParseReport) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// Parse splits text into caption blocks. Blocks without a time range line or
// without any text are skipped and counted. Blocks without an index line receive their 1-based
// position among kept blocks.
func Parse(text string) ([]RawCue, ParseReport) {
	report := ParseReport{Skipped: map[SkipReason]int{}}
	lines := strings.Split(normalizeNewlines(text), "\n")

	var raw []RawCue
	block := 0
	for _, group := range splitBlocks(lines) {
		parts := splitMerged(group)
		report.Split += len(parts) - 1
		for _, part := range parts {
			block++
			result := parseBlock(part, block)
			report.Results = append(report.Results, result)
			if result.Cue == nil {
				report.Skipped[result.Skip]++
				continue
			}
			raw = append(raw, *result.Cue)
		}
	}
	report.Blocks = block
	report.Kept = len(raw)

	for i := range raw {
		if !raw[i].HasIndex {
			raw[i].Index = i + 1
		}
	}
	return raw, report
}

// IsTimeRange reports whether line is a recognizable time range line.
func IsTimeRange(line string) bool {
	return timeRangePattern.MatchString(strings.TrimSpace(line))
}

func normalizeNewlines(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitBlocks groups lines separated by lines that are blank after trimming.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// splitMerged cuts a block wherever a second time range line shows up, which
// happens when a producer drops the blank separator line. A bare integer right
// before the new time range travels with it as its index.
func splitMerged(lines []string) [][]string {
	var parts [][]string
	start := 0
	seen := false
	for i, line := range lines {
		if !IsTimeRange(line) {
			continue
		}
		if seen {
			cut := i
			if cut-1 > start && isIndexLine(lines[cut-1]) && !IsTimeRange(lines[cut-1]) {
				cut--
			}
			parts = append(parts, lines[start:cut])
			start = cut
		}
		seen = true
	}
	return append(parts, lines[start:])
}

func parseBlock(lines []string, block int) BlockResult {
	cue := RawCue{Block: block}
	haveTime := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !haveTime {
			if m := timeRangePattern.FindStringSubmatch(trimmed); m != nil {
				cue.RawStart, cue.RawEnd = m[1], m[2]
				haveTime = true
				continue
			}
		}
		// An integer counts as the index only ahead of any text, and never as
		// the last line after the time range, where it is caption text.
		if !cue.HasIndex && len(cue.TextLines) == 0 && isIndexLine(trimmed) {
			if !haveTime || i < len(lines)-1 {
				cue.Index, _ = strconv.Atoi(trimmed)
				cue.HasIndex = true
				continue
			}
		}
		cue.TextLines = append(cue.TextLines, trimmed)
	}
	switch {
	case !haveTime:
		return BlockResult{Block: block, Skip: SkipNoTimestamp}
	case len(cue.TextLines) == 0:
		return BlockResult{Block: block, Skip: SkipNoText}
	}
	return BlockResult{Block: block, Cue: &cue}
}

func isIndexLine(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > 9 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
