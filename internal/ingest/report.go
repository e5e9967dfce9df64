package ingest

import (
	"time"

	"subforge/internal/charset"
	"subforge/internal/cues"
)

// Report aggregates what every stage counted for one file.
type Report struct {
	Blocks  int            `json:"blocks"`
	Parsed  int            `json:"parsed"`
	Split   int            `json:"split,omitempty"`
	Skipped map[string]int `json:"skipped,omitempty"`
	// Repairs counts timestamp repairs by name ("separator", "seconds_carry", ...).
	Repairs        map[string]int `json:"repairs,omitempty"`
	DroppedEmpty   int            `json:"dropped_empty"`
	DroppedOverlap int            `json:"dropped_overlap"`
	Extended       int            `json:"extended"`
	Shortened      int            `json:"shortened"`
	ClippedOverlap int            `json:"clipped_overlap"`
	Truncated      int            `json:"truncated"`
	DroppedFit     int            `json:"dropped_fit"`
	ClippedFit     int            `json:"clipped_fit"`
	Kept           int            `json:"kept"`
	// Empty is set when no cue survived; the run still succeeds.
	Empty bool `json:"empty"`
}

// SkippedTotal returns the number of blocks that yielded no cue.
func (r Report) SkippedTotal() int {
	return sumCounts(r.Skipped)
}

// RepairTotal returns the number of repairs applied across all time fields.
func (r Report) RepairTotal() int {
	return sumCounts(r.Repairs)
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// Result is the outcome of ingesting one caption file.
type Result struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`
	SHA256 string `json:"sha256"`
	Bytes  int    `json:"bytes"`
	// Language is the ISO 639-1 code the charset guesser reported, if any.
	Language   string             `json:"language,omitempty"`
	Resolution charset.Resolution `json:"resolution"`
	Cues       []cues.Cue         `json:"cues"`
	Report     Report             `json:"report"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
}

// Segment is the tuple handed to timeline builders.
type Segment struct {
	StartUS int64  `json:"start_us"`
	EndUS   int64  `json:"end_us"`
	Text    string `json:"text"`
}

// Segments returns the fitted cues as output tuples.
func (r *Result) Segments() []Segment {
	if r == nil {
		return nil
	}
	out := make([]Segment, 0, len(r.Cues))
	for _, cue := range r.Cues {
		out = append(out, Segment{StartUS: cue.Start, EndUS: cue.End, Text: cue.Text})
	}
	return out
}

// Warning returns an error wrapping ErrEncodingIndeterminate when the text
// came from the lossy fallback, and nil otherwise.
func (r *Result) Warning() error {
	if r == nil || !r.Resolution.Lossy() {
		return nil
	}
	return Wrap(ErrEncodingIndeterminate, "decode", r.Source+" decoded with replacement characters", nil)
}
