package cues

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSRT renders seq as a canonical SRT document: index, time range, text
// and a blank separator line per cue.
func WriteSRT(w io.Writer, seq []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range seq {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		index := cue.Index
		if index <= 0 {
			index = i + 1
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s\n%s\n", index, FormatRange(cue.Start, cue.End), cue.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatSRT returns WriteSRT output as a string.
func FormatSRT(seq []Cue) string {
	var b strings.Builder
	_ = WriteSRT(&b, seq)
	return b.String()
}

// Summary describes a cue sequence at a glance.
type Summary struct {
	Count       int   `json:"count"`
	FirstStart  int64 `json:"first_start_us"`
	LastEnd     int64 `json:"last_end_us"`
	TotalSpoken int64 `json:"total_spoken_us"`
	Average     int64 `json:"average_us"`
}

// Summarize computes a Summary for seq.
func Summarize(seq []Cue) Summary {
	if len(seq) == 0 {
		return Summary{}
	}
	s := Summary{
		Count:      len(seq),
		FirstStart: seq[0].Start,
		LastEnd:    seq[len(seq)-1].End,
	}
	for _, cue := range seq {
		s.TotalSpoken += cue.Duration()
	}
	s.Average = s.TotalSpoken / int64(len(seq))
	return s
}
