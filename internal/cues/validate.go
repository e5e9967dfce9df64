package cues

import "subforge/internal/textutil"

// Limits bounds cue duration and text length.
type Limits struct {
	MinDuration  int64
	MaxDuration  int64
	MaxTextRunes int
	StripMarkup  bool
}

// DefaultLimits returns the 500ms..10s duration window, a 100 rune text cap
// and markup stripping.
func DefaultLimits() Limits {
	return Limits{
		MinDuration:  DefaultMinDuration,
		MaxDuration:  DefaultMaxDuration,
		MaxTextRunes: DefaultMaxTextRunes,
		StripMarkup:  true,
	}
}

// ValidationReport counts what Validate changed.
type ValidationReport struct {
	Input          int
	Kept           int
	DroppedEmpty   int
	DroppedOverlap int
	Extended       int
	Shortened      int
	Clipped        int
	Truncated      int
}

// Validate normalizes text, clamps durations, repairs overlaps, truncates long
// text and renumbers survivors from 1. Cues keep their order and their start
// times; only End moves. Running Validate on its own output changes nothing.
//
// Durations are clamped before overlap repair so that extending a short cue to
// the minimum can never reintroduce an overlap with its successor.
func Validate(in []Cue, limits Limits) ([]Cue, ValidationReport) {
	report := ValidationReport{Input: len(in)}
	out := make([]Cue, 0, len(in))

	for _, cue := range in {
		text := cue.Text
		if limits.StripMarkup {
			text = textutil.StripMarkup(text)
		}
		cue.Text = textutil.NormalizeLines(text)
		if cue.Text == "" {
			report.DroppedEmpty++
			continue
		}

		switch d := cue.Duration(); {
		case d < limits.MinDuration:
			cue.End = cue.Start + limits.MinDuration
			report.Extended++
		case limits.MaxDuration > 0 && d > limits.MaxDuration:
			cue.End = cue.Start + limits.MaxDuration
			report.Shortened++
		}

		for len(out) > 0 {
			prev := &out[len(out)-1]
			if cue.Start >= prev.End {
				break
			}
			prev.End = cue.Start
			report.Clipped++
			if prev.Duration() >= limits.MinDuration {
				break
			}
			out = out[:len(out)-1]
			report.DroppedOverlap++
		}

		var cut bool
		cue.Text, cut = textutil.Truncate(cue.Text, limits.MaxTextRunes)
		if cut {
			report.Truncated++
		}
		out = append(out, cue)
	}

	for i := range out {
		out[i].Index = i + 1
	}
	report.Kept = len(out)
	return out, report
}

// CheckSequence returns the first invariant violation in seq, or "" when seq
// is ordered, non-overlapping and every cue respects limits.
func CheckSequence(seq []Cue, limits Limits) string {
	for i, cue := range seq {
		switch {
		case cue.End <= cue.Start:
			return "cue " + FormatRange(cue.Start, cue.End) + " ends before it starts"
		case cue.Duration() < limits.MinDuration:
			return "cue " + FormatRange(cue.Start, cue.End) + " is shorter than the minimum"
		case limits.MaxDuration > 0 && cue.Duration() > limits.MaxDuration:
			return "cue " + FormatRange(cue.Start, cue.End) + " is longer than the maximum"
		case textutil.NormalizeLines(cue.Text) == "":
			return "cue " + FormatRange(cue.Start, cue.End) + " has no text"
		case i > 0 && cue.Start < seq[i-1].End:
			return "cue " + FormatRange(cue.Start, cue.End) + " overlaps its predecessor"
		}
	}
	return ""
}
