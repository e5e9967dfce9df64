package cues

// FitReport counts what Fit changed.
type FitReport struct {
	Target       int64
	Input        int
	Kept         int
	Clipped      int
	DroppedShort int
	DroppedTail  int
}

// Fit trims seq to end at target microseconds. The first cue starting at or
// after target and everything behind it is discarded; a cue running past
// target is clipped, and dropped if that leaves it shorter than minDuration.
// A target <= 0 disables fitting. Indexes are left untouched.
func Fit(seq []Cue, target, minDuration int64) ([]Cue, FitReport) {
	report := FitReport{Target: target, Input: len(seq)}
	out := make([]Cue, 0, len(seq))
	if target <= 0 {
		out = append(out, seq...)
		report.Kept = len(out)
		return out, report
	}

	for i, cue := range seq {
		if cue.Start >= target {
			report.DroppedTail = len(seq) - i
			break
		}
		if cue.End > target {
			cue.End = target
			if cue.Duration() < minDuration {
				report.DroppedShort++
				continue
			}
			report.Clipped++
		}
		out = append(out, cue)
	}
	report.Kept = len(out)
	return out, report
}
