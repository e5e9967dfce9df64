package cues

// Time values are microseconds.
const (
	Millisecond int64 = 1_000
	Second      int64 = 1_000_000

	DefaultMinDuration  = 500 * Millisecond
	DefaultMaxDuration  = 10 * Second
	DefaultMaxTextRunes = 100
)

// RawCue is one caption block as found in the source text.
type RawCue struct {
	Index     int
	HasIndex  bool
	RawStart  string
	RawEnd    string
	TextLines []string
	// Block is the 1-based position of the source block.
	Block int
}

// Cue is a timed caption unit.
type Cue struct {
	Index int    `json:"index"`
	Start int64  `json:"start_us"`
	End   int64  `json:"end_us"`
	Text  string `json:"text"`
}

// Duration returns End-Start in microseconds.
func (c Cue) Duration() int64 {
	return c.End - c.Start
}
