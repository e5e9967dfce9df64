package charset

import "github.com/saintfish/chardet"

// Hint is a statistical guess about the encoding of a sample.
type Hint struct {
	Charset    string  `json:"charset"`
	Language   string  `json:"language,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Guesser produces an encoding hint from a byte sample. ok is false when no
// guess could be made.
type Guesser interface {
	Guess(sample []byte) (hint Hint, ok bool)
}

// ChardetGuesser wraps the ICU-derived detector from saintfish/chardet.
type ChardetGuesser struct {
	detector *chardet.Detector
}

// NewChardetGuesser returns a text guesser.
func NewChardetGuesser() *ChardetGuesser {
	return &ChardetGuesser{detector: chardet.NewTextDetector()}
}

// Guess returns the detector's best match with its 0-100 confidence rescaled
// to [0,1].
func (g *ChardetGuesser) Guess(sample []byte) (Hint, bool) {
	if g == nil || g.detector == nil || len(sample) == 0 {
		return Hint{}, false
	}
	result, err := g.detector.DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return Hint{}, false
	}
	return Hint{
		Charset:    result.Charset,
		Language:   result.Language,
		Confidence: float64(result.Confidence) / 100,
	}, true
}

// GuesserFunc adapts a function to the Guesser interface.
type GuesserFunc func(sample []byte) (Hint, bool)

// Guess calls f.
func (f GuesserFunc) Guess(sample []byte) (Hint, bool) {
	return f(sample)
}
