package charset

import (
	"bytes"
	"log/slog"

	"subforge/internal/logging"
)

// Defaults for Options fields left at zero.
const (
	DefaultDetectBytes    = 10 * 1024
	DefaultHighConfidence = 0.7
	DefaultLowConfidence  = 0.3
	DefaultEarlyExit      = 0.9
	DefaultHintScoreFloor = 0.8
)

// Method records which step produced a Resolution.
type Method string

const (
	MethodBOM      Method = "bom"
	MethodHint     Method = "hint"
	MethodLadder   Method = "ladder"
	MethodFallback Method = "fallback"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Options configures a Resolver.
type Options struct {
	// DetectBytes bounds the prefix used for hinting and trial decodes.
	DetectBytes int
	// Guesser is optional; without it only the ladder runs.
	Guesser        Guesser
	HighConfidence float64
	LowConfidence  float64
	EarlyExit      float64
	// HintScoreFloor is the quality a family member must reach before a
	// high-confidence hint is taken without running the ladder.
	HintScoreFloor float64
	// Ladder overrides the global trial order.
	Ladder []string
	Logger *slog.Logger
}

// Candidate is one trial decode.
type Candidate struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Decoded bool    `json:"decoded"`
}

// Resolution is the outcome of Resolve. The chosen encoding travels with the
// text; nothing is kept on the Resolver.
type Resolution struct {
	Text       string      `json:"-"`
	Encoding   string      `json:"encoding"`
	Score      float64     `json:"score"`
	Method     Method      `json:"method"`
	Hint       *Hint       `json:"hint,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Lossy reports whether the text came from the guaranteed-success decode.
func (r Resolution) Lossy() bool {
	return r.Method == MethodFallback
}

// Resolver decodes byte buffers of unknown encoding. It is safe for
// concurrent use when its Guesser is.
type Resolver struct {
	opts   Options
	logger *slog.Logger
}

// NewResolver fills unset options with defaults.
func NewResolver(opts Options) *Resolver {
	if opts.DetectBytes <= 0 {
		opts.DetectBytes = DefaultDetectBytes
	}
	if opts.HighConfidence <= 0 {
		opts.HighConfidence = DefaultHighConfidence
	}
	if opts.LowConfidence <= 0 {
		opts.LowConfidence = DefaultLowConfidence
	}
	if opts.EarlyExit <= 0 {
		opts.EarlyExit = DefaultEarlyExit
	}
	if opts.HintScoreFloor <= 0 {
		opts.HintScoreFloor = DefaultHintScoreFloor
	}
	if len(opts.Ladder) == 0 {
		opts.Ladder = defaultLadder
	}
	return &Resolver{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "charset"),
	}
}

// Resolve decodes data. It never fails; the worst case is a lossy UTF-8
// decode with replacement glyphs, reported as MethodFallback.
func (r *Resolver) Resolve(data []byte) Resolution {
	if res, ok := r.resolveBOM(data); ok {
		return res
	}
	if len(data) == 0 {
		return Resolution{Encoding: UTF8, Method: MethodLadder}
	}

	sample := detectionPrefix(data, r.opts.DetectBytes)
	order := r.opts.Ladder
	var res Resolution

	if r.opts.Guesser != nil {
		if hint, ok := r.opts.Guesser.Guess(sample); ok {
			res.Hint = &hint
			r.logger.Debug("charset hint",
				logging.String("charset", hint.Charset),
				logging.Float64("confidence", hint.Confidence),
				logging.String("language", hint.Language),
			)
			switch {
			case hint.Confidence >= r.opts.HighConfidence:
				if name, ok := r.acceptFamily(hint, sample, &res); ok {
					return r.finish(res, name, data, MethodHint)
				}
			case hint.Confidence >= r.opts.LowConfidence:
				order = dedupe(append(Expand(hint.Charset), order...))
			}
		}
	}

	best := -1
	for _, name := range order {
		text, ok := decodeStrict(name, sample)
		if !ok {
			res.Candidates = append(res.Candidates, Candidate{Name: name})
			continue
		}
		score := candidateScore(name, sample, text)
		res.Candidates = append(res.Candidates, Candidate{Name: name, Score: score, Decoded: true})
		r.logger.Debug("charset candidate",
			logging.String("encoding", name),
			logging.Float64("score", score),
		)
		if best < 0 || score > res.Candidates[best].Score {
			best = len(res.Candidates) - 1
		}
		if score >= r.opts.EarlyExit {
			break
		}
	}
	if best < 0 {
		return r.fallback(res, data)
	}
	return r.finish(res, res.Candidates[best].Name, data, MethodLadder)
}

// acceptFamily trial-decodes the hinted encoding and its family and returns
// the best member scoring at least HintScoreFloor, stopping early at
// EarlyExit. Single-byte pages decode nearly any input, so a confident but
// wrong hint only shows in the score.
func (r *Resolver) acceptFamily(hint Hint, sample []byte, res *Resolution) (string, bool) {
	best, bestScore := "", 0.0
	for _, name := range Expand(hint.Charset) {
		text, ok := decodeStrict(name, sample)
		if !ok {
			res.Candidates = append(res.Candidates, Candidate{Name: name})
			continue
		}
		score := candidateScore(name, sample, text)
		res.Candidates = append(res.Candidates, Candidate{Name: name, Score: score, Decoded: true})
		if score < r.opts.HintScoreFloor {
			r.logger.Debug("hinted encoding rejected",
				logging.String("encoding", name),
				logging.Float64("score", score),
			)
			continue
		}
		if best == "" || score > bestScore {
			best, bestScore = name, score
		}
		if score >= r.opts.EarlyExit {
			break
		}
	}
	return best, best != ""
}

func (r *Resolver) resolveBOM(data []byte) (Resolution, bool) {
	var name string
	var body []byte
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		name, body = UTF8, data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE):
		name, body = UTF16LE, data[len(bomUTF16LE):]
	case bytes.HasPrefix(data, bomUTF16BE):
		name, body = UTF16BE, data[len(bomUTF16BE):]
	default:
		return Resolution{}, false
	}
	text, ok := decodeStrict(name, body)
	if !ok {
		text = decodeLossy(name, body)
	}
	return Resolution{
		Text:     text,
		Encoding: name,
		Score:    Score(text),
		Method:   MethodBOM,
	}, true
}

// finish decodes the whole buffer with the chosen encoding. A failure past
// the detection prefix degrades to a lossy decode with the same table.
func (r *Resolver) finish(res Resolution, name string, data []byte, method Method) Resolution {
	text, ok := decodeStrict(name, data)
	if !ok {
		text = decodeLossy(name, data)
		logging.WarnWithContext(r.logger, "decode error past detection prefix",
			"charset_partial_decode",
			logging.String("encoding", name),
			logging.String(logging.FieldErrorHint, "increase encoding.detect_bytes or re-save the file as UTF-8"),
			logging.String(logging.FieldImpact, "some characters replaced with U+FFFD"),
		)
	}
	res.Text = text
	res.Encoding = name
	res.Method = method
	res.Score = candidateScore(name, data, text)
	return res
}

func (r *Resolver) fallback(res Resolution, data []byte) Resolution {
	logging.WarnWithContext(r.logger, "no encoding decoded cleanly",
		"charset_indeterminate",
		logging.Int("candidates", len(res.Candidates)),
		logging.String(logging.FieldErrorHint, "re-save the file as UTF-8"),
		logging.String(logging.FieldImpact, "undecodable bytes replaced with U+FFFD"),
	)
	res.Text = decodeLossy(UTF8Lossy, data)
	res.Encoding = UTF8Lossy
	res.Method = MethodFallback
	res.Score = Score(res.Text)
	res.Candidates = append(res.Candidates, Candidate{Name: UTF8Lossy, Score: res.Score, Decoded: true})
	return res
}

// detectionPrefix bounds data to limit bytes, cut back to the last newline
// so no multi-byte sequence is split. A prefix without any newline falls
// back to the whole buffer.
func detectionPrefix(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	prefix := data[:limit]
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		return prefix[:i+1]
	}
	return data
}
