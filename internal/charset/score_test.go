package charset

import (
	"strings"
	"testing"
)

func TestScoreRange(t *testing.T) {
	inputs := []string{
		"",
		"plain words",
		strings.Repeat("\x01", 20),
		strings.Repeat("�", 10),
		"1\n00:00:01,000 --> 00:00:02,000\nHello\n",
		"¦§¨¬¯±²³´¶",
	}
	for _, in := range inputs {
		got := Score(in)
		if got < 0 || got > 1 {
			t.Fatalf("Score(%q) = %f, outside [0,1]", in, got)
		}
	}
	if Score("") != 0 {
		t.Fatal("empty text should score 0")
	}
}

func TestScorePrefersCorrectDecode(t *testing.T) {
	tests := []struct {
		name  string
		good  string
		wrong string
	}{
		{"utf-8 read as latin-1", "Ça va très bien, merci", "Ã‡a va trÃ¨s bien, merci"},
		{"cyrillic read as latin-1", "Привет, как дела?", "Ïðèâåò, êàê äåëà?"},
		{"koi8 read as cp1251", "Привет, как дела у Тани?", "рТЙЧЕФ, ЛБЛ ДЕМБ Х фБОЙ?"},
		{"control bytes", "Hello there", "Hello\x85there\x92"},
		{"replacement glyphs", "Hello there", "Hello ��there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good, wrong := Score(tt.good), Score(tt.wrong)
			if good <= wrong {
				t.Fatalf("good %.3f <= wrong %.3f", good, wrong)
			}
		})
	}
}

func TestScoreCaptionSignals(t *testing.T) {
	caption := "12\n00:01:02,500 --> 00:01:04,000\nHello there\n"
	prose := "Hello there, general\n"
	if Score(caption) < DefaultEarlyExit {
		t.Fatalf("ascii caption scored %.3f", Score(caption))
	}
	if Score(caption) <= Score(prose) {
		t.Fatalf("caption %.3f should beat prose %.3f", Score(caption), Score(prose))
	}
}

func TestUncommonRatio(t *testing.T) {
	// 你好 in GBK sits in the frequent rows.
	if got := uncommonRatio("gbk", []byte{0xC4, 0xE3, 0xBA, 0xC3}); got != 0 {
		t.Fatalf("gbk common ratio = %f", got)
	}
	// Latin-1 "éè" pairs read as a GBK lead/trail outside the level-1 rows.
	if got := uncommonRatio("gbk", []byte{0xE9, 0x41, 0xE8, 0x42}); got != 1 {
		t.Fatalf("gbk uncommon ratio = %f", got)
	}
	// Half-width katakana bytes are rare in Shift_JIS captions.
	if got := uncommonRatio("shift_jis", []byte{0xB1, 0xB2}); got != 1 {
		t.Fatalf("shift_jis half-width ratio = %f", got)
	}
	if got := uncommonRatio("euc-kr", []byte("ascii only")); got != 0 {
		t.Fatalf("ascii ratio = %f", got)
	}
}
