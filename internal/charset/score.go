package charset

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	arrowPattern   = regexp.MustCompile(`\d{1,2}:\d{1,3}:\d{1,3}(?:[.,]\d+)?\s*(?:[-=]+>|—>|→)`)
	integerPattern = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
)

type script uint8

const (
	scriptNone script = iota
	scriptASCII
	scriptLatin
	scriptGreek
	scriptCyrillic
	scriptHebrew
	scriptArabic
	scriptThai
	scriptHan
	scriptKana
	scriptHalfKana
	scriptHangul
	scriptOther
)

// bonusScripts earn a capped share of the score for the letters they hold.
var bonusScripts = []script{
	scriptLatin, scriptCyrillic, scriptGreek, scriptArabic, scriptHebrew,
	scriptThai, scriptHan, scriptKana, scriptHangul,
}

func scriptOf(r rune) script {
	switch {
	case r < 0x80:
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return scriptASCII
		}
		return scriptNone
	case r >= 0xC0 && r <= 0x24F && r != 0xD7 && r != 0xF7, r >= 0x1E00 && r <= 0x1EFF:
		return scriptLatin
	case r >= 0x370 && r <= 0x3FF, r >= 0x1F00 && r <= 0x1FFF:
		return scriptGreek
	case r >= 0x400 && r <= 0x4FF:
		return scriptCyrillic
	case r >= 0x590 && r <= 0x5FF:
		return scriptHebrew
	case r >= 0x600 && r <= 0x6FF:
		return scriptArabic
	case r >= 0xE00 && r <= 0xE7F:
		return scriptThai
	case r >= 0x3400 && r <= 0x4DBF, r >= 0x4E00 && r <= 0x9FFF, r >= 0xF900 && r <= 0xFAFF:
		return scriptHan
	case r >= 0x3040 && r <= 0x30FF, r >= 0x31F0 && r <= 0x31FF:
		return scriptKana
	case r >= 0xFF66 && r <= 0xFF9F:
		return scriptHalfKana
	case r >= 0xAC00 && r <= 0xD7AF, r >= 0x1100 && r <= 0x11FF, r >= 0x3130 && r <= 0x318F:
		return scriptHangul
	default:
		return scriptOther
	}
}

func compatibleScripts(a, b script) bool {
	if a == b {
		return true
	}
	latin := func(s script) bool { return s == scriptASCII || s == scriptLatin }
	cjk := func(s script) bool { return s == scriptHan || s == scriptKana }
	return (latin(a) && latin(b)) || (cjk(a) && cjk(b))
}

// Symbols that legitimately show up in captions.
const allowedSymbols = "€£¥°©®™♪♫•…–—‘’“”«»¡¿·"

// Latin-1 punctuation and signs that are rare in dialogue but are what
// mis-decoded multi-byte text tends to turn into.
const noiseSymbols = "¦§¨¬\u00ad¯±²³´¶¸¹¼½¾×÷¤¢†‡‰‹›„‚ˆ˜ªºµ"

func isNoise(r rune) bool {
	if strings.ContainsRune(allowedSymbols, r) {
		return false
	}
	if strings.ContainsRune(noiseSymbols, r) {
		return true
	}
	switch {
	case r >= 0x80 && unicode.IsSymbol(r):
		return true
	case unicode.Is(unicode.Co, r):
		return true
	case unicode.Is(unicode.Cf, r) && (r < 0x200C || r > 0x200F):
		return true
	case r >= 0x2500 && r <= 0x25FF:
		return true
	}
	return false
}

func isControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t'
}

func isPrintable(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t' || unicode.IsGraphic(r)
}

func isLetterOrMark(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

// Accented Latin letters grouped by the code pages that produce them. Text
// drawing from more than one group is usually a wrong single-byte table.
var latinRepertoires = []string{
	"čďěľĺňřšťžůőűąęłńśźżćăşţŕČĎĚĽĹŇŘŠŤŽŮŐŰĄĘŁŃŚŹŻĆĂŞŢŔ",
	"æøåðþÆØÅÐÞ",
	"àèìòùãõñÀÈÌÒÙÃÕÑ",
}

// Most frequent Cyrillic letters; a wrong Cyrillic table yields plenty of
// Cyrillic letters but the wrong ones.
const commonCyrillic = "оеаинтсрвлкмдпуяіы"

// Score rates how much text looks like correctly decoded caption text, in
// [0,1].
func Score(text string) float64 {
	runes := []rune(text)
	n := float64(len(runes))
	if n == 0 {
		return 0
	}

	var printable, control, replacement, noise, letters int
	counts := make(map[script]int)
	ascii := true
	for _, r := range runes {
		if r >= 0x80 {
			ascii = false
		}
		if r == unicode.ReplacementChar {
			replacement++
			continue
		}
		if isPrintable(r) {
			printable++
		}
		if isControl(r) {
			control++
		}
		if isNoise(r) {
			noise++
		}
		if isLetterOrMark(r) {
			letters++
			counts[scriptOf(r)]++
		}
	}

	s := 0.65*float64(printable)/n - 4.0*float64(control)/n - 2.0*float64(replacement)/n - 6.0*float64(noise)/n

	if letters > 0 {
		bonus := 0.0
		for _, sc := range bonusScripts {
			bonus += min(float64(counts[sc])/float64(letters), 0.1)
		}
		s += min(bonus, 0.15)
	}
	if ascii && control == 0 {
		s += 0.15
	}
	if arrowPattern.MatchString(text) {
		s += 0.15
	}
	if integerPattern.MatchString(text) {
		s += 0.05
	}

	w := scanWords(runes)
	if w.cased > 0 {
		s -= 0.5 * float64(w.incoherent) / float64(w.cased)
	}
	if w.multi > 0 {
		s -= 0.6 * float64(w.mixed) / float64(w.multi)
	}
	if w.latin > 0 {
		s -= 0.6 * float64(w.heavy) / float64(w.latin)
	}
	if w.multi > 0 {
		s -= min(1, float64(gluedSymbols(runes))/float64(w.multi))
	}
	if orphans := orphanMarks(runes); orphans > 0 {
		s -= min(1, float64(orphans)/float64(max(1, w.multi)))
	}
	if groups := repertoireGroups(text); groups > 1 {
		s -= 0.25 * float64(groups-1)
	}
	s -= cyrillicPenalty(runes)

	return min(1, max(0, s))
}

type wordStats struct {
	multi      int
	mixed      int
	cased      int
	incoherent int
	latin      int
	heavy      int
}

func scanWords(runes []rune) wordStats {
	var stats wordStats
	var word []rune
	flush := func() {
		if len(word) > 0 {
			stats.add(word)
		}
		word = word[:0]
	}
	for _, r := range runes {
		if isLetterOrMark(r) {
			word = append(word, r)
			continue
		}
		flush()
	}
	flush()
	return stats
}

func (w *wordStats) add(word []rune) {
	letters := make([]rune, 0, len(word))
	for _, r := range word {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) >= 2 {
		w.multi++
		base := scriptOf(letters[0])
		for _, r := range letters[1:] {
			if !compatibleScripts(base, scriptOf(r)) {
				w.mixed++
				break
			}
		}
		var cased []rune
		for _, r := range letters {
			if isUpper(r) || unicode.IsLower(r) {
				cased = append(cased, r)
			}
		}
		if len(cased) >= 2 {
			w.cased++
			for i := 1; i < len(cased); i++ {
				if isUpper(cased[i]) && unicode.IsLower(cased[i-1]) {
					w.incoherent++
					break
				}
			}
		}
	}

	if len(letters) == 0 {
		return
	}
	extended := 0
	for _, r := range letters {
		switch scriptOf(r) {
		case scriptASCII:
		case scriptLatin:
			extended++
		default:
			return
		}
	}
	if extended == 0 {
		return
	}
	w.latin++
	if len(letters) >= 3 && extended*4 >= 3*len(letters) {
		w.heavy++
	}
}

// gluedSymbols counts Latin-1 signs wedged between two letters and control
// characters trailing a letter, both typical of a wrong single-byte table.
func gluedSymbols(runes []rune) int {
	glued := 0
	for i := 1; i < len(runes)-1; i++ {
		r := runes[i]
		symbol := (r >= 0x80 && r <= 0xBF && r != 0xA0 && r != 0xAD) ||
			(r >= 0x80 && unicode.IsSymbol(r)) ||
			isNoise(r)
		switch {
		case symbol && unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1]):
			glued++
		case isControl(r) && unicode.IsLetter(runes[i-1]):
			glued++
		}
	}
	return glued
}

// orphanMarks counts combining marks with nothing to combine with.
func orphanMarks(runes []rune) int {
	orphans := 0
	for i, r := range runes {
		if unicode.IsMark(r) && (i == 0 || !isLetterOrMark(runes[i-1])) {
			orphans++
		}
	}
	return orphans
}

func repertoireGroups(text string) int {
	groups := 0
	for _, set := range latinRepertoires {
		if strings.ContainsAny(text, set) {
			groups++
		}
	}
	return groups
}

func cyrillicPenalty(runes []rune) float64 {
	total, common := 0, 0
	for _, r := range runes {
		if !unicode.IsLetter(r) || scriptOf(r) != scriptCyrillic {
			continue
		}
		total++
		if strings.ContainsRune(commonCyrillic, unicode.ToLower(r)) {
			common++
		}
	}
	if total < 8 {
		return 0
	}
	ratio := float64(common) / float64(total)
	if ratio >= 0.7 {
		return 0
	}
	return 1.5 * (0.7 - ratio)
}

// uncommonRatio is the share of multi-byte sequences in data whose lead byte
// falls outside the everyday region of the named CJK code page. A wrong CJK
// table decodes Latin or Cyrillic bytes into rare ideographs; the correct one
// lands mostly in the frequent rows.
func uncommonRatio(name string, data []byte) float64 {
	total, uncommon := 0, 0
	n := len(data)
	for i := 0; i < n; {
		b := data[i]
		if b < 0x80 {
			i++
			continue
		}
		switch name {
		case "shift_jis":
			if b >= 0xA1 && b <= 0xDF {
				total++
				uncommon++
				i++
				continue
			}
			if i+1 >= n {
				i = n
				continue
			}
			total++
			if !((b >= 0x81 && b <= 0x84) || (b >= 0x88 && b <= 0x9F) || (b >= 0xE0 && b <= 0xEA)) {
				uncommon++
			}
			i += 2
			continue
		case "euc-jp":
			switch {
			case b == 0x8F:
				total++
				uncommon++
				i += 3
			case b == 0x8E:
				total++
				uncommon++
				i += 2
			default:
				total++
				if !((b >= 0xA1 && b <= 0xA5) || (b >= 0xB0 && b <= 0xF4)) {
					uncommon++
				}
				i += 2
			}
			continue
		}
		if i+1 >= n {
			break
		}
		t := data[i+1]
		total++
		switch name {
		case "gbk", "gb18030":
			if t >= 0x30 && t <= 0x39 {
				uncommon++
				i += 4
				continue
			}
			if !(((b >= 0xA1 && b <= 0xA3) || (b >= 0xB0 && b <= 0xF7)) && t >= 0xA1) {
				uncommon++
			}
		case "big5":
			if !(b >= 0xA1 && b <= 0xC6) {
				uncommon++
			}
		case "euc-kr":
			if !(((b >= 0xA1 && b <= 0xA3) || (b >= 0xB0 && b <= 0xC8)) && t >= 0xA1) {
				uncommon++
			}
		}
		i += 2
	}
	if total == 0 {
		return 0
	}
	return float64(uncommon) / float64(total)
}

var multibytePages = map[string]bool{
	"gbk": true, "gb18030": true, "big5": true,
	"shift_jis": true, "euc-jp": true, "euc-kr": true,
}

// candidateScore adjusts Score with byte-level evidence for the encoding
// that produced text.
func candidateScore(name string, data []byte, text string) float64 {
	s := Score(text)
	if multibytePages[name] {
		s = max(0, s-0.6*uncommonRatio(name, data))
	}
	if name == UTF8 && hasHighBytes(data) {
		s = min(1, s+0.05)
	}
	return s
}

func hasHighBytes(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return true
		}
	}
	return false
}
