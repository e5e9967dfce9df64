package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis is appended to text cut by Truncate.
const Ellipsis = "..."

var (
	htmlTagPattern  = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
	assTagPattern   = regexp.MustCompile(`\{\\[^{}]*\}`)
	whitespaceRuns  = regexp.MustCompile(`[ \t\x{00A0}]+`)
	maxMarkupPasses = 8
)

// StripMarkup removes HTML-style tags and ASS/SSA override blocks. Stripping
// repeats until the text stops changing so nested fragments like "<<b>i>" do
// not leave a new tag behind.
func StripMarkup(text string) string {
	for range maxMarkupPasses {
		next := htmlTagPattern.ReplaceAllString(text, "")
		next = assTagPattern.ReplaceAllString(next, "")
		if next == text {
			break
		}
		text = next
	}
	return text
}

// NormalizeLines trims every line, collapses inner whitespace runs to one
// space and drops blank lines. The result is joined with "\n".
func NormalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRuns.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Truncate shortens text to at most limit runes. Text that is cut keeps
// limit-len(Ellipsis) runes, loses any trailing whitespace and gains the
// ellipsis. The second return reports whether a cut happened.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	count := 0
	cut := len(text)
	for i := range text {
		if count == keep {
			cut = i
			break
		}
		count++
	}
	head := strings.TrimRightFunc(text[:cut], unicode.IsSpace)
	return head + Ellipsis, true
}
