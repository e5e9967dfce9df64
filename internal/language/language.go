package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// words maps English language names to ISO 639-1 codes.
var words = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"ukrainian":  "uk",
	"arabic":     "ar",
	"hebrew":     "he",
	"greek":      "el",
	"turkish":    "tr",
	"thai":       "th",
	"polish":     "pl",
	"czech":      "cs",
	"hungarian":  "hu",
	"dutch":      "nl",
	"swedish":    "sv",
}

func parseBase(code string) (xlanguage.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return xlanguage.Base{}, false
	}
	if mapped, ok := words[code]; ok {
		code = mapped
	}
	if base, err := xlanguage.ParseBase(code); err == nil {
		return base, true
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return xlanguage.Base{}, false
	}
	base, conf := tag.Base()
	return base, conf != xlanguage.No
}

// ToISO2 converts a language code, tag or English name to its shortest ISO 639
// form (two letters when one exists). Unrecognized input yields "".
func ToISO2(code string) string {
	base, ok := parseBase(code)
	if !ok {
		return ""
	}
	return base.String()
}

// ToISO3 converts a language code, tag or English name to ISO 639-2/T.
// Unrecognized input yields "und".
func ToISO3(code string) string {
	base, ok := parseBase(code)
	if !ok {
		return "und"
	}
	return base.ISO3()
}

// DisplayName returns the English name for a recognized code, "Unknown" for
// empty input and the uppercased input otherwise.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	base, ok := parseBase(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

// Script returns the ISO 15924 code of the script most likely used to write
// the language ("Cyrl" for "ru"), or "" when unknown.
func Script(code string) string {
	base, ok := parseBase(code)
	if !ok {
		return ""
	}
	tag, err := xlanguage.Compose(base)
	if err != nil {
		return ""
	}
	script, conf := tag.Script()
	if conf == xlanguage.No {
		return ""
	}
	return script.String()
}

// NormalizeList deduplicates and normalizes codes to ISO 639-1, dropping
// entries that cannot be parsed.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		iso := ToISO2(code)
		if iso == "" {
			continue
		}
		if _, ok := seen[iso]; ok {
			continue
		}
		seen[iso] = struct{}{}
		normalized = append(normalized, iso)
	}
	return normalized
}
