package charset

// Family names group concrete encodings a guesser tends to confuse.
const (
	FamilyUTF8               = "utf-8"
	FamilyUTF16              = "utf-16"
	FamilyChineseSimplified  = "chinese-simplified"
	FamilyChineseTraditional = "chinese-traditional"
	FamilyJapanese           = "japanese"
	FamilyKorean             = "korean"
	FamilyWestern            = "western"
	FamilyCentralEuropean    = "central-european"
	FamilyCyrillic           = "cyrillic"
	FamilyGreek              = "greek"
	FamilyTurkish            = "turkish"
	FamilyThai               = "thai"
	FamilyArabic             = "arabic"
	FamilyHebrew             = "hebrew"
)

// families lists the members of each family in trial order.
var families = map[string][]string{
	FamilyUTF8:               {UTF8},
	FamilyUTF16:              {UTF16LE, UTF16BE},
	FamilyChineseSimplified:  {"gbk", "gb18030"},
	FamilyChineseTraditional: {"big5"},
	FamilyJapanese:           {"shift_jis", "euc-jp", "iso-2022-jp"},
	FamilyKorean:             {"euc-kr"},
	FamilyWestern:            {"windows-1252", "iso-8859-1", "iso-8859-15", "cp850", "cp437", "macintosh"},
	FamilyCentralEuropean:    {"windows-1250", "iso-8859-2"},
	FamilyCyrillic:           {"windows-1251", "koi8-r", "iso-8859-5", "koi8-u", "cp866"},
	FamilyGreek:              {"windows-1253", "iso-8859-7"},
	FamilyTurkish:            {"windows-1254", "iso-8859-9"},
	FamilyThai:               {"windows-874", "iso-8859-11"},
	FamilyArabic:             {"windows-1256", "iso-8859-6"},
	FamilyHebrew:             {"windows-1255", "iso-8859-8"},
}

// familyAliases maps normalized guesser labels that have no decoder of their
// own (EBCDIC pages, Mac variants) onto a family.
var familyAliases = map[string]string{
	"hzgb2312":     FamilyChineseSimplified,
	"iso2022cn":    FamilyChineseSimplified,
	"iso2022kr":    FamilyKorean,
	"ibm855":       FamilyCyrillic,
	"maccyrillic":  FamilyCyrillic,
	"xmaccyrillic": FamilyCyrillic,
	"ibm420":       FamilyArabic,
	"ibm420ltr":    FamilyArabic,
	"ibm420rtl":    FamilyArabic,
	"ibm424":       FamilyHebrew,
	"ibm424ltr":    FamilyHebrew,
	"ibm424rtl":    FamilyHebrew,
}

var memberFamily = func() map[string]string {
	out := make(map[string]string)
	for family, members := range families {
		for _, name := range members {
			out[name] = family
		}
	}
	return out
}()

// FamilyOf resolves an encoding label to its family.
func FamilyOf(label string) (string, bool) {
	if canonical := Canonical(label); canonical != "" {
		family, ok := memberFamily[canonical]
		return family, ok
	}
	family, ok := familyAliases[normalizeName(label)]
	return family, ok
}

// Members returns the trial order for a family.
func Members(family string) []string {
	return append([]string(nil), families[family]...)
}

// Families returns every family name.
func Families() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	return out
}

// Expand turns a hinted label into a trial list: the hinted encoding itself
// when it can be decoded, then the rest of its family.
func Expand(label string) []string {
	var out []string
	if name, _, ok := Lookup(label); ok {
		out = append(out, name)
	}
	if family, ok := FamilyOf(label); ok {
		out = append(out, families[family]...)
	}
	return dedupe(out)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
