package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Canonical names with special decode handling.
const (
	UTF8      = "utf-8"
	UTF8Lossy = "utf-8-lossy"
	UTF16LE   = "utf-16le"
	UTF16BE   = "utf-16be"
)

var registry = map[string]encoding.Encoding{
	UTF8:           xunicode.UTF8,
	UTF16LE:        xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM),
	UTF16BE:        xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM),
	"gbk":          simplifiedchinese.GBK,
	"gb18030":      simplifiedchinese.GB18030,
	"big5":         traditionalchinese.Big5,
	"shift_jis":    japanese.ShiftJIS,
	"euc-jp":       japanese.EUCJP,
	"iso-2022-jp":  japanese.ISO2022JP,
	"euc-kr":       korean.EUCKR,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"iso-8859-2":   charmap.ISO8859_2,
	"windows-1251": charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"iso-8859-5":   charmap.ISO8859_5,
	"cp866":        charmap.CodePage866,
	"windows-1253": charmap.Windows1253,
	"iso-8859-7":   charmap.ISO8859_7,
	"windows-1254": charmap.Windows1254,
	"iso-8859-9":   charmap.ISO8859_9,
	"windows-874":  charmap.Windows874,
	"iso-8859-11":  ISO8859_11,
	"windows-1256": charmap.Windows1256,
	"iso-8859-6":   charmap.ISO8859_6,
	"windows-1255": charmap.Windows1255,
	"iso-8859-8":   charmap.ISO8859_8,
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"macintosh":    charmap.Macintosh,
}

// defaultLadder is the global trial order. Multi-byte CJK pages come first
// because they reject most single-byte text outright; among single-byte pages
// the order breaks ties between tables that decode the same bytes to
// equally plausible letters.
var defaultLadder = []string{
	UTF8,
	"euc-kr", "gbk", "shift_jis", "euc-jp", "iso-2022-jp", "big5",
	"windows-1254", "iso-8859-9",
	"windows-1252", "iso-8859-1", "iso-8859-15",
	"windows-1250", "iso-8859-2",
	"windows-1255", "iso-8859-8",
	"windows-1251", "koi8-r", "iso-8859-5", "koi8-u",
	"windows-1253", "iso-8859-7",
	"windows-1256", "iso-8859-6",
	"windows-874", "iso-8859-11",
	"gb18030", "cp866", "cp437", "cp850", "macintosh",
}

// aliases maps normalized names (see normalizeName) to registry keys.
var aliases = map[string]string{
	"utf8":        UTF8,
	"utf16":       UTF16LE,
	"utf16le":     UTF16LE,
	"utf16be":     UTF16BE,
	"gb2312":      "gbk",
	"cp936":       "gbk",
	"gbk":         "gbk",
	"gb18030":     "gb18030",
	"big5":        "big5",
	"big5hkscs":   "big5",
	"cp950":       "big5",
	"shiftjis":    "shift_jis",
	"sjis":        "shift_jis",
	"cp932":       "shift_jis",
	"windows31j":  "shift_jis",
	"eucjp":       "euc-jp",
	"iso2022jp":   "iso-2022-jp",
	"euckr":       "euc-kr",
	"cp949":       "euc-kr",
	"uhc":         "euc-kr",
	"ascii":       "windows-1252",
	"usascii":     "windows-1252",
	"latin1":      "iso-8859-1",
	"iso88591":    "iso-8859-1",
	"windows1252": "windows-1252",
	"cp1252":      "windows-1252",
	"iso885915":   "iso-8859-15",
	"latin9":      "iso-8859-15",
	"windows1250": "windows-1250",
	"cp1250":      "windows-1250",
	"iso88592":    "iso-8859-2",
	"latin2":      "iso-8859-2",
	"windows1251": "windows-1251",
	"cp1251":      "windows-1251",
	"koi8r":       "koi8-r",
	"koi8u":       "koi8-u",
	"iso88595":    "iso-8859-5",
	"cp866":       "cp866",
	"ibm866":      "cp866",
	"windows1253": "windows-1253",
	"cp1253":      "windows-1253",
	"iso88597":    "iso-8859-7",
	"windows1254": "windows-1254",
	"cp1254":      "windows-1254",
	"iso88599":    "iso-8859-9",
	"latin5":      "iso-8859-9",
	"windows874":  "windows-874",
	"cp874":       "windows-874",
	"tis620":      "iso-8859-11",
	"iso885911":   "iso-8859-11",
	"windows1256": "windows-1256",
	"cp1256":      "windows-1256",
	"iso88596":    "iso-8859-6",
	"windows1255": "windows-1255",
	"cp1255":      "windows-1255",
	"iso88598":    "iso-8859-8",
	"iso88598i":   "iso-8859-8",
	"cp437":       "cp437",
	"ibm437":      "cp437",
	"cp850":       "cp850",
	"ibm850":      "cp850",
	"macintosh":   "macintosh",
	"macroman":    "macintosh",
}

// normalizeName lowercases and drops everything but letters and digits, so
// "Shift_JIS", "shift-jis" and "SHIFTJIS" compare equal.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonical returns the registry name for an encoding label, or "" when the
// label is unknown to the registry.
func Canonical(name string) string {
	if _, ok := registry[name]; ok {
		return name
	}
	return aliases[normalizeName(name)]
}

// Lookup resolves an encoding label to a canonical name and decoder. Labels
// outside the registry are tried against the IANA index.
func Lookup(name string) (string, encoding.Encoding, bool) {
	if canonical := Canonical(name); canonical != "" {
		return canonical, registry[canonical], true
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", nil, false
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil || canonical == "" {
		canonical = name
	}
	return strings.ToLower(canonical), enc, true
}

// Ladder returns a copy of the global trial order.
func Ladder() []string {
	return append([]string(nil), defaultLadder...)
}

// Known reports whether name is a registry key.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func resolveEncoding(name string) (encoding.Encoding, bool) {
	if enc, ok := registry[name]; ok {
		return enc, true
	}
	_, enc, ok := Lookup(name)
	return enc, ok
}

// decodeStrict decodes data and reports whether the decode was clean. UTF-8
// is validated rather than transcoded so a valid file that already contains
// U+FFFD is still accepted.
func decodeStrict(name string, data []byte) (string, bool) {
	if name == UTF8 {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	enc, ok := resolveEncoding(name)
	if !ok {
		return "", false
	}
	if name == UTF16LE || name == UTF16BE {
		data = data[:len(data)&^1]
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// decodeLossy always produces text. Unknown names fall back to UTF-8 and
// undecodable bytes become U+FFFD.
func decodeLossy(name string, data []byte) string {
	enc, ok := resolveEncoding(name)
	if !ok || name == UTF8Lossy {
		enc = xunicode.UTF8
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(out)
}
