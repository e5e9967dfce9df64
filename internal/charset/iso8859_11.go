package charset

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ISO8859_11 is the Thai code page (TIS-620 plus NBSP). golang.org/x/text
// ships windows-874 but not this table.
var ISO8859_11 encoding.Encoding = thaiCodec{}

var errThaiUnmappable = errors.New("charset: rune not representable in iso-8859-11")

type thaiCodec struct{}

func (thaiCodec) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: thaiDecoder{}}
}

func (thaiCodec) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: thaiEncoder{}}
}

func (thaiCodec) String() string { return "ISO-8859-11" }

func thaiRune(b byte) rune {
	switch {
	case b <= 0xA0:
		return rune(b)
	case b >= 0xA1 && b <= 0xDA:
		return 0x0E01 + rune(b-0xA1)
	case b >= 0xDF && b <= 0xFB:
		return 0x0E3F + rune(b-0xDF)
	default:
		return utf8.RuneError
	}
}

func thaiByte(r rune) (byte, bool) {
	switch {
	case r >= 0 && r <= 0xA0:
		return byte(r), true
	case r >= 0x0E01 && r <= 0x0E3A:
		return byte(r-0x0E01) + 0xA1, true
	case r >= 0x0E3F && r <= 0x0E5B:
		return byte(r-0x0E3F) + 0xDF, true
	default:
		return 0, false
	}
}

type thaiDecoder struct{ transform.NopResetter }

func (thaiDecoder) Transform(dst, src []byte, _ bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r := thaiRune(src[nSrc])
		size := utf8.RuneLen(r)
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

type thaiEncoder struct{ transform.NopResetter }

func (thaiEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		b, ok := thaiByte(r)
		if !ok {
			return nDst, nSrc, errThaiUnmappable
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}
