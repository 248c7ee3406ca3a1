package wsv

import "unicode/utf8"

// whitespaceCodePoints is the WSV whitespace set: 24 code points, which
// exclude the line feed.
var whitespaceCodePoints = [...]rune{
	0x0009, 0x000B, 0x000C, 0x000D, 0x0020, 0x0085, 0x00A0, 0x1680,
	0x2000, 0x2001, 0x2002, 0x2003, 0x2004, 0x2005, 0x2006, 0x2007,
	0x2008, 0x2009, 0x200A,
	0x2028, 0x2029, 0x202F, 0x205F, 0x3000,
}

const lineFeed rune = 0x000A

func isWhitespace(r rune) bool {
	for _, w := range whitespaceCodePoints {
		if w == r {
			return true
		}
	}
	return false
}

// isSpecial reports whether r forces a value to be quoted when
// serialized: a double quote, a comment marker, the line terminator, or
// any WSV whitespace code point.
func isSpecial(r rune) bool {
	return r == '"' || r == '#' || r == lineFeed || isWhitespace(r)
}

const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

func isHighSurrogate(r rune) bool { return r >= highSurrogateMin && r <= highSurrogateMax }
func isLowSurrogate(r rune) bool  { return r >= lowSurrogateMin && r <= lowSurrogateMax }

// decodeSurrogateHalf recognizes the 3-byte (CESU-8/WTF-8 style) UTF-8
// encoding of a lone surrogate half, which plain utf8.DecodeRune rejects
// as invalid. This lets the scanner detect and report lone/mismatched
// surrogates explicitly instead of silently folding them into
// utf8.RuneError.
func decodeSurrogateHalf(b []byte) (rune, bool) {
	if len(b) < 3 {
		return 0, false
	}
	if b[0]&0xF0 != 0xE0 || b[1]&0xC0 != 0x80 || b[2]&0xC0 != 0x80 {
		return 0, false
	}
	r := rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
	if r < highSurrogateMin || r > lowSurrogateMax {
		return 0, false
	}
	return r, true
}

// decodeRune decodes one scanner step starting at data[i]. It returns the
// decoded rune, the number of bytes consumed, and whether the step was a
// valid UTF-16 code unit (combining a high+low surrogate pair into a
// single step when both halves are present back-to-back). ok is false for
// a lone/mismatched surrogate half or any other invalid byte sequence; in
// that case n is the number of bytes to blame for the error (at least 1).
func decodeRune(data []byte, i int) (r rune, n int, ok bool) {
	if i >= len(data) {
		return 0, 0, true
	}
	// utf8.DecodeRune never yields a rune in the surrogate range from a
	// legitimately encoded sequence (it treats CESU-8-style surrogate-half
	// encodings as invalid UTF-8), so a successful decode here is never a
	// surrogate half and can be returned as-is.
	r0, size0 := utf8.DecodeRune(data[i:])
	if !(r0 == utf8.RuneError && size0 == 1) {
		return r0, size0, true
	}
	if half, ok2 := decodeSurrogateHalf(data[i:]); ok2 {
		if isHighSurrogate(half) {
			if lo, ok3 := decodeSurrogateHalf(data[i+3:]); ok3 && isLowSurrogate(lo) {
				return combineSurrogates(half, lo), 6, true
			}
			return half, 3, false
		}
		return half, 3, false
	}
	return utf8.RuneError, 1, false
}

func combineSurrogates(hi, lo rune) rune {
	return 0x10000 + (hi-highSurrogateMin)<<10 + (lo - lowSurrogateMin)
}

// validateRunes walks s rune-by-rune (using the same surrogate-aware
// decoder as the parser) and returns an error at the first invalid code
// unit. Used by Line setters to validate caller-supplied whitespace and
// comment strings outside of a full document parse.
func validateRunes(s string) error {
	data := []byte(s)
	for i := 0; i < len(data); {
		_, n, ok := decodeRune(data, i)
		if !ok {
			return newParseError(ErrInvalidUTF16String, i, 0, i)
		}
		if n == 0 {
			break
		}
		i += n
	}
	return nil
}
