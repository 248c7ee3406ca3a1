// Package textenc is the external text-encoding collaborator the core wsv
// package assumes but never implements: byte<->string transcoding, BOM
// sniffing, and line joining. The wsv package never imports this one;
// textenc imports wsv only for its TextEncoding tag.
package textenc

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ridgeway/wsv"
)

// ErrInvalidUTF8 is returned by UTF8ToString and Decode's UTF-8 path when
// the input is not well-formed UTF-8.
var ErrInvalidUTF8 = errors.New("textenc: invalid UTF-8")

var (
	utf16BE encoding.Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// UTF8ToString decodes b as UTF-8. It is the identity conversion exposed
// as a named collaborator function so callers can swap in a different
// decode path without touching the wsv package.
func UTF8ToString(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// StringToUTF8 encodes s as UTF-8 bytes.
func StringToUTF8(s string) []byte {
	return []byte(s)
}

// Decode sniffs a leading byte-order mark and transcodes b to a UTF-8
// string, reporting the TextEncoding it detected. Input with no
// recognized BOM is treated as UTF-8.
func Decode(b []byte) (string, wsv.TextEncoding, error) {
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		s, err := UTF8ToString(b[3:])
		return s, wsv.UTF8, err

	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		s, err := decodeUTF16(b[2:], utf16LE)
		return s, wsv.UTF16LE, err

	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		s, err := decodeUTF16(b[2:], utf16BE)
		return s, wsv.UTF16BE, err

	default:
		s, err := UTF8ToString(b)
		return s, wsv.UTF8, err
	}
}

func decodeUTF16(b []byte, enc encoding.Encoding) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// JoinLines joins lines with the platform-neutral line terminator U+000A.
func JoinLines(lines []string) string {
	var sb bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l)
	}
	return sb.String()
}
