package wsv

import "unicode/utf8"

// binaryPreamble is the 5-byte header of a complete Binary WSV document,
// "BWSV1".
var binaryPreamble = [5]byte{'B', 'W', 'S', 'V', '1'}

const (
	lineBreakMarker = 0x01 // VarInt56 encoding of 0
	nullMarker      = 0x03 // VarInt56 encoding of 1
	emptyMarker     = 0x05 // VarInt56 encoding of 2
)

// byteBuffer is a growable output buffer with an initial capacity of
// 4096 bytes, so small documents don't reallocate their backing array
// more than once or twice.
type byteBuffer struct {
	data []byte
}

func newByteBuffer() *byteBuffer {
	return &byteBuffer{data: make([]byte, 0, 4096)}
}

func (b *byteBuffer) writeByte(c byte) { b.data = append(b.data, c) }

func (b *byteBuffer) write(p []byte) { b.data = append(b.data, p...) }

func (b *byteBuffer) bytes() []byte { return b.data }

func isEmptyDocument(lines []*Line) bool {
	if len(lines) == 0 {
		return true
	}
	return len(lines) == 1 && len(lines[0].Values()) == 0
}

// EncodeBinary renders doc as Binary WSV. withPreamble
// controls whether the 5-byte "BWSV1" header is emitted; callers
// encoding a line fragment pass false.
func EncodeBinary(doc *Document, withPreamble bool) []byte {
	buf := newByteBuffer()
	if withPreamble {
		buf.write(binaryPreamble[:])
	}
	lines := doc.Lines()
	if isEmptyDocument(lines) {
		return buf.bytes()
	}
	for i, line := range lines {
		for _, v := range line.Values() {
			encodeBinaryValue(buf, v)
		}
		if i < len(lines)-1 {
			buf.writeByte(lineBreakMarker)
		}
	}
	return buf.bytes()
}

func encodeBinaryValue(buf *byteBuffer, v Value) {
	switch {
	case v == nil:
		buf.writeByte(nullMarker)
	case *v == "":
		buf.writeByte(emptyMarker)
	default:
		payload := []byte(*v)
		encoded, err := EncodeVarInt56(uint64(len(payload)) + 2)
		if err != nil {
			// tag only exceeds MaxVarInt56 for a string payload longer than
			// 2^56-3 bytes, far beyond anything this package can hold in memory.
			panic(err)
		}
		buf.write(encoded)
		buf.write(payload)
	}
}

// DecodeBinary parses Binary WSV data into a Document.
// withPreamble requires and validates the "BWSV1" header; callers
// decoding a line fragment pass false.
func DecodeBinary(data []byte, withPreamble bool) (*Document, error) {
	offset := 0
	if withPreamble {
		if len(data) < 4 || string(data[:4]) != "BWSV" {
			return nil, ErrNoPreamble
		}
		if len(data) < 5 || data[4] != '1' {
			return nil, ErrUnsupportedVersion
		}
		offset = 5
	}

	doc := NewDocument()
	line := doc.AddLine()

	for offset < len(data) {
		tag, n, err := DecodeVarInt56(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		switch {
		case tag == 0:
			line = doc.AddLine()
		case tag == 1:
			line.AppendNull()
		case tag == 2:
			line.AppendString("")
		default:
			length := int(tag - 2)
			if offset+length > len(data) {
				return nil, ErrTruncatedString
			}
			payload := data[offset : offset+length]
			if !utf8.Valid(payload) {
				return nil, ErrTruncatedString
			}
			line.AppendString(string(payload))
			offset += length
		}
	}
	return doc, nil
}
