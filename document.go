package wsv

// TextEncoding tags a Document with the encoding it was read from (or
// should be written as) without the core ever acting on it — the actual
// byte<->string transcoding is an external collaborator,
// concretely implemented by the textenc package.
type TextEncoding int

const (
	EncodingUndefined TextEncoding = iota
	UTF8
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
)

// Document is an ordered sequence of Lines plus a TextEncoding tag.
// Documents are single-owner; concurrent mutation is not supported
//.
type Document struct {
	lines    []*Line
	encoding TextEncoding
}

// NewDocument returns an empty document with an undefined encoding tag.
func NewDocument() *Document {
	return &Document{}
}

// Lines returns the document's lines in order. The returned slice must
// not be mutated by the caller; mutate individual *Line values instead.
func (d *Document) Lines() []*Line { return d.lines }

// AddLine appends a new, empty line to the document and returns it for
// the caller to populate.
func (d *Document) AddLine() *Line {
	l := NewLine()
	d.lines = append(d.lines, l)
	return l
}

// AppendLine appends an already-constructed line.
func (d *Document) AppendLine(l *Line) { d.lines = append(d.lines, l) }

// Encoding returns the document's text-encoding tag.
func (d *Document) Encoding() TextEncoding { return d.encoding }

// SetEncoding sets the document's text-encoding tag. It has no effect on
// in-memory parsing/serialization; it exists only for callers round-
// tripping through an external byte encoder such as textenc.
func (d *Document) SetEncoding(enc TextEncoding) { d.encoding = enc }
