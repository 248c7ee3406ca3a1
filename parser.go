package wsv

import "strings"

// ParseDocumentPreserving parses data as WSV text, capturing whitespace
// runs and trailing comments exactly.
// lineIndexOffset is added to every reported line index, for callers
// parsing a fragment of a larger document.
func ParseDocumentPreserving(data []byte, lineIndexOffset int) (*Document, error) {
	return parseDocument(data, lineIndexOffset, true)
}

// ParseDocument parses data as WSV text, discarding whitespace and
// comments.
func ParseDocument(data []byte, lineIndexOffset int) (*Document, error) {
	return parseDocument(data, lineIndexOffset, false)
}

// ParseAsJaggedArray is the non-preserving parse shortcut: it returns the
// raw values without constructing Line/Document objects.
func ParseAsJaggedArray(data []byte) ([][]Value, error) {
	doc, err := parseDocument(data, 0, false)
	if err != nil {
		return nil, err
	}
	out := make([][]Value, len(doc.lines))
	for i, l := range doc.lines {
		out[i] = l.values
	}
	return out, nil
}

// ParseLine parses data as a single WSV line, preserving its whitespace
// and comment. It fails with ErrMultipleLines if data contains more than
// one line (including the implicit trailing empty line a terminal LF
// introduces).
func ParseLine(data []byte) (*Line, error) {
	doc, err := parseDocument(data, 0, true)
	if err != nil {
		return nil, err
	}
	if len(doc.lines) != 1 {
		return nil, ErrMultipleLines
	}
	return doc.lines[0], nil
}

// ParseValue parses data as a single WSV value: exactly one line
// containing exactly one value.
func ParseValue(data []byte) (Value, error) {
	line, err := ParseLine(data)
	if err != nil {
		return nil, err
	}
	switch len(line.values) {
	case 0:
		return nil, ErrNoValue
	case 1:
		return line.values[0], nil
	default:
		return nil, ErrMultipleValues
	}
}

func parseDocument(data []byte, lineIndexOffset int, preserving bool) (*Document, error) {
	s := newScanner(data, lineIndexOffset, preserving)
	doc := NewDocument()
	for {
		line, hitEOF, err := parseLine(s)
		if err != nil {
			return nil, err
		}
		doc.AppendLine(line)
		if hitEOF {
			return doc, nil
		}
	}
}

// parseLine scans one WSV line starting at s.i. It returns the parsed
// line, whether the input ended without a line terminator (true EOF), and
// any grammar error.
func parseLine(s *scanner) (*Line, bool, error) {
	line := NewLine()
	var wsSlots []Value

	for {
		wsText, hadWS, err := readWhitespaceRun(s)
		if err != nil {
			return nil, false, err
		}

		if s.atEOF() {
			if s.preserving && hadWS {
				wsSlots = append(wsSlots, NewValue(wsText))
			}
			finalizeLine(line, wsSlots, "", false, s.preserving)
			return line, true, nil
		}

		r, n, ok := s.peekRune()
		if !ok {
			return nil, false, s.errAt(ErrInvalidUTF16String)
		}

		switch {
		case r == lineFeed:
			if s.preserving && hadWS {
				wsSlots = append(wsSlots, NewValue(wsText))
			}
			s.consumeLF()
			finalizeLine(line, wsSlots, "", false, s.preserving)
			return line, false, nil

		case r == '#':
			if s.preserving && hadWS {
				wsSlots = append(wsSlots, NewValue(wsText))
			}
			s.advance(n, r)
			comment, err := readComment(s)
			if err != nil {
				return nil, false, err
			}
			if s.atEOF() {
				finalizeLine(line, wsSlots, comment, true, s.preserving)
				return line, true, nil
			}
			s.consumeLF()
			finalizeLine(line, wsSlots, comment, true, s.preserving)
			return line, false, nil

		default:
			if s.preserving {
				if hadWS {
					wsSlots = append(wsSlots, NewValue(wsText))
				} else {
					wsSlots = append(wsSlots, nil)
				}
			}
			val, err := parseToken(s)
			if err != nil {
				return nil, false, err
			}
			line.Append(val)
		}
	}
}

func finalizeLine(line *Line, wsSlots []Value, comment string, hasComment bool, preserving bool) {
	if !preserving {
		return
	}
	if wsSlots != nil {
		line.whitespaces = wsSlots
	}
	if hasComment {
		line.comment = NewValue(comment)
	}
}

// readWhitespaceRun consumes a (possibly empty) run of WSV whitespace
// code points starting at s.i.
func readWhitespaceRun(s *scanner) (text string, hadWS bool, err error) {
	var sb strings.Builder
	for {
		if s.atEOF() {
			break
		}
		r, n, ok := s.peekRune()
		if !ok {
			return "", false, s.errAt(ErrInvalidUTF16String)
		}
		if !isWhitespace(r) {
			break
		}
		sb.WriteRune(r)
		s.advance(n, r)
		hadWS = true
	}
	return sb.String(), hadWS, nil
}

// readComment consumes comment text up to (but not including) the next
// line feed or end of input.
func readComment(s *scanner) (string, error) {
	var sb strings.Builder
	for {
		if s.atEOF() {
			break
		}
		r, n, ok := s.peekRune()
		if !ok {
			return "", s.errAt(ErrInvalidUTF16String)
		}
		if r == lineFeed {
			break
		}
		sb.WriteRune(r)
		s.advance(n, r)
	}
	return sb.String(), nil
}

func parseToken(s *scanner) (Value, error) {
	r, _, ok := s.peekRune()
	if !ok {
		return nil, s.errAt(ErrInvalidUTF16String)
	}
	if r == '"' {
		return parseQuotedString(s)
	}
	return parseBareValue(s)
}

func parseBareValue(s *scanner) (Value, error) {
	var sb strings.Builder
	for {
		if s.atEOF() {
			break
		}
		r, n, ok := s.peekRune()
		if !ok {
			return nil, s.errAt(ErrInvalidUTF16String)
		}
		if r == lineFeed || r == '#' || isWhitespace(r) {
			break
		}
		if r == '"' {
			return nil, s.errAt(ErrInvalidDoubleQuoteInValue)
		}
		sb.WriteRune(r)
		s.advance(n, r)
	}
	text := sb.String()
	if text == "-" {
		return nil, nil
	}
	return NewValue(text), nil
}

// parseQuotedString scans a complete quoted token, including its two
// escapes (`""` and `"/"`), and then validates the single code unit
// allowed to follow the closing quote. A `/` between the quotes is a
// literal character; a `"/` that is not completed by `"` is an invalid
// string line break.
func parseQuotedString(s *scanner) (Value, error) {
	_, n, _ := s.peekRune() // opening quote, always 1 byte
	s.advance(n, '"')

	var sb strings.Builder
	for {
		if s.atEOF() {
			return nil, s.errAt(ErrStringNotClosed)
		}
		r, rn, ok := s.peekRune()
		if !ok {
			return nil, s.errAt(ErrInvalidUTF16String)
		}

		switch r {
		case '"':
			r2, n2, ok2, has2 := s.peekRuneAt(s.i + rn)
			if has2 && ok2 && r2 == '"' {
				sb.WriteByte('"')
				s.advance(rn, r)
				s.advance(n2, r2)
				continue
			}
			if has2 && ok2 && r2 == '/' {
				r3, n3, ok3, has3 := s.peekRuneAt(s.i + rn + n2)
				if has3 && ok3 && r3 == '"' {
					sb.WriteByte('\n')
					s.advance(rn, r)
					s.advance(n2, r2)
					s.advance(n3, r3)
					continue
				}
				s.advance(rn, r)
				return nil, s.errAt(ErrInvalidStringLineBreak)
			}
			s.advance(rn, r)
			if err := checkCharAfterString(s); err != nil {
				return nil, err
			}
			return NewValue(sb.String()), nil

		case lineFeed:
			return nil, s.errAt(ErrStringNotClosed)

		default:
			sb.WriteRune(r)
			s.advance(rn, r)
		}
	}
}

// checkCharAfterString enforces the rule for the single code unit
// allowed right after a quoted string's closing quote: end of input,
// a line feed, a comment marker, or whitespace. It does not consume that
// code unit; the enclosing line scanner dispatches on it next.
func checkCharAfterString(s *scanner) error {
	if s.atEOF() {
		return nil
	}
	r, _, ok := s.peekRune()
	if !ok {
		return s.errAt(ErrInvalidUTF16String)
	}
	if r == lineFeed || r == '#' || isWhitespace(r) {
		return nil
	}
	return s.errAt(ErrInvalidCharacterAfterString)
}
