package wsv

import "strings"

// Value is an optional string: nil denotes the semantic WSV null, a
// non-nil pointer (including one pointing at "") denotes a string value.
// A Go pointer already is a tagged option type, so no wrapper struct is
// introduced.
type Value = *string

// NewValue wraps s as a non-null Value.
func NewValue(s string) Value { return &s }

// IsNull reports whether v denotes the WSV null value.
func IsNull(v Value) bool { return v == nil }

// Line is one row of a Document: an ordered list of values plus the two
// optional decorations (whitespace runs and a trailing comment) used only
// by the preserving parser/serializer.
type Line struct {
	values      []Value
	whitespaces []Value // nil slice: no decoration recorded ("all defaults")
	comment     Value   // nil: no comment
}

// NewLine returns an empty line with no decorations.
func NewLine() *Line {
	return &Line{}
}

// NewLineWithValues returns a line containing values, with no whitespace
// or comment decoration.
func NewLineWithValues(values ...Value) *Line {
	return &Line{values: append([]Value(nil), values...)}
}

// Values returns the line's values in order. The returned slice must not
// be mutated by the caller.
func (l *Line) Values() []Value { return l.values }

// Append adds v as the next value on the line.
func (l *Line) Append(v Value) { l.values = append(l.values, v) }

// AppendString is a convenience for Append(NewValue(s)).
func (l *Line) AppendString(s string) { l.Append(NewValue(s)) }

// AppendNull is a convenience for Append(nil).
func (l *Line) AppendNull() { l.Append(nil) }

// Comment returns the line's trailing comment, or nil if there is none.
func (l *Line) Comment() Value { return l.comment }

// SetComment sets the line's trailing comment. A nil comment clears it.
// A non-nil comment must contain no line feed and no unpaired UTF-16
// surrogate.
func (l *Line) SetComment(comment Value) error {
	if comment == nil {
		l.comment = nil
		return nil
	}
	if strings.ContainsRune(*comment, lineFeed) {
		return ErrLineFeedInComment
	}
	if err := validateRunes(*comment); err != nil {
		return err
	}
	l.comment = comment
	return nil
}

// Whitespaces returns the line's recorded whitespace slots, or nil if
// none were recorded (meaning "all defaults").
func (l *Line) Whitespaces() []Value { return l.whitespaces }

// SetWhitespaces records the per-value whitespace runs used by preserving
// serialization. ws may be nil (clearing all decoration) or have length
// len(Values()) or len(Values())+1: slot i is the whitespace before
// value i, and an optional trailing slot is the whitespace after the
// last value. Each non-nil slot must be a non-empty run of WSV
// whitespace code points, except slot 0, which may legitimately be "".
func (l *Line) SetWhitespaces(ws []Value) error {
	if ws == nil {
		l.whitespaces = nil
		return nil
	}
	if len(ws) != len(l.values) && len(ws) != len(l.values)+1 {
		return ErrInvalidWhitespaceLen
	}
	for i, slot := range ws {
		if slot == nil {
			continue
		}
		if *slot == "" {
			if i == 0 {
				continue
			}
			return ErrEmptyWhitespaceSlot
		}
		for _, r := range *slot {
			if !isWhitespace(r) {
				return ErrInvalidWhitespace
			}
		}
	}
	l.whitespaces = append([]Value(nil), ws...)
	return nil
}

// whitespaceBefore returns the effective whitespace run before values[i]
// (i == len(values) means "after the last value"). ok is false when no
// whitespace was recorded for that slot, meaning the caller should apply
// the default gap.
func (l *Line) whitespaceBefore(i int) (string, bool) {
	if i >= len(l.whitespaces) {
		return "", false
	}
	slot := l.whitespaces[i]
	if slot == nil {
		return "", false
	}
	return *slot, true
}
