package wsv

import (
	"bytes"
	"testing"
)

func TestEncodeBinary_ConcreteExample(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.AppendLine(NewLineWithValues(valuesWithNull("a", nil, "")...))

	got := EncodeBinary(doc, true)
	want := []byte{
		'B', 'W', 'S', 'V', '1',
		0x07, 'a', // "a": VarInt56(3) then 1 byte payload
		0x03, // null
		0x05, // empty string
	}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBinary = % X, want % X", got, want)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		doc  func() *Document
	}{
		{
			desc: "single line mixed values",
			doc: func() *Document {
				d := NewDocument()
				d.AppendLine(NewLineWithValues(valuesWithNull("a", nil, "")...))
				return d
			},
		},
		{
			desc: "multiple lines",
			doc: func() *Document {
				d := NewDocument()
				d.AppendLine(NewLineWithValues(values("a", "b")...))
				d.AppendLine(NewLineWithValues(values("c")...))
				d.AppendLine(NewLine())
				return d
			},
		},
		{
			desc: "empty document",
			doc: func() *Document {
				return NewDocument()
			},
		},
		{
			desc: "unicode payloads",
			doc: func() *Document {
				d := NewDocument()
				d.AppendLine(NewLineWithValues(values("héllo", "日本語", "🎉")...))
				return d
			},
		},
	} {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			doc := tc.doc()
			encoded := EncodeBinary(doc, true)
			decoded, err := DecodeBinary(encoded, true)
			if err != nil {
				t.Fatalf("DecodeBinary error: %v", err)
			}

			wantLines := doc.Lines()
			gotLines := decoded.Lines()
			if len(wantLines) == 0 {
				wantLines = []*Line{NewLine()}
			}
			if len(gotLines) != len(wantLines) {
				t.Fatalf("got %d lines, want %d", len(gotLines), len(wantLines))
			}
			for i := range wantLines {
				wantVals := wantLines[i].Values()
				gotVals := gotLines[i].Values()
				if len(wantVals) != len(gotVals) {
					t.Fatalf("line %d: got %d values, want %d", i, len(gotVals), len(wantVals))
				}
				for j := range wantVals {
					if (wantVals[j] == nil) != (gotVals[j] == nil) {
						t.Errorf("line %d value %d: null mismatch", i, j)
						continue
					}
					if wantVals[j] != nil && *wantVals[j] != *gotVals[j] {
						t.Errorf("line %d value %d: got %q, want %q", i, j, *gotVals[j], *wantVals[j])
					}
				}
			}
		})
	}
}

func TestDecodeBinary_NullVsEmptyString(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.AppendLine(NewLineWithValues(valuesWithNull(nil, "")...))
	encoded := EncodeBinary(doc, false)

	decoded, err := DecodeBinary(encoded, false)
	if err != nil {
		t.Fatalf("DecodeBinary error: %v", err)
	}
	vals := decoded.Lines()[0].Values()
	if vals[0] != nil {
		t.Errorf("value 0 = %v, want null", vals[0])
	}
	if vals[1] == nil || *vals[1] != "" {
		t.Errorf("value 1 = %v, want empty string", vals[1])
	}
}

func TestDecodeBinary_PreambleErrors(t *testing.T) {
	t.Parallel()

	if _, err := DecodeBinary([]byte("XXXX1"), true); err != ErrNoPreamble {
		t.Errorf("error = %v, want ErrNoPreamble", err)
	}
	if _, err := DecodeBinary([]byte("BWSV9"), true); err != ErrUnsupportedVersion {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeBinary_TruncatedStringRecord(t *testing.T) {
	t.Parallel()

	// VarInt56(5) declares a 3-byte payload but only 1 byte follows.
	if _, err := DecodeBinary([]byte{0x0B, 'a'}, false); err != ErrTruncatedString {
		t.Errorf("error = %v, want ErrTruncatedString", err)
	}
}

func TestDecodeBinary_EmptyPayloadAfterPreamble(t *testing.T) {
	t.Parallel()

	doc, err := DecodeBinary([]byte("BWSV1"), true)
	if err != nil {
		t.Fatalf("DecodeBinary error: %v", err)
	}
	if len(doc.Lines()) != 1 || len(doc.Lines()[0].Values()) != 0 {
		t.Errorf("doc = %+v, want one empty line", doc)
	}
}
