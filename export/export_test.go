package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/corpus"
)

func record(text string, anns ...label.Annotation) corpus.Record {
	ex := label.NewExample(text)
	ex.Annotations = anns
	return corpus.FromExample(ex)
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		want   Exporter
	}{
		{"csv", &CSV{SkipBlank: true}},
		{"CSV", &CSV{SkipBlank: true}},
		{"entities", &Entities{SkipBlank: true}},
		{"biluo", &BILUO{SkipBlank: true}},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			got, err := New(tc.format, true)
			if err != nil {
				t.Fatalf("New(%q): %v", tc.format, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("New(%q) = %#v, want %#v", tc.format, got, tc.want)
			}
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("xml", false)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"csv", "csv"},
		{"entities", "bin"},
		{"biluo", "txt"},
		{"BILUO", "txt"},
		{"xml", "out"},
	}
	for _, tc := range tests {
		if got := Ext(tc.format); got != tc.want {
			t.Errorf("Ext(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestCSVExport(t *testing.T) {
	recs := []corpus.Record{
		record("Book a flight to Paris tomorrow",
			label.Annotation{Start: 17, End: 22, Label: "CITY"},
			label.Annotation{Start: 7, End: 13, Label: "TRANSPORT"},
		),
		record("no annotations here"),
	}

	var buf bytes.Buffer
	exp := &CSV{SkipBlank: false}
	if err := exp.Export(&buf, recs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := [][]string{
		{"Book a flight to Paris tomorrow", "Paris - CITY\nflight - TRANSPORT"},
		{"no annotations here", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

func TestCSVExport_SkipBlank(t *testing.T) {
	recs := []corpus.Record{
		record("annotated", label.Annotation{Start: 0, End: 9, Label: "X"}),
		record("blank"),
	}

	var buf bytes.Buffer
	exp := &CSV{SkipBlank: true}
	if err := exp.Export(&buf, recs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "annotated" {
		t.Errorf("rows = %q, want the annotated record only", rows)
	}
}

func TestCSVExport_UnicodeExcerpt(t *testing.T) {
	recs := []corpus.Record{
		record("naïve café au lait", label.Annotation{Start: 6, End: 10, Label: "PLACE"}),
	}

	var buf bytes.Buffer
	if err := (&CSV{}).Export(&buf, recs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if rows[0][1] != "café - PLACE" {
		t.Errorf("excerpt = %q, want %q", rows[0][1], "café - PLACE")
	}
}

// decodedEntity mirrors the Entity wire message for test decoding.
type decodedEntity struct {
	start, end uint64
	label      string
}

type decodedExample struct {
	text     string
	entities []decodedEntity
}

func decodeEntities(t *testing.T, data []byte) []decodedExample {
	t.Helper()
	var out []decodedExample
	for len(data) > 0 {
		size, n := protowire.ConsumeVarint(data)
		if n < 0 {
			t.Fatalf("bad frame length: %v", protowire.ParseError(n))
		}
		data = data[n:]
		if uint64(len(data)) < size {
			t.Fatalf("truncated frame: want %d bytes, have %d", size, len(data))
		}
		out = append(out, decodeExample(t, data[:size]))
		data = data[size:]
	}
	return out
}

func decodeExample(t *testing.T, msg []byte) decodedExample {
	t.Helper()
	var ex decodedExample
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			t.Fatalf("bad tag: %v", protowire.ParseError(n))
		}
		msg = msg[n:]
		if typ != protowire.BytesType {
			t.Fatalf("field %d: unexpected wire type %v", num, typ)
		}
		payload, n := protowire.ConsumeBytes(msg)
		if n < 0 {
			t.Fatalf("field %d: %v", num, protowire.ParseError(n))
		}
		msg = msg[n:]
		switch num {
		case 1:
			ex.text = string(payload)
		case 2:
			ex.entities = append(ex.entities, decodeEntity(t, payload))
		default:
			t.Fatalf("unexpected field %d", num)
		}
	}
	return ex
}

func decodeEntity(t *testing.T, msg []byte) decodedEntity {
	t.Helper()
	var e decodedEntity
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			t.Fatalf("bad tag: %v", protowire.ParseError(n))
		}
		msg = msg[n:]
		switch num {
		case 1, 2:
			if typ != protowire.VarintType {
				t.Fatalf("field %d: unexpected wire type %v", num, typ)
			}
			v, n := protowire.ConsumeVarint(msg)
			if n < 0 {
				t.Fatalf("field %d: %v", num, protowire.ParseError(n))
			}
			msg = msg[n:]
			if num == 1 {
				e.start = v
			} else {
				e.end = v
			}
		case 3:
			payload, n := protowire.ConsumeBytes(msg)
			if n < 0 {
				t.Fatalf("field %d: %v", num, protowire.ParseError(n))
			}
			msg = msg[n:]
			e.label = string(payload)
		default:
			t.Fatalf("unexpected field %d", num)
		}
	}
	return e
}

func TestEntitiesExport(t *testing.T) {
	recs := []corpus.Record{
		record("Book a flight to Paris tomorrow",
			label.Annotation{Start: 17, End: 22, Label: "CITY"},
			label.Annotation{Start: 7, End: 13, Label: "TRANSPORT"},
		),
		record("blank"),
	}

	var buf bytes.Buffer
	exp := &Entities{SkipBlank: true}
	if err := exp.Export(&buf, recs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got := decodeEntities(t, buf.Bytes())
	want := []decodedExample{{
		text: "Book a flight to Paris tomorrow",
		entities: []decodedEntity{
			{start: 17, end: 22, label: "CITY"},
			{start: 7, end: 13, label: "TRANSPORT"},
		},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded = %+v, want %+v", got, want)
	}
}

func TestBILUOExport(t *testing.T) {
	recs := []corpus.Record{
		record("fly to New York now",
			label.Annotation{Start: 7, End: 15, Label: "CITY"},
			label.Annotation{Start: 0, End: 3, Label: "ACT"},
		),
		record("second record", label.Annotation{Start: 0, End: 6, Label: "ORD"}),
	}

	var buf bytes.Buffer
	exp := &BILUO{}
	if err := exp.Export(&buf, recs); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := strings.Join([]string{
		"fly\tU-ACT",
		"to\tO",
		"New\tB-CITY",
		"York\tL-CITY",
		"now\tO",
		"",
		"second\tU-ORD",
		"record\tO",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("output:\n%q\nwant:\n%q", got, want)
	}
}

func TestBILUOTags(t *testing.T) {
	tokens := WhitespaceTokens("one two three four")

	tests := []struct {
		name string
		anns []label.Annotation
		want []string
	}{
		{
			name: "no annotations",
			anns: nil,
			want: []string{"O", "O", "O", "O"},
		},
		{
			name: "single token",
			anns: []label.Annotation{{Start: 4, End: 7, Label: "NUM"}},
			want: []string{"O", "U-NUM", "O", "O"},
		},
		{
			name: "multi token",
			anns: []label.Annotation{{Start: 4, End: 13, Label: "NUM"}},
			want: []string{"O", "B-NUM", "L-NUM", "O"},
		},
		{
			name: "three token span",
			anns: []label.Annotation{{Start: 0, End: 13, Label: "NUM"}},
			want: []string{"B-NUM", "I-NUM", "L-NUM", "O"},
		},
		{
			name: "misaligned start",
			anns: []label.Annotation{{Start: 5, End: 13, Label: "NUM"}},
			want: []string{"O", "-", "-", "O"},
		},
		{
			name: "misaligned end",
			anns: []label.Annotation{{Start: 4, End: 12, Label: "NUM"}},
			want: []string{"O", "-", "-", "O"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := biluoTags(tokens, tc.anns)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tags = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWhitespaceTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "simple",
			text: "a bb ccc",
			want: []Token{
				{Text: "a", Start: 0, End: 1},
				{Text: "bb", Start: 2, End: 4},
				{Text: "ccc", Start: 5, End: 8},
			},
		},
		{
			name: "leading trailing and repeated spaces",
			text: "  a \t b  ",
			want: []Token{
				{Text: "a", Start: 2, End: 3},
				{Text: "b", Start: 6, End: 7},
			},
		},
		{
			name: "multi-byte runes use code point offsets",
			text: "naïve café",
			want: []Token{
				{Text: "naïve", Start: 0, End: 5},
				{Text: "café", Start: 6, End: 10},
			},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WhitespaceTokens(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokens = %+v, want %+v", got, tc.want)
			}
		})
	}
}
