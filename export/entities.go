package export

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/corpus"
)

// Entities writes records as length-delimited messages in protobuf wire
// format, the serialization consumed by downstream training:
//
//	message Entity  { uint64 start = 1; uint64 end = 2; string label = 3; }
//	message Example { string text = 1; repeated Entity entities = 2; }
//
// Each message is preceded by its varint-encoded byte length.
type Entities struct {
	// SkipBlank drops records with no annotations.
	SkipBlank bool
}

// Export implements Exporter.
func (e *Entities) Export(w io.Writer, recs []corpus.Record) error {
	for i, rec := range recs {
		ex := rec.Example()
		if e.SkipBlank && len(ex.Annotations) == 0 {
			continue
		}
		msg := appendExample(nil, ex)
		frame := protowire.AppendVarint(nil, uint64(len(msg)))
		if _, err := w.Write(frame); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
		if _, err := w.Write(msg); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	return nil
}

func appendExample(b []byte, ex *label.Example) []byte {
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, ex.Text)
	for _, a := range ex.Annotations {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, appendEntity(nil, a))
	}
	return b
}

func appendEntity(b []byte, a label.Annotation) []byte {
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(a.Start))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(a.End))
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendString(b, a.Label)
	return b
}
