// Package corpus reads and writes annotated examples as line-delimited JSON
// records and converts plain-text files into record form.
//
// The record schema is a wire contract:
//
//	{"annotations": [{"text_extraction": {"text_segment":
//	    {"start_offset": 18, "end_offset": 23}}, "display_name": "CITY"}],
//	 "text_snippet": {"content": "Book a flight to Paris tomorrow"}}
//
// Files are UTF-8 with one record per line. Offsets are Unicode code point
// offsets, not byte offsets.
package corpus

import (
	label "github.com/jamesainslie/go-label"
)

// Record is one line of a corpus file.
type Record struct {
	Annotations []RecordAnnotation `json:"annotations"`
	TextSnippet TextSnippet        `json:"text_snippet"`
}

// RecordAnnotation is the serialized form of one annotation.
type RecordAnnotation struct {
	TextExtraction TextExtraction `json:"text_extraction"`
	DisplayName    string         `json:"display_name"`
}

// TextExtraction wraps the annotated segment.
type TextExtraction struct {
	TextSegment TextSegment `json:"text_segment"`
}

// TextSegment is a half-open [StartOffset, EndOffset) code point span.
type TextSegment struct {
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// TextSnippet carries the example text.
type TextSnippet struct {
	Content string `json:"content"`
}

// NewRecord wraps raw text in a record with no annotations.
func NewRecord(text string) Record {
	return Record{
		Annotations: []RecordAnnotation{},
		TextSnippet: TextSnippet{Content: text},
	}
}

// Example converts the record to its in-memory form. Annotations keep their
// stored order and are treated as pre-existing by the labeler.
func (r Record) Example() *label.Example {
	ex := label.NewExample(r.TextSnippet.Content)
	for _, a := range r.Annotations {
		ex.Annotations = append(ex.Annotations, label.Annotation{
			Start: a.TextExtraction.TextSegment.StartOffset,
			End:   a.TextExtraction.TextSegment.EndOffset,
			Label: a.DisplayName,
		})
	}
	return ex
}

// FromExample converts an annotated example back to record form, preserving
// annotation order.
func FromExample(ex *label.Example) Record {
	rec := NewRecord(ex.Text)
	for _, a := range ex.Annotations {
		rec.Annotations = append(rec.Annotations, RecordAnnotation{
			TextExtraction: TextExtraction{
				TextSegment: TextSegment{StartOffset: a.Start, EndOffset: a.End},
			},
			DisplayName: a.Label,
		})
	}
	return rec
}
