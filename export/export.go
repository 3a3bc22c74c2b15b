// Package export writes annotated corpus records to downstream training and
// review formats. Formats are injectable strategies behind the Exporter
// interface; annotation output never depends on which exporters exist.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jamesainslie/go-label/corpus"
)

// ErrUnknownFormat indicates a format name no exporter is registered for.
var ErrUnknownFormat = errors.New("export: unknown format")

// Exporter writes annotated records to one output format.
type Exporter interface {
	Export(w io.Writer, recs []corpus.Record) error
}

// Format names accepted by New.
const (
	FormatCSV      = "csv"
	FormatEntities = "entities"
	FormatBILUO    = "biluo"
)

// Ext returns the conventional file extension for a format name, without a
// leading dot. Unknown formats map to "out".
func Ext(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "csv"
	case FormatEntities:
		return "bin"
	case FormatBILUO:
		return "txt"
	default:
		return "out"
	}
}

// New returns the exporter for a format name, case-insensitively. Unknown
// names are a configuration error reported before any work runs.
func New(format string, skipBlank bool) (Exporter, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return &CSV{SkipBlank: skipBlank}, nil
	case FormatEntities:
		return &Entities{SkipBlank: skipBlank}, nil
	case FormatBILUO:
		return &BILUO{SkipBlank: skipBlank}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
