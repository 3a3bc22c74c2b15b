package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jamesainslie/go-label/corpus"
)

// CSV writes one row per record: the example text and one "excerpt - LABEL"
// line per annotation, for human review.
type CSV struct {
	// SkipBlank drops records with no annotations.
	SkipBlank bool
}

// Export implements Exporter.
func (e *CSV) Export(w io.Writer, recs []corpus.Record) error {
	cw := csv.NewWriter(w)
	for _, rec := range recs {
		ex := rec.Example()
		if e.SkipBlank && len(ex.Annotations) == 0 {
			continue
		}

		runes := []rune(ex.Text)
		lines := make([]string, 0, len(ex.Annotations))
		for _, a := range ex.Annotations {
			if a.Start < 0 || a.End > len(runes) || a.Start >= a.End {
				continue
			}
			lines = append(lines, string(runes[a.Start:a.End])+" - "+a.Label)
		}

		if err := cw.Write([]string{ex.Text, strings.Join(lines, "\n")}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
