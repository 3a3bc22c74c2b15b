// Package bench evaluates dictionaries against gold-annotated corpora.
package bench

import (
	"fmt"
	"path/filepath"
	"strings"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/corpus"
)

// GoldFile is one corpus file whose annotations are treated as ground truth.
type GoldFile struct {
	ID      string
	Records []corpus.Record
}

// LoadCorpus loads every .jsonl file under dir as a gold file.
func LoadCorpus(dir string) ([]*GoldFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("listing corpus dir: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .jsonl gold files in %s", dir)
	}

	var files []*GoldFile
	for _, p := range paths {
		recs, err := corpus.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, &GoldFile{
			ID:      strings.TrimSuffix(filepath.Base(p), ".jsonl"),
			Records: recs,
		})
	}
	return files, nil
}

// EvaluateFile labels each gold record's text from scratch and scores the
// result against the stored annotations. Records are scored independently
// and the counts aggregated; offsets from different records never compare.
func EvaluateFile(l *label.Labeler, gf *GoldFile, cfg Config) Metrics {
	var tp, fp, fn int
	for _, rec := range gf.Records {
		gold := rec.Example()
		pred := label.NewExample(gold.Text)
		l.Annotate(pred)

		m := Evaluate(pred.Annotations, gold.Annotations, cfg)
		tp += m.TruePositives
		fp += m.FalsePositives
		fn += m.FalseNegatives
	}
	return finish(tp, fp, fn, cfg)
}

// EvaluateByLabel aggregates per-label metrics across all records of all
// gold files.
func EvaluateByLabel(l *label.Labeler, files []*GoldFile, cfg Config) map[string]Metrics {
	type counts struct{ tp, fp, fn int }
	perLabel := make(map[string]*counts)
	bucket := func(lbl string) *counts {
		c, ok := perLabel[lbl]
		if !ok {
			c = &counts{}
			perLabel[lbl] = c
		}
		return c
	}

	for _, gf := range files {
		for _, rec := range gf.Records {
			gold := rec.Example()
			pred := label.NewExample(gold.Text)
			l.Annotate(pred)

			for _, lbl := range labelSet(pred.Annotations, gold.Annotations) {
				m := Evaluate(filterLabel(pred.Annotations, lbl), filterLabel(gold.Annotations, lbl), cfg)
				c := bucket(lbl)
				c.tp += m.TruePositives
				c.fp += m.FalsePositives
				c.fn += m.FalseNegatives
			}
		}
	}

	result := make(map[string]Metrics, len(perLabel))
	for lbl, c := range perLabel {
		result[lbl] = finish(c.tp, c.fp, c.fn, cfg)
	}
	return result
}

func labelSet(groups ...[]label.Annotation) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, anns := range groups {
		for _, a := range anns {
			if _, ok := seen[a.Label]; ok {
				continue
			}
			seen[a.Label] = struct{}{}
			labels = append(labels, a.Label)
		}
	}
	return labels
}

func filterLabel(anns []label.Annotation, lbl string) []label.Annotation {
	var out []label.Annotation
	for _, a := range anns {
		if a.Label == lbl {
			out = append(out, a)
		}
	}
	return out
}
