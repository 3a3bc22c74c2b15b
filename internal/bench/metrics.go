package bench

import (
	label "github.com/jamesainslie/go-label"
)

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // offset match tolerance in code points
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       0,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted annotations against ground truth.
// Uses greedy left-to-right matching: a prediction matches the first
// unmatched truth span with the same label whose start and end offsets are
// both within tolerance.
func Evaluate(predicted, truth []label.Annotation, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] || p.Label != t.Label {
				continue
			}
			if abs(p.Start-t.Start) <= cfg.Tolerance && abs(p.End-t.End) <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return finish(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

// finish derives precision, recall, F1 and the weighted score from counts.
func finish(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
