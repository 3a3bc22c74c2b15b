// Package dictionary parses pattern dictionaries into ordered, validated
// matching rules.
//
// A dictionary is a CSV file with at least two columns per row:
//
//	pattern, label [, mode [, matching group]]
//
// mode is one of "e" (exact), "i" (ignore case), "r" (regex), defaulting to
// exact. The matching group column selects a capture group of the pattern;
// empty means group 0, the whole match.
//
// Malformed rows are skipped with a warning; only an unreadable file fails
// the parse.
package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrNotFound indicates the dictionary file does not exist.
var ErrNotFound = errors.New("dictionary: file not found")

// Rule is one parsed dictionary row. Rules are immutable once parsed and
// their dictionary order is significant: earlier rules claim spans first.
type Rule struct {
	Pattern string
	Label   string
	Mode    Mode
	// Group is the capture group whose span becomes the annotation, as the
	// raw column value. Empty selects group 0, the whole match.
	Group string
}

// Option configures parsing.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	maxLabelLength int
}

func defaultConfig() config {
	return config{
		logger:         slog.Default(),
		maxLabelLength: 0,
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxLabelLength bounds the leading word token of a label (default: 0,
// no limit). Rows whose label exceeds the bound are skipped.
func WithMaxLabelLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxLabelLength = n
		}
	}
}

// labelToken matches the leading word token of a label.
var labelToken = regexp2.MustCompile(`^\w+`, regexp2.None)

// Parse reads dictionary rows from r, preserving input order among accepted
// rules. Rows are skipped with a warning when they have fewer than two
// fields, when pattern or label is empty after trimming, when the
// (pattern, mode) pair repeats (first occurrence wins), or when the label's
// leading word token exceeds the configured maximum length.
func Parse(r io.Reader, opts ...Option) ([]Rule, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	type key struct {
		pattern string
		mode    Mode
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rules []Rule
	seen := make(map[key]struct{})
	row := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dictionary: %w", err)
		}
		row++

		if len(fields) < 2 {
			cfg.logger.Warn("skipped malformed dictionary row", "row", row, "fields", fields)
			continue
		}
		pattern := strings.TrimSpace(fields[0])
		lbl := strings.TrimSpace(fields[1])
		if pattern == "" || lbl == "" {
			cfg.logger.Warn("skipped malformed dictionary row", "row", row, "fields", fields)
			continue
		}

		mode := ExactMatch
		if len(fields) > 2 {
			mode = ParseMode(strings.ToLower(strings.TrimSpace(fields[2])))
		}
		group := ""
		if len(fields) > 3 {
			group = strings.TrimSpace(fields[3])
		}

		k := key{pattern: pattern, mode: mode}
		if _, dup := seen[k]; dup {
			cfg.logger.Warn("skipped duplicate dictionary pattern", "row", row, "pattern", pattern, "mode", mode.String())
			continue
		}

		if cfg.maxLabelLength > 0 {
			if m, _ := labelToken.FindStringMatch(lbl); m != nil && m.Length > cfg.maxLabelLength {
				cfg.logger.Warn("skipped invalid label",
					"row", row, "label", lbl, "max_length", cfg.maxLabelLength)
				continue
			}
		}

		seen[k] = struct{}{}
		rules = append(rules, Rule{Pattern: pattern, Label: lbl, Mode: mode, Group: group})
	}

	cfg.logger.Info("parsed dictionary", "rules", len(rules))
	return rules, nil
}

// ParseFile parses the dictionary at path. A missing file reports
// ErrNotFound; any other read failure is returned as-is.
func ParseFile(path string, opts ...Option) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rules, nil
}
