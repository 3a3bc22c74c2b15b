package label

import (
	"log/slog"
	"strings"

	"github.com/jamesainslie/go-label/dictionary"
)

// Labeler applies an ordered list of dictionary rules to examples.
// It is safe for concurrent use across examples.
type Labeler struct {
	matchers  []*matcher
	logger    *slog.Logger
	maxTokens int
}

// New compiles rules into a Labeler. Rules that fail to compile (bad regex
// or invalid matching group) are skipped with a warning; the remaining rules
// keep their dictionary order.
func New(rules []dictionary.Rule, opts ...Option) *Labeler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Labeler{
		logger:    cfg.logger,
		maxTokens: cfg.maxAnnotationTokens,
	}
	for _, rule := range rules {
		m, err := compile(rule, cfg.matchTimeout)
		if err != nil {
			cfg.logger.Warn("skipped rule",
				"pattern", rule.Pattern, "label", rule.Label, "error", err)
			continue
		}
		l.matchers = append(l.matchers, m)
	}
	return l
}

// Annotate applies the labeler's rules to ex in order. Each candidate span is
// appended iff it overlaps no annotation already present, including any
// pre-existing annotations the example was loaded with. Earlier rules and
// earlier matches within a rule win conflicts; losing candidates are logged
// and dropped. The pass is deterministic.
func (l *Labeler) Annotate(ex *Example) {
	for _, m := range l.matchers {
		l.logger.Debug("matching pattern",
			"pattern", m.rule.Pattern, "mode", m.rule.Mode.String(),
			"label", m.rule.Label, "group", m.group)

		err := m.scan(ex.Text, l.logger, func(c candidate) {
			ann := Annotation{Start: c.start, End: c.end, Label: m.rule.Label}
			if !l.add(ex, ann) {
				l.logger.Info("match skipped by overlap",
					"text", c.text, "start", c.start, "label", m.rule.Label)
				return
			}
			l.logger.Info("matched",
				"text", c.text, "start", c.start, "label", m.rule.Label)
			l.validateTokens(c)
		})
		if err != nil {
			l.logger.Warn("abandoned rule", "error", err)
		}
	}
}

// add appends ann unless it overlaps an existing annotation.
func (l *Labeler) add(ex *Example, ann Annotation) bool {
	for _, existing := range ex.Annotations {
		if ann.overlaps(existing) {
			return false
		}
	}
	ex.Annotations = append(ex.Annotations, ann)
	return true
}

// validateTokens warns when the annotated text has an implausible token
// count. Advisory only: the annotation is kept either way.
func (l *Labeler) validateTokens(c candidate) {
	tokens := len(strings.Fields(c.text))
	if tokens == 0 || (l.maxTokens > 0 && tokens > l.maxTokens) {
		l.logger.Warn("annotation may be invalid",
			"text", c.text, "tokens", tokens, "max_tokens", l.maxTokens)
	}
}

// Rules returns the number of rules that compiled successfully.
func (l *Labeler) Rules() int {
	return len(l.matchers)
}
