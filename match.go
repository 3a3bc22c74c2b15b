package label

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/jamesainslie/go-label/dictionary"
)

// candidate is one validated span produced by scanning a rule over text.
// Offsets are code point indices.
type candidate struct {
	start int
	end   int
	text  string
}

// matcher is a dictionary rule compiled for scanning.
type matcher struct {
	rule  dictionary.Rule
	re    *regexp2.Regexp
	group int
}

// compile maps a rule to its matcher. Exact-match rules are anchored on both
// sides by word boundaries; ignore-case rules fold case without anchoring;
// regex rules use the pattern verbatim. Word boundaries and character classes
// follow Unicode semantics, and match offsets are code point indices.
func compile(rule dictionary.Rule, timeout time.Duration) (*matcher, error) {
	group := 0
	if rule.Group != "" {
		n, err := strconv.Atoi(rule.Group)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("matching group %q: must be a non-negative integer", rule.Group)
		}
		group = n
	}

	var pattern string
	var opts regexp2.RegexOptions
	switch rule.Mode {
	case dictionary.ExactMatch:
		pattern = `\b` + rule.Pattern + `\b`
	case dictionary.IgnoreCase:
		pattern = rule.Pattern
		opts = regexp2.IgnoreCase
	case dictionary.Regex:
		pattern = rule.Pattern
	default:
		return nil, fmt.Errorf("unknown matching mode %d", rule.Mode)
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", rule.Pattern, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return &matcher{rule: rule, re: re, group: group}, nil
}

// scan visits candidate spans left to right. Candidates whose selected group
// is empty or missing are discarded with a warning. A match timeout abandons
// the rule's remaining candidates and is reported as ErrMatchTimeout.
func (m *matcher) scan(text string, logger *slog.Logger, visit func(candidate)) error {
	match, err := m.re.FindStringMatch(text)
	for ; err == nil && match != nil; match, err = m.re.FindNextMatch(match) {
		g := match.GroupByNumber(m.group)
		if g == nil || len(g.Captures) == 0 {
			logger.Warn("skipped missing match group",
				"pattern", m.rule.Pattern, "group", m.group, "offset", match.Index)
			continue
		}
		if g.Length == 0 {
			logger.Warn("skipped empty match",
				"pattern", m.rule.Pattern, "offset", match.Index)
			continue
		}
		visit(candidate{start: g.Index, end: g.Index + g.Length, text: g.String()})
	}
	if err != nil {
		return fmt.Errorf("%w: pattern %q: %v", ErrMatchTimeout, m.rule.Pattern, err)
	}
	return nil
}
