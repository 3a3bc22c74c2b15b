package dictionary

// Mode selects how a rule's pattern is matched against example text.
type Mode int

const (
	// ExactMatch anchors the pattern on both sides by Unicode word
	// boundaries. Case-sensitive.
	ExactMatch Mode = iota
	// IgnoreCase matches the pattern case-insensitively, unanchored.
	IgnoreCase
	// Regex uses the pattern verbatim as a regular expression,
	// case-sensitive, unanchored.
	Regex
)

// Dictionary column values for each mode.
const (
	modeExact      = "e"
	modeIgnoreCase = "i"
	modeRegex      = "r"
)

// ParseMode maps a dictionary mode column to a Mode. Unrecognized or missing
// values default to ExactMatch.
func ParseMode(s string) Mode {
	switch s {
	case modeIgnoreCase:
		return IgnoreCase
	case modeRegex:
		return Regex
	default:
		return ExactMatch
	}
}

func (m Mode) String() string {
	switch m {
	case IgnoreCase:
		return "ignore_case"
	case Regex:
		return "regex"
	default:
		return "exact"
	}
}
