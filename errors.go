package label

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrMatchTimeout indicates a pattern exceeded the match timeout and its
	// remaining candidates were abandoned.
	ErrMatchTimeout = errors.New("label: pattern match timed out")
)
