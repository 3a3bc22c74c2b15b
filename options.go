package label

import (
	"log/slog"
	"time"
)

// Option configures a Labeler.
type Option func(*config)

type config struct {
	logger              *slog.Logger
	maxAnnotationTokens int
	matchTimeout        time.Duration
}

func defaultConfig() config {
	return config{
		logger:              slog.Default(),
		maxAnnotationTokens: 10,
		matchTimeout:        2 * time.Second,
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

// WithMaxAnnotationTokens sets the token count above which an annotation is
// flagged as suspicious (default: 10). Zero disables the check. The check
// never discards an annotation.
func WithMaxAnnotationTokens(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxAnnotationTokens = n
		}
	}
}

// WithMatchTimeout bounds the time spent matching one rule against one
// example (default: 2s). Zero disables the bound. On timeout the rule's
// remaining candidates are abandoned; other rules still run.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.matchTimeout = d
		}
	}
}
