package bpe

import (
	"log/slog"

	"golang.org/x/text/unicode/norm"
)

// Option configures an Encoder.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	normalize bool
	form      norm.Form
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
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

// WithNormalization applies a Unicode normalization form to input text
// before it is segmented (default: none).
func WithNormalization(f norm.Form) Option {
	return func(c *config) {
		c.normalize = true
		c.form = f
	}
}
