// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing structured lines to stderr, tagged with the
// component name.
func New(component string) zerolog.Logger {
	return NewWriter(os.Stderr, component)
}

// NewWriter returns a logger writing to w; tests pass io.Discard or a buffer.
func NewWriter(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().
		Str("component", component).
		Timestamp().
		Logger()
}
