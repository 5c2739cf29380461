// Package logging builds the zerolog logger shared by both binaries.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to w. An unknown level falls back to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
