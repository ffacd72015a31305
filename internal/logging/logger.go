// Package logging builds the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level. Human mode uses the
// console writer; otherwise each event is one JSON line.
func New(w io.Writer, level string, human bool) (zerolog.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	if human {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}

	logger := zerolog.New(w).
		Level(parsedLevel).
		With().
		Timestamp().
		Str("service", "pubs").
		Logger()

	return logger, nil
}
