package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger writes human-readable lines to output, or JSON lines when
// jsonOutput is set.
func newLogger(output io.Writer, level zerolog.Level, jsonOutput bool) zerolog.Logger {
	writer := output
	if !jsonOutput {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
