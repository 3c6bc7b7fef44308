package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const defaultLogLevel = zerolog.WarnLevel

// newLogger builds the diagnostic logger. It writes to w (stderr in
// practice) so that stdout only ever carries command output.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl := defaultLogLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: noColor}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
