package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// logger carries diagnostics. It discards everything until initLogging runs,
// which keeps tests quiet.
var logger = zerolog.Nop()

// newLogger builds a human-readable logger writing to w. An empty or unknown
// level falls back to warn; verbose forces debug.
func newLogger(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
