package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		verbose   bool
		wantDebug bool
		wantWarn  bool
	}{
		{"default is warn", "", false, false, true},
		{"unknown falls back to warn", "chatty", false, false, true},
		{"explicit debug", "DEBUG", false, true, true},
		{"error hides warnings", "error", false, false, false},
		{"verbose wins", "error", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level, tt.verbose)

			l.Debug().Msg("debug-line")
			l.Warn().Msg("warn-line")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug-line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("warn-line")))
		})
	}
}
