package cliconfig

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := Logger(tt.level).GetLevel(); got != tt.want {
				t.Errorf("Logger(%q) level = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
