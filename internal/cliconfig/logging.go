package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/clue/pkg/log"
)

// Logger returns a console logger on stderr at the given level. Unknown
// levels fall back to info.
func Logger(level string) zerolog.Logger {
	return log.NewZerologAdapter(os.Stderr, parseLevel(level)).Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
