// Package logging configures the process-wide slog logger. Diagnostics go
// to stderr so command output on stdout stays parseable.
package logging

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger. Verbose lowers the level to debug.
func Setup(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		}),
	))

	// Redirect the standard log package too, in case a dependency uses it.
	log.SetOutput(&slogWriter{})
}

type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (int, error) {
	slog.Debug(string(p))
	return len(p), nil
}
