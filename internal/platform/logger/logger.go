package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text handler on stdout;
// swap the handler here if JSON output is ever needed.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
