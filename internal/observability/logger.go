package observability

import (
	"log/slog"
	"os"
)

// Logger is the narrow surface services depend on; tests substitute a no-op.
type Logger struct {
	slog *slog.Logger
}

func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return &Logger{slog: logger}
}

func (l *Logger) Info(msg string) {
	l.slog.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.slog.Error(msg)
}

func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
