package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// implLogger leaves level filtering to the slog handler.
type implLogger struct {
	logger *slog.Logger
}

// New creates a text logger writing to stdout
func New(level string) Logger {
	return NewWithFormat(os.Stdout, level, "text")
}

// NewWithFormat creates a logger writing to w. format is "json" or "text".
func NewWithFormat(w io.Writer, level, format string) Logger {
	level = strings.ToLower(level)
	opts := &slog.HandlerOptions{Level: slogLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.DateTime,
		})
	}

	return &implLogger{logger: slog.New(handler)}
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.DebugContext(ctx, format(msg, args))
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.InfoContext(ctx, format(msg, args))
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WarnContext(ctx, format(msg, args))
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.ErrorContext(ctx, format(msg, args))
}

func (l *implLogger) With(key string, value any) Logger {
	return &implLogger{logger: l.logger.With(key, value)}
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
