// Package observability provides structured logging helpers.
package observability

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for interaction request ID.
	LogFieldRequestID = "request_id"
	// LogFieldOp is the field name for the operation being performed.
	LogFieldOp = "op"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
)

// SetupLogger installs the default slog handler. Dev mode gets human-readable
// text at debug level; prod mode gets JSON at info level. The TUI owns stdout,
// so logs go to the given file (or are discarded when w is nil).
func SetupLogger(mode string, w *os.File) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Interaction represents one user-triggered operation (transcribe, commit,
// search) with a generated request ID for log correlation.
type Interaction struct {
	RequestID string
	Op        string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewInteraction creates an interaction context with a fresh request ID.
func NewInteraction(logger *slog.Logger, op string) *Interaction {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interaction{
		RequestID: uuid.New().String(),
		Op:        op,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message with the interaction fields attached.
func (i *Interaction) Info(msg string, attrs ...slog.Attr) {
	i.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, i.withBase(attrs)...)
}

// Debug logs a debug message with the interaction fields attached.
func (i *Interaction) Debug(msg string, attrs ...slog.Attr) {
	i.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, i.withBase(attrs)...)
}

// Error logs an error message with the interaction fields attached.
func (i *Interaction) Error(msg string, err error, attrs ...slog.Attr) {
	all := append(attrs, slog.String("error", err.Error()))
	i.Logger.LogAttrs(context.Background(), slog.LevelError, msg, i.withBase(all)...)
}

// DurationMs returns the elapsed time in milliseconds.
func (i *Interaction) DurationMs() int64 {
	return time.Since(i.StartTime).Milliseconds()
}

func (i *Interaction) withBase(attrs []slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldRequestID, i.RequestID),
		slog.String(LogFieldOp, i.Op),
	}
	return append(base, attrs...)
}
