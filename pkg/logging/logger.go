// Package logging provides the structured logger shared by vista components.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category represents the subsystem generating the log
type Category string

const (
	CategoryWidget     Category = "widget"
	CategoryDispatch   Category = "dispatch"
	CategoryScreen     Category = "screen"
	CategoryTransition Category = "transition"
	CategoryEffect     Category = "effect"
	CategorySurface    Category = "surface"
	CategoryConfig     Category = "config"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configures a Logger.
type Options struct {
	Level     Level
	Format    Format
	Component string
}

// Logger is a structured logger for UI components
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level.slogLevel(),
	}

	var handler slog.Handler
	if opts.Format == FormatText {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	component := opts.Component
	if component == "" {
		component = "vista"
	}
	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "ui"),
	)
	return &Logger{Logger: logger}
}

// NewFile creates a logger appending to path, creating parent directories.
// The returned closer releases the file.
func NewFile(path string, opts Options) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, opts), f, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithCategory returns a logger tagged with the subsystem category.
func (l *Logger) WithCategory(category Category) *Logger {
	if l == nil {
		return Nop().WithCategory(category)
	}
	return &Logger{Logger: l.Logger.With(slog.String("category", string(category)))}
}

// ParseLevel converts a textual level. Unknown values report an error.
func ParseLevel(raw string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", raw)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
