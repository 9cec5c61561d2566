// Package logger provides structured logging for cfb-tracker.
//
// The logger supports multiple log levels (DEBUG, INFO, WARN, ERROR) and is
// backed by logrus. Services log JSON lines; the CLI logs plain text to stderr.
// All entries can carry arbitrary structured fields.
//
// Example usage:
//
//	logger.Info("Fetched games", logger.Fields{
//	    "season": 2025,
//	    "count":  812,
//	})
//
//	logger.Error("Calendar write failed", logger.Fields{
//	    "path": path,
//	}, err)
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	base *logrus.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = NewText(LevelInfo, os.Stderr)
}

// New creates a logger that writes JSON lines at or above the given level.
func New(level Level, output io.Writer) *Logger {
	return newLogger(level, output, &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
}

// NewText creates a logger that writes logfmt lines without timestamps,
// suited to interactive terminals.
func NewText(level Level, output io.Writer) *Logger {
	return newLogger(level, output, &logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
}

func newLogger(level Level, output io.Writer, formatter logrus.Formatter) *Logger {
	base := logrus.New()
	base.SetOutput(output)
	base.SetFormatter(formatter)
	base.SetLevel(level.logrusLevel())
	return &Logger{base: base}
}

// ParseLevel converts a case-insensitive level name into a Level.
// "warning" is accepted as an alias for WARN.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level: %q", s)
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// SetDefault sets the package-level logger used by Debug, Info, Warn and Error.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	entry := logrus.NewEntry(l.base)
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Log(level.logrusLevel(), message)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warnings mark degraded-but-continuing paths.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
