package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every log line
const ServiceName = "social-blog-api"

// New creates a new zerolog logger with structured output
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), pretty())
}

// NewWithWriter builds the logger on an arbitrary writer
func NewWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := ParseLevel(level)

	// Use pretty console output in development
	if console {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", ServiceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// ParseLevel maps LOG_LEVEL values, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func pretty() bool {
	return os.Getenv("ENV") == "development" || os.Getenv("LOG_FORMAT") == "pretty"
}
