package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config represents logger configuration
type Config struct {
	// Level is the minimum level that gets written
	Level LogLevel
	// Pretty enables the human-readable console format instead of JSON
	Pretty bool
	// Output is the output writer (defaults to os.Stdout)
	Output io.Writer
}

var defaultLogger zerolog.Logger

func init() {
	// Sensible default until Configure runs, so early startup errors are
	// still visible.
	defaultLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Configure sets up the process-wide logger from configuration.
func Configure(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	switch config.Level {
	case DebugLevel:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case WarnLevel:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case ErrorLevel:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	writer := config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	return defaultLogger
}

// Get returns the configured process-wide logger.
func Get() zerolog.Logger {
	return defaultLogger
}

// Debug starts a debug-level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}
