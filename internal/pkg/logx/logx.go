/*
Package logx provides the structured logging layer for the chat server, built on zerolog.

It initializes the process-wide logger, selects the output format based on the running
environment (human-readable console in development, JSON in production), and exposes
leveled helpers that accept optional key-value field pairs.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog instance.
// Development mode uses a colored ConsoleWriter at Debug level; any other
// environment logs JSON at Info level. All entries carry a timestamp.
func Init(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// With returns a child logger tagged with a component name, used by the
// registry, router, server and other long-lived pieces for contextual logging.
func With(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// pairs validates that fields holds an even number of elements (key-value
// pairs). An odd count would make zerolog drop the whole entry, so the fields
// are discarded with a warning instead.
func pairs(fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Msg("logx call received an odd number of fields; fields ignored")
		return nil
	}
	return fields
}

// Info records a message at the Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(pairs(fields)).Msg(msg)
}

// Warn records a message at the Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(pairs(fields)).Msg(msg)
}

// Error records an error and a message at the Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(pairs(fields)).Msg(msg)
}

// Fatal records an error at the Fatal level and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(pairs(fields)).Msg(msg)
}
