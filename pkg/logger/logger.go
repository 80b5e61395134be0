package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// log is the process-wide logger; zero value is a disabled logger until Init runs.
var log = zerolog.Nop()

type ctxKey struct{}

// Init initializes the global logger
func Init(env string, logLevel string) {
	var output io.Writer = os.Stdout

	// Pretty console output for development
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	InitWithWriter(output, logLevel)
}

// InitWithWriter initializes the global logger on an explicit writer.
func InitWithWriter(output io.Writer, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(logLevel))

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// parseLevel maps LOG_LEVEL onto zerolog. Unknown or empty values mean info.
func parseLevel(logLevel string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(logLevel))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request-scoped logger if one was stored, the global one otherwise.
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID adds a request ID to the logger
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

func ServiceStart(name, port string) {
	log.Info().Str("service", name).Str("port", port).Msg("Service started")
}

func ServiceStop(name string) {
	log.Info().Str("service", name).Msg("Service stopped")
}
