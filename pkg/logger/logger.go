package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type Opts struct {
	Env       string
	Level     string
	SentryDSN string
}

type Impl struct {
	slog *slog.Logger
}

// New builds the logger: zerolog for output (console writer in
// development, JSON otherwise), fanned out to Sentry for errors when a
// DSN is configured.
func New(opts Opts) *Impl {
	var zl zerolog.Logger
	if opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{
			Level:  parseLevel(opts.Level),
			Logger: &zl,
		}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		}); err != nil {
			zl.Warn().Err(err).Msg("Failed to initialize sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	return &Impl{slog: slog.New(slogmulti.Fanout(handlers...))}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *Impl) Debug(msg string, keyvals ...any) {
	l.slog.Debug(msg, keyvals...)
}

func (l *Impl) Info(msg string, keyvals ...any) {
	l.slog.Info(msg, keyvals...)
}

func (l *Impl) Warn(msg string, keyvals ...any) {
	l.slog.Warn(msg, keyvals...)
}

func (l *Impl) Error(msg string, keyvals ...any) {
	l.slog.Error(msg, keyvals...)
}

var _ Logger = (*Impl)(nil)

// Flush drains buffered Sentry events; called on shutdown.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
