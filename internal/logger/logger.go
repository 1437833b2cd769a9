package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	LogLevel string

	// Logger is the structured logger used across the service.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	loggerImpl struct {
		charm *charmlog.Logger
	}

	ctxKey struct{}
)

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

// LoggerCtxKey is the context key a request-scoped logger is stored under.
var LoggerCtxKey = ctxKey{}

var defaultLogger Logger = NewLogger(nil)

func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch LogLevel(strings.ToLower(string(l))) {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// TestConfig discards everything.
func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		TimeFormat: "15:04:05",
	}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charm := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charm.SetFormatter(charmlog.JSONFormatter)
	} else {
		charm.SetFormatter(charmlog.TextFormatter)
	}
	return &loggerImpl{charm: charm}
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) { l.charm.Debug(msg, keyvals...) }
func (l *loggerImpl) Info(msg string, keyvals ...any)  { l.charm.Info(msg, keyvals...) }
func (l *loggerImpl) Warn(msg string, keyvals ...any)  { l.charm.Warn(msg, keyvals...) }
func (l *loggerImpl) Error(msg string, keyvals ...any) { l.charm.Error(msg, keyvals...) }

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charm: l.charm.With(keyvals...)}
}

// Init replaces the process-wide default logger.
func Init(cfg *Config) {
	defaultLogger = NewLogger(cfg)
}

func GetDefault() Logger {
	return defaultLogger
}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger
}

// SetupLogger initializes the default logger from flag or env values.
func SetupLogger(level string, json, source bool) {
	Init(&Config{
		Level:      LogLevel(level),
		Output:     os.Stderr,
		JSON:       json,
		AddSource:  source,
		TimeFormat: "15:04:05",
	})
}
