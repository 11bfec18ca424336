package xlog

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel is read when no level option is given.
const EnvLogLevel = "XNUM_LOG_LEVEL"

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

func (lvl LogLevel) zapLevel() zapcore.Level {
	return getLogLevelOrDefault(string(lvl))
}

func (lvl LogLevel) String() string {
	return string(lvl)
}

type LogEncoderType uint8

const (
	JSON LogEncoderType = iota
	PlainText
	_encMax
)

// ParseLogEncoder accepts "json", "text" and "plaintext", case-insensitive.
func ParseLogEncoder(enc string) (LogEncoderType, bool) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "json":
		return JSON, true
	case "text", "plaintext":
		return PlainText, true
	}
	return _encMax, false
}

type LogOutWriterType uint8

const (
	StdOut LogOutWriterType = iota
	StdErr
	_writerMax
)

const (
	ContextKeyMapToOmitempty = "_"
	ContextKeyMapToItself    = ""
	coreKeyIgnored           = ""
)

var encoderMap = map[LogEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
	JSON:      zapcore.NewJSONEncoder,
	PlainText: zapcore.NewConsoleEncoder,
}

func getEncoderByType(typ LogEncoderType) func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	enc, ok := encoderMap[typ]
	if !ok {
		return zapcore.NewJSONEncoder
	}
	return enc
}

func getOutWriterByType(typ LogOutWriterType) zapcore.WriteSyncer {
	if typ == StdErr {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.Lock(os.Stdout)
}

// XLogger mainly implemented by Uber zap logger.
//
// ErrorStack inlines the infra.ErrorStack frames as JSON
// fields instead of the zap default stacktrace, so log
// aggregators can parse them.
//
// The methods with context add the fields registered by
// WithXLoggerContextFieldExtract, like a trace ID.
type XLogger interface {
	zap() *zap.Logger

	IncreaseLogLevel(level zapcore.Level)
	Level() string
	Sync() error
	// Named returns a child logger tagged with the component name.
	Named(name string) XLogger

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)
	ErrorStack(err error, msg string, fields ...zap.Field)

	DebugContext(ctx context.Context, msg string, fields ...zap.Field)
	InfoContext(ctx context.Context, msg string, fields ...zap.Field)
	WarnContext(ctx context.Context, msg string, fields ...zap.Field)
	ErrorContext(ctx context.Context, err error, msg string, fields ...zap.Field)
	ErrorStackContext(ctx context.Context, err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)
}
