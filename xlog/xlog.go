package xlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xnum/lib/infra"
)

// xLogger is wrapper logger of Uber zap logger.
type xLogger struct {
	logger              *zap.Logger
	ctxFields           map[string]string
	dynamicLevelEnabler zap.AtomicLevel
}

func (l *xLogger) zap() *zap.Logger {
	return l.logger
}

// IncreaseLogLevel we can increase or decrease the log level concurrently.
func (l *xLogger) IncreaseLogLevel(level zapcore.Level) {
	l.dynamicLevelEnabler.SetLevel(level)
}

func (l *xLogger) Sync() error {
	return l.logger.Sync()
}

func (l *xLogger) Level() string {
	return l.dynamicLevelEnabler.Level().String()
}

// Named children share the level enabler with their parent.
func (l *xLogger) Named(name string) XLogger {
	return &xLogger{
		logger:              l.logger.Named(name),
		ctxFields:           l.ctxFields,
		dynamicLevelEnabler: l.dynamicLevelEnabler,
	}
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	newFields := errorStackFields(err)
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	newFields := extractFieldsFromContext(ctx, l.ctxFields)
	newFields = append(newFields, fields...)
	l.logger.Debug(msg, newFields...)
}

func (l *xLogger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	newFields := extractFieldsFromContext(ctx, l.ctxFields)
	newFields = append(newFields, fields...)
	l.logger.Info(msg, newFields...)
}

func (l *xLogger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	newFields := extractFieldsFromContext(ctx, l.ctxFields)
	newFields = append(newFields, fields...)
	l.logger.Warn(msg, newFields...)
}

func (l *xLogger) ErrorContext(ctx context.Context, err error, msg string, fields ...zap.Field) {
	newFields := extractFieldsFromContext(ctx, l.ctxFields)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) ErrorStackContext(ctx context.Context, err error, msg string, fields ...zap.Field) {
	newFields := extractFieldsFromContext(ctx, l.ctxFields)
	newFields = append(newFields, errorStackFields(err)...)
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Log(lvl, fmt.Sprintf(format, args...))
}

// errorStackFields falls back to a plain error field
// when err carries no stack.
func errorStackFields(err error) []zap.Field {
	if err == nil {
		return []zap.Field{}
	}
	var es infra.ErrorStack
	if errors.As(err, &es) && es != nil {
		return []zap.Field{zap.Inline(es)}
	}
	return []zap.Field{zap.String("error", err.Error())}
}

type loggerCfg struct {
	ctxFields   map[string]string
	encoderType *LogEncoderType
	lvlEncoder  zapcore.LevelEncoder
	tsEncoder   zapcore.TimeEncoder
	level       *zapcore.Level
	writers     []zapcore.WriteSyncer
}

func (cfg *loggerCfg) apply(l *xLogger) []zapcore.Core {
	encoder := JSON
	if cfg.encoderType != nil {
		encoder = *cfg.encoderType
	}

	if cfg.level != nil {
		l.dynamicLevelEnabler = zap.NewAtomicLevelAt(*cfg.level)
	} else {
		l.dynamicLevelEnabler = zap.NewAtomicLevelAt(getLogLevelOrDefault(os.Getenv(EnvLogLevel)))
	}

	l.ctxFields = cfg.ctxFields

	if cfg.lvlEncoder == nil {
		cfg.lvlEncoder = zapcore.CapitalLevelEncoder
	}

	if cfg.tsEncoder == nil {
		cfg.tsEncoder = zapcore.ISO8601TimeEncoder
	}

	if len(cfg.writers) == 0 {
		cfg.writers = []zapcore.WriteSyncer{getOutWriterByType(StdOut)}
	}

	cores := make([]zapcore.Core, 0, len(cfg.writers))
	for _, ws := range cfg.writers {
		cores = append(cores, newConsoleCore(
			l.dynamicLevelEnabler,
			encoder,
			ws,
			cfg.lvlEncoder,
			cfg.tsEncoder,
		))
	}
	return cores
}

type XLoggerOption func(*loggerCfg) error

// NewXLogger panics on an invalid option.
func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			panic(err)
		}
	}
	xl := &xLogger{}
	cores := cfg.apply(xl)

	// Disable zap logger error stack.
	xl.logger = zap.New(
		XLogTeeCore(cores...),
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	)
	return xl
}

// NewNopXLogger drops every entry.
func NewNopXLogger() XLogger {
	return &xLogger{
		logger:              zap.NewNop(),
		dynamicLevelEnabler: zap.NewAtomicLevelAt(zapcore.FatalLevel),
	}
}

func WithXLoggerStdOutWriter() XLoggerOption {
	return WithXLoggerWriter(getOutWriterByType(StdOut))
}

func WithXLoggerStdErrWriter() XLoggerOption {
	return WithXLoggerWriter(getOutWriterByType(StdErr))
}

// WithXLoggerWriter adds one more output, each output gets its own core.
func WithXLoggerWriter(ws zapcore.WriteSyncer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if ws == nil {
			return infra.NewErrorStack("[XLogger] nil write syncer")
		}
		cfg.writers = append(cfg.writers, ws)
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("unknown xlogger encoder")
		}
		cfg.encoderType = &logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := lvl.zapLevel()
		cfg.level = &_lvl
		return nil
	}
}

func WithXLoggerLevelEncoder(lvlEnc zapcore.LevelEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if lvlEnc == nil {
			lvlEnc = zapcore.CapitalColorLevelEncoder
		}
		cfg.lvlEncoder = lvlEnc
		return nil
	}
}

func WithXLoggerTimeEncoder(tsEnc zapcore.TimeEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if tsEnc == nil {
			tsEnc = zapcore.ISO8601TimeEncoder
		}
		cfg.tsEncoder = tsEnc
		return nil
	}
}

// WithXLoggerContextFieldExtract logs ctx.Value(field) under mapTo[0],
// or under field itself. A "_" mapping omits the field.
func WithXLoggerContextFieldExtract(field string, mapTo ...string) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if len(field) == 0 {
			return nil
		}
		if cfg.ctxFields == nil {
			cfg.ctxFields = make(map[string]string, 8)
		}
		if len(mapTo) == 0 || mapTo[0] == ContextKeyMapToItself {
			mapTo = []string{field}
		}
		cfg.ctxFields[field] = mapTo[0]
		return nil
	}
}

func getLogLevelOrDefault(level string) zapcore.Level {
	if len(strings.TrimSpace(level)) == 0 {
		return zapcore.DebugLevel
	}

	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LogLevelInfo.String():
		return zapcore.InfoLevel
	case LogLevelWarn.String():
		return zapcore.WarnLevel
	case LogLevelError.String():
		return zapcore.ErrorLevel
	case LogLevelDebug.String():
		fallthrough
	default:
	}
	return zapcore.DebugLevel
}

func extractFieldsFromContext(
	ctx context.Context,
	targets map[string]string,
) []zap.Field {
	if ctx == nil || len(targets) == 0 {
		return []zap.Field{}
	}

	keys := make([]string, 0, len(targets))
	for key := range targets {
		keys = append(keys, key)
	}
	sort.StringSlice(keys).Sort()
	newFields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		v := ctx.Value(key)
		mapTo := targets[key]
		if v == nil && mapTo != ContextKeyMapToOmitempty {
			newFields = append(newFields, zap.String(mapTo, "nil"))
		} else if v != nil && mapTo != ContextKeyMapToOmitempty {
			newFields = append(newFields, zap.Any(mapTo, v))
		}
	}
	return newFields
}
