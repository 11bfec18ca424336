package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xnum/lib/infra"
)

type testMemOutWriter struct {
	lock sync.Mutex
	data []byte
}

func (w *testMemOutWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *testMemOutWriter) Reset() {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.data = make([]byte, 0, 4096)
}

func (w *testMemOutWriter) lines(t *testing.T) []map[string]any {
	w.lock.Lock()
	defer w.lock.Unlock()
	res := make([]map[string]any, 0, 8)
	for _, line := range bytes.Split(bytes.TrimSpace(w.data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &m), string(line))
		res = append(res, m)
	}
	return res
}

func newTestLogger(lvl LogLevel, opts ...XLoggerOption) (XLogger, *testMemOutWriter) {
	w := &testMemOutWriter{data: make([]byte, 0, 4096)}
	opts = append([]XLoggerOption{
		WithXLoggerLevel(lvl),
		WithXLoggerEncoder(JSON),
		WithXLoggerWriter(zapcore.AddSync(w)),
	}, opts...)
	return NewXLogger(opts...), w
}

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
	require.Equal(t, zapcore.DebugLevel, LogLevel("verbose").zapLevel())
}

func TestGetLogLevelOrDefault(t *testing.T) {
	testcases := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"  ", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" Warn ", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"fatal", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		require.Equal(t, tc.want, getLogLevelOrDefault(tc.in), tc.in)
	}
}

func TestParseLogEncoder(t *testing.T) {
	testcases := []struct {
		in   string
		want LogEncoderType
		ok   bool
	}{
		{"", JSON, true},
		{"JSON", JSON, true},
		{"text", PlainText, true},
		{"PlainText", PlainText, true},
		{"yaml", _encMax, false},
	}
	for _, tc := range testcases {
		enc, ok := ParseLogEncoder(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.Equal(t, tc.want, enc, tc.in)
	}
}

func TestXLoggerEnvLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	logger := NewXLogger(WithXLoggerWriter(zapcore.AddSync(&testMemOutWriter{})))
	require.Equal(t, zapcore.WarnLevel.String(), logger.Level())
}

func TestXLoggerInvalidOptions(t *testing.T) {
	require.Panics(t, func() {
		_ = NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		_ = NewXLogger(WithXLoggerWriter(nil))
	})
	require.NotPanics(t, func() {
		_ = NewXLogger(nil, WithXLoggerStdErrWriter(), WithXLoggerLevelEncoder(nil), WithXLoggerTimeEncoder(nil))
	})
}

func TestXLoggerJSONOutput(t *testing.T) {
	logger, w := newTestLogger(LogLevelDebug)
	logger.Debug("debug message", zap.Int("n", 1))
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error(errors.New("boom"), "error message")
	logger.Error(nil, "error message without error")
	logger.Logf(zapcore.InfoLevel, "formatted %d+%di", 3, 4)

	lines := w.lines(t)
	require.Len(t, lines, 6)
	require.Equal(t, "DEBUG", lines[0]["lvl"])
	require.Equal(t, "debug message", lines[0]["msg"])
	require.Equal(t, float64(1), lines[0]["n"])
	require.Contains(t, lines[0]["callAt"], "xlog_test.go")
	require.Equal(t, "INFO", lines[1]["lvl"])
	require.Equal(t, "WARN", lines[2]["lvl"])
	require.Equal(t, "ERROR", lines[3]["lvl"])
	require.Equal(t, "boom", lines[3]["error"])
	require.NotContains(t, lines[4], "error")
	require.Equal(t, "formatted 3+4i", lines[5]["msg"])
}

func TestXLoggerErrorStack(t *testing.T) {
	logger, w := newTestLogger(LogLevelDebug)
	err := infra.WrapErrorStackWithMessage(errors.New("inner"), "outer")
	logger.ErrorStack(err, "with stack")
	logger.ErrorStack(errors.New("plain"), "without stack")
	logger.ErrorStack(nil, "nil error")

	lines := w.lines(t)
	require.Len(t, lines, 3)
	require.Equal(t, "outer: inner", lines[0]["error"])
	stack, ok := lines[0]["errorStack"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, stack)
	require.Contains(t, stack[0], "TestXLoggerErrorStack")
	require.Equal(t, "plain", lines[1]["error"])
	require.NotContains(t, lines[1], "errorStack")
	require.NotContains(t, lines[2], "error")
}

func TestXLoggerContextFields(t *testing.T) {
	logger, w := newTestLogger(LogLevelDebug,
		WithXLoggerContextFieldExtract("traceId", "TraceID"),
		WithXLoggerContextFieldExtract("service"),
		WithXLoggerContextFieldExtract("secret", ContextKeyMapToOmitempty),
		WithXLoggerContextFieldExtract(""),
	)
	ctx := context.WithValue(context.TODO(), "traceId", "1234567890")
	ctx = context.WithValue(ctx, "secret", "hidden")

	logger.DebugContext(ctx, "debug")
	logger.InfoContext(ctx, "info")
	logger.WarnContext(ctx, "warn")
	logger.ErrorContext(ctx, errors.New("boom"), "error")
	logger.ErrorStackContext(ctx, infra.NewErrorStack("boom"), "error stack")
	logger.InfoContext(nil, "no context") //nolint:staticcheck

	lines := w.lines(t)
	require.Len(t, lines, 6)
	for _, line := range lines[:5] {
		require.Equal(t, "1234567890", line["TraceID"])
		require.Equal(t, "nil", line["service"])
		require.NotContains(t, line, "secret")
	}
	require.Equal(t, "boom", lines[3]["error"])
	require.Contains(t, lines[4], "errorStack")
	require.NotContains(t, lines[5], "TraceID")
}

func TestXLoggerDynamicLevel(t *testing.T) {
	logger, w := newTestLogger(LogLevelWarn)
	require.Equal(t, zapcore.WarnLevel.String(), logger.Level())
	logger.Logf(zapcore.DebugLevel, "unprintable debug")
	logger.Logf(zapcore.InfoLevel, "unprintable info")
	logger.Logf(zapcore.WarnLevel, "printable warn")
	require.Len(t, w.lines(t), 1)

	child := logger.Named("child")
	logger.IncreaseLogLevel(zapcore.DebugLevel)
	require.Equal(t, zapcore.DebugLevel.String(), child.Level())
	child.Debug("printable child debug")

	lines := w.lines(t)
	require.Len(t, lines, 2)
	require.Equal(t, "child", lines[1]["component"])
}

func TestXLoggerTeeWriters(t *testing.T) {
	w2 := &testMemOutWriter{}
	logger, w1 := newTestLogger(LogLevelInfo, WithXLoggerWriter(zapcore.AddSync(w2)))
	logger.Info("both")
	logger.Debug("none")
	require.Len(t, w1.lines(t), 1)
	require.Len(t, w2.lines(t), 1)
	require.NoError(t, logger.Sync())

	core, ok := logger.zap().Core().(xLogMultiCore)
	require.True(t, ok)
	require.Equal(t, zapcore.InfoLevel, core.Level())
}

type testErrOutWriter struct{}

func (testErrOutWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestXLogTeeCore(t *testing.T) {
	w1 := &testMemOutWriter{}
	core := XLogTeeCore(
		newConsoleCore(zapcore.InfoLevel, JSON, zapcore.AddSync(w1), zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder),
		newConsoleCore(zapcore.DebugLevel, PlainText, zapcore.AddSync(testErrOutWriter{}), zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder),
	)
	require.Equal(t, zapcore.DebugLevel, zapcore.LevelOf(core))
	require.True(t, core.Enabled(zapcore.DebugLevel))

	err := core.Write(zapcore.Entry{Level: zapcore.InfoLevel, Message: "tee"}, nil)
	require.EqualError(t, err, "disk full")
	lines := w1.lines(t)
	require.Len(t, lines, 1)
	require.Equal(t, "tee", lines[0]["msg"])
	require.NoError(t, core.Sync())

	ce := core.Check(zapcore.Entry{Level: zapcore.DebugLevel, Message: "debug"}, nil)
	require.NotNil(t, ce)
	ce.Write()
	require.Len(t, w1.lines(t), 1)
}

func TestXLoggerPlainText(t *testing.T) {
	w := &testMemOutWriter{}
	logger := NewXLogger(
		WithXLoggerLevel(LogLevelInfo),
		WithXLoggerEncoder(PlainText),
		WithXLoggerWriter(zapcore.AddSync(w)),
	)
	logger.Info("plain message", zap.String("k", "v"))
	require.Contains(t, string(w.data), "INFO")
	require.Contains(t, string(w.data), "plain message")
	require.Contains(t, string(w.data), `{"k": "v"}`)
}

func TestNopXLogger(t *testing.T) {
	logger := NewNopXLogger()
	logger.Info("dropped")
	logger.ErrorStack(infra.NewErrorStack("dropped"), "dropped")
	require.NoError(t, logger.Sync())
	require.Equal(t, zapcore.FatalLevel.String(), logger.Level())
	require.NotNil(t, logger.Named("child"))
}

func TestXLoggerDataRace(t *testing.T) {
	logger, _ := newTestLogger(LogLevelDebug)
	lvls := []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
	}
	n := int32(len(lvls))
	var wg sync.WaitGroup
	total := 10
	wg.Add(total)
	for i := 0; i < total; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rng := rand.Int31n(n)
				if i*total+j == 666 {
					logger.IncreaseLogLevel(lvls[rng])
				}
				logger.Logf(lvls[rng], "message i: %d; j: %d", i, j)
			}
		}(i)
	}
	wg.Wait()
	_ = logger.Sync()
}

func BenchmarkXLogger(b *testing.B) {
	logger := NewNopXLogger()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("message")
	}
	b.ReportAllocs()
}
