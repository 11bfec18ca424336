package binding

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/benz9527/xnum/lib/infra"
	"github.com/benz9527/xnum/observability"
	"github.com/benz9527/xnum/xlog"
)

// Module is the function table a host embeds. It marshals host
// values into native numbers, dispatches to lib/num and hands the
// native result back.
//
// A Module is immutable after construction and safe for concurrent
// Call. The handles it returns (*num.Infinite, *num.Complex) are not:
// invert and conjugate mutate them.
type Module struct {
	entries  map[string]*entry
	consts   map[string]any
	logger   xlog.XLogger
	meter    metric.MeterProvider
	stats    *callStats
	shutdown observability.ShutdownFunc
}

type ModuleOption func(*Module) error

// NewModule logs nothing and reports to the global meter provider
// unless told otherwise.
func NewModule(opts ...ModuleOption) (*Module, error) {
	m := &Module{
		entries: make(map[string]*entry, 16),
		consts:  builtinConstants(),
	}
	for _, e := range builtinEntries() {
		m.entries[e.name] = e
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(m); err != nil {
			return nil, err
		}
	}
	if m.logger == nil {
		m.logger = xlog.NewNopXLogger()
	}
	if m.meter == nil {
		m.meter = otel.GetMeterProvider()
	}
	m.logger = m.logger.Named("binding")
	m.stats = newCallStats(m.meter)
	return m, nil
}

// NewModuleFromConfig wires the logger to stderr and builds
// the configured metrics exporter. Close releases it.
func NewModuleFromConfig(cfg *Config) (*Module, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, _ := xlog.ParseLogEncoder(cfg.LogEncoder)
	logger := xlog.NewXLogger(
		xlog.WithXLoggerLevel(xlog.LogLevel(cfg.LogLevel)),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerStdErrWriter(),
	)
	mp, shutdown, err := observability.NewMeterProvider(
		observability.MetricsExporterType(cfg.Metrics),
		cfg.MetricsInterval,
	)
	if err != nil {
		return nil, err
	}
	m, err := NewModule(WithModuleLogger(logger), WithModuleMeterProvider(mp))
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}
	m.shutdown = shutdown
	return m, nil
}

func WithModuleLogger(logger xlog.XLogger) ModuleOption {
	return func(m *Module) error {
		if logger == nil {
			return infra.NewErrorStack("binding module with nil logger")
		}
		m.logger = logger
		return nil
	}
}

func WithModuleMeterProvider(mp metric.MeterProvider) ModuleOption {
	return func(m *Module) error {
		if mp == nil {
			return infra.NewErrorStack("binding module with nil meter provider")
		}
		m.meter = mp
		return nil
	}
}

// Call runs the named function. Errors are returned as is, after
// being logged and counted, and match ErrUnknownFunction, ErrArgCount,
// ErrArgType or num.ErrDomain through errors.Is.
func (m *Module) Call(ctx context.Context, name string, args ...any) (any, error) {
	start := time.Now()
	e, ok := m.entries[name]
	if !ok {
		err := infra.WrapErrorStackWithMessage(ErrUnknownFunction, name)
		m.stats.record(ctx, unknownFuncAttr, err, time.Since(start))
		m.logger.WarnContext(ctx, "binding call failed", zap.String("func", name), zap.Error(err))
		return nil, err
	}

	var (
		res any
		err error
	)
	if len(args) != e.arity {
		err = argCountError(name, e.arity, len(args))
	} else {
		res, err = e.fn(args)
	}
	m.stats.record(ctx, name, err, time.Since(start))
	if err != nil {
		m.logger.WarnContext(ctx, "binding call failed",
			zap.String("func", name),
			zap.String("outcome", outcomeOf(err)),
			zap.Error(err),
		)
		return nil, err
	}
	m.logger.DebugContext(ctx, "binding call", zap.String("func", name))
	return res, nil
}

// Functions lists the function names in order.
func (m *Module) Functions() []string {
	names := lo.Keys(m.entries)
	sort.Strings(names)
	return names
}

// Doc returns the usage text of a function, empty if unknown.
func (m *Module) Doc(name string) string {
	if e, ok := m.entries[name]; ok {
		return e.doc
	}
	return ""
}

// Constant returns the module constants "e", "i" and "version".
func (m *Module) Constant(name string) (any, bool) {
	v, ok := m.consts[name]
	return v, ok
}

func (m *Module) Constants() []string {
	names := lo.Keys(m.consts)
	sort.Strings(names)
	return names
}

// Close flushes the exporter created by NewModuleFromConfig.
func (m *Module) Close(ctx context.Context) error {
	_ = m.logger.Sync()
	if m.shutdown == nil {
		return nil
	}
	return m.shutdown(ctx)
}
