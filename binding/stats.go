package binding

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xnum/lib/num"
)

const (
	BindingStatsName = "xnum/binding"

	OutcomeOK              = "ok"
	OutcomeDomainError     = "domain_error"
	OutcomeArgumentError   = "argument_error"
	OutcomeUnknownFunction = "unknown_function"
	OutcomeError           = "error"

	unknownFuncAttr = "<unknown>"
)

type callStats struct {
	calls     metric.Int64Counter
	durations metric.Float64Histogram
}

func newCallStats(mp metric.MeterProvider) *callStats {
	meter := mp.Meter(BindingStatsName, metric.WithInstrumentationVersion(Version))
	return &callStats{
		calls: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xnum.binding.calls",
			metric.WithDescription(`The binding calls by function and outcome.`),
		)),
		durations: lo.Must[metric.Float64Histogram](meter.Float64Histogram(
			"xnum.binding.duration",
			metric.WithDescription(`The binding call durations.`),
			metric.WithUnit("s"),
		)),
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, num.ErrDomain):
		return OutcomeDomainError
	case errors.Is(err, ErrArgCount), errors.Is(err, ErrArgType):
		return OutcomeArgumentError
	case errors.Is(err, ErrUnknownFunction):
		return OutcomeUnknownFunction
	}
	return OutcomeError
}

func (stats *callStats) record(ctx context.Context, fn string, err error, elapsed time.Duration) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("xnum.func", fn),
		attribute.String("xnum.outcome", outcomeOf(err)),
	)
	stats.calls.Add(ctx, 1, metric.WithAttributeSet(as))
	stats.durations.Record(ctx, elapsed.Seconds(), metric.WithAttributeSet(as))
}
