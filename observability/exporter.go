package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/benz9527/xnum/lib/infra"
)

type MetricsExporterType string

const (
	NoneMetricsExporter       MetricsExporterType = "none"
	ConsoleMetricsExporter    MetricsExporterType = "stdout"
	PrometheusMetricsExporter MetricsExporterType = "prometheus"
)

// ShutdownFunc flushes the pending metrics and releases the provider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// NewMeterProvider builds the provider matching typ, an empty typ
// is the same as none. The provider is not installed globally.
func NewMeterProvider(typ MetricsExporterType, interval time.Duration) (metric.MeterProvider, ShutdownFunc, error) {
	switch MetricsExporterType(strings.ToLower(strings.TrimSpace(string(typ)))) {
	case NoneMetricsExporter, "":
		return noop.NewMeterProvider(), noopShutdown, nil
	case ConsoleMetricsExporter:
		mp, err := NewConsoleMetricsExporter(interval, interval)
		if err != nil {
			return nil, nil, err
		}
		return mp, mp.Shutdown, nil
	case PrometheusMetricsExporter:
		mp, err := NewPrometheusMetricsExporter()
		if err != nil {
			return nil, nil, err
		}
		return mp, mp.Shutdown, nil
	}
	return nil, nil, infra.NewErrorStack("unknown metrics exporter " + string(typ))
}

// Serves for test/dev environment.
func NewConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (*sdkmetric.MeterProvider, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "stdout metrics exporter")
	}
	readerOpts := make([]sdkmetric.PeriodicReaderOption, 0, 2)
	if interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
	}
	if timeout > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithTimeout(timeout))
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(
		sdkmetric.NewPeriodicReader(exporter, readerOpts...),
	)), nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func NewPrometheusMetricsExporter(opts ...prometheus.Option) (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New(opts...)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "prometheus metrics exporter")
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}
