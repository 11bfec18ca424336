package binding

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/benz9527/xnum/lib/infra"
	"github.com/benz9527/xnum/observability"
	"github.com/benz9527/xnum/xlog"
)

// EnvPrefix of the binding environment variables, e.g. XNUM_LOG_LEVEL.
const EnvPrefix = "XNUM"

type Config struct {
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"INFO"`
	LogEncoder      string        `envconfig:"LOG_ENCODER" default:"json"`
	Metrics         string        `envconfig:"METRICS" default:"none"`
	MetricsInterval time.Duration `envconfig:"METRICS_INTERVAL" default:"30s"`
}

var (
	logLevels = []string{
		xlog.LogLevelDebug.String(),
		xlog.LogLevelInfo.String(),
		xlog.LogLevelWarn.String(),
		xlog.LogLevelError.String(),
	}
	metricsExporters = []observability.MetricsExporterType{
		observability.NoneMetricsExporter,
		observability.ConsoleMetricsExporter,
		observability.PrometheusMetricsExporter,
	}
)

func DefaultConfig() *Config {
	return &Config{
		LogLevel:        xlog.LogLevelInfo.String(),
		LogEncoder:      "json",
		Metrics:         string(observability.NoneMetricsExporter),
		MetricsInterval: 30 * time.Second,
	}
}

// LoadConfig reads the XNUM_* environment and validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "load binding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (cfg *Config) Validate() error {
	var merr error
	if !lo.Contains(logLevels, strings.ToUpper(strings.TrimSpace(cfg.LogLevel))) {
		merr = multierr.Append(merr, infra.NewErrorStack("unknown log level "+cfg.LogLevel))
	}
	if _, ok := xlog.ParseLogEncoder(cfg.LogEncoder); !ok {
		merr = multierr.Append(merr, infra.NewErrorStack("unknown log encoder "+cfg.LogEncoder))
	}
	exporter := observability.MetricsExporterType(strings.ToLower(strings.TrimSpace(cfg.Metrics)))
	if !lo.Contains(metricsExporters, exporter) {
		merr = multierr.Append(merr, infra.NewErrorStack("unknown metrics exporter "+cfg.Metrics))
	}
	if exporter == observability.ConsoleMetricsExporter && cfg.MetricsInterval <= 0 {
		merr = multierr.Append(merr, infra.NewErrorStack("metrics interval must be positive"))
	}
	return merr
}
