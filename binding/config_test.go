package binding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, "none", cfg.Metrics)
	require.Equal(t, 30*time.Second, cfg.MetricsInterval)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("XNUM_LOG_LEVEL", "debug")
	t.Setenv("XNUM_LOG_ENCODER", "text")
	t.Setenv("XNUM_METRICS", "stdout")
	t.Setenv("XNUM_METRICS_INTERVAL", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, &Config{
		LogLevel:        "debug",
		LogEncoder:      "text",
		Metrics:         "stdout",
		MetricsInterval: 5 * time.Second,
	}, cfg)
}

func TestLoadConfigInvalidEnv(t *testing.T) {
	t.Setenv("XNUM_METRICS_INTERVAL", "soon")
	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "load binding config")
}

func TestConfigValidate(t *testing.T) {
	testcases := []struct {
		name  string
		cfg   Config
		nerrs int
	}{
		{"valid", Config{"warn", "plaintext", "prometheus", 0}, 0},
		{"level", Config{"TRACE", "json", "none", 0}, 1},
		{"encoder", Config{"INFO", "yaml", "none", 0}, 1},
		{"exporter", Config{"INFO", "json", "otlp", 0}, 1},
		{"interval", Config{"INFO", "json", "stdout", 0}, 1},
		{"all", Config{"", "xml", "statsd", -time.Second}, 3},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			err := tc.cfg.Validate()
			require.Len(tt, multierr.Errors(err), tc.nerrs)
		})
	}
}

func TestNewModuleFromConfig(t *testing.T) {
	m, err := NewModuleFromConfig(nil)
	require.NoError(t, err)
	res, err := m.Call(context.Background(), "power", 3.0, 2)
	require.NoError(t, err)
	require.Equal(t, 9.0, res)
	require.NoError(t, m.Close(context.Background()))

	cfg := DefaultConfig()
	cfg.Metrics = "stdout"
	cfg.MetricsInterval = time.Hour
	m, err = NewModuleFromConfig(cfg)
	require.NoError(t, err)
	_, err = m.Call(context.Background(), "exp", 0.0)
	require.NoError(t, err)
	require.NoError(t, m.Close(context.Background()))

	_, err = NewModuleFromConfig(&Config{LogLevel: "INFO", LogEncoder: "json", Metrics: "otlp"})
	require.Error(t, err)
}
