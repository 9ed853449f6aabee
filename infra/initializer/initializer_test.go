package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	cfg := &config.App{
		Log:     &config.Log{Format: "text"},
		Metrics: &config.Metrics{Enabled: true, Namespace: "test"},
	}
	api := cfg.ExchangeRateApi()
	api.ApiKey = "secret"
	api.ApiUrl = "http://localhost"
	api.HTTPTimeout = time.Second
	return cfg
}

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestInitializeDependencies(t *testing.T) {
	restoreDefaultLogger(t)

	deps, err := InitializeDependencies(testConfig(), io.Discard)
	require.NoError(t, err)

	assert.NotNil(t, deps.Logger)
	assert.Equal(t, "exchangerate-api", deps.ExchangeRateProvider.Name())
	assert.Equal(t, 12, deps.CurrencyRegistry.Count())
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.MetricsHandler)
}

func TestInitializeDependencies_MissingCredential(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig()
	cfg.ExchangeRateApi().ApiKey = ""

	_, err := InitializeDependencies(cfg, io.Discard)
	require.ErrorIs(t, err, core.ErrMissingCredential)
}

func TestInitializeDependencies_MetricsDisabled(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	deps, err := InitializeDependencies(cfg, io.Discard)
	require.NoError(t, err)
	assert.Nil(t, deps.Metrics)
	assert.Nil(t, deps.MetricsHandler)
}

func TestInitializeDependencies_CurrencyFile(t *testing.T) {
	restoreDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "currencies.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"code,name,symbol,decimals,country,region,active\nUSD,US Dollar,$,2,,,true\nEUR,Euro,€,2,,,true\n"), 0o600))
	cfg := testConfig()
	cfg.Currency = &config.Currency{MetaFile: path}

	deps, err := InitializeDependencies(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, deps.CurrencyRegistry.Count())

	cfg.Currency.MetaFile = filepath.Join(t.TempDir(), "missing.csv")
	_, err = InitializeDependencies(cfg, io.Discard)
	require.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	restoreDefaultLogger(t)
	var buf bytes.Buffer

	logger := SetupLogger(&config.Log{Format: "json", Prefix: "[test]"}, &buf)
	logger.Info("hello", "from", "USD")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"from":"USD"`)
	assert.Same(t, logger, slog.Default())

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	assert.NotNil(t, SetupLogger(nil, io.Discard))
}
