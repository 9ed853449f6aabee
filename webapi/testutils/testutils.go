// Package testutils builds Fiber apps backed by a mocked rate provider.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fxconvert/infra/metrics"
	"github.com/amirasaad/fxconvert/internal/fixtures/mocks"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// LastUpdated is the timestamp carried by USDRates.
var LastUpdated = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// USDRates returns a small USD-based rate table.
func USDRates() *core.RateTable {
	return &core.RateTable{
		Base:        money.USD,
		Provider:    "mock",
		LastUpdated: LastUpdated,
		Rates: map[money.Code]float64{
			money.USD: 1,
			money.EUR: 0.92,
			money.GBP: 0.79,
			money.JPY: 151.37,
		},
	}
}

// TestConfig returns a configuration with limits high enough to stay out of
// the way and metrics enabled.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Metrics:   &config.Metrics{Enabled: true, Namespace: "fxconvert_test", Path: "/metrics"},
	}
}

// NewTestApp wires a Fiber app around a mock provider. The Name expectation
// is optional.
func NewTestApp(t *testing.T, cfg *config.App) (*fiber.App, *mocks.MockExchangeRate) {
	t.Helper()
	if cfg == nil {
		cfg = TestConfig()
	}
	rates := mocks.NewMockExchangeRate(t)
	rates.EXPECT().Name().Return("mock").Maybe()

	deps := &app.Deps{
		ExchangeRateProvider: rates,
		Logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		m := metrics.NewMetrics(cfg.Metrics.Namespace)
		deps.Metrics = m
		deps.MetricsHandler = m.Handler()
	}
	return webapi.SetupApp(app.New(deps, cfg)), rates
}

// MakeRequest sends a request to app. A non-empty body is sent as JSON.
func MakeRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeJSON decodes the response body into T and closes it.
func DecodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
