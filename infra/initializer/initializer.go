package initializer

import (
	"fmt"
	"io"

	"github.com/amirasaad/fxconvert/infra/metrics"
	"github.com/amirasaad/fxconvert/infra/provider/exchangerateapi"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/service"
)

var _ service.Metrics = (*metrics.Metrics)(nil)

// InitializeDependencies validates cfg and builds the application
// dependencies. Logs go to logOut (stdout when nil). A missing API key fails
// here, before any front-end starts.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := SetupLogger(cfg.Log, logOut)
	deps.Logger = logger

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	metaFile := ""
	if cfg.Currency != nil {
		metaFile = cfg.Currency.MetaFile
	}
	registry, err := currency.LoadRegistry(metaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency registry: %w", err)
	}
	deps.CurrencyRegistry = registry
	logger.Debug("Currency registry loaded", "count", registry.Count(), "file", metaFile)

	deps.ExchangeRateProvider = exchangerateapi.NewExchangeRateAPIProvider(
		cfg.ExchangeRateApi(),
		logger,
	)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		m := metrics.NewMetrics(cfg.Metrics.Namespace)
		deps.Metrics = m
		deps.MetricsHandler = m.Handler()
	}

	return deps, nil
}
