package app

import (
	"log/slog"
	"net/http"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/service"
	"github.com/amirasaad/fxconvert/pkg/provider"
)

// Deps contains the infrastructure the application services are built from
type Deps struct {
	ExchangeRateProvider provider.ExchangeRate
	CurrencyRegistry     *currency.Registry
	Metrics              service.Metrics
	Logger               *slog.Logger

	// MetricsHandler serves Metrics for scraping; nil when metrics are disabled.
	MetricsHandler http.Handler
}

type App struct {
	Deps              *Deps
	Config            *config.App
	ConversionService *service.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &App{
		Deps:   deps,
		Config: cfg,
		ConversionService: service.New(
			deps.ExchangeRateProvider,
			deps.Logger,
			service.WithRegistry(deps.CurrencyRegistry),
			service.WithMetrics(deps.Metrics),
		),
	}
}
