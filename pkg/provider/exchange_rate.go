package provider

import (
	"context"

	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/money"
)

// ExchangeRate defines the interface for external exchange rate providers.
type ExchangeRate interface {
	// FetchRates fetches the full rate table quoted in base with a single request.
	FetchRates(ctx context.Context, base money.Code) (*core.RateTable, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}
