package config

import (
	"fmt"
	"time"

	"github.com/amirasaad/fxconvert/pkg/exchange/core"
)

// Leaf fields use split_words instead of envconfig tags so a key is only ever
// read under its full prefixed name (METRICS_PATH, never PATH).

//revive:disable
type ExchangeRateApi struct {
	ApiKey            string        `split_words:"true"`
	ApiUrl            string        `split_words:"true" default:"https://v6.exchangerate-api.com/v6"`
	HTTPTimeout       time.Duration `split_words:"true" default:"5s"`
	RequestsPerMinute int           `split_words:"true" default:"60"`
	BurstSize         int           `split_words:"true" default:"10"`
}

//revive:enable
type ExchangeRateProviders struct {
	ExchangeRateApi *ExchangeRateApi `envconfig:"EXCHANGERATE"`
}

type Currency struct {
	// MetaFile overrides the embedded currency list when set.
	MetaFile string `split_words:"true"`
}

type Log struct {
	Level      int    `split_words:"true" default:"0"`
	Format     string `split_words:"true" default:"text"`
	TimeFormat string `split_words:"true" default:"2006-01-02 15:04:05"`
	Prefix     string `split_words:"true" default:"[fxconvert]"`
}

type Server struct {
	Scheme string `split_words:"true" default:"http"`
	Host   string `split_words:"true" default:"localhost"`
	Port   int    `split_words:"true" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `split_words:"true" default:"100"`
	Window      time.Duration `split_words:"true" default:"1m"`
}

type Metrics struct {
	Enabled   bool   `split_words:"true" default:"true"`
	Namespace string `split_words:"true" default:"fxconvert"`
	Path      string `split_words:"true" default:"/metrics"`
}

type App struct {
	Env                      string                 `envconfig:"APP_ENV" default:"development"`
	Server                   *Server                `envconfig:"SERVER"`
	Log                      *Log                   `envconfig:"LOG"`
	Currency                 *Currency              `envconfig:"CURRENCY"`
	ExchangeRateAPIProviders *ExchangeRateProviders `envconfig:"EXCHANGE_RATE_PROVIDER"`
	RateLimit                *RateLimit             `envconfig:"RATE_LIMIT"`
	Metrics                  *Metrics               `envconfig:"METRICS"`
}

// ExchangeRateApi returns the exchangerate-api settings, never nil.
func (a *App) ExchangeRateApi() *ExchangeRateApi {
	if a.ExchangeRateAPIProviders == nil {
		a.ExchangeRateAPIProviders = &ExchangeRateProviders{}
	}
	if a.ExchangeRateAPIProviders.ExchangeRateApi == nil {
		a.ExchangeRateAPIProviders.ExchangeRateApi = &ExchangeRateApi{}
	}
	return a.ExchangeRateAPIProviders.ExchangeRateApi
}

// Validate checks settings that have no usable default.
func (a *App) Validate() error {
	api := a.ExchangeRateApi()
	if api.ApiKey == "" {
		return core.Errorf(
			core.KindMissingCredential,
			"config",
			"EXCHANGE_RATE_PROVIDER_EXCHANGERATE_API_KEY is not set",
		)
	}
	if api.ApiUrl == "" {
		return fmt.Errorf("EXCHANGE_RATE_PROVIDER_EXCHANGERATE_API_URL is empty")
	}
	if api.HTTPTimeout <= 0 {
		return fmt.Errorf("exchange rate HTTP timeout must be positive, got %s", api.HTTPTimeout)
	}
	return nil
}
