package exchangerateapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/pkg/provider"
	"golang.org/x/time/rate"
)

// Name is the provider identifier reported in results and logs.
const Name = "exchangerate-api"

const (
	opFetch     = "fetch rates"
	maxErrorLen = 512
)

// ExchangeRateAPIProvider implements provider.ExchangeRate for exchangerate-api.com (v6)
type ExchangeRateAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ExchangeRateAPIResponseV6 represents the v6 response from the ExchangeRate API
// See: https://www.exchangerate-api.com/docs/standard-requests
type ExchangeRateAPIResponseV6 struct {
	Result             string             `json:"result"`
	Documentation      string             `json:"documentation"`
	TermsOfUse         string             `json:"terms_of_use"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	TimeLastUpdateUTC  string             `json:"time_last_update_utc"`
	TimeNextUpdateUnix int64              `json:"time_next_update_unix"`
	TimeNextUpdateUTC  string             `json:"time_next_update_utc"`
	BaseCode           string             `json:"base_code"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
	// Error fields (if any)
	ErrorType string `json:"error-type,omitempty"`
}

// Option configures the provider.
type Option func(*ExchangeRateAPIProvider)

// WithHTTPClient replaces the HTTP client. The client's timeout is kept as is.
func WithHTTPClient(c *http.Client) Option {
	return func(p *ExchangeRateAPIProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewExchangeRateAPIProvider creates a new ExchangeRate API provider using config
func NewExchangeRateAPIProvider(
	cfg *config.ExchangeRateApi,
	logger *slog.Logger,
	opts ...Option,
) *ExchangeRateAPIProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &ExchangeRateAPIProvider{
		apiKey:  cfg.ApiKey,
		baseURL: strings.TrimRight(cfg.ApiUrl, "/"), // Should be like https://v6.exchangerate-api.com/v6
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		limiter: newLimiter(cfg.RequestsPerMinute, cfg.BurstSize),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// newLimiter returns nil (unlimited) when perMinute is not positive.
func newLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// FetchRates fetches all rates quoted in base with a single request.
func (p *ExchangeRateAPIProvider) FetchRates(
	ctx context.Context,
	base money.Code,
) (*core.RateTable, error) {
	if p.apiKey == "" {
		return nil, core.Errorf(
			core.KindMissingCredential,
			opFetch,
			"no API key configured for %s",
			Name,
		)
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, core.NewError(core.KindNetwork, opFetch, fmt.Errorf("rate limiter: %w", err))
		}
	}

	endpoint := fmt.Sprintf("%s/%s/latest/%s", p.baseURL, url.PathEscape(p.apiKey), url.PathEscape(string(base)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, core.NewError(core.KindUnexpected, opFetch, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	p.logger.Debug("Fetching exchange rates from API", "base", base, "url", p.redact(endpoint))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, core.NewError(core.KindNetwork, opFetch, p.describeTransportError(err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.NewError(core.KindNetwork, opFetch, statusError(resp))
	}

	var apiResp ExchangeRateAPIResponseV6
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, core.NewError(core.KindUnexpected, opFetch, fmt.Errorf("failed to decode response: %w", err))
	}

	// A 2xx reply that reports failure in the body is Unexpected; the same
	// error-type on a non-2xx status was already returned as Network above.
	if apiResp.Result != "success" {
		if apiResp.ErrorType != "" {
			return nil, core.Errorf(core.KindUnexpected, opFetch, "API returned error-type=%s", apiResp.ErrorType)
		}
		return nil, core.Errorf(core.KindUnexpected, opFetch, "API returned result=%q", apiResp.Result)
	}

	rates := make(map[money.Code]float64, len(apiResp.ConversionRates))
	for code, r := range apiResp.ConversionRates {
		rates[money.Code(code)] = r
	}

	lastUpdated := time.Now()
	if apiResp.TimeLastUpdateUnix > 0 {
		lastUpdated = time.Unix(apiResp.TimeLastUpdateUnix, 0)
	}

	tableBase := base
	if apiResp.BaseCode != "" {
		tableBase = money.Code(apiResp.BaseCode)
	}

	p.logger.Debug("Exchange rates fetched", "base", tableBase, "count", len(rates))
	return &core.RateTable{
		Base:        tableBase,
		Rates:       rates,
		Provider:    Name,
		LastUpdated: lastUpdated,
	}, nil
}

// Name returns the provider's name
func (p *ExchangeRateAPIProvider) Name() string {
	return Name
}

// redact hides the API key embedded in the request path.
func (p *ExchangeRateAPIProvider) redact(s string) string {
	if p.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, url.PathEscape(p.apiKey), "****")
}

// describeTransportError strips the request URL (which carries the API key)
// from client errors and names the failure.
func (p *ExchangeRateAPIProvider) describeTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("request timed out: %w", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("request timed out: %s", p.redact(netErr.Error()))
	default:
		return fmt.Errorf("request failed: %s", p.redact(err.Error()))
	}
}

// statusError builds the error for a non-2xx reply, naming the provider's
// error-type when the body carries one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorLen))
	var apiResp ExchangeRateAPIResponseV6
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.ErrorType != "" {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, apiResp.ErrorType)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("API returned status %d: %s", resp.StatusCode, text)
}

// Ensure ExchangeRateAPIProvider implements provider.ExchangeRate
var _ provider.ExchangeRate = (*ExchangeRateAPIProvider)(nil)
