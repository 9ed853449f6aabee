package currency

import (
	"strings"
	"time"

	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/exchange/display"
	"github.com/amirasaad/fxconvert/pkg/money"
)

// ConvertRequest represents the request body for a conversion.
type ConvertRequest struct {
	Amount string `json:"amount" query:"amount" validate:"required"`
	From   string `json:"from" query:"from" validate:"omitempty,len=3,alpha"`
	To     string `json:"to" query:"to" validate:"omitempty,len=3,alpha"`
}

// ToServiceRequest normalizes the codes and fills in the default pair.
func (r *ConvertRequest) ToServiceRequest() core.ConversionRequest {
	return core.ConversionRequest{
		Amount: r.Amount,
		From:   normalizeCode(r.From, currency.DefaultSource),
		To:     normalizeCode(r.To, currency.DefaultTarget),
	}
}

func normalizeCode(s string, fallback money.Code) money.Code {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return money.Code(s)
}

// ConversionResponse represents the response structure for a conversion.
type ConversionResponse struct {
	ID          string      `json:"id"`
	Amount      money.Money `json:"amount"`
	Converted   money.Money `json:"converted"`
	Rate        string      `json:"rate"`
	Provider    string      `json:"provider"`
	Display     string      `json:"display"`
	LastUpdated string      `json:"last_updated"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ToConversionResponse converts a service result to a response DTO.
func ToConversionResponse(result *core.ConversionResult) *ConversionResponse {
	if result == nil {
		return nil
	}
	state := display.Render(result, nil)
	return &ConversionResponse{
		ID:          result.ID.String(),
		Amount:      result.Amount,
		Converted:   result.Converted,
		Rate:        result.Rate.String(),
		Provider:    result.Provider,
		Display:     state.Result,
		LastUpdated: state.Updated,
		Timestamp:   result.Timestamp,
	}
}

// CurrencyResponse represents the response structure for currency data
type CurrencyResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
}

// ToResponse converts registry metadata to a response DTO
func ToResponse(meta currency.CurrencyMeta) CurrencyResponse {
	return CurrencyResponse{
		Code:     meta.Code.String(),
		Name:     meta.Name,
		Symbol:   meta.Symbol,
		Decimals: meta.Decimals,
		Country:  meta.Country,
		Region:   meta.Region,
	}
}

// CurrencyListResponse lists the supported currencies with the default pair.
type CurrencyListResponse struct {
	Currencies    []CurrencyResponse `json:"currencies"`
	DefaultSource string             `json:"default_source"`
	DefaultTarget string             `json:"default_target"`
}
