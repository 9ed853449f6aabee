package core

import (
	"time"

	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConversionRequest is the input to a single conversion. Amount holds the raw
// text entered by the user; parsing it is part of the conversion.
type ConversionRequest struct {
	Amount string     `json:"amount" validate:"required"`
	From   money.Code `json:"from" validate:"required,currency"`
	To     money.Code `json:"to" validate:"required,currency"`
}

// RateTable maps currency codes to the factor converting one unit of Base
// into that currency. It lives for the duration of one request.
type RateTable struct {
	Base        money.Code
	Rates       map[money.Code]float64
	Provider    string
	LastUpdated time.Time
}

// Rate returns the factor for the given code and whether it is present.
func (t *RateTable) Rate(code money.Code) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// ConversionResult is the outcome of a successful conversion.
type ConversionResult struct {
	ID        uuid.UUID       `json:"id"`
	Amount    money.Money     `json:"amount"`
	Converted money.Money     `json:"converted"`
	Rate      decimal.Decimal `json:"rate"`
	Provider  string          `json:"provider"`
	Timestamp time.Time       `json:"timestamp"`
}
