package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when amount text is not a finite number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when an amount is below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidCurrency is returned when a currency code is not three uppercase letters
	ErrInvalidCurrency = errors.New("invalid currency code")
)
