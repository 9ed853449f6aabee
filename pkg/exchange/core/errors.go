package core

import (
	"errors"
	"fmt"
)

// Conversion error taxonomy. Every error returned by the conversion service
// matches exactly one of these with errors.Is.
var (
	// ErrInvalidAmount indicates that the amount text is not a finite non-negative number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNetwork indicates that the rate request did not complete or the
	// provider answered with a non-success status
	ErrNetwork = errors.New("network error")

	// ErrUnknownCurrency indicates that a currency code is not supported or
	// not present in the fetched rate table
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrMissingCredential indicates that no provider API key is configured
	ErrMissingCredential = errors.New("missing API key")

	// ErrUnexpected wraps any failure outside the taxonomy above
	ErrUnexpected = errors.New("unexpected error")
)

// Kind identifies the category of a ConversionError.
type Kind string

const (
	KindInvalidAmount     Kind = "invalid_amount"
	KindNetwork           Kind = "network"
	KindUnknownCurrency   Kind = "unknown_currency"
	KindMissingCredential Kind = "missing_credential"
	KindUnexpected        Kind = "unexpected"
)

var kindSentinels = map[Kind]error{
	KindInvalidAmount:     ErrInvalidAmount,
	KindNetwork:           ErrNetwork,
	KindUnknownCurrency:   ErrUnknownCurrency,
	KindMissingCredential: ErrMissingCredential,
	KindUnexpected:        ErrUnexpected,
}

// ConversionError carries the category of a failed conversion together with
// the operation that failed and the underlying cause.
type ConversionError struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError builds a ConversionError of the given kind.
func NewError(kind Kind, op string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Op: op, Err: err}
}

// Errorf builds a ConversionError of the given kind with a formatted cause.
func Errorf(kind Kind, op, format string, args ...any) *ConversionError {
	return NewError(kind, op, fmt.Errorf(format, args...))
}

func (e *ConversionError) Error() string {
	sentinel := kindSentinels[e.Kind]
	if sentinel == nil {
		sentinel = ErrUnexpected
	}
	msg := sentinel.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil && !errors.Is(e.Err, sentinel) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *ConversionError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Detail returns the underlying cause message without the kind prefix.
func (e *ConversionError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// KindOf classifies err. Errors outside the taxonomy are KindUnexpected.
func KindOf(err error) Kind {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		if _, ok := kindSentinels[convErr.Kind]; ok {
			return convErr.Kind
		}
		return KindUnexpected
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnexpected
}

// Classify returns err as a *ConversionError, wrapping anything outside the
// taxonomy as KindUnexpected. A nil error stays nil.
func Classify(op string, err error) *ConversionError {
	if err == nil {
		return nil
	}
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr
	}
	return NewError(KindOf(err), op, err)
}
