// Package display turns the outcome of a conversion into the strings a
// front-end shows. It is the single place where errors become user text.
package display

import (
	"errors"

	"github.com/amirasaad/fxconvert/pkg/exchange/core"
)

// TimeFormat is the layout of the "Last updated" line.
const TimeFormat = "2006-01-02 15:04:05"

// State is what a front-end renders after one conversion.
type State struct {
	OK      bool   `json:"ok"`
	Result  string `json:"result,omitempty"`
	Updated string `json:"updated,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Render maps a conversion outcome to a display state. A non-nil err always
// wins over result.
func Render(result *core.ConversionResult, err error) State {
	if err != nil {
		return State{Error: Message(err)}
	}
	if result == nil {
		return State{Error: Message(core.NewError(core.KindUnexpected, "", errors.New("no result")))}
	}
	return State{
		OK:      true,
		Result:  result.Amount.String() + " = " + result.Converted.String(),
		Updated: "Last updated: " + result.Timestamp.Format(TimeFormat),
	}
}

// Message returns the human-readable text for a conversion error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	detail := err.Error()
	var convErr *core.ConversionError
	if errors.As(err, &convErr) && convErr.Detail() != "" {
		detail = convErr.Detail()
	}

	switch core.KindOf(err) {
	case core.KindInvalidAmount:
		return "Please enter a valid amount"
	case core.KindUnknownCurrency:
		return "Unknown currency: " + detail
	case core.KindNetwork:
		return "Network error: " + detail
	case core.KindMissingCredential:
		return "Missing API key: set EXCHANGE_RATE_PROVIDER_EXCHANGERATE_API_KEY"
	default:
		return "Error: " + detail
	}
}
