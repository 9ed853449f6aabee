package money

// Code represents a currency code (e.g., "USD", "EUR").
type Code string

// Supported currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
	JPY Code = "JPY" // Japanese Yen
	AUD Code = "AUD" // Australian Dollar
	CAD Code = "CAD" // Canadian Dollar
	CHF Code = "CHF" // Swiss Franc
	CNY Code = "CNY" // Chinese Yuan
	INR Code = "INR" // Indian Rupee
	SGD Code = "SGD" // Singapore Dollar
	TRY Code = "TRY" // Turkish Lira
	AZN Code = "AZN" // Azerbaijani Manat
)
