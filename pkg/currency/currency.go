// Package currency holds the fixed set of currencies the converter offers.
package currency

import (
	"fmt"
	"sort"

	"github.com/amirasaad/fxconvert/pkg/money"
)

const (
	// DefaultSource is the currency preselected as the conversion source
	DefaultSource = money.USD
	// DefaultTarget is the currency preselected as the conversion target
	DefaultTarget = money.EUR
	// DefaultDecimals is the number of minor-unit digits for unknown currencies
	DefaultDecimals = 2
)

// CurrencyMeta holds currency-specific metadata
type CurrencyMeta struct {
	Code     money.Code `json:"code"`
	Name     string     `json:"name"`
	Symbol   string     `json:"symbol"`
	Decimals int        `json:"decimals"`
	Country  string     `json:"country,omitempty"`
	Region   string     `json:"region,omitempty"`
}

// Registry is a read-only lookup of supported currencies.
type Registry struct {
	currencies map[money.Code]CurrencyMeta
	order      []money.Code
}

// NewRegistry creates a registry with the given currencies, preserving order.
// Later duplicates replace earlier entries.
func NewRegistry(metas ...CurrencyMeta) *Registry {
	r := &Registry{currencies: make(map[money.Code]CurrencyMeta, len(metas))}
	for _, meta := range metas {
		if _, exists := r.currencies[meta.Code]; !exists {
			r.order = append(r.order, meta.Code)
		}
		r.currencies[meta.Code] = meta
	}
	return r
}

// NewDefaultRegistry creates a registry from the embedded currency list.
func NewDefaultRegistry() *Registry {
	metas, err := LoadCurrencyMetaCSV("")
	if err != nil {
		panic(fmt.Sprintf("currency: embedded meta.csv: %v", err))
	}
	return NewRegistry(metas...)
}

// LoadRegistry builds a registry from a CSV file, or the embedded list when
// path is empty.
func LoadRegistry(path string) (*Registry, error) {
	metas, err := LoadCurrencyMetaCSV(path)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, fmt.Errorf("no active currencies in %q", path)
	}
	return NewRegistry(metas...), nil
}

// Get returns currency metadata for the given code
func (r *Registry) Get(code money.Code) (CurrencyMeta, bool) {
	meta, ok := r.currencies[code]
	return meta, ok
}

// IsSupported checks if a currency code is registered
func (r *Registry) IsSupported(code money.Code) bool {
	_, ok := r.currencies[code]
	return ok
}

// List returns all currencies in registration order.
func (r *Registry) List() []CurrencyMeta {
	out := make([]CurrencyMeta, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.currencies[code])
	}
	return out
}

// Codes returns the supported codes sorted alphabetically.
func (r *Registry) Codes() []money.Code {
	codes := make([]money.Code, len(r.order))
	copy(codes, r.order)
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Count returns the total number of registered currencies
func (r *Registry) Count() int {
	return len(r.order)
}

var defaultRegistry = NewDefaultRegistry()

// Default returns the shared registry of converter currencies.
func Default() *Registry {
	return defaultRegistry
}

// IsSupported reports whether code is in the default registry.
func IsSupported(code money.Code) bool {
	return defaultRegistry.IsSupported(code)
}
