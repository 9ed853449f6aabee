package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/pkg/provider"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const opConvert = "convert"

// Metrics receives one observation per conversion attempt.
type Metrics interface {
	ObserveConversion(from, to money.Code, kind string, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveConversion(money.Code, money.Code, string, time.Duration) {}

// Service converts amounts between currencies using a single rate provider.
// It keeps no state between calls.
type Service struct {
	provider provider.ExchangeRate
	registry *currency.Registry
	validate *validator.Validate
	metrics  Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRegistry replaces the default currency registry.
func WithRegistry(r *currency.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new conversion service with the given provider
func New(
	rates provider.ExchangeRate,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		provider: rates,
		registry: currency.Default(),
		metrics:  nopMetrics{},
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validate = validator.New()
	_ = s.validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return s.registry.IsSupported(money.Code(fl.Field().String()))
	})
	return s
}

// Registry returns the currencies this service accepts.
func (s *Service) Registry() *currency.Registry {
	return s.registry
}

// Convert parses amount and converts it from one currency to another.
func (s *Service) Convert(
	ctx context.Context,
	amount string,
	from, to money.Code,
) (*core.ConversionResult, error) {
	return s.ConvertRequest(ctx, core.ConversionRequest{
		Amount: amount,
		From:   from,
		To:     to,
	})
}

// ConvertRequest performs one conversion. Exactly one rate request is issued
// when the input is valid; none otherwise.
func (s *Service) ConvertRequest(
	ctx context.Context,
	req core.ConversionRequest,
) (result *core.ConversionResult, err error) {
	start := time.Now()
	defer func() {
		kind := "ok"
		if err != nil {
			kind = string(core.KindOf(err))
		}
		s.metrics.ObserveConversion(req.From, req.To, kind, time.Since(start))
	}()

	log := s.logger.With("from", req.From, "to", req.To)

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		log.Debug("Rejected amount", "amount", req.Amount, "error", err)
		return nil, core.NewError(core.KindInvalidAmount, opConvert, err)
	}

	if err := s.validateCodes(req); err != nil {
		log.Debug("Rejected currency", "error", err)
		return nil, err
	}

	table, err := s.provider.FetchRates(ctx, req.From)
	if err != nil {
		convErr := s.classifyProviderError(ctx, err)
		log.Warn("Failed to fetch exchange rates", "provider", s.provider.Name(), "error", convErr)
		return nil, convErr
	}

	rate, ok := table.Rate(req.To)
	if !ok {
		return nil, core.Errorf(
			core.KindUnknownCurrency,
			opConvert,
			"%s not found in %s rate table",
			req.To,
			req.From,
		)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, core.Errorf(core.KindUnexpected, opConvert, "invalid rate %v for %s/%s", rate, req.From, req.To)
	}

	source, err := money.New(amount, req.From)
	if err != nil {
		return nil, core.NewError(core.KindUnknownCurrency, opConvert, err)
	}
	factor := decimal.NewFromFloat(rate)
	converted, err := source.Convert(factor, req.To)
	if err != nil {
		return nil, core.NewError(core.KindUnknownCurrency, opConvert, err)
	}

	result = &core.ConversionResult{
		ID:        uuid.New(),
		Amount:    source,
		Converted: converted,
		Rate:      factor,
		Provider:  table.Provider,
		Timestamp: s.now(),
	}
	log.Info("Converted amount",
		"id", result.ID,
		"amount", source.String(),
		"converted", converted.String(),
		"rate", rate,
	)
	return result, nil
}

func (s *Service) validateCodes(req core.ConversionRequest) error {
	err := s.validate.StructPartial(req, "From", "To")
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return core.Errorf(core.KindUnknownCurrency, opConvert, "%s currency is required", fieldName(fe))
		}
		return core.Errorf(
			core.KindUnknownCurrency,
			opConvert,
			"unsupported %s currency %q",
			fieldName(fe),
			fe.Value(),
		)
	}
	return core.NewError(core.KindUnexpected, opConvert, err)
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() == "From" {
		return "source"
	}
	return "target"
}

// classifyProviderError keeps taxonomy errors as they are and maps anything
// else: context expiry is a network failure, the rest is unexpected.
func (s *Service) classifyProviderError(ctx context.Context, err error) *core.ConversionError {
	var convErr *core.ConversionError
	if errors.As(err, &convErr) {
		return convErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return core.NewError(core.KindNetwork, opConvert, fmt.Errorf("rate request aborted: %w", err))
	}
	return core.NewError(core.KindUnexpected, opConvert, err)
}
