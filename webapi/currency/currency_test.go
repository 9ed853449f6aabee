package currency_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/fxconvert/internal/fixtures/mocks"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/webapi/common"
	currencyweb "github.com/amirasaad/fxconvert/webapi/currency"
	"github.com/amirasaad/fxconvert/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type convertEnvelope struct {
	common.Response
	Data currencyweb.ConversionResponse `json:"data"`
}

type listEnvelope struct {
	common.Response
	Data currencyweb.CurrencyListResponse `json:"data"`
}

type currencyEnvelope struct {
	common.Response
	Data currencyweb.CurrencyResponse `json:"data"`
}

type CurrencyHandlersTestSuite struct {
	suite.Suite
	app   *fiber.App
	rates *mocks.MockExchangeRate
}

func (s *CurrencyHandlersTestSuite) SetupTest() {
	s.app, s.rates = testutils.NewTestApp(s.T(), nil)
}

func (s *CurrencyHandlersTestSuite) TestConvertQuery_Success() {
	s.rates.EXPECT().FetchRates(mock.Anything, money.USD).Return(testutils.USDRates(), nil).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/convert?amount=100&from=usd&to=eur", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	body := testutils.DecodeJSON[convertEnvelope](s.T(), resp)
	s.Equal("100.00 USD = 92.00 EUR", body.Data.Display)
	s.Equal("92.00", body.Data.Converted.Formatted())
	s.Equal(money.EUR, body.Data.Converted.Currency())
	s.Equal("0.92", body.Data.Rate)
	s.Equal("mock", body.Data.Provider)
	s.NotEmpty(body.Data.ID)
	s.Contains(body.Data.LastUpdated, "Last updated: ")
}

func (s *CurrencyHandlersTestSuite) TestConvertQuery_DefaultPair() {
	s.rates.EXPECT().FetchRates(mock.Anything, money.USD).Return(testutils.USDRates(), nil).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/convert?amount=10", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeJSON[convertEnvelope](s.T(), resp)
	s.Equal("10.00 USD = 9.20 EUR", body.Data.Display)
}

func (s *CurrencyHandlersTestSuite) TestConvertPost_Success() {
	s.rates.EXPECT().FetchRates(mock.Anything, money.USD).Return(testutils.USDRates(), nil).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/api/convert",
		`{"amount":"2.5","from":"USD","to":"GBP"}`)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeJSON[convertEnvelope](s.T(), resp)
	s.Equal("2.50 USD = 1.98 GBP", body.Data.Display)
}

func (s *CurrencyHandlersTestSuite) TestConvertPost_ValidationFailed() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/api/convert", `{"from":"USD","to":"EUR"}`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := testutils.DecodeJSON[common.ProblemDetails](s.T(), resp)
	s.Equal("Validation failed", pd.Title)
	s.rates.AssertNotCalled(s.T(), "FetchRates", mock.Anything, mock.Anything)
}

func (s *CurrencyHandlersTestSuite) TestConvertPost_MalformedBody() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/api/convert", `{"amount":`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := testutils.DecodeJSON[common.ProblemDetails](s.T(), resp)
	s.Equal("Invalid request body", pd.Title)
}

func (s *CurrencyHandlersTestSuite) TestConvert_ErrorMapping() {
	tests := []struct {
		name       string
		query      string
		providerFn func()
		status     int
		kind       core.Kind
		detail     string
	}{
		{
			name:   "invalid amount",
			query:  "amount=abc",
			status: fiber.StatusBadRequest,
			kind:   core.KindInvalidAmount,
			detail: "Please enter a valid amount",
		},
		{
			name:   "unsupported currency",
			query:  "amount=1&from=XYZ",
			status: fiber.StatusUnprocessableEntity,
			kind:   core.KindUnknownCurrency,
		},
		{
			name:  "network",
			query: "amount=1",
			providerFn: func() {
				s.rates.EXPECT().FetchRates(mock.Anything, money.USD).
					Return(nil, core.Errorf(core.KindNetwork, "fetch rates", "API returned status 500")).Once()
			},
			status: fiber.StatusBadGateway,
			kind:   core.KindNetwork,
			detail: "Network error: API returned status 500",
		},
		{
			name:  "missing credential",
			query: "amount=1",
			providerFn: func() {
				s.rates.EXPECT().FetchRates(mock.Anything, money.USD).
					Return(nil, core.Errorf(core.KindMissingCredential, "fetch rates", "no API key")).Once()
			},
			status: fiber.StatusServiceUnavailable,
			kind:   core.KindMissingCredential,
		},
		{
			name:  "unexpected",
			query: "amount=1",
			providerFn: func() {
				s.rates.EXPECT().FetchRates(mock.Anything, money.USD).Return(nil, errors.New("boom")).Once()
			},
			status: fiber.StatusInternalServerError,
			kind:   core.KindUnexpected,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.providerFn != nil {
				tt.providerFn()
			}
			resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/convert?"+tt.query, "")
			s.Equal(tt.status, resp.StatusCode)
			s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))

			pd := testutils.DecodeJSON[common.ProblemDetails](s.T(), resp)
			s.Equal("Conversion failed", pd.Title)
			s.Equal(string(tt.kind), pd.Kind)
			if tt.detail != "" {
				s.Equal(tt.detail, pd.Detail)
			}
		})
	}
}

func (s *CurrencyHandlersTestSuite) TestConvert_PassesRequestContext() {
	s.rates.EXPECT().FetchRates(mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil }), money.USD).
		Return(testutils.USDRates(), nil).Once()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/convert?amount=1", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *CurrencyHandlersTestSuite) TestListCurrencies() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/currencies", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	body := testutils.DecodeJSON[listEnvelope](s.T(), resp)
	s.Len(body.Data.Currencies, 12)
	s.Equal("USD", body.Data.Currencies[0].Code)
	s.Equal("USD", body.Data.DefaultSource)
	s.Equal("EUR", body.Data.DefaultTarget)
}

func (s *CurrencyHandlersTestSuite) TestGetCurrency() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/currencies/jpy", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeJSON[currencyEnvelope](s.T(), resp)
	s.Equal("JPY", body.Data.Code)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/currencies/XYZ", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	pd := testutils.DecodeJSON[common.ProblemDetails](s.T(), resp)
	s.Equal(string(core.KindUnknownCurrency), pd.Kind)
}

func TestCurrencyHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyHandlersTestSuite))
}

func TestConvertRequest_ToServiceRequest(t *testing.T) {
	req := (&currencyweb.ConvertRequest{Amount: "5", From: " gbp ", To: ""}).ToServiceRequest()
	if req.From != money.GBP || req.To != money.EUR || req.Amount != "5" {
		t.Fatalf("unexpected request %+v", req)
	}
	if currencyweb.ToConversionResponse(nil) != nil {
		t.Fatal("expected nil response for nil result")
	}
}
