package currency

import (
	"strings"

	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/exchange/service"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for currency listing and conversion.
func Routes(app *fiber.App, svc *service.Service) {
	currencyGroup := app.Group("/api/currencies")
	currencyGroup.Get("/", ListCurrencies(svc))
	currencyGroup.Get("/:code", GetCurrency(svc))

	convertGroup := app.Group("/api/convert")
	convertGroup.Get("/", ConvertQuery(svc))
	convertGroup.Post("/", Convert(svc))
}

// ListCurrencies returns a Fiber handler for listing the supported currencies.
// @Summary List supported currencies
// @Description Get the currencies offered for conversion and the default pair
// @Tags currencies
// @Produce json
// @Success 200 {object} common.Response{data=CurrencyListResponse}
// @Failure 429 {object} common.ProblemDetails
// @Router /api/currencies [get]
func ListCurrencies(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metas := svc.Registry().List()
		out := CurrencyListResponse{
			Currencies:    make([]CurrencyResponse, 0, len(metas)),
			DefaultSource: currency.DefaultSource.String(),
			DefaultTarget: currency.DefaultTarget.String(),
		}
		for _, meta := range metas {
			out.Currencies = append(out.Currencies, ToResponse(meta))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", out)
	}
}

// GetCurrency returns currency information by code
// @Summary Get currency by code
// @Description Get currency information by ISO 4217 code
// @Tags currencies
// @Produce json
// @Param code path string true "Currency code (e.g., USD, EUR)"
// @Success 200 {object} common.Response{data=CurrencyResponse}
// @Failure 404 {object} common.ProblemDetails
// @Router /api/currencies/{code} [get]
func GetCurrency(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := money.Code(strings.ToUpper(c.Params("code")))
		meta, ok := svc.Registry().Get(code)
		if !ok {
			return common.ProblemDetailsJSON(
				c,
				"Currency not found",
				core.Errorf(core.KindUnknownCurrency, "get currency", "%s is not supported", code),
				fiber.StatusNotFound,
			)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", ToResponse(meta))
	}
}

// ConvertQuery converts an amount given as query parameters.
// @Summary Convert an amount
// @Description Convert an amount between two supported currencies using live rates
// @Tags convert
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string false "Source currency (default USD)"
// @Param to query string false "Target currency (default EUR)"
// @Success 200 {object} common.Response{data=ConversionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/convert [get]
func ConvertQuery(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input ConvertRequest
		if err := c.QueryParser(&input); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err, err.Error(), fiber.StatusBadRequest)
		}
		return convert(c, svc, &input)
	}
}

// Convert converts an amount given as a JSON body.
// @Summary Convert an amount
// @Description Convert an amount between two supported currencies using live rates
// @Tags convert
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} common.Response{data=ConversionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/convert [post]
func Convert(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConvertRequest](c)
		if input == nil {
			return err // error response already written
		}
		return convert(c, svc, input)
	}
}

func convert(c *fiber.Ctx, svc *service.Service, input *ConvertRequest) error {
	result, err := svc.ConvertRequest(c.UserContext(), input.ToServiceRequest())
	if err != nil {
		return common.ProblemDetailsJSON(c, "Conversion failed", core.Classify("convert", err))
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Conversion successful", ToConversionResponse(result))
}
