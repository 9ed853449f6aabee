// Package common holds the response envelopes shared by the HTTP handlers.
package common

import (
	"errors"
	"sync"

	"github.com/amirasaad/fxconvert/pkg/exchange/core"
	"github.com/amirasaad/fxconvert/pkg/exchange/display"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MIMEProblemJSON is the media type of RFC 9457 error bodies.
const MIMEProblemJSON = "application/problem+json"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Kind     string `json:"kind,omitempty"`     // Conversion error kind, when there is one
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 response for err.
// Optional args: a string overrides the detail, an int overrides the status.
// Without an override the status comes from ErrorToStatusCode and the detail
// from display.Message.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   ErrorToStatusCode(err),
		Instance: c.OriginalURL(),
	}
	var fiberErr *fiber.Error
	var convErr *core.ConversionError
	switch {
	case err == nil:
	case errors.As(err, &fiberErr):
		pd.Detail = fiberErr.Message
	case errors.As(err, &convErr):
		pd.Detail = display.Message(err)
		pd.Kind = string(core.KindOf(err))
	default:
		pd.Detail = err.Error()
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		default:
			pd.Errors = v
		}
	}

	return c.Status(pd.Status).JSON(pd, MIMEProblemJSON)
}

// ErrorToStatusCode maps conversion errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, core.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, core.ErrUnknownCurrency):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNetwork):
		return fiber.StatusBadGateway
	case errors.Is(err, core.ErrMissingCredential):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func defaultValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, err.Error(), fiber.StatusBadRequest)
	}
	if err := defaultValidator().Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		details := map[string]string{}
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, "request validation failed", fiber.StatusBadRequest, details)
	}
	return &input, nil
}
