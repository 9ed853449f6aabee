// Package webapi provides HTTP handlers and API endpoints for the currency converter.
// It is organized into sub-packages:
// - currency: currency listing and conversion endpoints
// - common: response envelopes and error mapping
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/fxconvert/docs" // registers the swagger spec
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/webapi/common"
	currencyweb "github.com/amirasaad/fxconvert/webapi/currency"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "fxconvert",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	if cfg != nil && cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.MaxRequests,
			Expiration: cfg.RateLimit.Window,
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/api")
			},
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Currency Converter API is running! 💱")
		},
	)

	if app.Deps != nil && app.Deps.MetricsHandler != nil {
		path := "/metrics"
		if cfg != nil && cfg.Metrics != nil && cfg.Metrics.Path != "" {
			path = cfg.Metrics.Path
		}
		fiberApp.Get(path, adaptor.HTTPHandler(app.Deps.MetricsHandler))
	}

	currencyweb.Routes(fiberApp, app.ConversionService)
	return fiberApp
}

// clientKey identifies the caller for rate limiting.
func clientKey(c *fiber.Ctx) string {
	// Use X-Forwarded-For header if available (for load balancers/proxies)
	// Fall back to X-Real-IP, then to direct IP
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		// Take the first IP in the chain
		if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
			return strings.TrimSpace(forwardedFor[:commaIndex])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
