package main

import (
	"fmt"
	"os"

	"github.com/amirasaad/fxconvert/infra/initializer"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// @title Currency Converter API
// @version 1.0.0
// @description Converts amounts between currencies using live exchange rates
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	fiberApp, err := newServer(cfg)
	if err != nil {
		return err
	}

	// Start the server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	return fiberApp.Listen(addr)
}

// newServer builds the Fiber app with all routes and middleware.
func newServer(cfg *config.App) (*fiber.App, error) {
	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return webapi.SetupApp(app.New(deps, cfg)), nil
}
