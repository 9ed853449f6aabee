package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first environment file found among envFilePath (searched
// upward from the working directory), then populates App from the process
// environment. Missing files are not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Debug("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		foundPath, err := findEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Debug("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Debug("No valid environment files found, using process environment")
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}

	api := cfg.ExchangeRateApi()
	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"log_format", cfg.Log.Format,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"exchange_api_url", api.ApiUrl,
		"exchange_api_key", maskValue(api.ApiKey),
		"exchange_http_timeout", api.HTTPTimeout,
	)
	return &cfg, nil
}
