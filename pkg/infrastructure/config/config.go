package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from FASTFOOD_* environment variables.
type Config struct {
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseDSN    string        `envconfig:"DATABASE_DSN" required:"true"`
	MigrationsPath string        `envconfig:"MIGRATIONS_PATH" default:"migrations"`
	GatewayBaseURL string        `envconfig:"GATEWAY_BASE_URL" required:"true"`
	GatewayAPIKey  string        `envconfig:"GATEWAY_API_KEY" required:"true"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("fastfood", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
