package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Client   Client
	Stub     Stub
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Client struct {
	BaseURL           string        `env:"BOOKTRACKER_BASE_URL" envDefault:"http://localhost:8080"`
	UserAgent         string        `env:"BOOKTRACKER_USER_AGENT" envDefault:"booktracker-client/1.0"`
	ValidateResponses bool          `env:"BOOKTRACKER_VALIDATE_RESPONSES" envDefault:"true"`
	RateLimitRPS      float64       `env:"BOOKTRACKER_RATE_LIMIT_RPS" envDefault:"0"`
	Timeout           time.Duration `env:"BOOKTRACKER_TIMEOUT" envDefault:"0s"`
}

type Stub struct {
	Addr          string `env:"STUB_ADDR" envDefault:":8080"`
	DefaultUserID string `env:"STUB_DEFAULT_USER" envDefault:"u1"`
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func Load() (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
