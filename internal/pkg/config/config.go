package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Metro MetroConfig
	Redis RedisConfig
}

// MetroConfig points the console at the collaborator metro API.
type MetroConfig struct {
	BaseURL       string        `env:"METRO_API_URL,     default=http://localhost:9000"`
	Timeout       time.Duration `env:"METRO_API_TIMEOUT, default=15s"`
	StatusRefresh time.Duration `env:"STATUS_REFRESH_INTERVAL, default=30s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
