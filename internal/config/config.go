// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT"             envDefault:"13673"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the host:port string for the HTTP listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds the bearer token check settings.
type AuthConfig struct {
	APIKey string `env:"API_KEY" envDefault:"sk-mock-openai-api-key-12345"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Authorization,Content-Type"`
}

// RedisConfig holds optional usage-metrics backend settings. Metrics
// are disabled when Addr is empty.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB"         envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"mirage:usage"`
}

// Enabled reports whether a metrics backend is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// DepConfig fans the loaded configuration out into the dependency
// container, one field per consumer.
type DepConfig struct {
	dig.Out

	Server  ServerConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// Load reads configuration from the environment. A .env file is
// applied first when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ParseDependenciesConfig splits the root config for container
// consumption.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:  cfg.Server,
		Auth:    cfg.Auth,
		CORS:    cfg.CORS,
		Redis:   cfg.Redis,
		Logging: cfg.Logging,
	}
}
