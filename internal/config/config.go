package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/aescanero/greeting-machine/internal/greeting"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all configuration for the greeting worker
type Config struct {
	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"greeter-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"greeting.requests"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"greeting-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"greeting.rendered"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`

	// Greeting configuration
	DefaultLocale   string `env:"DEFAULT_LOCALE" envDefault:"en"`
	DefaultCategory string `env:"DEFAULT_CATEGORY" envDefault:"casual"`
	LocalesDir      string `env:"LOCALES_DIR"`
	TemplatesFile   string `env:"TEMPLATES_FILE"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8082"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; variables already set in
// the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.StreamKey == "" {
		return fmt.Errorf("STREAM_KEY is required")
	}

	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}

	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("BLOCK_TIME must be positive")
	}

	if c.DefaultLocale == "" {
		return fmt.Errorf("DEFAULT_LOCALE is required")
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("DEFAULT_LOCALE %q is not a valid language tag: %w", c.DefaultLocale, err)
	}

	if _, err := c.Category(); err != nil {
		return fmt.Errorf("DEFAULT_CATEGORY: %w", err)
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// Category returns the parsed default category.
func (c *Config) Category() (greeting.Category, error) {
	return greeting.ParseCategory(c.DefaultCategory)
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, ResultStream=%s, "+
			"DefaultLocale=%s, DefaultCategory=%s, LocalesDir=%s, TemplatesFile=%s, HealthPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.DefaultLocale,
		c.DefaultCategory,
		c.LocalesDir,
		c.TemplatesFile,
		c.HealthPort,
		c.LogLevel,
	)
}
