package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrSecretKeyNotSet means JWT_SECRET is missing from the environment.
// This is fatal at startup, never a per-request condition.
var ErrSecretKeyNotSet = errors.New("JWT_SECRET not set in environment")

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		BcryptCost int    `yaml:"bcrypt_cost"`
		TokenTTL   string `yaml:"token_ttl"`
	} `yaml:"auth"`
	Notifier struct {
		Enabled bool  `yaml:"enabled"`
		ChatID  int64 `yaml:"chat_id"`
	} `yaml:"notifier"`

	// JWTSecret comes from the JWT_SECRET environment variable, not the file.
	JWTSecret string `yaml:"-"`
	// BotToken comes from the TELEGRAM_BOT_TOKEN environment variable.
	BotToken string `yaml:"-"`
}

const (
	defaultBcryptCost = 10
	defaultTokenTTL   = 24 * time.Hour
)

// LoadConfig reads configuration from the specified YAML file and fills in
// secrets from the environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, ErrSecretKeyNotSet
	}
	config.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	if config.Auth.BcryptCost == 0 {
		config.Auth.BcryptCost = defaultBcryptCost
	}
	if config.Auth.TokenTTL == "" {
		config.Auth.TokenTTL = defaultTokenTTL.String()
	}
	if _, err := config.TokenTTL(); err != nil {
		return nil, err
	}

	return config, nil
}

// TokenTTL parses the configured token lifetime.
func (c *Config) TokenTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid token_ttl %q: %w", c.Auth.TokenTTL, err)
	}
	return ttl, nil
}
