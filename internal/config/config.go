package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const envPrefix = "KEYFORGE"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Products  map[string]string `yaml:"products" envconfig:"PRODUCTS"`
	Signing   SigningConfig     `yaml:"signing" envconfig:"SIGNING"`
	Lookup    LookupConfig      `yaml:"lookup" envconfig:"LOOKUP"`
	RateLimit RateLimitConfig   `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Logging   LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SigningConfig holds base64 ed25519 keys for issuance tokens. Signing is
// disabled when PrivateKey is empty.
type SigningConfig struct {
	PrivateKey string        `yaml:"private_key" envconfig:"PRIVATE_KEY"`
	PublicKey  string        `yaml:"public_key" envconfig:"PUBLIC_KEY"`
	Audience   string        `yaml:"audience" envconfig:"AUDIENCE"`
	TokenTTL   time.Duration `yaml:"token_ttl" envconfig:"TOKEN_TTL"`
}

type LookupConfig struct {
	Secret string `yaml:"secret" envconfig:"SECRET"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Default returns the configuration used for anything neither the file nor
// the environment sets.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  3 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Signing:   SigningConfig{TokenTTL: 720 * time.Hour},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 20, Burst: 10},
		Logging:   LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load layers configuration: defaults, then the YAML file named by
// KEYFORGE_CONFIG_FILE if any, then KEYFORGE_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays the keys present in the YAML file onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if len(c.Products) == 0 {
		return errors.New("at least one product secret is required")
	}
	for name, secret := range c.Products {
		if name == "" || secret == "" {
			return fmt.Errorf("product %q has an empty name or secret", name)
		}
	}
	if c.Lookup.Secret == "" {
		return errors.New("lookup secret is required")
	}
	if c.Signing.PrivateKey != "" {
		if _, err := base64.StdEncoding.DecodeString(c.Signing.PrivateKey); err != nil {
			return fmt.Errorf("signing private key is not base64: %w", err)
		}
		if c.Signing.TokenTTL <= 0 {
			return errors.New("signing token ttl must be > 0")
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be > 0")
	}
	return nil
}
