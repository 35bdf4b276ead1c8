package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// GatewayConfig carries the bank gateway credentials. MerchantID, APIKey and
// ResponseKey are hard requirements: a missing secret fails construction, it
// never degrades into an unsigned mode.
type GatewayConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	MerchantID  string        `yaml:"merchant_id"`
	ClientID    string        `yaml:"client_id"`
	ResponseKey string        `yaml:"response_key"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RedirectConfig is where the browser lands after each callback branch.
type RedirectConfig struct {
	SuccessURL string `yaml:"success_url"`
	FailureURL string `yaml:"failure_url"`
	PendingURL string `yaml:"pending_url"`
	UnknownURL string `yaml:"unknown_url"`
}

type ReconcilerConfig struct {
	Interval   time.Duration `yaml:"interval"`
	StaleAfter time.Duration `yaml:"stale_after"`
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Redirect   RedirectConfig   `yaml:"redirect"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.HTTP.Port <= 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = 7 * time.Second
	}
	if cfg.Reconciler.Interval <= 0 {
		cfg.Reconciler.Interval = time.Minute
	}
	if cfg.Reconciler.StaleAfter <= 0 {
		cfg.Reconciler.StaleAfter = 10 * time.Minute
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Gateway.BaseURL == "" {
		return errors.New("gateway.base_url is required")
	}
	if c.Gateway.APIKey == "" {
		return errors.New("gateway.api_key is required")
	}
	if c.Gateway.MerchantID == "" {
		return errors.New("gateway.merchant_id is required")
	}
	if c.Gateway.ResponseKey == "" {
		return errors.New("gateway.response_key is required")
	}
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Redirect.SuccessURL == "" || c.Redirect.FailureURL == "" {
		return errors.New("redirect.success_url and redirect.failure_url are required")
	}
	return nil
}
