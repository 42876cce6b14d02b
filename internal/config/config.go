// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Contentful ContentfulConfig `mapstructure:"contentful"`
	Warm       WarmConfig       `mapstructure:"warm"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// ContentfulConfig holds the content provider settings. SpaceID and
// AccessToken have no defaults; a deployment without them fails Validate.
type ContentfulConfig struct {
	BaseURL      string        `mapstructure:"base_url"` // override for tests and the local stub
	SpaceID      string        `mapstructure:"space_id"`
	AccessToken  string        `mapstructure:"access_token"`
	Environment  string        `mapstructure:"environment"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ClientMaxAge time.Duration `mapstructure:"client_max_age"`
	Retry        RetryConfig   `mapstructure:"retry"`
	CB           CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// WarmConfig holds cache warm scheduler settings.
type WarmConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings for caching and locking.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds list caching settings.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	ListTTL   time.Duration `mapstructure:"list_ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the hard requirements. Missing provider credentials are a
// configuration error, not a silent fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Contentful.SpaceID == "" {
		errs = append(errs, errors.New("contentful.space_id is required"))
	}
	if c.Contentful.AccessToken == "" {
		errs = append(errs, errors.New("contentful.access_token is required"))
	}

	return errors.Join(errs...)
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "vending-content-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Contentful defaults (credentials deliberately have no default)
	v.SetDefault("contentful.base_url", "")
	v.SetDefault("contentful.environment", "master")
	v.SetDefault("contentful.timeout", "10s")
	v.SetDefault("contentful.client_max_age", "30m")
	v.SetDefault("contentful.retry.max_attempts", 3)
	v.SetDefault("contentful.retry.wait_time", "1s")
	v.SetDefault("contentful.retry.max_wait_time", "5s")
	v.SetDefault("contentful.circuit_breaker.max_requests", 3)
	v.SetDefault("contentful.circuit_breaker.interval", "60s")
	v.SetDefault("contentful.circuit_breaker.timeout", "30s")
	v.SetDefault("contentful.circuit_breaker.failure_ratio", 0.5)

	// Warm scheduler defaults
	v.SetDefault("warm.enabled", true)
	v.SetDefault("warm.interval", "10m")
	v.SetDefault("warm.on_startup", true)
	v.SetDefault("warm.timeout", "60s")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.list_ttl", "15m")
	v.SetDefault("cache.key_prefix", "vending-content")
}
