// Package config loads key term settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_key_terms/internal/adapters/source/azure"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey     = "KEYTERMS_API_KEY"
	EnvEndpoint   = "KEYTERMS_ENDPOINT"
	EnvDocumentID = "KEYTERMS_DOCUMENT_ID"
	EnvOutput     = "KEYTERMS_OUTPUT"
	EnvRedisAddr  = "KEYTERMS_REDIS_ADDR"
	EnvLogJSON    = "KEYTERMS_LOG_JSON"
)

var validate = validator.New()

// Config is the full application configuration.
type Config struct {
	Azure  AzureConfig  `yaml:"azure"`
	Output OutputConfig `yaml:"output"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// AzureConfig configures the key phrase service. The API key is checked
// when a client is built so offline commands can run without one.
type AzureConfig struct {
	APIKey     string        `yaml:"api_key"`
	Endpoint   string        `yaml:"endpoint" validate:"required,url"`
	Language   string        `yaml:"language" validate:"required"`
	DocumentID int           `yaml:"document_id" validate:"gte=1"`
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRetries int           `yaml:"max_retries" validate:"gte=0,lte=10"`
	RateLimit  float64       `yaml:"rate_limit" validate:"gt=0"`
	RateBurst  int           `yaml:"rate_burst" validate:"gte=1"`
}

// OutputConfig selects where sorted terms are written.
type OutputConfig struct {
	Path string `yaml:"path" validate:"required"`
	Dir  string `yaml:"dir"`
}

// RedisConfig enables the Redis sink when Addr is set.
type RedisConfig struct {
	Addr      string        `yaml:"addr" validate:"omitempty,hostname_port"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db" validate:"gte=0"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl" validate:"gte=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	JSON bool   `yaml:"json"`
	File string `yaml:"file"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Port         int           `yaml:"port" validate:"gte=1,lte=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
}

// Default returns the default configuration.
func Default() Config {
	az := azure.DefaultConfig()
	return Config{
		Azure: AzureConfig{
			Endpoint:   az.Endpoint,
			Language:   az.Language,
			DocumentID: az.DocumentID,
			Timeout:    az.Timeout,
			MaxRetries: az.MaxRetries,
			RateLimit:  az.RateLimit,
			RateBurst:  az.RateBurst,
		},
		Output: OutputConfig{
			Path: "sortedTerms.txt",
		},
		Redis: RedisConfig{
			KeyPrefix: "keyterms:",
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Load reads path (when not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIKey); ok {
		c.Azure.APIKey = v
	}
	if v, ok := lookup(EnvEndpoint); ok {
		c.Azure.Endpoint = v
	}
	if v, ok := lookup(EnvDocumentID); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDocumentID, err)
		}
		c.Azure.DocumentID = id
	}
	if v, ok := lookup(EnvOutput); ok {
		c.Output.Path = v
	}
	if v, ok := lookup(EnvRedisAddr); ok {
		c.Redis.Addr = v
	}
	if v, ok := lookup(EnvLogJSON); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogJSON, err)
		}
		c.Log.JSON = b
	}
	return nil
}

// Validate checks the configuration against its field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AzureClient converts the Azure section into a client configuration.
func (c Config) AzureClient() azure.Config {
	az := azure.DefaultConfig()
	az.APIKey = c.Azure.APIKey
	az.Endpoint = c.Azure.Endpoint
	az.Language = c.Azure.Language
	az.DocumentID = c.Azure.DocumentID
	az.Timeout = c.Azure.Timeout
	az.MaxRetries = c.Azure.MaxRetries
	az.RateLimit = c.Azure.RateLimit
	az.RateBurst = c.Azure.RateBurst
	return az
}
