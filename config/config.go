package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	LLM     LLMConfig
	Cache   CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog snapshot configuration
type CatalogConfig struct {
	CSVPath    string              `mapstructure:"csv_path"`
	Expansions map[string][]string `mapstructure:"expansions"`
}

// LLMConfig holds completion service configuration. An empty APIKey is
// valid and puts the whole system into local-only mode.
type LLMConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	DailyLimit    int           `mapstructure:"daily_limit"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxTokens     int64         `mapstructure:"max_tokens"`
	MaxIterations int           `mapstructure:"max_iterations"`
}

// CacheConfig holds query-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/budgeteer/")

	v.SetEnvPrefix("BUDGETEER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("catalog.csv_path", "data/sample_data.csv")

	// Empty default registers the key so the env override is visible to
	// Unmarshal; an empty key means local-only mode.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.daily_limit", 50)
	v.SetDefault("llm.timeout", "15s")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.max_iterations", 3)

	v.SetDefault("cache.ttl", "1h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.CSVPath == "" {
		return fmt.Errorf("catalog CSV path is required (set BUDGETEER_CATALOG_CSV_PATH)")
	}

	if config.LLM.DailyLimit < 0 {
		return fmt.Errorf("LLM daily limit must not be negative, got: %d", config.LLM.DailyLimit)
	}

	if config.LLM.MaxIterations < 1 {
		return fmt.Errorf("LLM max iterations must be at least 1, got: %d", config.LLM.MaxIterations)
	}

	return nil
}
