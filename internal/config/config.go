package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address string `yaml:"address"`
		Port    string `yaml:"port"`
	} `yaml:"http"`

	// Database settings
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`

	// Admin settings
	Admin struct {
		Secret string `yaml:"secret"`
	} `yaml:"admin"`

	// News settings
	News struct {
		TickerURL string        `yaml:"ticker_url"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"news"`

	// Assistant backend settings
	Assistant struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"assistant"`

	// Logging settings
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTP.Address == "" {
		errors = append(errors, "HTTP address is required")
	}
	if c.HTTP.Port == "" {
		errors = append(errors, "HTTP port is required")
	}

	if c.DB.Path == "" {
		errors = append(errors, "Database path is required")
	}

	if c.News.CacheTTL <= 0 {
		errors = append(errors, "News cache TTL must be positive")
	}

	// The assistant backend is optional, but an API key without a base URL
	// points at a misconfigured deployment.
	if c.Assistant.BaseURL == "" && c.Assistant.APIKey != "" {
		errors = append(errors, "Assistant API key set without a base URL")
	}

	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errors = append(errors, fmt.Sprintf("Invalid log level: %s", c.Log.Level))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// LogLevel returns the configured level as a slog.Level. Call Validate first;
// unknown values fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8080"

	cfg.DB.Path = "italiantv.db"

	cfg.Admin.Secret = "" // No default: an empty secret disables admin access

	cfg.News.TickerURL = ""
	cfg.News.CacheTTL = 5 * time.Minute

	cfg.Assistant.BaseURL = ""
	cfg.Assistant.APIKey = ""

	cfg.Log.Level = "INFO"

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads configuration from a file (if provided) and applies environment variable overrides
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	// Try to load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// File doesn't exist, use defaults
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}

	if val := os.Getenv("DB_PATH"); val != "" {
		cfg.DB.Path = val
	}

	if val := os.Getenv("ADMIN_SECRET"); val != "" {
		cfg.Admin.Secret = val
	}

	if val := os.Getenv("NEWS_TICKER_URL"); val != "" {
		cfg.News.TickerURL = val
	}
	if val := os.Getenv("NEWS_CACHE_TTL"); val != "" {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid NEWS_CACHE_TTL format (expected duration like '5m', '1h'): %w", err)
		}
		if duration <= 0 {
			return fmt.Errorf("NEWS_CACHE_TTL must be positive, got: %s", val)
		}
		cfg.News.CacheTTL = duration
	}

	if val := os.Getenv("ASSISTANT_BASE_URL"); val != "" {
		cfg.Assistant.BaseURL = val
	}
	if val := os.Getenv("ASSISTANT_API_KEY"); val != "" {
		cfg.Assistant.APIKey = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}

	return nil
}
