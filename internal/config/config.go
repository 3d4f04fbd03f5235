// Package config loads fmp-mcp configuration with priority:
// defaults -> TOML file -> environment.
package config

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/fmp-mcp/internal/common"
)

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port string `toml:"port"`
}

// FMPConfig holds Financial Modeling Prep API settings.
type FMPConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the upstream request timeout.
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Config holds all fmp-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	FMP     FMPConfig            `toml:"fmp"`
	Logging common.LoggingConfig `toml:"logging"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "FMP Stock Data",
			Host: "0.0.0.0",
			Port: "8000",
		},
		FMP: FMPConfig{
			BaseURL: "https://financialmodelingprep.com/api/v3",
			Timeout: "30s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/fmp-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from a TOML file with defaults and env overrides.
// A missing config file is not an error — defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("FMP_API_KEY"); key != "" {
		cfg.FMP.APIKey = key
	}
	if base := os.Getenv("FMP_BASE_URL"); base != "" {
		cfg.FMP.BaseURL = base
	}
	if timeout := os.Getenv("FMP_TIMEOUT"); timeout != "" {
		cfg.FMP.Timeout = timeout
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if host := os.Getenv("FMP_MCP_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if level := os.Getenv("FMP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("FMP_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
}
