package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Server.Port)
	}
	if cfg.FMP.BaseURL != "https://financialmodelingprep.com/api/v3" {
		t.Errorf("Unexpected default base URL: %s", cfg.FMP.BaseURL)
	}
	if cfg.FMP.GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", cfg.FMP.GetTimeout())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults, got %v", err)
	}
	if cfg.Server.Name != "FMP Stock Data" {
		t.Errorf("Expected default server name, got %s", cfg.Server.Name)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmp-mcp.toml")
	content := `
[server]
port = "9000"

[fmp]
api_key = "file-key"
timeout = "5s"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port 9000 from file, got %s", cfg.Server.Port)
	}
	if cfg.FMP.APIKey != "file-key" {
		t.Errorf("Expected api key from file, got %q", cfg.FMP.APIKey)
	}
	if cfg.FMP.GetTimeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.FMP.GetTimeout())
	}
	// Defaults survive partial files
	if cfg.FMP.BaseURL != "https://financialmodelingprep.com/api/v3" {
		t.Errorf("Expected default base URL to survive, got %s", cfg.FMP.BaseURL)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FMP_API_KEY", "env-key")
	t.Setenv("PORT", "4444")
	t.Setenv("FMP_BASE_URL", "http://localhost:9999/api/v3")
	t.Setenv("FMP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.FMP.APIKey != "env-key" {
		t.Errorf("Expected FMP_API_KEY override, got %q", cfg.FMP.APIKey)
	}
	if cfg.Server.Port != "4444" {
		t.Errorf("Expected PORT override, got %s", cfg.Server.Port)
	}
	if cfg.FMP.BaseURL != "http://localhost:9999/api/v3" {
		t.Errorf("Expected FMP_BASE_URL override, got %s", cfg.FMP.BaseURL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected FMP_LOG_LEVEL override, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmp-mcp.toml")
	if err := os.WriteFile(path, []byte("[fmp]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FMP_API_KEY", "env-wins")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.FMP.APIKey != "env-wins" {
		t.Errorf("Expected env to override file, got %q", cfg.FMP.APIKey)
	}
}

func TestGetTimeout_Invalid(t *testing.T) {
	c := FMPConfig{Timeout: "not-a-duration"}
	if c.GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s fallback for invalid duration, got %v", c.GetTimeout())
	}
}
