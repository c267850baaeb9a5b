package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Scrape.PrimaryBudget != 8000 || cfg.Scrape.FallbackBudget != 6000 {
		t.Errorf("budgets = %d/%d, want 8000/6000", cfg.Scrape.PrimaryBudget, cfg.Scrape.FallbackBudget)
	}
	if cfg.Agent.MaxIterations != 20 {
		t.Errorf("MaxIterations = %d, want 20", cfg.Agent.MaxIterations)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "webscout.yaml")
	yamlBody := `
provider:
  base_url: http://yaml-host:9000/v1/
  model: yaml-model
scrape:
  timeout: 3s
  primary_budget: 500
agent:
  max_iterations: 4
`
	if err := os.WriteFile(yamlPath, []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}

	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("WEBSCOUT_MODEL=env-file-model\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEBSCOUT_MAX_ITERATIONS", "7")
	// godotenv.Load sets variables for the rest of the process.
	t.Cleanup(func() { os.Unsetenv("WEBSCOUT_MODEL") })

	cfg, err := Load(yamlPath, envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.BaseURL != "http://yaml-host:9000/v1" {
		t.Errorf("BaseURL = %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.Model != "env-file-model" {
		t.Errorf("Model = %q, want value from .env", cfg.Provider.Model)
	}
	if cfg.Agent.MaxIterations != 7 {
		t.Errorf("MaxIterations = %d, want process env override", cfg.Agent.MaxIterations)
	}
	if cfg.Scrape.Timeout != 3*time.Second || cfg.Scrape.PrimaryBudget != 500 {
		t.Errorf("scrape = %+v", cfg.Scrape)
	}
	if cfg.Scrape.FallbackBudget != DefaultFallbackBudget {
		t.Errorf("unset YAML keys should keep defaults, got %d", cfg.Scrape.FallbackBudget)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("WEBSCOUT_SCRAPE_TIMEOUT", "soon")
	_, err := Load("", "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                             DefaultBaseURL,
		"  http://localhost:8080/v1/ ": "http://localhost:8080/v1",
		"https://api.example.com/v1/chat/completions": "https://api.example.com/v1",
		"http://localhost:11434":                      "http://localhost:11434/v1",
		"https://api.deepseek.com/":                   "https://api.deepseek.com/v1",
		"https://gateway.example.com/v1/openai":       "https://gateway.example.com/v1/openai",
	}
	for in, want := range tests {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base url", func(c *Config) { c.Provider.BaseURL = "localhost:8080" }},
		{"empty model", func(c *Config) { c.Provider.Model = "" }},
		{"zero budget", func(c *Config) { c.Scrape.PrimaryBudget = 0 }},
		{"negative timeout", func(c *Config) { c.Scrape.Timeout = -time.Second }},
		{"zero iterations", func(c *Config) { c.Agent.MaxIterations = 0 }},
		{"zero model timeout", func(c *Config) { c.Model.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Model.Retries = -1 }},
		{"unknown backend", func(c *Config) { c.Search.Backend = "altavista" }},
		{"brave without key", func(c *Config) { c.Search.Backend = "brave" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
