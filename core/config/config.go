package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultBaseURL        = "http://127.0.0.1:8080/v1"
	DefaultModel          = "llama-3.1-8b-instruct"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultPrimaryBudget  = 8000
	DefaultFallbackBudget = 6000
	DefaultMaxIterations  = 20
)

// DefaultSystemPrompt steers the model towards the search, scrape, answer
// sequence and forbids inventing content when sources fail.
const DefaultSystemPrompt = `You are an expert helpful research assistant with access to two tools.

- search_web finds candidate pages for a query and returns titles, URLs and snippets.
- scrape_url downloads one page and returns its main textual content.

Search first, inspect the snippets, then scrape the most promising URL before answering.
If a page fails to load, try another result. If no source can be retrieved, say that the
information could not be retrieved instead of inventing it.
Always give a final answer after using tools, and cite the URLs you relied on.`

type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Search   SearchConfig   `yaml:"search"`
	Agent    AgentConfig    `yaml:"agent"`
	Model    ModelConfig    `yaml:"model"`
	Log      LogConfig      `yaml:"log"`
}

// ProviderConfig describes the OpenAI-compatible model backend.
type ProviderConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type ScrapeConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	PrimaryBudget  int           `yaml:"primary_budget"`
	FallbackBudget int           `yaml:"fallback_budget"`
}

type SearchConfig struct {
	// Backend is "duckduckgo" (no key required) or "brave".
	Backend    string        `yaml:"backend"`
	APIKey     string        `yaml:"api_key"`
	MaxResults int           `yaml:"max_results"`
	Timeout    time.Duration `yaml:"timeout"`
}

type AgentConfig struct {
	MaxIterations int    `yaml:"max_iterations"`
	SystemPrompt  string `yaml:"system_prompt"`
	ParallelTools bool   `yaml:"parallel_tools"`
}

// ModelConfig controls how model calls are bounded and retried.
type ModelConfig struct {
	Timeout        time.Duration `yaml:"timeout"` // per attempt
	Retries        int           `yaml:"retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			BaseURL:     DefaultBaseURL,
			Model:       DefaultModel,
			Temperature: 0.7,
			TopP:        0.95,
			MaxTokens:   4096,
		},
		Scrape: ScrapeConfig{
			Timeout:        10 * time.Second,
			UserAgent:      DefaultUserAgent,
			MaxBodyBytes:   10 << 20,
			PrimaryBudget:  DefaultPrimaryBudget,
			FallbackBudget: DefaultFallbackBudget,
		},
		Search: SearchConfig{
			Backend:    "duckduckgo",
			MaxResults: 5,
			Timeout:    15 * time.Second,
		},
		Agent: AgentConfig{
			MaxIterations: DefaultMaxIterations,
			SystemPrompt:  DefaultSystemPrompt,
			ParallelTools: true,
		},
		Model: ModelConfig{
			Timeout:        2 * time.Minute,
			Retries:        3,
			InitialBackoff: time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path and the .env
// file at envFile, then applies process environment overrides. Empty paths
// are skipped. A missing envFile is not an error, so a default ".env" can be
// passed unconditionally.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	cfg.Provider.BaseURL = NormalizeBaseURL(cfg.Provider.BaseURL)

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v, ok := lookup(key); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	str(&c.Provider.BaseURL, "WEBSCOUT_BASE_URL", "OPENAI_BASE_URL")
	str(&c.Provider.Model, "WEBSCOUT_MODEL", "OPENAI_MODEL")
	str(&c.Provider.APIKey, "WEBSCOUT_API_KEY", "OPENAI_API_KEY")
	str(&c.Search.Backend, "WEBSCOUT_SEARCH_BACKEND")
	str(&c.Search.APIKey, "WEBSCOUT_SEARCH_API_KEY", "BRAVE_SEARCH_API_KEY")
	str(&c.Scrape.UserAgent, "WEBSCOUT_USER_AGENT")
	str(&c.Log.Level, "WEBSCOUT_LOG_LEVEL", "LOG_LEVEL")
	str(&c.Log.Format, "WEBSCOUT_LOG_FORMAT", "LOG_FORMAT")

	if v, ok := lookup("WEBSCOUT_MAX_ITERATIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WEBSCOUT_MAX_ITERATIONS=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Agent.MaxIterations = n
	}
	if v, ok := lookup("WEBSCOUT_SCRAPE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: WEBSCOUT_SCRAPE_TIMEOUT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Scrape.Timeout = d
	}
	return nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and strips a
// trailing /chat/completions, so both "http://host/v1" and
// "http://host/v1/chat/completions" name the same backend. A bare host gets
// "/v1" appended, the path Ollama and most OpenAI-compatible gateways serve.
// An empty value selects the local llama.cpp server.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")
	base = strings.TrimSuffix(base, "/chat/completions")
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/v1") && !strings.Contains(base, "/v1/") {
		base += "/v1"
	}
	return base
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	u, err := url.Parse(c.Provider.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: provider.base_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.Provider.BaseURL)
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("%w: provider.model is required", ErrInvalidConfig)
	}

	positive := []struct {
		name  string
		value int64
	}{
		{"scrape.timeout", int64(c.Scrape.Timeout)},
		{"scrape.max_body_bytes", c.Scrape.MaxBodyBytes},
		{"scrape.primary_budget", int64(c.Scrape.PrimaryBudget)},
		{"scrape.fallback_budget", int64(c.Scrape.FallbackBudget)},
		{"search.max_results", int64(c.Search.MaxResults)},
		{"agent.max_iterations", int64(c.Agent.MaxIterations)},
		{"model.timeout", int64(c.Model.Timeout)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, p.name)
		}
	}

	if c.Model.Retries < 0 {
		return fmt.Errorf("%w: model.retries cannot be negative", ErrInvalidConfig)
	}

	switch c.Search.Backend {
	case "duckduckgo":
	case "brave":
		if c.Search.APIKey == "" {
			return fmt.Errorf("%w: search.api_key is required for the brave backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown search.backend %q", ErrInvalidConfig, c.Search.Backend)
	}

	return nil
}
