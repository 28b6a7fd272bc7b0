package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	LLM           LLMConfig     `yaml:"llm"`
	Marketplace   Marketplace   `yaml:"marketplace"`
}

// LLMConfig holds the provider endpoints and the generation defaults applied
// when an account's AI settings leave a field unset.
type LLMConfig struct {
	OpenAIBaseURL    string        `yaml:"openai_base_url"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url"`
	OllamaBaseURL    string        `yaml:"ollama_base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	DefaultModel     string        `yaml:"default_model"`
	DefaultTemp      float64       `yaml:"default_temperature"`
	DefaultMaxTokens int           `yaml:"default_max_tokens"`
	ReplyMaxTokens   int           `yaml:"reply_max_tokens"`
}

// Marketplace holds the Freelancer API endpoints. The access token is never
// configured here; it travels with each request.
type Marketplace struct {
	BaseURL        string        `yaml:"base_url"`
	SandboxBaseURL string        `yaml:"sandbox_base_url"`
	Timeout        time.Duration `yaml:"timeout"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("GIGBID_ADDR", ":8080"),
		JWTSecret:     getEnv("GIGBID_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("GIGBID_DATABASE_PATH", "gigbid.db"),
		TokenDuration: 1 * time.Hour,
		LLM: LLMConfig{
			OpenAIBaseURL:    getEnv("GIGBID_OPENAI_BASE_URL", "https://api.openai.com"),
			AnthropicBaseURL: getEnv("GIGBID_ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			OllamaBaseURL:    getEnv("GIGBID_OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:          60 * time.Second,
			DefaultModel:     "gpt-4o",
			DefaultTemp:      0.7,
			DefaultMaxTokens: 1000,
			ReplyMaxTokens:   500,
		},
		Marketplace: Marketplace{
			BaseURL:        getEnv("GIGBID_MARKETPLACE_BASE_URL", "https://www.freelancer.com/api"),
			SandboxBaseURL: getEnv("GIGBID_MARKETPLACE_SANDBOX_URL", "https://www.freelancer-sandbox.com/api"),
			Timeout:        30 * time.Second,
		},
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures. The insecure default JWT secret is only tolerated when
// GIGBID_ENV is "development" (or unset).
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}

	env := getEnv("GIGBID_ENV", "development")
	if env != "development" && c.JWTSecret == insecureJWTSecret {
		return fmt.Errorf("jwt_secret must be set in %s environment", env)
	}

	// populate generation defaults if a config file zeroed them
	if c.LLM.DefaultModel == "" {
		c.LLM.DefaultModel = "gpt-4o"
	}
	if c.LLM.DefaultTemp <= 0 {
		c.LLM.DefaultTemp = 0.7
	}
	if c.LLM.DefaultMaxTokens <= 0 {
		c.LLM.DefaultMaxTokens = 1000
	}
	if c.LLM.ReplyMaxTokens <= 0 {
		c.LLM.ReplyMaxTokens = 500
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.Marketplace.Timeout <= 0 {
		c.Marketplace.Timeout = 30 * time.Second
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
