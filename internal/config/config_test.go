package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.DatabasePath != "gigbid.db" {
		t.Errorf("database path = %q", cfg.DatabasePath)
	}
	if cfg.LLM.DefaultModel != "gpt-4o" || cfg.LLM.DefaultTemp != 0.7 {
		t.Errorf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.LLM.DefaultMaxTokens != 1000 || cfg.LLM.ReplyMaxTokens != 500 {
		t.Errorf("token defaults = %+v", cfg.LLM)
	}
	if cfg.Marketplace.BaseURL != "https://www.freelancer.com/api" {
		t.Errorf("marketplace base = %q", cfg.Marketplace.BaseURL)
	}
	if cfg.Marketplace.SandboxBaseURL != "https://www.freelancer-sandbox.com/api" {
		t.Errorf("marketplace sandbox = %q", cfg.Marketplace.SandboxBaseURL)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GIGBID_ADDR", ":9191")
	t.Setenv("GIGBID_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("GIGBID_OPENAI_BASE_URL", "http://localhost:8081")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9191" || cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.LLM.OpenAIBaseURL != "http://localhost:8081" {
		t.Errorf("openai base = %q", cfg.LLM.OpenAIBaseURL)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("addr: \":7777\"\njwt_secret: filesecret\nllm:\n  default_model: gpt-4o-mini\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7777" || cfg.JWTSecret != "filesecret" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLM.DefaultModel != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.LLM.DefaultModel)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, _ := LoadConfig("")
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		t.Setenv("GIGBID_ENV", "development")
		if err := base().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("insecure secret rejected in production", func(t *testing.T) {
		t.Setenv("GIGBID_ENV", "production")
		if err := base().Validate(); err == nil {
			t.Fatal("expected error for default jwt secret in production")
		}
	})

	t.Run("explicit secret passes in production", func(t *testing.T) {
		t.Setenv("GIGBID_ENV", "production")
		cfg := base()
		cfg.JWTSecret = "properly-random-secret"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty addr rejected", func(t *testing.T) {
		cfg := base()
		cfg.Addr = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for empty addr")
		}
	})

	t.Run("zeroed generation defaults repopulated", func(t *testing.T) {
		t.Setenv("GIGBID_ENV", "development")
		cfg := base()
		cfg.LLM = LLMConfig{}
		cfg.Marketplace.Timeout = 0
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LLM.DefaultModel != "gpt-4o" || cfg.LLM.DefaultMaxTokens != 1000 || cfg.LLM.ReplyMaxTokens != 500 {
			t.Errorf("defaults not repopulated: %+v", cfg.LLM)
		}
		if cfg.LLM.Timeout != 60*time.Second || cfg.Marketplace.Timeout != 30*time.Second {
			t.Errorf("timeouts not repopulated: %+v", cfg)
		}
	})
}
