package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/goleak"

	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"), goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"))
}

func TestDial(t *testing.T) {
	cfg := config.LLMConfig{
		OpenAIBaseURL:    "https://api.openai.com",
		AnthropicBaseURL: "https://api.anthropic.com",
		OllamaBaseURL:    "http://localhost:11434",
	}

	tests := []struct {
		provider string
		wantErr  bool
	}{
		{provider: models.ProviderOpenAI},
		{provider: ""},
		{provider: models.ProviderAnthropic},
		{provider: models.ProviderCustom},
		{provider: "bedrock", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("provider_"+tt.provider, func(t *testing.T) {
			c, err := Dial(cfg, tt.provider, "key", http.DefaultClient)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("nil client")
			}
		})
	}
}

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotBody oaiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	c := &openAIClient{baseURL: srv.URL, apiKey: "sk-test", client: srv.Client()}
	out, err := c.Complete(context.Background(), Request{
		Model: "gpt-4o", Temperature: 0.7, MaxTokens: 1000,
		System: "be helpful", User: "write a bid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "generated text" {
		t.Errorf("text = %q", out.Text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o" || gotBody.MaxTokens != 1000 {
		t.Errorf("body = %+v", gotBody)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := &openAIClient{baseURL: srv.URL, apiKey: "k", client: srv.Client()}
	out, err := c.Complete(context.Background(), Request{Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "" {
		t.Errorf("text = %q, want empty", out.Text)
	}
}

func TestOpenAICompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Incorrect API key provided"},
		})
	}))
	defer srv.Close()

	c := &openAIClient{baseURL: srv.URL, apiKey: "bad", client: srv.Client()}
	_, err := c.Complete(context.Background(), Request{Model: "gpt-4o"})

	var sErr *StatusError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if sErr.StatusCode != http.StatusUnauthorized || sErr.Message != "Incorrect API key provided" {
		t.Errorf("status error = %+v", sErr)
	}
}

func TestOpenAICompleteErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := &openAIClient{baseURL: srv.URL, apiKey: "k", client: srv.Client()}
	_, err := c.Complete(context.Background(), Request{Model: "gpt-4o"})

	var sErr *StatusError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if sErr.Message != "OpenAI API error" {
		t.Errorf("message = %q", sErr.Message)
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody antRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "tool_use", "text": ""},
				{"type": "text", "text": "generated reply"},
			},
		})
	}))
	defer srv.Close()

	c := &anthropicClient{baseURL: srv.URL, apiKey: "sk-ant", client: srv.Client()}
	out, err := c.Complete(context.Background(), Request{
		Model: "claude-sonnet-4-20250514", Temperature: 0.5, MaxTokens: 500,
		System: "be brief", User: "answer this",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "generated reply" {
		t.Errorf("text = %q", out.Text)
	}
	if gotKey != "sk-ant" || gotVersion != anthropicVersion {
		t.Errorf("headers = %q %q", gotKey, gotVersion)
	}
	if gotBody.System != "be brief" {
		t.Errorf("system = %q", gotBody.System)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestAnthropicCompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "rate_limit_error", "message": "Rate limited"},
		})
	}))
	defer srv.Close()

	c := &anthropicClient{baseURL: srv.URL, apiKey: "k", client: srv.Client()}
	_, err := c.Complete(context.Background(), Request{Model: "claude-sonnet-4-20250514"})

	var sErr *StatusError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if sErr.StatusCode != http.StatusTooManyRequests || sErr.Message != "Rate limited" {
		t.Errorf("status error = %+v", sErr)
	}
}
