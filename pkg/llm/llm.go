// Package llm exposes a minimal chat-completion boundary: one request shape,
// one response shape, and a client per configured provider. Callers never
// depend on provider features beyond "send system+user, read back text".
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/models"
)

// Request is a single chat-style completion request.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int
	System      string
	User        string
}

// Completion holds the first returned completion's text. Text is empty when
// the provider returned no choices.
type Completion struct {
	Text string
}

// Client is the narrow contract the generation pipeline consumes.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// StatusError carries the HTTP status and message surfaced by a provider.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return e.Message
}

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/llm. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Dial returns a Client for the provider identifier stored in AI settings.
// The "custom" provider talks to an Ollama endpoint; the others are raw HTTP
// clients for the OpenAI and Anthropic APIs.
func Dial(cfg config.LLMConfig, provider, apiKey string, httpClient *http.Client) (Client, error) {
	if httpClient == nil {
		httpClient = defaultHTTPClient(cfg.Timeout)
	}

	switch provider {
	case models.ProviderOpenAI, "":
		return &openAIClient{baseURL: cfg.OpenAIBaseURL, apiKey: apiKey, client: httpClient}, nil
	case models.ProviderAnthropic:
		return &anthropicClient{baseURL: cfg.AnthropicBaseURL, apiKey: apiKey, client: httpClient}, nil
	case models.ProviderCustom:
		return newOllamaClient(cfg.OllamaBaseURL, httpClient)
	}

	return nil, fmt.Errorf("unknown provider %q", provider)
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
