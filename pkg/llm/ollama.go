package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// ollamaClient serves the "custom" provider: a self-hosted Ollama endpoint
// spoken through the official API client. The chat response is collected into
// a single string; streaming is disabled.
type ollamaClient struct {
	api *api.Client
}

func newOllamaClient(baseURL string, httpClient *http.Client) (*ollamaClient, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}

	return &ollamaClient{api: api.NewClient(u, httpClient)}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, req Request) (Completion, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model: req.Model,
		Messages: []api.Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	var text strings.Builder
	start := time.Now()
	err := c.api.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		text.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		var sErr api.StatusError
		if errors.As(err, &sErr) {
			return Completion{}, &StatusError{StatusCode: sErr.StatusCode, Message: sErr.ErrorMessage}
		}
		return Completion{}, fmt.Errorf("ollama chat: %w", err)
	}

	logger.Info("llm: ollama completion",
		slog.String("model", req.Model),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()))

	return Completion{Text: text.String()}, nil
}
