package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const anthropicVersion = "2023-06-01"

// anthropicClient calls the Anthropic messages endpoint directly.
type anthropicClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type antMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type antRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	System      string       `json:"system,omitempty"`
	Messages    []antMessage `json:"messages"`
}

type antResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type antErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *anthropicClient) Complete(ctx context.Context, req Request) (Completion, error) {
	body, err := json.Marshal(antRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages:    []antMessage{{Role: "user", Content: req.User}},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Completion{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eresp antErrorResponse
		msg := "Anthropic API error"
		if json.Unmarshal(data, &eresp) == nil && eresp.Error.Message != "" {
			msg = eresp.Error.Message
		}
		return Completion{}, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	var out antResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return Completion{}, fmt.Errorf("decode response: %w", err)
	}

	text := ""
	for _, block := range out.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	logger.Info("llm: anthropic completion",
		slog.String("model", req.Model),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()))

	return Completion{Text: text}, nil
}
