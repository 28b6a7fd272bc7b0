// Package bidgen orchestrates bid, answer, and reply generation: it checks
// preconditions, renders the prompt, calls the configured model provider, and
// post-processes the raw output. It holds no state between calls; the caller
// supplies the account's settings and profile on every request.
package bidgen

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/internal/prompt"
	"github.com/gigbid/server/pkg/llm"
)

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by internal/bidgen. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// DialFunc resolves a provider identifier and API key to a model client.
type DialFunc func(provider, apiKey string) (llm.Client, error)

// Engine runs the generation pipeline. The zero value is not usable; build
// one with New.
type Engine struct {
	cfg  config.LLMConfig
	dial DialFunc
}

func New(cfg config.LLMConfig) *Engine {
	return &Engine{
		cfg: cfg,
		dial: func(provider, apiKey string) (llm.Client, error) {
			return llm.Dial(cfg, provider, apiKey, nil)
		},
	}
}

// WithDialer replaces the provider dialer. Used by tests to substitute a
// fake client.
func (e *Engine) WithDialer(d DialFunc) *Engine {
	e.dial = d
	return e
}

// GenerateBid produces a cleaned initial bid for a project. Fails before any
// external call when the API key is missing or the proposal is empty.
func (e *Engine) GenerateBid(ctx context.Context, settings models.AISettings, profile models.Profile, projectTitle, proposal string) (string, error) {
	if settings.APIKey == "" {
		return "", configError("API key not configured. Please add your API key in Settings.")
	}
	if strings.TrimSpace(proposal) == "" {
		return "", validationError("Proposal is required")
	}

	out, err := e.complete(ctx, settings, llm.Request{
		Model:       e.model(settings),
		Temperature: e.temperature(settings),
		MaxTokens:   e.maxTokens(settings, e.cfg.DefaultMaxTokens),
		System:      prompt.BidSystem,
		User:        prompt.Bid(projectTitle, proposal, profile),
	})
	if err != nil {
		return "", err
	}

	logger.Info("bidgen: bid generated",
		slog.String("provider", providerName(settings)),
		slog.Int("length", len(out)))

	return CleanText(out), nil
}

// GenerateAnswers answers a project's screening questions one at a time, in
// order, stopping at the first failure. When single is non-nil only that
// question is answered. Answer text is trimmed but never quote-stripped, so
// quoted phrasing survives into screening answers.
func (e *Engine) GenerateAnswers(ctx context.Context, settings models.AISettings, profile models.Profile, project models.MarketProject, single *models.ProjectQuestion) ([]models.GeneratedAnswer, error) {
	if settings.APIKey == "" {
		return nil, configError("API key not configured. Please add your API key in Settings.")
	}

	questions := project.Questions
	if single != nil {
		questions = []models.ProjectQuestion{*single}
	}
	if len(questions) == 0 {
		return []models.GeneratedAnswer{}, nil
	}

	system := prompt.AnswerSystem
	if settings.SystemPrompt != "" {
		system = settings.SystemPrompt
	}

	answers := make([]models.GeneratedAnswer, 0, len(questions))
	for _, q := range questions {
		out, err := e.complete(ctx, settings, llm.Request{
			Model:       e.model(settings),
			Temperature: e.temperature(settings),
			MaxTokens:   e.maxTokens(settings, e.cfg.DefaultMaxTokens),
			System:      system,
			User:        prompt.Answer(project, q, profile),
		})
		if err != nil {
			return nil, err
		}

		answer := strings.TrimSpace(out)
		answers = append(answers, models.GeneratedAnswer{
			QuestionID:  q.ID,
			Question:    q.Question,
			Answer:      answer,
			Confidence:  Confidence(answer, profile),
			Suggestions: Suggestions(answer, profile),
		})
	}

	logger.Info("bidgen: answers generated",
		slog.String("provider", providerName(settings)),
		slog.Int("count", len(answers)))

	return answers, nil
}

// GenerateReply produces a cleaned conversational reply to the client's
// latest message. The reply token budget is smaller than the bid budget
// unless the account's settings override it.
func (e *Engine) GenerateReply(ctx context.Context, settings models.AISettings, profile models.Profile, projectTitle, proposal, initialBid, clientMessage string, history []models.Message) (string, error) {
	if settings.APIKey == "" {
		return "", configError("API key not configured. Please add your API key in Settings.")
	}
	if strings.TrimSpace(clientMessage) == "" {
		return "", validationError("Client message is required")
	}

	out, err := e.complete(ctx, settings, llm.Request{
		Model:       e.model(settings),
		Temperature: e.temperature(settings),
		MaxTokens:   e.maxTokens(settings, e.cfg.ReplyMaxTokens),
		System:      prompt.ReplySystem,
		User:        prompt.Reply(projectTitle, proposal, initialBid, clientMessage, history, profile),
	})
	if err != nil {
		return "", err
	}

	logger.Info("bidgen: reply generated",
		slog.String("provider", providerName(settings)),
		slog.Int("length", len(out)))

	return CleanText(out), nil
}

// complete dials the provider and runs one completion, classifying any
// failure into the error taxonomy.
func (e *Engine) complete(ctx context.Context, settings models.AISettings, req llm.Request) (string, error) {
	client, err := e.dial(settings.Provider, settings.APIKey)
	if err != nil {
		return "", &Error{Kind: KindInternal, Message: err.Error()}
	}

	out, err := client.Complete(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	return out.Text, nil
}

func classify(err error) *Error {
	var sErr *llm.StatusError
	if errors.As(err, &sErr) {
		return &Error{Kind: KindProvider, Status: sErr.StatusCode, Message: sErr.Message}
	}

	msg := err.Error()
	if msg == "" {
		msg = "Unknown error occurred"
	}
	return &Error{Kind: KindInternal, Message: msg}
}

func (e *Engine) model(s models.AISettings) string {
	if s.Model != "" {
		return s.Model
	}
	return e.cfg.DefaultModel
}

func (e *Engine) temperature(s models.AISettings) float64 {
	if s.Temperature > 0 {
		return s.Temperature
	}
	return e.cfg.DefaultTemp
}

func (e *Engine) maxTokens(s models.AISettings, def int) int {
	if s.MaxTokens > 0 {
		return s.MaxTokens
	}
	return def
}

func providerName(s models.AISettings) string {
	if s.Provider == "" {
		return models.ProviderOpenAI
	}
	return s.Provider
}
