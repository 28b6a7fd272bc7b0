package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gigbid/server/api"
	"github.com/gigbid/server/internal/bidgen"
	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/pkg/llm"
	"github.com/gigbid/server/pkg/repository/mock"
)

type scriptedClient struct {
	requests []llm.Request
	reply    string
	err      error
}

func (c *scriptedClient) Complete(_ context.Context, req llm.Request) (llm.Completion, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return llm.Completion{}, c.err
	}
	return llm.Completion{Text: c.reply}, nil
}

func generateSetup(client *scriptedClient) (*api.GenerateHandler, *mock.Mocks) {
	cfg := config.LLMConfig{DefaultModel: "gpt-4o", DefaultTemp: 0.7, DefaultMaxTokens: 1000, ReplyMaxTokens: 500}
	engine := bidgen.New(cfg).WithDialer(func(provider, apiKey string) (llm.Client, error) {
		return client, nil
	})

	mocks := mock.NewMocks()
	mocks.Profiles.Stored = &models.Profile{ID: 1, AccountID: 1, Name: "Ada", Skills: []string{"Go"}}
	mocks.Settings.Stored = &models.AISettings{ID: 1, AccountID: 1, Provider: models.ProviderOpenAI, APIKey: "sk-test"}

	h := api.NewGenerateHandler(engine, mocks.Profiles, mocks.Settings, mocks.Projects, mocks.Messages)
	return h, mocks
}

func TestGenerateBidEndpoint(t *testing.T) {
	client := &scriptedClient{reply: `"👋 Ready to build this."`}
	h, _ := generateSetup(client)

	w := httptest.NewRecorder()
	h.GenerateBid(w, authedRequest(http.MethodPost, "/v1/generate/bid", map[string]string{
		"project_title": "Build an app",
		"proposal":      "Need a mobile app",
	}, 1))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["bid"] != "👋 Ready to build this." {
		t.Errorf("bid = %q", resp["bid"])
	}

	if len(client.requests) != 1 || !strings.Contains(client.requests[0].User, "Need a mobile app") {
		t.Errorf("prompt did not carry the proposal")
	}
}

func TestGenerateBidMissingKey(t *testing.T) {
	client := &scriptedClient{reply: "unused"}
	h, mocks := generateSetup(client)
	mocks.Settings.Stored.APIKey = ""

	w := httptest.NewRecorder()
	h.GenerateBid(w, authedRequest(http.MethodPost, "/v1/generate/bid", map[string]string{
		"project_title": "T",
		"proposal":      "P",
	}, 1))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(client.requests) != 0 {
		t.Error("no provider call may happen without an API key")
	}
	if !strings.Contains(w.Body.String(), "API key") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGenerateBidProviderStatusPassthrough(t *testing.T) {
	client := &scriptedClient{err: &llm.StatusError{StatusCode: 429, Message: "Rate limit exceeded"}}
	h, _ := generateSetup(client)

	w := httptest.NewRecorder()
	h.GenerateBid(w, authedRequest(http.MethodPost, "/v1/generate/bid", map[string]string{
		"project_title": "T",
		"proposal":      "P",
	}, 1))

	if w.Code != 429 {
		t.Fatalf("status = %d, want carried 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGenerateAnswersEndpoint(t *testing.T) {
	client := &scriptedClient{reply: "I have shipped several Go services."}
	h, _ := generateSetup(client)

	w := httptest.NewRecorder()
	h.GenerateAnswers(w, authedRequest(http.MethodPost, "/v1/generate/answers", map[string]any{
		"project": map[string]any{
			"id":    "55",
			"title": "Dashboard",
			"questions": []map[string]any{
				{"id": "q1", "question": "Experience?"},
				{"id": "q2", "question": "Timeline?"},
			},
		},
	}, 1))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Answers []models.GeneratedAnswer `json:"answers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Answers) != 2 {
		t.Fatalf("answers = %d", len(resp.Answers))
	}
	for _, a := range resp.Answers {
		if a.Confidence < 0.70 || a.Confidence > 0.95 {
			t.Errorf("confidence %v out of range", a.Confidence)
		}
	}
}

func TestGenerateReplyEndpointAppendsExchange(t *testing.T) {
	client := &scriptedClient{reply: `"Happy to discuss the budget."`}
	h, mocks := generateSetup(client)
	mocks.Projects.Projects = []models.Project{{ID: "p1", AccountID: 1, Title: "App"}}
	mocks.Messages.Messages = []models.Message{
		{ID: "m1", ProjectID: "p1", Type: models.MessageProposal, Content: "the proposal"},
		{ID: "m2", ProjectID: "p1", Type: models.MessageBid, Content: "the bid"},
	}

	w := httptest.NewRecorder()
	h.GenerateReply(w, authedRequest(http.MethodPost, "/v1/generate/reply", map[string]string{
		"project_id":     "p1",
		"client_message": "What about the budget?",
	}, 1))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["reply"] != "Happy to discuss the budget." {
		t.Errorf("reply = %q", resp["reply"])
	}

	// prompt carried proposal, bid, and the client message
	user := client.requests[0].User
	for _, want := range []string{"the proposal", "the bid", "What about the budget?"} {
		if !strings.Contains(user, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// conversation log gained client then me
	msgs := mocks.Messages.Messages
	if len(msgs) != 4 {
		t.Fatalf("stored %d messages, want 4", len(msgs))
	}
	if msgs[2].Type != models.MessageClient || msgs[2].Content != "What about the budget?" {
		t.Errorf("msg[2] = %+v", msgs[2])
	}
	if msgs[3].Type != models.MessageMe || msgs[3].Content != "Happy to discuss the budget." {
		t.Errorf("msg[3] = %+v", msgs[3])
	}
}

func TestGenerateReplyUnknownProject(t *testing.T) {
	client := &scriptedClient{reply: "unused"}
	h, _ := generateSetup(client)

	w := httptest.NewRecorder()
	h.GenerateReply(w, authedRequest(http.MethodPost, "/v1/generate/reply", map[string]string{
		"project_id":     "missing",
		"client_message": "hi",
	}, 1))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if len(client.requests) != 0 {
		t.Error("no provider call for unknown project")
	}
}
