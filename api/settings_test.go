package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gigbid/server/api"
	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/pkg/repository/mock"
)

func authedRequest(method, path string, body any, accountID int64) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), api.CtxAccountID, accountID)
	return req.WithContext(ctx)
}

func TestGetProfileCreatesDefault(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/v1/settings/profile", nil, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var profile models.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if profile.AccountID != 7 {
		t.Errorf("account_id = %d", profile.AccountID)
	}
	if profile.Skills == nil {
		t.Error("skills must decode as an empty list, not null")
	}
	if mocks.Profiles.Stored == nil {
		t.Error("default profile row was not persisted")
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Profiles.Stored = &models.Profile{
		ID:         1,
		AccountID:  7,
		Name:       "Ada",
		Skills:     []string{"Go"},
		Experience: "8 years",
		HourlyRate: 80,
	}
	h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/v1/settings/profile", map[string]any{
		"skills":      []string{"Go", "SQL"},
		"hourly_rate": 95,
	}, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	got := mocks.Profiles.Stored
	if len(got.Skills) != 2 || got.HourlyRate != 95 {
		t.Errorf("updates not applied: %+v", got)
	}
	if got.Name != "Ada" || got.Experience != "8 years" {
		t.Errorf("absent fields must keep stored values: %+v", got)
	}
}

func TestUpdateProfileRejectsNegativeRate(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/v1/settings/profile", map[string]any{
		"hourly_rate": -5,
	}, 7))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAISettingsCreatesDefault(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

	w := httptest.NewRecorder()
	h.GetAISettings(w, authedRequest(http.MethodGet, "/v1/settings/ai", nil, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var settings models.AISettings
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if settings.Provider != models.ProviderOpenAI || settings.Model != "gpt-4o" {
		t.Errorf("defaults = %+v", settings)
	}
}

func TestUpdateAISettings(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "valid provider switch",
			body:       map[string]any{"provider": "anthropic", "api_key": "sk-ant", "model": "claude-sonnet-4-20250514"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown provider",
			body:       map[string]any{"provider": "bedrock"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "temperature out of range",
			body:       map[string]any{"temperature": 2.5},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-positive max tokens",
			body:       map[string]any{"max_tokens": 0},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

			w := httptest.NewRecorder()
			h.UpdateAISettings(w, authedRequest(http.MethodPut, "/v1/settings/ai", tt.body, 7))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateAISettingsPartialKeepsKey(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Settings.Stored = &models.AISettings{
		ID:        1,
		AccountID: 7,
		Provider:  models.ProviderOpenAI,
		APIKey:    "sk-keep",
		Model:     "gpt-4o",
	}
	h := api.NewSettingsHandler(mocks.Profiles, mocks.Settings)

	w := httptest.NewRecorder()
	h.UpdateAISettings(w, authedRequest(http.MethodPut, "/v1/settings/ai", map[string]any{
		"model": "gpt-4o-mini",
	}, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	got := mocks.Settings.Stored
	if got.Model != "gpt-4o-mini" || got.APIKey != "sk-keep" {
		t.Errorf("partial update broke stored values: %+v", got)
	}
}
