package api

import (
	"encoding/json"
	"net/http"

	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/pkg/repository"
)

type SettingsHandler struct {
	profileRepo  repository.ProfileRepo
	settingsRepo repository.SettingsRepo
}

func NewSettingsHandler(pr repository.ProfileRepo, sr repository.SettingsRepo) *SettingsHandler {
	return &SettingsHandler{profileRepo: pr, settingsRepo: sr}
}

// loadProfile returns the account's profile, creating the default row on
// first read. Accounts created through signup already have one.
func (h *SettingsHandler) loadProfile(r *http.Request, accountID int64) (*models.Profile, error) {
	profile, err := h.profileRepo.GetProfileByAccountID(r.Context(), accountID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = defaultProfile(accountID, "")
	id, err := h.profileRepo.CreateProfile(r.Context(), profile)
	if err != nil {
		return nil, err
	}
	profile.ID = id
	return profile, nil
}

func (h *SettingsHandler) loadSettings(r *http.Request, accountID int64) (*models.AISettings, error) {
	settings, err := h.settingsRepo.GetSettingsByAccountID(r.Context(), accountID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = defaultSettings(accountID)
	id, err := h.settingsRepo.CreateSettings(r.Context(), settings)
	if err != nil {
		return nil, err
	}
	settings.ID = id
	return settings, nil
}

func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.loadProfile(r, id)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

// profileUpdateRequest uses pointers so absent fields keep their stored
// values.
type profileUpdateRequest struct {
	Name       *string   `json:"name"`
	Skills     *[]string `json:"skills"`
	Experience *string   `json:"experience"`
	Bio        *string   `json:"bio"`
	HourlyRate *float64  `json:"hourly_rate"`
	Portfolio  *[]string `json:"portfolio"`
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		writeError(w, "Hourly rate must not be negative", http.StatusBadRequest)
		return
	}

	profile, err := h.loadProfile(r, id)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Portfolio != nil {
		profile.Portfolio = *req.Portfolio
	}

	if err := h.profileRepo.UpdateProfile(r.Context(), profile); err != nil {
		writeError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

func (h *SettingsHandler) GetAISettings(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	settings, err := h.loadSettings(r, id)
	if err != nil {
		writeError(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, settings, http.StatusOK)
}

type aiUpdateRequest struct {
	Provider     *string  `json:"provider"`
	APIKey       *string  `json:"api_key"`
	Model        *string  `json:"model"`
	Temperature  *float64 `json:"temperature"`
	MaxTokens    *int     `json:"max_tokens"`
	SystemPrompt *string  `json:"system_prompt"`
}

func (h *SettingsHandler) UpdateAISettings(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req aiUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Provider != nil {
		switch *req.Provider {
		case models.ProviderOpenAI, models.ProviderAnthropic, models.ProviderCustom:
		default:
			writeError(w, "Unknown provider", http.StatusBadRequest)
			return
		}
	}
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		writeError(w, "Temperature must be between 0 and 2", http.StatusBadRequest)
		return
	}
	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		writeError(w, "Max tokens must be positive", http.StatusBadRequest)
		return
	}

	settings, err := h.loadSettings(r, id)
	if err != nil {
		writeError(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	if req.Provider != nil {
		settings.Provider = *req.Provider
	}
	if req.APIKey != nil {
		settings.APIKey = *req.APIKey
	}
	if req.Model != nil {
		settings.Model = *req.Model
	}
	if req.Temperature != nil {
		settings.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		settings.MaxTokens = *req.MaxTokens
	}
	if req.SystemPrompt != nil {
		settings.SystemPrompt = *req.SystemPrompt
	}

	if err := h.settingsRepo.UpdateSettings(r.Context(), settings); err != nil {
		writeError(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, settings, http.StatusOK)
}
