package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/gigbid/server/internal/bidgen"
	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/pkg/repository"
)

type GenerateHandler struct {
	engine       *bidgen.Engine
	profileRepo  repository.ProfileRepo
	settingsRepo repository.SettingsRepo
	projectRepo  repository.ProjectRepo
	messageRepo  repository.MessageRepo
}

func NewGenerateHandler(engine *bidgen.Engine, pr repository.ProfileRepo, sr repository.SettingsRepo, projects repository.ProjectRepo, messages repository.MessageRepo) *GenerateHandler {
	return &GenerateHandler{
		engine:       engine,
		profileRepo:  pr,
		settingsRepo: sr,
		projectRepo:  projects,
		messageRepo:  messages,
	}
}

// snapshot loads the account's profile and AI settings for one generation
// request. Generation never mutates either; concurrent settings updates
// affect only later requests.
func (h *GenerateHandler) snapshot(r *http.Request, accountID int64) (models.Profile, models.AISettings, error) {
	profile, err := h.profileRepo.GetProfileByAccountID(r.Context(), accountID)
	if err != nil {
		return models.Profile{}, models.AISettings{}, err
	}
	if profile == nil {
		profile = defaultProfile(accountID, "")
	}

	settings, err := h.settingsRepo.GetSettingsByAccountID(r.Context(), accountID)
	if err != nil {
		return models.Profile{}, models.AISettings{}, err
	}
	if settings == nil {
		settings = defaultSettings(accountID)
	}

	return *profile, *settings, nil
}

func writeGenError(w http.ResponseWriter, err error) {
	var genErr *bidgen.Error
	if errors.As(err, &genErr) {
		writeError(w, genErr.Message, genErr.HTTPStatus())
		return
	}
	writeError(w, "Unknown error occurred", http.StatusInternalServerError)
}

type generateBidRequest struct {
	ProjectTitle string `json:"project_title"`
	Proposal     string `json:"proposal"`
}

func (h *GenerateHandler) GenerateBid(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req generateBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	profile, settings, err := h.snapshot(r, id)
	if err != nil {
		writeError(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	bid, err := h.engine.GenerateBid(r.Context(), settings, profile, req.ProjectTitle, req.Proposal)
	if err != nil {
		writeGenError(w, err)
		return
	}

	writeJSON(w, map[string]string{"bid": bid}, http.StatusOK)
}

type generateAnswersRequest struct {
	Project        models.MarketProject    `json:"project"`
	SingleQuestion *models.ProjectQuestion `json:"single_question"`
}

func (h *GenerateHandler) GenerateAnswers(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req generateAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	profile, settings, err := h.snapshot(r, id)
	if err != nil {
		writeError(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	answers, err := h.engine.GenerateAnswers(r.Context(), settings, profile, req.Project, req.SingleQuestion)
	if err != nil {
		writeGenError(w, err)
		return
	}

	writeJSON(w, map[string]any{"answers": answers}, http.StatusOK)
}

type generateReplyRequest struct {
	ProjectID     string `json:"project_id"`
	ClientMessage string `json:"client_message"`
}

func (h *GenerateHandler) GenerateReply(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req generateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project, err := h.projectRepo.GetProject(ctx, id, req.ProjectID)
	if err != nil {
		writeError(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	msgs, err := h.messageRepo.ListMessages(ctx, project.ID)
	if err != nil {
		writeError(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}

	derived := deriveProject(*project, msgs)

	profile, settings, err := h.snapshot(r, id)
	if err != nil {
		writeError(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	reply, err := h.engine.GenerateReply(ctx, settings, profile,
		project.Title, derived.Proposal, derived.GeneratedBid, req.ClientMessage, derived.Conversation)
	if err != nil {
		writeGenError(w, err)
		return
	}

	// record the exchange: the client's message, then the drafted reply
	for _, m := range []models.Message{
		{Type: models.MessageClient, Content: req.ClientMessage},
		{Type: models.MessageMe, Content: reply},
	} {
		m.ID = uuid.NewString()
		m.ProjectID = project.ID
		if err := h.messageRepo.AppendMessage(ctx, &m); err != nil {
			writeError(w, "Failed to record conversation", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, map[string]string{"reply": reply}, http.StatusOK)
}
