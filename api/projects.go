package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/pkg/repository"
)

type ProjectsHandler struct {
	projectRepo repository.ProjectRepo
	messageRepo repository.MessageRepo
	statsRepo   repository.StatsRepo
}

func NewProjectsHandler(pr repository.ProjectRepo, mr repository.MessageRepo, sr repository.StatsRepo) *ProjectsHandler {
	return &ProjectsHandler{projectRepo: pr, messageRepo: mr, statsRepo: sr}
}

func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projects, err := h.projectRepo.ListProjects(r.Context(), id)
	if err != nil {
		writeError(w, "Failed to list projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	for i := range projects {
		msgs, err := h.messageRepo.ListMessages(r.Context(), projects[i].ID)
		if err != nil {
			writeError(w, "Failed to load messages", http.StatusInternalServerError)
			return
		}
		if msgs == nil {
			msgs = []models.Message{}
		}
		projects[i].Messages = msgs
	}

	writeJSON(w, map[string]any{"projects": projects}, http.StatusOK)
}

type createProjectRequest struct {
	Title        string `json:"title"`
	Proposal     string `json:"proposal"`
	GeneratedBid string `json:"generated_bid"`
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, "Title is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project := models.Project{
		ID:        uuid.NewString(),
		AccountID: id,
		Title:     req.Title,
	}
	if err := h.projectRepo.CreateProject(ctx, &project); err != nil {
		writeError(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	// Seed the conversation. The proposal comes first so derived fields and
	// prompt building can rely on it preceding the bid.
	seeds := []models.Message{}
	if strings.TrimSpace(req.Proposal) != "" {
		seeds = append(seeds, models.Message{Type: models.MessageProposal, Content: req.Proposal})
	}
	if strings.TrimSpace(req.GeneratedBid) != "" {
		seeds = append(seeds, models.Message{Type: models.MessageBid, Content: req.GeneratedBid})
	}
	for _, m := range seeds {
		m.ID = uuid.NewString()
		m.ProjectID = project.ID
		if err := h.messageRepo.AppendMessage(ctx, &m); err != nil {
			writeError(w, "Failed to seed messages", http.StatusInternalServerError)
			return
		}
		project.Messages = append(project.Messages, m)
	}
	if project.Messages == nil {
		project.Messages = []models.Message{}
	}

	writeJSON(w, project, http.StatusCreated)
}

// projectResponse augments a project with fields derived from its message
// log: the client's proposal, the drafted bid, and the client/me thread.
type projectResponse struct {
	models.Project
	Proposal     string           `json:"proposal,omitempty"`
	GeneratedBid string           `json:"generated_bid,omitempty"`
	Conversation []models.Message `json:"conversation"`
}

func deriveProject(p models.Project, msgs []models.Message) projectResponse {
	resp := projectResponse{Project: p, Conversation: []models.Message{}}
	resp.Messages = msgs
	if resp.Messages == nil {
		resp.Messages = []models.Message{}
	}

	for _, m := range msgs {
		switch m.Type {
		case models.MessageProposal:
			resp.Proposal = m.Content
		case models.MessageBid:
			resp.GeneratedBid = m.Content
		case models.MessageClient, models.MessageMe:
			resp.Conversation = append(resp.Conversation, m)
		}
	}
	return resp
}

func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	projectID := mux.Vars(r)["id"]

	project, err := h.projectRepo.GetProject(r.Context(), id, projectID)
	if err != nil {
		writeError(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	msgs, err := h.messageRepo.ListMessages(r.Context(), project.ID)
	if err != nil {
		writeError(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, deriveProject(*project, msgs), http.StatusOK)
}

func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	projectID := mux.Vars(r)["id"]

	if err := h.projectRepo.DeleteProject(r.Context(), id, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, "Project not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	projectID := mux.Vars(r)["id"]

	project, err := h.projectRepo.GetProject(r.Context(), id, projectID)
	if err != nil {
		writeError(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	msgs, err := h.messageRepo.ListMessages(r.Context(), project.ID)
	if err != nil {
		writeError(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, map[string]any{"messages": msgs}, http.StatusOK)
}

type appendMessageRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (h *ProjectsHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	projectID := mux.Vars(r)["id"]

	var req appendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidMessageType(req.Type) {
		writeError(w, "Invalid message type", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, "Content is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project, err := h.projectRepo.GetProject(ctx, id, projectID)
	if err != nil {
		writeError(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	// proposal and bid occur at most once per project
	if req.Type == models.MessageProposal || req.Type == models.MessageBid {
		n, err := h.messageRepo.CountMessagesByType(ctx, project.ID, req.Type)
		if err != nil {
			writeError(w, "Failed to check messages", http.StatusInternalServerError)
			return
		}
		if n > 0 {
			writeError(w, "Project already has a "+req.Type+" message", http.StatusConflict)
			return
		}
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Type:      req.Type,
		Content:   req.Content,
	}
	if err := h.messageRepo.AppendMessage(ctx, &msg); err != nil {
		writeError(w, "Failed to append message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, msg, http.StatusCreated)
}

func (h *ProjectsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.statsRepo.DashboardStats(r.Context(), id)
	if err != nil {
		writeError(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}
