package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gigbid/server/internal/marketplace"
	"github.com/gigbid/server/internal/models"
)

// MarketplaceHandler proxies the Freelancer API. The marketplace token is a
// per-request credential carried in the X-Marketplace-Token header, never
// stored server-side.
type MarketplaceHandler struct {
	client *marketplace.Client
}

func NewMarketplaceHandler(c *marketplace.Client) *MarketplaceHandler {
	return &MarketplaceHandler{client: c}
}

func marketplaceToken(r *http.Request) string {
	return r.Header.Get("X-Marketplace-Token")
}

func writeMarketError(w http.ResponseWriter, err error) {
	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Message, apiErr.StatusCode)
		return
	}
	writeError(w, "Marketplace request failed", http.StatusInternalServerError)
}

func (h *MarketplaceHandler) SearchProjects(w http.ResponseWriter, r *http.Request) {
	token := marketplaceToken(r)
	if token == "" {
		writeError(w, "Access token is required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	opts := marketplace.SearchOptions{
		Sandbox: q.Get("sandbox") == "true",
	}
	if s := q.Get("skills"); s != "" {
		opts.Skills = strings.Split(s, ",")
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			opts.Limit = v
		}
	}
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			opts.Offset = v
		}
	}

	projects, total, err := h.client.SearchProjects(r.Context(), token, opts)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeJSON(w, map[string]any{"projects": projects, "total": total}, http.StatusOK)
}

type getProjectRequest struct {
	ProjectID  string `json:"project_id"`
	ProjectURL string `json:"project_url"`
	Sandbox    bool   `json:"sandbox"`
}

func (h *MarketplaceHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	token := marketplaceToken(r)
	if token == "" {
		writeError(w, "Access token is required", http.StatusUnauthorized)
		return
	}

	var req getProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	id := req.ProjectID
	if id == "" && req.ProjectURL != "" {
		id = marketplace.ExtractProjectID(req.ProjectURL)
	}
	if id == "" {
		writeError(w, "Project ID or URL is required", http.StatusBadRequest)
		return
	}

	project, err := h.client.GetProject(r.Context(), token, id, req.Sandbox)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeJSON(w, map[string]any{"project": project}, http.StatusOK)
}

type submitBidRequest struct {
	Bid     models.BidProposal `json:"bid"`
	Sandbox bool               `json:"sandbox"`
}

func (h *MarketplaceHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	token := marketplaceToken(r)
	if token == "" {
		writeError(w, "Access token is required", http.StatusUnauthorized)
		return
	}

	var req submitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Bid.ProjectID == "" || req.Bid.Amount <= 0 || req.Bid.Period <= 0 {
		writeError(w, "Project ID, amount, and period are required", http.StatusBadRequest)
		return
	}

	bidID, err := h.client.SubmitBid(r.Context(), token, req.Bid, req.Sandbox)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"bid_id":  bidID,
		"message": "Bid submitted successfully",
	}, http.StatusOK)
}

func (h *MarketplaceHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	token := marketplaceToken(r)
	if token == "" {
		writeError(w, "Access token is required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	opts := marketplace.ListBidsOptions{
		ProjectID: q.Get("project_id"),
		Sandbox:   q.Get("sandbox") == "true",
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			opts.Limit = v
		}
	}
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			opts.Offset = v
		}
	}

	bids, total, err := h.client.ListBids(r.Context(), token, opts)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeJSON(w, map[string]any{"bids": bids, "total": total}, http.StatusOK)
}
