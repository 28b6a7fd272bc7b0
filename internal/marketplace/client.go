// Package marketplace is the HTTP client for the Freelancer projects and
// bids API. Access tokens are per-request credentials supplied by the
// caller; the client never stores them. Each call can target the sandbox
// environment instead of production.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/models"
)

// package-level logger; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by internal/marketplace. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// APIError carries the status and message surfaced by the marketplace API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace returned status %d", e.StatusCode)
	}
	return e.Message
}

// projectURLPattern matches the numeric project ID inside a marketplace
// project URL like https://www.freelancer.com/projects/golang/build-api-12345.
var projectURLPattern = regexp.MustCompile(`projects/[^/]+/(\d+)`)

// ExtractProjectID pulls the numeric project ID out of a marketplace URL.
// Returns "" when the URL carries no recognizable ID.
func ExtractProjectID(projectURL string) string {
	m := projectURLPattern.FindStringSubmatch(projectURL)
	if m == nil {
		return ""
	}
	return m[1]
}

type Client struct {
	cfg    config.Marketplace
	client *http.Client
}

// New builds a marketplace client. A nil httpClient gets a default with the
// configured timeout.
func New(cfg config.Marketplace, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: httpClient}
}

func (c *Client) baseURL(sandbox bool) string {
	if sandbox {
		return c.cfg.SandboxBaseURL
	}
	return c.cfg.BaseURL
}

// SearchOptions narrows an active-project search.
type SearchOptions struct {
	Skills  []string
	Limit   int
	Offset  int
	Sandbox bool
}

// SearchProjects lists active projects, normalized into the local shape.
// Also returns the marketplace's total result count.
func (c *Client) SearchProjects(ctx context.Context, accessToken string, opts SearchOptions) ([]models.MarketProject, int64, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(opts.Limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("project_types", "fixed,hourly")
	params.Set("full_description", "true")
	params.Set("job_details", "true")
	params.Set("user_details", "true")
	params.Set("user_status", "true")
	if len(opts.Skills) > 0 {
		params.Add("jobs[]", strings.Join(opts.Skills, ","))
	}

	endpoint := fmt.Sprintf("%s/projects/0.1/projects/active?%s", c.baseURL(opts.Sandbox), params.Encode())

	var payload struct {
		Result struct {
			Projects   []rawProject `json:"projects"`
			TotalCount int64        `json:"total_count"`
		} `json:"result"`
	}
	if err := c.get(ctx, endpoint, accessToken, &payload, "Failed to fetch projects"); err != nil {
		return nil, 0, err
	}

	projects := make([]models.MarketProject, 0, len(payload.Result.Projects))
	for _, raw := range payload.Result.Projects {
		p, err := normalizeProject(ctx, raw)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}

	total := payload.Result.TotalCount
	if total == 0 {
		total = int64(len(projects))
	}
	return projects, total, nil
}

// GetProject fetches one project by numeric ID.
func (c *Client) GetProject(ctx context.Context, accessToken, projectID string, sandbox bool) (models.MarketProject, error) {
	endpoint := fmt.Sprintf("%s/projects/0.1/projects/%s?full_description=true&job_details=true&user_details=true",
		c.baseURL(sandbox), url.PathEscape(projectID))

	var payload struct {
		Result rawProject `json:"result"`
	}
	if err := c.get(ctx, endpoint, accessToken, &payload, "Failed to fetch project"); err != nil {
		return models.MarketProject{}, err
	}

	return normalizeProject(ctx, payload.Result)
}

// SubmitBid places a bid on a project and returns the marketplace bid ID.
// Screening answers, when present, travel as hireme initial answers.
func (c *Client) SubmitBid(ctx context.Context, accessToken string, bid models.BidProposal, sandbox bool) (string, error) {
	projectID, err := strconv.ParseInt(bid.ProjectID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid project id %q: %w", bid.ProjectID, err)
	}

	body := map[string]any{
		"project_id": projectID,
		// filled in by the API from the authenticated user
		"bidder_id":            0,
		"amount":               bid.Amount,
		"period":               bid.Period,
		"milestone_percentage": 100,
		"description":          bid.CoverLetter,
	}
	if len(bid.Answers) > 0 {
		answers := make([]string, 0, len(bid.Answers))
		for _, a := range bid.Answers {
			answers = append(answers, a.Answer)
		}
		body["hireme_initial_answers"] = answers
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal bid: %w", err)
	}

	endpoint := fmt.Sprintf("%s/projects/0.1/bids/", c.baseURL(sandbox))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Freelancer-OAuth-V1", accessToken)
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Result struct {
			ID json.Number `json:"id"`
		} `json:"result"`
	}
	if err := c.do(req, &payload, "Failed to submit bid"); err != nil {
		return "", err
	}

	logger.Info("marketplace: bid submitted",
		slog.String("project_id", bid.ProjectID),
		slog.String("bid_id", payload.Result.ID.String()))

	return payload.Result.ID.String(), nil
}

// ListBidsOptions narrows a bid listing.
type ListBidsOptions struct {
	ProjectID string
	Limit     int
	Offset    int
	Sandbox   bool
}

// ListBids returns the authenticated user's bids, newest first per the API's
// default ordering, plus the total count.
func (c *Client) ListBids(ctx context.Context, accessToken string, opts ListBidsOptions) ([]models.BidProposal, int64, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(opts.Limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("bidders", "true")
	params.Set("project_details", "true")
	if opts.ProjectID != "" {
		params.Add("project_ids[]", opts.ProjectID)
	}

	endpoint := fmt.Sprintf("%s/projects/0.1/bids?%s", c.baseURL(opts.Sandbox), params.Encode())

	var payload struct {
		Result struct {
			Bids []struct {
				ID            json.Number `json:"id"`
				ProjectID     json.Number `json:"project_id"`
				Amount        float64     `json:"amount"`
				Period        int         `json:"period"`
				Description   string      `json:"description"`
				AwardStatus   string      `json:"award_status"`
				TimeSubmitted int64       `json:"time_submitted"`
			} `json:"bids"`
			TotalCount int64 `json:"total_count"`
		} `json:"result"`
	}
	if err := c.get(ctx, endpoint, accessToken, &payload, "Failed to fetch bids"); err != nil {
		return nil, 0, err
	}

	bids := make([]models.BidProposal, 0, len(payload.Result.Bids))
	for _, b := range payload.Result.Bids {
		bid := models.BidProposal{
			ID:          b.ID.String(),
			ProjectID:   b.ProjectID.String(),
			Amount:      b.Amount,
			Period:      b.Period,
			CoverLetter: b.Description,
			Status:      mapBidStatus(b.AwardStatus),
			CreatedAt:   submittedTime(b.TimeSubmitted),
		}
		if b.TimeSubmitted > 0 {
			bid.SubmittedAt = bid.CreatedAt
		}
		bids = append(bids, bid)
	}

	total := payload.Result.TotalCount
	if total == 0 {
		total = int64(len(bids))
	}
	return bids, total, nil
}

func mapBidStatus(awardStatus string) string {
	switch awardStatus {
	case "awarded":
		return "accepted"
	case "rejected":
		return "rejected"
	}
	return "submitted"
}

func submittedTime(unix int64) string {
	if unix > 0 {
		return time.Unix(unix, 0).UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func (c *Client) get(ctx context.Context, endpoint, accessToken string, out any, fallbackMsg string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Freelancer-OAuth-V1", accessToken)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, fallbackMsg)
}

func (c *Client) do(req *http.Request, out any, fallbackMsg string) error {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	logger.Info("marketplace: request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = fallbackMsg
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
