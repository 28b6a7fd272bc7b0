package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qri-io/jsonschema"

	"github.com/gigbid/server/internal/models"
)

// rawProject mirrors the marketplace wire format. Fields the dashboard never
// reads are omitted.
type rawProject struct {
	ID                 json.Number `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	PreviewDescription string      `json:"preview_description"`
	SeoURL             string      `json:"seo_url"`
	Type               string      `json:"type"`
	Status             string      `json:"status"`
	TimeSubmitted      int64       `json:"time_submitted"`
	Budget             *struct {
		Minimum float64 `json:"minimum"`
		Maximum float64 `json:"maximum"`
	} `json:"budget"`
	Currency *struct {
		Code string `json:"code"`
	} `json:"currency"`
	// jobs arrive as plain strings or as {"name": ...} objects depending on
	// the job_details flag
	Jobs     []json.RawMessage `json:"jobs"`
	BidStats *struct {
		BidCount int      `json:"bid_count"`
		BidAvg   *float64 `json:"bid_avg"`
	} `json:"bid_stats"`
	// same shape duality as jobs
	HiremeInitialQuestions []json.RawMessage `json:"hireme_initial_questions"`
	Owner                  *struct {
		Location *struct {
			Country *struct {
				Name string `json:"name"`
			} `json:"country"`
		} `json:"location"`
		Reputation *struct {
			Overall       *float64 `json:"overall"`
			EntireHistory *struct {
				All *int64 `json:"all"`
			} `json:"entire_history"`
		} `json:"reputation"`
	} `json:"owner"`
}

// marketProjectSchema guards the normalized shape handed to the rest of the
// dashboard. A violation here means the normalization itself regressed, not
// that the marketplace sent something odd.
const marketProjectSchema = `{
	"type": "object",
	"required": ["id", "title", "description", "budget", "skills", "type", "status", "questions", "posted_at"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string"},
		"description": {"type": "string"},
		"budget": {
			"type": "object",
			"required": ["min", "max", "currency"],
			"properties": {
				"min": {"type": "number", "minimum": 0},
				"max": {"type": "number", "minimum": 0},
				"currency": {"type": "string", "minLength": 1}
			}
		},
		"skills": {"type": "array", "items": {"type": "string"}},
		"type": {"enum": ["fixed", "hourly"]},
		"status": {"enum": ["open", "closed"]},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "question"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"question": {"type": "string"}
				}
			}
		},
		"posted_at": {"type": "string", "minLength": 1}
	}
}`

var compiledProjectSchema = mustCompileSchema(marketProjectSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile project schema: %v", err))
	}
	return rs
}

// normalizeProject converts a marketplace payload into the local shape and
// validates the result against the project schema.
func normalizeProject(ctx context.Context, raw rawProject) (models.MarketProject, error) {
	p := models.MarketProject{
		ID:          raw.ID.String(),
		Title:       raw.Title,
		Description: raw.Description,
		Budget:      models.Budget{Currency: "USD"},
		Skills:      []string{},
		Type:        "hourly",
		Status:      "closed",
		Questions:   []models.ProjectQuestion{},
		PostedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if p.Description == "" {
		p.Description = raw.PreviewDescription
	}
	if raw.Budget != nil {
		p.Budget.Min = raw.Budget.Minimum
		p.Budget.Max = raw.Budget.Maximum
	}
	if raw.Currency != nil && raw.Currency.Code != "" {
		p.Budget.Currency = raw.Currency.Code
	}
	if raw.Type == "fixed" {
		p.Type = "fixed"
	}
	if raw.Status == "active" {
		p.Status = "open"
	}
	if raw.BidStats != nil {
		p.BidCount = raw.BidStats.BidCount
		p.AverageBid = raw.BidStats.BidAvg
	}
	if raw.TimeSubmitted > 0 {
		posted := time.Unix(raw.TimeSubmitted, 0).UTC().Format(time.RFC3339)
		p.PostedAt = posted
		p.Deadline = posted
	}

	for _, j := range raw.Jobs {
		if name := decodeNameOrString(j, "name"); name != "" {
			p.Skills = append(p.Skills, name)
		}
	}

	for i, q := range raw.HiremeInitialQuestions {
		question := decodeNameOrString(q, "question")
		if question == "" {
			continue
		}
		p.Questions = append(p.Questions, models.ProjectQuestion{
			ID:         fmt.Sprintf("q%d", i+1),
			Question:   question,
			IsRequired: true,
		})
	}

	if raw.Owner != nil {
		if raw.Owner.Location != nil && raw.Owner.Location.Country != nil {
			p.ClientCountry = raw.Owner.Location.Country.Name
		}
		if raw.Owner.Reputation != nil {
			p.ClientRating = raw.Owner.Reputation.Overall
			if raw.Owner.Reputation.EntireHistory != nil {
				p.ClientReviews = raw.Owner.Reputation.EntireHistory.All
			}
		}
	}

	if raw.SeoURL != "" {
		p.URL = fmt.Sprintf("https://www.freelancer.com/projects/%s/%s", raw.SeoURL, p.ID)
	}

	if err := validateProject(ctx, p); err != nil {
		return models.MarketProject{}, err
	}
	return p, nil
}

// decodeNameOrString accepts either a JSON string or an object with the
// given key and returns the string value.
func decodeNameOrString(raw json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if v, ok := obj[key]; ok {
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return ""
}

func validateProject(ctx context.Context, p models.MarketProject) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	keyErrs, err := compiledProjectSchema.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("validate project: %w", err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("project %s failed validation: %s", p.ID, keyErrs[0].Message)
	}
	return nil
}
