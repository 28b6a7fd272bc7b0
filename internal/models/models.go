package models

// Message types allowed in a project conversation. "proposal" and "bid" seed
// the engagement and occur at most once; "client" and "me" form the
// negotiation thread.
const (
	MessageProposal = "proposal"
	MessageBid      = "bid"
	MessageClient   = "client"
	MessageMe       = "me"
)

// ValidMessageType reports whether t is one of the closed set of message types.
func ValidMessageType(t string) bool {
	switch t {
	case MessageProposal, MessageBid, MessageClient, MessageMe:
		return true
	}
	return false
}

// AI provider identifiers accepted in AISettings.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderCustom    = "custom"
)

type Account struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Updated      int64  `json:"updated" db:"updated"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Profile struct {
	ID         int64    `json:"id" db:"id"`
	AccountID  int64    `json:"account_id" db:"account_id"`
	Name       string   `json:"name" db:"name"`
	Skills     []string `json:"skills" db:"skills"`
	Experience string   `json:"experience" db:"experience"`
	Bio        string   `json:"bio" db:"bio"`
	HourlyRate float64  `json:"hourly_rate" db:"hourly_rate"`
	Portfolio  []string `json:"portfolio" db:"portfolio"`
	Updated    int64    `json:"updated" db:"updated"`
}

type AISettings struct {
	ID           int64   `json:"id" db:"id"`
	AccountID    int64   `json:"account_id" db:"account_id"`
	Provider     string  `json:"provider" db:"provider"`
	APIKey       string  `json:"api_key" db:"api_key"`
	Model        string  `json:"model" db:"model"`
	Temperature  float64 `json:"temperature" db:"temperature"`
	MaxTokens    int     `json:"max_tokens" db:"max_tokens"`
	SystemPrompt string  `json:"system_prompt" db:"system_prompt"`
	Updated      int64   `json:"updated" db:"updated"`
}

type Project struct {
	ID        string `json:"id" db:"id"`
	AccountID int64  `json:"account_id" db:"account_id"`
	Title     string `json:"title" db:"title"`
	Created   int64  `json:"created" db:"created"`

	// Messages is populated by list/get endpoints; not a stored column.
	Messages []Message `json:"messages,omitempty"`
}

// Message is one entry in a project's append-only conversation log. Seq is
// assigned by the store and defines the canonical order.
type Message struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`
	Type      string `json:"type" db:"type"`
	Content   string `json:"content" db:"content"`
	Created   int64  `json:"created" db:"created"`
	Seq       int64  `json:"-" db:"seq"`
}

// ProjectQuestion is a screening question attached to a marketplace project.
// Questions are not persisted; they arrive inside project payloads.
type ProjectQuestion struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
	IsRequired bool   `json:"is_required"`
}

// GeneratedAnswer is a derived result, recomputed on demand and never stored.
type GeneratedAnswer struct {
	QuestionID  string   `json:"question_id"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// MarketProject is a marketplace listing normalized into the shape the
// generation pipeline consumes.
type MarketProject struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Budget        Budget            `json:"budget"`
	Skills        []string          `json:"skills"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	BidCount      int               `json:"bid_count"`
	AverageBid    *float64          `json:"average_bid,omitempty"`
	Questions     []ProjectQuestion `json:"questions"`
	Deadline      string            `json:"deadline,omitempty"`
	PostedAt      string            `json:"posted_at"`
	ClientCountry string            `json:"client_country,omitempty"`
	ClientRating  *float64          `json:"client_rating,omitempty"`
	ClientReviews *int64            `json:"client_reviews,omitempty"`
	URL           string            `json:"url,omitempty"`
}

type QuestionAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// BidProposal is the shape submitted to and read back from the marketplace
// bids endpoint.
type BidProposal struct {
	ID          string           `json:"id,omitempty"`
	ProjectID   string           `json:"project_id"`
	Amount      float64          `json:"amount"`
	Period      int              `json:"period"`
	CoverLetter string           `json:"cover_letter"`
	Answers     []QuestionAnswer `json:"answers,omitempty"`
	Status      string           `json:"status,omitempty"`
	CreatedAt   string           `json:"created_at,omitempty"`
	SubmittedAt string           `json:"submitted_at,omitempty"`
}

// DashboardStats summarizes the local store for the dashboard landing page.
type DashboardStats struct {
	TotalProjects int64 `json:"total_projects"`
	DraftedBids   int64 `json:"drafted_bids"`
	TotalMessages int64 `json:"total_messages"`
}
