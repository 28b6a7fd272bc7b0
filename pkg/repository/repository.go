package repository

import (
	"context"

	"github.com/gigbid/server/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *models.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateAccount(ctx context.Context, a *models.Account) error
	DeleteAccount(ctx context.Context, id int64) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (int64, error)
	GetProfileByAccountID(ctx context.Context, accountID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
}

type SettingsRepo interface {
	CreateSettings(ctx context.Context, s *models.AISettings) (int64, error)
	GetSettingsByAccountID(ctx context.Context, accountID int64) (*models.AISettings, error)
	UpdateSettings(ctx context.Context, s *models.AISettings) error
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, accountID int64, id string) (*models.Project, error)
	ListProjects(ctx context.Context, accountID int64) ([]models.Project, error)
	DeleteProject(ctx context.Context, accountID int64, id string) error
}

type MessageRepo interface {
	AppendMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, projectID string) ([]models.Message, error)
	CountMessagesByType(ctx context.Context, projectID, msgType string) (int64, error)
}

type StatsRepo interface {
	DashboardStats(ctx context.Context, accountID int64) (*models.DashboardStats, error)
}
