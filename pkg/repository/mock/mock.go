package mock

import (
	"context"
	"database/sql"

	"github.com/gigbid/server/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Accounts *AccountRepo
	Profiles *ProfileRepo
	Settings *SettingsRepo
	Projects *ProjectRepo
	Messages *MessageRepo
	Stats    *StatsRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Accounts: &AccountRepo{},
		Profiles: &ProfileRepo{},
		Settings: &SettingsRepo{},
		Projects: &ProjectRepo{},
		Messages: &MessageRepo{},
		Stats:    &StatsRepo{},
	}
}

type AccountRepo struct {
	Stored    *models.Account
	CreateErr error
}

func (m *AccountRepo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.Account{ID: 1, Name: a.Name, Email: a.Email, PasswordHash: a.PasswordHash}
	return 1, nil
}

func (m *AccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *AccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *AccountRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	m.Stored = a
	return nil
}

func (m *AccountRepo) DeleteAccount(ctx context.Context, id int64) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored = nil
	}
	return nil
}

type ProfileRepo struct {
	Stored    *models.Profile
	GetErr    error
	UpdateErr error
	nextID    int64
}

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	m.nextID++
	cp := *p
	cp.ID = m.nextID
	m.Stored = &cp
	return cp.ID, nil
}

func (m *ProfileRepo) GetProfileByAccountID(ctx context.Context, accountID int64) (*models.Profile, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Stored != nil && m.Stored.AccountID == accountID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Stored = p
	return nil
}

type SettingsRepo struct {
	Stored    *models.AISettings
	GetErr    error
	UpdateErr error
	nextID    int64
}

func (m *SettingsRepo) CreateSettings(ctx context.Context, s *models.AISettings) (int64, error) {
	m.nextID++
	cp := *s
	cp.ID = m.nextID
	m.Stored = &cp
	return cp.ID, nil
}

func (m *SettingsRepo) GetSettingsByAccountID(ctx context.Context, accountID int64) (*models.AISettings, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Stored != nil && m.Stored.AccountID == accountID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *SettingsRepo) UpdateSettings(ctx context.Context, s *models.AISettings) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Stored = s
	return nil
}

type ProjectRepo struct {
	Projects  []models.Project
	CreateErr error
}

func (m *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Projects = append(m.Projects, *p)
	return nil
}

func (m *ProjectRepo) GetProject(ctx context.Context, accountID int64, id string) (*models.Project, error) {
	for i := range m.Projects {
		if m.Projects[i].AccountID == accountID && m.Projects[i].ID == id {
			cp := m.Projects[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ProjectRepo) ListProjects(ctx context.Context, accountID int64) ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.Projects {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProjectRepo) DeleteProject(ctx context.Context, accountID int64, id string) error {
	for i := range m.Projects {
		if m.Projects[i].AccountID == accountID && m.Projects[i].ID == id {
			m.Projects = append(m.Projects[:i], m.Projects[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type StatsRepo struct {
	Stats *models.DashboardStats
	Err   error
}

func (m *StatsRepo) DashboardStats(ctx context.Context, accountID int64) (*models.DashboardStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stats != nil {
		return m.Stats, nil
	}
	return &models.DashboardStats{}, nil
}

type MessageRepo struct {
	Messages  []models.Message
	AppendErr error
	nextSeq   int64
}

func (m *MessageRepo) AppendMessage(ctx context.Context, msg *models.Message) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.nextSeq++
	msg.Seq = m.nextSeq
	m.Messages = append(m.Messages, *msg)
	return nil
}

func (m *MessageRepo) ListMessages(ctx context.Context, projectID string) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.Messages {
		if msg.ProjectID == projectID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MessageRepo) CountMessagesByType(ctx context.Context, projectID, msgType string) (int64, error) {
	var n int64
	for _, msg := range m.Messages {
		if msg.ProjectID == projectID && msg.Type == msgType {
			n++
		}
	}
	return n, nil
}
