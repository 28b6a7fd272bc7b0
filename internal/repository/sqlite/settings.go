package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigbid/server/internal/models"
)

func (r *SQLiteRepo) CreateSettings(ctx context.Context, s *models.AISettings) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("settings is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO ai_settings (account_id, provider, api_key, model, temperature, max_tokens, system_prompt, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.AccountID, s.Provider, s.APIKey, s.Model, s.Temperature, s.MaxTokens, s.SystemPrompt, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetSettingsByAccountID(ctx context.Context, accountID int64) (*models.AISettings, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, account_id, provider, api_key, model, temperature, max_tokens, system_prompt, updated FROM ai_settings WHERE account_id = ?`, accountID)

	var s models.AISettings
	if err := row.Scan(&s.ID, &s.AccountID, &s.Provider, &s.APIKey, &s.Model, &s.Temperature, &s.MaxTokens, &s.SystemPrompt, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) UpdateSettings(ctx context.Context, s *models.AISettings) error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE ai_settings SET provider = ?, api_key = ?, model = ?, temperature = ?, max_tokens = ?, system_prompt = ?, updated = ? WHERE id = ?`,
		s.Provider, s.APIKey, s.Model, s.Temperature, s.MaxTokens, s.SystemPrompt, now(), s.ID)
	return err
}
