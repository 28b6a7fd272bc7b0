package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigbid/server/internal/models"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO profiles (account_id, name, skills, experience, bio, hourly_rate, portfolio, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.AccountID, p.Name, encodeStrings(p.Skills), p.Experience, p.Bio, p.HourlyRate, encodeStrings(p.Portfolio), now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProfileByAccountID(ctx context.Context, accountID int64) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, account_id, name, skills, experience, bio, hourly_rate, portfolio, updated FROM profiles WHERE account_id = ?`, accountID)

	var p models.Profile
	var skills, portfolio string
	if err := row.Scan(&p.ID, &p.AccountID, &p.Name, &skills, &p.Experience, &p.Bio, &p.HourlyRate, &portfolio, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	p.Skills = decodeStrings(skills)
	p.Portfolio = decodeStrings(portfolio)
	return &p, nil
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE profiles SET name = ?, skills = ?, experience = ?, bio = ?, hourly_rate = ?, portfolio = ?, updated = ? WHERE id = ?`,
		p.Name, encodeStrings(p.Skills), p.Experience, p.Bio, p.HourlyRate, encodeStrings(p.Portfolio), now(), p.ID)
	return err
}
