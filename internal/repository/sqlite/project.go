package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigbid/server/internal/models"
)

func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	if p.ID == "" {
		return fmt.Errorf("project id is required")
	}

	created := p.Created
	if created == 0 {
		created = now()
		p.Created = created
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO projects (id, account_id, title, created) VALUES (?, ?, ?, ?)`, p.ID, p.AccountID, p.Title, created)
	return err
}

func (r *SQLiteRepo) GetProject(ctx context.Context, accountID int64, id string) (*models.Project, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, account_id, title, created FROM projects WHERE id = ? AND account_id = ?`, id, accountID)

	var p models.Project
	if err := row.Scan(&p.ID, &p.AccountID, &p.Title, &p.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}

func (r *SQLiteRepo) ListProjects(ctx context.Context, accountID int64) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, account_id, title, created FROM projects WHERE account_id = ? ORDER BY created DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Title, &p.Created); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// DeleteProject removes the project row; the messages cascade is handled by
// the foreign key constraint.
func (r *SQLiteRepo) DeleteProject(ctx context.Context, accountID int64, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *SQLiteRepo) DashboardStats(ctx context.Context, accountID int64) (*models.DashboardStats, error) {
	var s models.DashboardStats

	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM projects WHERE account_id = ?`, accountID)
	if err := row.Scan(&s.TotalProjects); err != nil {
		return nil, err
	}

	row = r.conn.QueryRow(ctx,
		`SELECT COUNT(1) FROM messages m JOIN projects p ON p.id = m.project_id WHERE p.account_id = ? AND m.type = ?`,
		accountID, models.MessageBid)
	if err := row.Scan(&s.DraftedBids); err != nil {
		return nil, err
	}

	row = r.conn.QueryRow(ctx,
		`SELECT COUNT(1) FROM messages m JOIN projects p ON p.id = m.project_id WHERE p.account_id = ?`, accountID)
	if err := row.Scan(&s.TotalMessages); err != nil {
		return nil, err
	}

	return &s, nil
}
