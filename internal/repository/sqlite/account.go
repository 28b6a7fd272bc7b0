package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gigbid/server/internal/models"
)

func (r *SQLiteRepo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("account is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO accounts (name, email, password_hash, updated) VALUES (?, ?, ?, ?)`, a.Name, a.Email, a.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, updated FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, updated FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *SQLiteRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE accounts SET name = ?, email = ?, password_hash = ?, updated = ? WHERE id = ?`, a.Name, a.Email, a.PasswordHash, now(), a.ID)
	return err
}

func (r *SQLiteRepo) DeleteAccount(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return err
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}
