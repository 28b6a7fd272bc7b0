package sqlite

import (
	"context"
	"fmt"

	"github.com/gigbid/server/internal/models"
)

// AppendMessage inserts one message at the end of a project's conversation.
// Messages are immutable once appended; there is no update or single delete.
func (r *SQLiteRepo) AppendMessage(ctx context.Context, m *models.Message) error {
	if m == nil {
		return fmt.Errorf("message is nil")
	}
	if m.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if !models.ValidMessageType(m.Type) {
		return fmt.Errorf("invalid message type %q", m.Type)
	}

	created := m.Created
	if created == 0 {
		created = now()
		m.Created = created
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO messages (id, project_id, type, content, created) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.Type, m.Content, created)
	if err != nil {
		return err
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.Seq = seq

	return nil
}

func (r *SQLiteRepo) ListMessages(ctx context.Context, projectID string) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT seq, id, project_id, type, content, created FROM messages WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.Seq, &m.ID, &m.ProjectID, &m.Type, &m.Content, &m.Created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountMessagesByType(ctx context.Context, projectID, msgType string) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM messages WHERE project_id = ? AND type = ?`, projectID, msgType)

	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}
