package postgres

import (
	"context"
	"fmt"

	"synergysphere/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertMessageQuery = `
WITH inserted AS (
    INSERT INTO messages(id, project_id, sender_id, content)
    VALUES ($1, $2, $3, $4)
    RETURNING id, project_id, sender_id, content, created_at
)
SELECT i.id, i.project_id, i.content, i.created_at, u.id, u.name, u.email
FROM inserted i
JOIN users u ON u.id = i.sender_id`
	selectMessagesQuery = `
SELECT m.id, m.project_id, m.content, m.created_at, u.id, u.name, u.email
FROM messages m
JOIN users u ON u.id = m.sender_id
WHERE m.project_id=$1
ORDER BY m.created_at, m.id`
)

// CreateMessage appends a message and returns it with the sender populated.
func (p *Postgres) CreateMessage(ctx context.Context, msg entities.Message) (*entities.Message, error) {
	res, err := scanMessage(p.db.QueryRow(ctx, insertMessageQuery, msg.ID, msg.ProjectID, msg.Sender.ID, msg.Content))
	if err != nil {
		if code, _ := pgErrorCode(err); code == foreignKeyViolation {
			return nil, entities.ErrProjectNotFound
		}
		p.log.Errorw("failed to insert message", "error", err, "project_id", msg.ProjectID)
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return res, nil
}

// ListMessagesByProject returns project messages oldest first.
func (p *Postgres) ListMessagesByProject(ctx context.Context, projectID string) ([]entities.Message, error) {
	rows, err := p.db.Query(ctx, selectMessagesQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]entities.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			p.log.Errorw("failed to scan message", "error", err, "project_id", projectID)
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}

func scanMessage(row pgx.Row) (*entities.Message, error) {
	var m entities.Message
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Content, &m.Timestamp, &m.Sender.ID, &m.Sender.Name, &m.Sender.Email); err != nil {
		return nil, err
	}
	return &m, nil
}
