package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type MySQLMessageRepository struct {
	db *sql.DB
}

func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

func (r *MySQLMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, recipient_email, body, kind, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.RecipientEmail, msg.Body, msg.Kind, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MySQLMessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.list(ctx, `
		SELECT id, recipient_email, body, kind, is_read, created_at
		FROM messages ORDER BY created_at DESC`)
}

func (r *MySQLMessageRepository) ListByRecipient(ctx context.Context, email string) ([]domain.Message, error) {
	return r.list(ctx, `
		SELECT id, recipient_email, body, kind, is_read, created_at
		FROM messages WHERE recipient_email = ? ORDER BY created_at DESC`, email)
}

func (r *MySQLMessageRepository) list(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RecipientEmail, &m.Body, &m.Kind, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *MySQLMessageRepository) MarkRead(ctx context.Context, id, recipientEmail string) (*domain.Message, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE id = ? AND recipient_email = ?`, id, recipientEmail)
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either unknown id or not this recipient's message; check whether
		// it was simply already read.
		var m domain.Message
		err := r.db.QueryRowContext(ctx, `
			SELECT id, recipient_email, body, kind, is_read, created_at
			FROM messages WHERE id = ? AND recipient_email = ?`, id, recipientEmail,
		).Scan(&m.ID, &m.RecipientEmail, &m.Body, &m.Kind, &m.Read, &m.CreatedAt)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		return &m, nil
	}

	var m domain.Message
	err = r.db.QueryRowContext(ctx, `
		SELECT id, recipient_email, body, kind, is_read, created_at
		FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.RecipientEmail, &m.Body, &m.Kind, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reload message: %w", err)
	}
	return &m, nil
}
