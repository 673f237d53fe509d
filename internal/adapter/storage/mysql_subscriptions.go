package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type MySQLSubscriptionRepository struct {
	db *sql.DB
}

func NewMySQLSubscriptionRepository(db *sql.DB) *MySQLSubscriptionRepository {
	return &MySQLSubscriptionRepository{db: db}
}

func (r *MySQLSubscriptionRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailSubscription, error) {
	var sub domain.EmailSubscription
	err := r.db.QueryRowContext(ctx, `
		SELECT email, is_active, source, created_at, updated_at
		FROM email_subscriptions WHERE email = ?`, email,
	).Scan(&sub.Email, &sub.IsActive, &sub.Source, &sub.CreatedAt, &sub.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query subscription: %w", err)
	}
	return &sub, nil
}

func (r *MySQLSubscriptionRepository) Create(ctx context.Context, sub *domain.EmailSubscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_subscriptions (email, is_active, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		sub.Email, sub.IsActive, sub.Source, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *MySQLSubscriptionRepository) Update(ctx context.Context, sub *domain.EmailSubscription) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE email_subscriptions
		SET is_active = ?, source = ?, updated_at = ?
		WHERE email = ?`,
		sub.IsActive, sub.Source, sub.UpdatedAt, sub.Email,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// No row matched; treat same as unknown email.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM email_subscriptions WHERE email = ?`, sub.Email).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
	}
	return nil
}
