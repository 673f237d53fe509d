package port

import (
	"context"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type SubscriptionRepository interface {
	// GetByEmail returns domain.ErrNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*domain.EmailSubscription, error)

	Create(ctx context.Context, sub *domain.EmailSubscription) error

	// Update rewrites the active flag and source for an existing address.
	Update(ctx context.Context, sub *domain.EmailSubscription) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error

	// ListAll returns every message newest first (admin view).
	ListAll(ctx context.Context) ([]domain.Message, error)

	// ListByRecipient returns one customer's messages newest first.
	ListByRecipient(ctx context.Context, email string) ([]domain.Message, error)

	// MarkRead flags a message read if it belongs to the recipient.
	// Returns domain.ErrNotFound otherwise.
	MarkRead(ctx context.Context, id, recipientEmail string) (*domain.Message, error)
}
