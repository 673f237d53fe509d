package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

type NewsletterService struct {
	subs     port.SubscriptionRepository
	notifier port.Notifier
}

func NewNewsletterService(subs port.SubscriptionRepository, notifier port.Notifier) *NewsletterService {
	return &NewsletterService{subs: subs, notifier: notifier}
}

// Subscribe registers an address, reactivating a previously unsubscribed
// one. Returns reactivated=true in that case. The welcome mail is
// best-effort and never fails the subscription.
func (s *NewsletterService) Subscribe(ctx context.Context, email string, source domain.SubscriptionSource) (reactivated bool, err error) {
	email, ok := domain.NormalizeEmail(email)
	if !ok {
		return false, domain.NewValidationError("a valid email is required")
	}
	if source == "" {
		source = domain.SubscriptionSourceFooter
	}
	if !source.Valid() {
		return false, domain.NewValidationError(fmt.Sprintf("unknown subscription source %q", source))
	}

	existing, err := s.subs.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsActive {
			return false, domain.ErrAlreadySubscribed
		}
		existing.IsActive = true
		existing.Source = source
		existing.UpdatedAt = time.Now()
		if err := s.subs.Update(ctx, existing); err != nil {
			return false, fmt.Errorf("reactivate subscription: %w", err)
		}
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		// fall through to create
	default:
		return false, fmt.Errorf("lookup subscription: %w", err)
	}

	now := time.Now()
	sub := &domain.EmailSubscription{
		Email:     email,
		IsActive:  true,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return false, fmt.Errorf("create subscription: %w", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, domain.Notification{
			Kind:      domain.NotificationWelcome,
			Recipient: email,
		}); err != nil {
			log.Printf("newsletter: welcome mail to %s failed: %v", email, err)
		}
	}()

	return false, nil
}

// Unsubscribe deactivates an address, keeping the record so a later
// subscribe reactivates instead of duplicating.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email, ok := domain.NormalizeEmail(email)
	if !ok {
		return domain.NewValidationError("a valid email is required")
	}

	sub, err := s.subs.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	sub.IsActive = false
	sub.UpdatedAt = time.Now()
	if err := s.subs.Update(ctx, sub); err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	return nil
}
