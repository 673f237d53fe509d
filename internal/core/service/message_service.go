package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

type MessageService struct {
	messages port.MessageRepository
}

func NewMessageService(messages port.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Send stores an admin notice for a customer. Kind defaults to info.
func (s *MessageService) Send(ctx context.Context, recipientEmail, body string, kind domain.MessageKind) (*domain.Message, error) {
	recipientEmail, ok := domain.NormalizeEmail(recipientEmail)
	if !ok {
		return nil, domain.NewValidationError("a valid recipient email is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewValidationError("message is required")
	}
	if kind == "" {
		kind = domain.MessageKindInfo
	}
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown message type")
	}

	msg := &domain.Message{
		ID:             uuid.New().String(),
		RecipientEmail: recipientEmail,
		Body:           body,
		Kind:           kind,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, error) {
	return s.messages.ListAll(ctx)
}

func (s *MessageService) ListMine(ctx context.Context, requester port.Identity) ([]domain.Message, error) {
	return s.messages.ListByRecipient(ctx, strings.ToLower(requester.Email))
}

// MarkRead flags one of the requester's own messages as read.
func (s *MessageService) MarkRead(ctx context.Context, id string, requester port.Identity) (*domain.Message, error) {
	return s.messages.MarkRead(ctx, id, strings.ToLower(requester.Email))
}
