package notifier

import (
	"context"
	"log"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// LogNotifier stands in when no SMTP transport is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if notification.Order != nil {
		log.Printf("notify: %s to %s (order %s)", notification.Kind, notification.Recipient, notification.Order.OrderNumber)
	} else {
		log.Printf("notify: %s to %s", notification.Kind, notification.Recipient)
	}
	return nil
}
