package port

import (
	"context"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// Notifier delivers best-effort notifications. Errors are logged by the
// caller and never affect the primary operation's outcome.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
