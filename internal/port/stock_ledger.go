package port

import (
	"context"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type StockLedger interface {
	// GetAvailable returns the current quantity for a (product, size) pair,
	// 0 when the pair is unknown. Side-effect free.
	GetAvailable(ctx context.Context, productID, size string) (int, error)

	// List returns every ledger entry.
	List(ctx context.Context) ([]domain.StockEntry, error)

	// Reserve atomically decrements the available quantity, returning
	// domain.ErrInsufficientStock (ledger unchanged) when available < quantity.
	// Atomicity is enforced at the storage layer so concurrent reservations
	// across server instances cannot oversell.
	Reserve(ctx context.Context, productID, size string, quantity int) error

	// Release atomically increments the quantity (rollback or cancellation).
	// Release-exactly-once is the caller's responsibility.
	Release(ctx context.Context, productID, size string, quantity int) error

	// SetStock overwrites the quantity for a pair, creating it if missing.
	// Returns domain.ErrInvalidQuantity when quantity < 0.
	SetStock(ctx context.Context, productID, size string, quantity int) error
}
