package port

import (
	"context"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// OrderFilter restricts which orders a query can see. An empty
// CustomerEmail means no owner restriction (privileged callers only).
type OrderFilter struct {
	CustomerEmail string
}

type OrderRepository interface {
	// Create persists an order and its items. Returns
	// domain.ErrDuplicateOrderNumber when the order number is taken.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID loads an order with its items, restricted by filter.
	// Returns domain.ErrNotFound when absent or not visible.
	GetByID(ctx context.Context, id string, filter OrderFilter) (*domain.Order, error)

	// List returns a page of orders newest first, plus the total count
	// matching the filter.
	List(ctx context.Context, filter OrderFilter, page, pageSize int) ([]domain.Order, int, error)

	// CompareAndSwapStatus moves an order from one status to another with a
	// single conditional update, optionally recording a tracking number.
	// Returns false without error when the order was not in the expected
	// status, so exactly one of several concurrent transitions wins.
	CompareAndSwapStatus(ctx context.Context, id string, from, to domain.OrderStatus, trackingNumber string) (bool, error)

	// Delete removes an order and its items. Returns domain.ErrNotFound
	// when absent.
	Delete(ctx context.Context, id string) error
}
