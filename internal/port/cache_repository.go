package port

import "context"

type CacheRepository interface {
	// ReserveOrderNumber claims an order number before insert, returning
	// false if another instance already holds it. Keeps number generation
	// collision-safe across concurrent creations.
	ReserveOrderNumber(ctx context.Context, number string) (bool, error)
}
