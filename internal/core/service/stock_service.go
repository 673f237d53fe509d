package service

import (
	"context"
	"fmt"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

// StockService exposes the ledger's read and admin-correction operations.
// Reservation and release stay behind the order workflow.
type StockService struct {
	ledger port.StockLedger
}

func NewStockService(ledger port.StockLedger) *StockService {
	return &StockService{ledger: ledger}
}

// ListStock returns every product's per-size quantities.
func (s *StockService) ListStock(ctx context.Context) ([]domain.ProductStock, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return domain.GroupStock(entries), nil
}

// SetProductStock overwrites a product's quantities size by size (admin
// correction). All quantities are checked before any write so a bad entry
// leaves the ledger untouched.
func (s *StockService) SetProductStock(ctx context.Context, productID string, bySize map[string]int) (*domain.ProductStock, error) {
	if productID == "" {
		return nil, domain.NewValidationError("productId is required")
	}
	if len(bySize) == 0 {
		return nil, domain.NewValidationError("stockBySize must not be empty")
	}
	for size, qty := range bySize {
		if qty < 0 {
			return nil, fmt.Errorf("size %s quantity %d: %w", size, qty, domain.ErrInvalidQuantity)
		}
	}

	for size, qty := range bySize {
		if err := s.ledger.SetStock(ctx, productID, size, qty); err != nil {
			return nil, fmt.Errorf("set stock %s/%s: %w", productID, size, err)
		}
	}

	return &domain.ProductStock{ProductID: productID, StockBySize: bySize}, nil
}
