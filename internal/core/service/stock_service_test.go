package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

func TestSetProductStock(t *testing.T) {
	ledger := newMockLedger(nil)
	svc := NewStockService(ledger)

	got, err := svc.SetProductStock(context.Background(), "jersey-7", map[string]int{"M": 10, "L": 5})
	require.NoError(t, err)
	assert.Equal(t, "jersey-7", got.ProductID)

	m, _ := ledger.GetAvailable(context.Background(), "jersey-7", "M")
	l, _ := ledger.GetAvailable(context.Background(), "jersey-7", "L")
	assert.Equal(t, 10, m)
	assert.Equal(t, 5, l)
}

func TestSetProductStock_NegativeQuantityRejectedBeforeWrite(t *testing.T) {
	ledger := newMockLedger(map[string]int{"jersey-7/M": 3})
	svc := NewStockService(ledger)

	_, err := svc.SetProductStock(context.Background(), "jersey-7", map[string]int{"M": 10, "L": -1})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// No size was written.
	m, _ := ledger.GetAvailable(context.Background(), "jersey-7", "M")
	assert.Equal(t, 3, m)
}

func TestSetProductStock_MissingProduct(t *testing.T) {
	svc := NewStockService(newMockLedger(nil))

	_, err := svc.SetProductStock(context.Background(), "", map[string]int{"M": 1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.SetProductStock(context.Background(), "jersey-7", nil)
	require.ErrorAs(t, err, &verr)
}
