package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

func testOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(
		[]domain.OrderItem{
			{ProductID: "test-jersey", Name: "Home Jersey", Size: "M", Price: decimal.NewFromInt(750), Quantity: 2},
		},
		domain.ShippingAddress{
			Name:          "Test Buyer",
			Email:         "buyer@example.com",
			Address:       "12 Beach Road",
			City:          "Chennai",
			District:      "Chennai",
			State:         "Tamil Nadu",
			Pincode:       "600001",
			ContactNumber: "+91 9000000000",
		},
		"cod", "", decimal.Zero,
	)
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	return order
}

func TestOrderCreateAndGet(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLOrderRepository(db)

	order := testOrder(t)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer repo.Delete(ctx, order.ID)

	got, err := repo.GetByID(ctx, order.ID, port.OrderFilter{})
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.OrderNumber != order.OrderNumber {
		t.Errorf("expected order number %s, got %s", order.OrderNumber, got.OrderNumber)
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected total 1500, got %s", got.TotalAmount)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", got.Items[0].Quantity)
	}
}

func TestOrderCreate_DuplicateNumber(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLOrderRepository(db)

	first := testOrder(t)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer repo.Delete(ctx, first.ID)

	second := testOrder(t)
	second.OrderNumber = first.OrderNumber

	err := repo.Create(ctx, second)
	if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
		t.Errorf("expected ErrDuplicateOrderNumber, got: %v", err)
	}
}

func TestOrderGetByID_CustomerFilter(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLOrderRepository(db)

	order := testOrder(t)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer repo.Delete(ctx, order.ID)

	if _, err := repo.GetByID(ctx, order.ID, port.OrderFilter{CustomerEmail: "buyer@example.com"}); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}

	_, err := repo.GetByID(ctx, order.ID, port.OrderFilter{CustomerEmail: "stranger@example.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another customer, got: %v", err)
	}
}

func TestCompareAndSwapStatus(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLOrderRepository(db)

	order := testOrder(t)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer repo.Delete(ctx, order.ID)

	swapped, err := repo.CompareAndSwapStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusShipped, "TRK-1")
	if err != nil {
		t.Fatalf("CompareAndSwapStatus failed: %v", err)
	}
	if !swapped {
		t.Fatal("expected swap to succeed")
	}

	// Stale expectation loses.
	swapped, err = repo.CompareAndSwapStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusCancelled, "")
	if err != nil {
		t.Fatalf("CompareAndSwapStatus failed: %v", err)
	}
	if swapped {
		t.Error("expected swap with stale status to fail")
	}

	got, err := repo.GetByID(ctx, order.ID, port.OrderFilter{})
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.OrderStatus != domain.OrderStatusShipped {
		t.Errorf("expected status shipped, got %s", got.OrderStatus)
	}
	if got.TrackingNumber != "TRK-1" {
		t.Errorf("expected tracking TRK-1, got %s", got.TrackingNumber)
	}
}

func TestOrderDelete_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	repo := NewMySQLOrderRepository(db)

	err := repo.Delete(context.Background(), "no-such-order")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
