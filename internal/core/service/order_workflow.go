package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

const (
	orderNumberAttempts = 3
	notifyTimeout       = 10 * time.Second
)

type PlaceOrderInput struct {
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
	Notes           string
	TotalAmount     decimal.Decimal
}

// OrderWorkflow orchestrates order creation, status transitions and
// cancellation across the stock ledger and the order store.
type OrderWorkflow struct {
	ledger   port.StockLedger
	orders   port.OrderRepository
	cache    port.CacheRepository
	notifier port.Notifier
}

func NewOrderWorkflow(ledger port.StockLedger, orders port.OrderRepository, cache port.CacheRepository, notifier port.Notifier) *OrderWorkflow {
	return &OrderWorkflow{
		ledger:   ledger,
		orders:   orders,
		cache:    cache,
		notifier: notifier,
	}
}

// PlaceOrder reserves stock for every line item, then creates the order.
// If any reservation fails, every prior reservation in this call is
// released before returning, so no partial reservation survives.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(in.Items, in.ShippingAddress, in.PaymentMethod, in.Notes, in.TotalAmount)
	if err != nil {
		return nil, err
	}

	for i, item := range order.Items {
		if err := w.ledger.Reserve(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			w.releaseItems(ctx, order.Items[:i])
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, fmt.Errorf("%s (size %s): %w", item.ProductID, item.Size, domain.ErrInsufficientStock)
			}
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
	}

	if err := w.createWithUniqueNumber(ctx, order); err != nil {
		w.releaseItems(ctx, order.Items)
		return nil, err
	}

	w.notifyAsync(domain.Notification{
		Kind:      domain.NotificationOrderPlaced,
		Recipient: order.CustomerEmail,
		Order:     order,
	})

	return order, nil
}

// createWithUniqueNumber claims the order number in the cache before the
// insert and retries with a fresh number when either the claim or the
// unique index rejects it.
func (w *OrderWorkflow) createWithUniqueNumber(ctx context.Context, order *domain.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if attempt > 0 {
			order.OrderNumber = domain.NewOrderNumber(time.Now())
		}

		ok, err := w.cache.ReserveOrderNumber(ctx, order.OrderNumber)
		if err != nil {
			return fmt.Errorf("reserve order number: %w", err)
		}
		if !ok {
			continue
		}

		err = w.orders.Create(ctx, order)
		if errors.Is(err, domain.ErrDuplicateOrderNumber) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	}
	return fmt.Errorf("create order: could not generate a unique order number after %d attempts", orderNumberAttempts)
}

// UpdateStatus moves an order to a new status. The store-level
// compare-and-swap guarantees exactly one concurrent transition wins, and
// stock for a cancelled order is released only by that winner.
func (w *OrderWorkflow) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%q: %w", newStatus, domain.ErrInvalidTransition)
	}

	order, err := w.orders.GetByID(ctx, orderID, port.OrderFilter{})
	if err != nil {
		return nil, err
	}

	return w.transition(ctx, order, newStatus, trackingNumber)
}

// CancelOrder cancels on behalf of the owning customer or a privileged
// actor. Stock release follows the same exactly-once path as UpdateStatus.
func (w *OrderWorkflow) CancelOrder(ctx context.Context, orderID string, requester port.Identity) (*domain.Order, error) {
	order, err := w.orders.GetByID(ctx, orderID, port.OrderFilter{})
	if err != nil {
		return nil, err
	}

	if !requester.Privileged && !strings.EqualFold(order.CustomerEmail, requester.Email) {
		return nil, domain.ErrForbidden
	}

	return w.transition(ctx, order, domain.OrderStatusCancelled, "")
}

func (w *OrderWorkflow) transition(ctx context.Context, order *domain.Order, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	from := order.OrderStatus
	if !from.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%s -> %s: %w", from, newStatus, domain.ErrInvalidTransition)
	}

	swapped, err := w.orders.CompareAndSwapStatus(ctx, order.ID, from, newStatus, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !swapped {
		// Lost the race: someone else moved the order first.
		return nil, fmt.Errorf("%s -> %s: %w", from, newStatus, domain.ErrInvalidTransition)
	}

	if newStatus == domain.OrderStatusCancelled {
		w.releaseItems(ctx, order.Items)
	}

	order.OrderStatus = newStatus
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	order.UpdatedAt = time.Now()

	w.notifyAsync(domain.Notification{
		Kind:      domain.NotificationStatusChanged,
		Recipient: order.CustomerEmail,
		Order:     order,
	})

	return order, nil
}

// GetOrder restricts visibility to the requester's own orders unless the
// requester is privileged.
func (w *OrderWorkflow) GetOrder(ctx context.Context, orderID string, requester port.Identity) (*domain.Order, error) {
	return w.orders.GetByID(ctx, orderID, w.filterFor(requester))
}

// ListOrders returns a page of orders newest first, plus the total count.
func (w *OrderWorkflow) ListOrders(ctx context.Context, requester port.Identity, page, pageSize int) ([]domain.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return w.orders.List(ctx, w.filterFor(requester), page, pageSize)
}

// DeleteOrder is a privileged-only hard delete.
func (w *OrderWorkflow) DeleteOrder(ctx context.Context, orderID string, requester port.Identity) error {
	if !requester.Privileged {
		return domain.ErrForbidden
	}
	return w.orders.Delete(ctx, orderID)
}

func (w *OrderWorkflow) filterFor(requester port.Identity) port.OrderFilter {
	if requester.Privileged {
		return port.OrderFilter{}
	}
	return port.OrderFilter{CustomerEmail: strings.ToLower(requester.Email)}
}

// releaseItems is the compensating rollback for reserved stock. Failures
// are logged, not returned: the caller's outcome is already decided.
func (w *OrderWorkflow) releaseItems(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		if err := w.ledger.Release(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			log.Printf("workflow: CRITICAL release failed for %s (size %s) x%d: %v", item.ProductID, item.Size, item.Quantity, err)
		}
	}
}

// notifyAsync dispatches a notification without blocking the caller.
// Delivery failure is logged and never fails the order.
func (w *OrderWorkflow) notifyAsync(n domain.Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := w.notifier.Notify(ctx, n); err != nil {
			log.Printf("workflow: notification %s to %s failed: %v", n.Kind, n.Recipient, err)
		}
	}()
}
