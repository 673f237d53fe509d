package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the forward-moving part of the workflow. Cancelled sits
// outside the rank table and is handled explicitly.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the order workflow: forward moves only, with
// cancellation reachable from pending, confirmed and processing.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if !s.Valid() || !to.Valid() || s.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return statusRank[s] <= statusRank[OrderStatusProcessing]
	}
	return statusRank[to] > statusRank[s]
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem is a snapshot of the product at order time. Name, price and
// image are copied from the catalog so historical orders stay accurate
// when catalog data changes later.
type OrderItem struct {
	ProductID    string          `json:"productId"`
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size"`
	Image        string          `json:"image,omitempty"`
	IsFullSleeve bool            `json:"isFullSleeve"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingAddress struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	District      string `json:"district"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	ContactNumber string `json:"contactNumber"`
}

func (a ShippingAddress) validate() []string {
	var problems []string
	required := []struct {
		field, value string
	}{
		{"shippingAddress.name", a.Name},
		{"shippingAddress.email", a.Email},
		{"shippingAddress.address", a.Address},
		{"shippingAddress.city", a.City},
		{"shippingAddress.district", a.District},
		{"shippingAddress.state", a.State},
		{"shippingAddress.pincode", a.Pincode},
		{"shippingAddress.contactNumber", a.ContactNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.field+" is required")
		}
	}
	return problems
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerEmail   string          `json:"customerEmail"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ComputeTotal is the authoritative order total: the sum of price times
// quantity over all items.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// NewOrder builds a pending order owned by the shipping address email.
// The total is always server-computed; a non-zero clientTotal that
// disagrees with the computed sum is rejected.
func NewOrder(items []OrderItem, addr ShippingAddress, paymentMethod, notes string, clientTotal decimal.Decimal) (*Order, error) {
	var problems []string

	if len(items) == 0 {
		problems = append(problems, "items must not be empty")
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			problems = append(problems, fmt.Sprintf("items[%d].productId is required", i))
		}
		if strings.TrimSpace(item.Name) == "" {
			problems = append(problems, fmt.Sprintf("items[%d].name is required", i))
		}
		if strings.TrimSpace(item.Size) == "" {
			problems = append(problems, fmt.Sprintf("items[%d].size is required", i))
		}
		if item.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("items[%d].quantity must be at least 1", i))
		}
		if item.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("items[%d].price must not be negative", i))
		}
	}
	problems = append(problems, addr.validate()...)

	total := ComputeTotal(items)
	if !clientTotal.IsZero() && !clientTotal.Equal(total) {
		problems = append(problems, fmt.Sprintf("totalAmount %s does not match computed total %s", clientTotal, total))
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		OrderNumber:     NewOrderNumber(now),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(addr.Email)),
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		OrderStatus:     OrderStatusPending,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// NewOrderNumber generates an order number from the timestamp plus a random
// suffix. Collisions are rare but possible, so callers retry on a duplicate
// insert.
func NewOrderNumber(now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("JP%06d%s", now.UnixMilli()%1000000, strings.ToUpper(hex.EncodeToString(id[:2])))
}
