package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/core/service"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

// OrderService is what the order handlers need from the workflow.
type OrderService interface {
	PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string, requester port.Identity) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string, requester port.Identity) (*domain.Order, error)
	ListOrders(ctx context.Context, requester port.Identity, page, pageSize int) ([]domain.Order, int, error)
	DeleteOrder(ctx context.Context, orderID string, requester port.Identity) error
}

type OrderHandler struct {
	workflow OrderService
}

func NewOrderHandler(workflow OrderService) *OrderHandler {
	return &OrderHandler{workflow: workflow}
}

type createOrderRequest struct {
	Items           []domain.OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Notes           string                 `json:"notes"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	order, err := h.workflow.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		respondError(c, err, "Failed to create order. Please try again.")
		return
	}

	respondOK(c, http.StatusCreated, "Order created successfully", gin.H{"order": order})
}

type pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalOrders int  `json:"totalOrders"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

func (h *OrderHandler) listPage(c *gin.Context, requester port.Identity) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, total, err := h.workflow.ListOrders(c.Request.Context(), requester, page, limit)
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}

	totalPages := (total + limit - 1) / limit
	respondOK(c, http.StatusOK, "", gin.H{
		"orders": orders,
		"pagination": pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalOrders: total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	})
}

// ListMine returns the requester's own orders, newest first.
func (h *OrderHandler) ListMine(c *gin.Context) {
	requester := identityFrom(c)
	requester.Privileged = false // own orders only, even for admins
	h.listPage(c, requester)
}

// ListAll is the admin view over every order.
func (h *OrderHandler) ListAll(c *gin.Context) {
	h.listPage(c, identityFrom(c))
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.workflow.GetOrder(c.Request.Context(), c.Param("id"), identityFrom(c))
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"order": order})
}

type updateStatusRequest struct {
	OrderStatus    domain.OrderStatus `json:"orderStatus" binding:"required"`
	TrackingNumber string             `json:"trackingNumber"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	order, err := h.workflow.UpdateStatus(c.Request.Context(), c.Param("id"), req.OrderStatus, req.TrackingNumber)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	respondOK(c, http.StatusOK, "Order status updated successfully", gin.H{"order": order})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.workflow.CancelOrder(c.Request.Context(), c.Param("id"), identityFrom(c))
	if err != nil {
		respondError(c, err, "Failed to cancel order")
		return
	}
	respondOK(c, http.StatusOK, "Order cancelled successfully", gin.H{"order": order})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.workflow.DeleteOrder(c.Request.Context(), c.Param("id"), identityFrom(c)); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}
	respondOK(c, http.StatusOK, "Order deleted successfully", nil)
}
