package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type StockService interface {
	ListStock(ctx context.Context) ([]domain.ProductStock, error)
	SetProductStock(ctx context.Context, productID string, bySize map[string]int) (*domain.ProductStock, error)
}

type StockHandler struct {
	stock StockService
}

func NewStockHandler(stock StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.stock.ListStock(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stock")
		return
	}
	respondOK(c, http.StatusOK, "", stocks)
}

type setStockRequest struct {
	StockBySize map[string]int `json:"stockBySize" binding:"required"`
}

func (h *StockHandler) Set(c *gin.Context) {
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.stock.SetProductStock(c.Request.Context(), c.Param("productId"), req.StockBySize)
	if err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}
	respondOK(c, http.StatusOK, "", updated)
}
