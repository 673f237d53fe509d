package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondError maps domain errors onto HTTP statuses. Internal errors get a
// generic message; the detail is logged, never sent to the client.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Validation failed", Errors: verr.Problems})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Quantity must not be negative"})
	case errors.Is(err, domain.ErrAlreadySubscribed):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "This email is already subscribed to our newsletter"})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, Response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, Response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Message: "Not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Success: false, Message: "Forbidden"})
	default:
		log.Printf("handler: %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: fallback})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}
