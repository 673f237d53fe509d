package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string, source domain.SubscriptionSource) (reactivated bool, err error)
	Unsubscribe(ctx context.Context, email string) error
}

type EmailHandler struct {
	newsletter NewsletterService
}

func NewEmailHandler(newsletter NewsletterService) *EmailHandler {
	return &EmailHandler{newsletter: newsletter}
}

type subscribeRequest struct {
	Email  string                    `json:"email" binding:"required"`
	Source domain.SubscriptionSource `json:"source"`
}

func (h *EmailHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please enter a valid email address")
		return
	}

	reactivated, err := h.newsletter.Subscribe(c.Request.Context(), req.Email, req.Source)
	if err != nil {
		respondError(c, err, "Failed to subscribe. Please try again later.")
		return
	}

	if reactivated {
		respondOK(c, http.StatusOK, "Welcome back! Your subscription has been reactivated.", nil)
		return
	}
	respondOK(c, http.StatusCreated, "Successfully subscribed to newsletter! Check your email for confirmation.", nil)
}

type unsubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *EmailHandler) Unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please enter a valid email address")
		return
	}

	if err := h.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to unsubscribe. Please try again later.")
		return
	}
	respondOK(c, http.StatusOK, "Successfully unsubscribed from newsletter", nil)
}
