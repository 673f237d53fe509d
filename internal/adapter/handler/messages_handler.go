package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/core/domain"
	"github.com/jayakishorers/jersey-backend/internal/port"
)

type MessageService interface {
	Send(ctx context.Context, recipientEmail, body string, kind domain.MessageKind) (*domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	ListMine(ctx context.Context, requester port.Identity) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string, requester port.Identity) (*domain.Message, error)
}

type MessageHandler struct {
	messages MessageService
}

func NewMessageHandler(messages MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	Email   string             `json:"email" binding:"required"`
	Message string             `json:"message" binding:"required"`
	Kind    domain.MessageKind `json:"type"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Email and message are required")
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), req.Email, req.Message, req.Kind)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	respondOK(c, http.StatusCreated, "Message sent successfully", msg)
}

func (h *MessageHandler) ListAll(c *gin.Context) {
	msgs, err := h.messages.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"messages": msgs})
}

func (h *MessageHandler) ListMine(c *gin.Context) {
	msgs, err := h.messages.ListMine(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"messages": msgs})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	msg, err := h.messages.MarkRead(c.Request.Context(), c.Param("id"), identityFrom(c))
	if err != nil {
		respondError(c, err, "Failed to update message")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"message": msg})
}
