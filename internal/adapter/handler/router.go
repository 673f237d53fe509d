package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/port"
)

type RouterDeps struct {
	Authenticator port.Authenticator
	Orders        OrderService
	Stock         StockService
	Newsletter    NewsletterService
	Messages      MessageService
}

// NewRouter wires every route onto a gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := RequireAuth(deps.Authenticator)
	admin := RequireAdmin()

	api := r.Group("/api")

	orders := NewOrderHandler(deps.Orders)
	og := api.Group("/orders")
	{
		og.POST("", authed, orders.Create)
		og.GET("", authed, admin, orders.ListAll)
		og.GET("/mine", authed, orders.ListMine)
		og.GET("/:id", authed, orders.Get)
		og.PATCH("/:id/status", authed, admin, orders.UpdateStatus)
		og.POST("/:id/cancel", authed, orders.Cancel)
		og.DELETE("/:id", authed, admin, orders.Delete)
	}

	stock := NewStockHandler(deps.Stock)
	sg := api.Group("/stock")
	{
		sg.GET("", stock.List)
		sg.PATCH("/:productId", authed, admin, stock.Set)
	}

	email := NewEmailHandler(deps.Newsletter)
	eg := api.Group("/email")
	{
		eg.POST("/subscribe", email.Subscribe)
		eg.POST("/unsubscribe", email.Unsubscribe)
	}

	messages := NewMessageHandler(deps.Messages)
	mg := api.Group("/messages")
	{
		mg.POST("", authed, admin, messages.Send)
		mg.GET("", authed, admin, messages.ListAll)
		mg.GET("/mine", authed, messages.ListMine)
		mg.PATCH("/:id/read", authed, messages.MarkRead)
	}

	return r
}
