package controllers

import (
	"github.com/eduflow/eduflow/internal/middleware"
	"github.com/eduflow/eduflow/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NotificationController upgrades admin notification connections
type NotificationController struct {
	hub    *websocket.Hub
	logger zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(hub *websocket.Hub, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		hub:    hub,
		logger: logger,
	}
}

// Connect upgrades the request to a websocket session on the notification
// hub. The route is gated to admins by the middleware chain.
func (c *NotificationController) Connect(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	c.hub.ServeWS(ctx.Writer, ctx.Request, userID)
}
