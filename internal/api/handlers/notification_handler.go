// server/internal/api/handlers/notification_handler.go
package handlers

import (
	"net/http"

	"pr-tracker-api-server/internal/notify"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Channel *notify.Channel
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	c.JSON(http.StatusOK, h.Channel.Current())
}

func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	h.Channel.Dismiss()
	c.JSON(http.StatusOK, h.Channel.Current())
}
