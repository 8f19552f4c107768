package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranphattrien/easycode-server/apperr"
	"github.com/tranphattrien/easycode-server/auth"
	"github.com/tranphattrien/easycode-server/service"
)

const notificationPageSize = 10

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) NewNotification(c *gin.Context) {
	available, err := h.notificationService.HasNew(c.Request.Context(), auth.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_notification_available": available})
}

func (h *NotificationHandler) Notifications(c *gin.Context) {
	req := struct {
		Page   int64  `json:"page"`
		Filter string `json:"filter"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	notifications, err := h.notificationService.List(c.Request.Context(), auth.UserId(c), req.Filter, pageToSkip(req.Page, notificationPageSize), notificationPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) AllNotificationsCount(c *gin.Context) {
	req := struct {
		Filter string `json:"filter"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}

	count, err := h.notificationService.Count(c.Request.Context(), auth.UserId(c), req.Filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalDocs": count})
}
