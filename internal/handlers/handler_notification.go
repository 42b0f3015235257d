package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notificationService: notificationService}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.GET("/unread-count", h.unreadCount)
		notifications.PATCH("/read-all", h.markAllAsRead)
		notifications.PATCH("/:notification_id/read", h.markAsRead)
		notifications.DELETE("/:notification_id", h.deleteNotification)
	}
}

// listNotifications godoc
// @Summary List my notifications
// @Tags notifications
// @Produce  json
// @Param   unread_only query bool false "Only unread"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Offset"
// @Success 200 {object} dto.NotificationListResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, total, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}

	params = params.Normalize()
	c.JSON(http.StatusOK, dto.NotificationListResponse{
		OK:            true,
		Notifications: items,
		Total:         total,
		Limit:         params.Limit,
		Offset:        params.Offset,
	})
}

// unreadCount godoc
// @Summary Count my unread notifications
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.UnreadCountResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *notificationHandler) unreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to count unread notifications")
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{OK: true, Count: count})
}

// markAsRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce  json
// @Param   notification_id path string true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{notification_id}/read [patch]
func (h *notificationHandler) markAsRead(c *gin.Context) {
	notificationID, ok := pathID(c, "notification_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	n, err := h.notificationService.MarkAsRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"notification": n})
}

// markAllAsRead godoc
// @Summary Mark all my notifications as read
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.UnreadCountResponse "count is the number of notifications updated"
// @Security BearerAuth
// @Router /notifications/read-all [patch]
func (h *notificationHandler) markAllAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to mark notifications read")
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{OK: true, Count: count})
}

// deleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce  json
// @Param   notification_id path string true "Notification ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{notification_id} [delete]
func (h *notificationHandler) deleteNotification(c *gin.Context) {
	notificationID, ok := pathID(c, "notification_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), notificationID, userID); err != nil {
		respondError(c, err, "Failed to delete notification")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{OK: true, Message: "Notification deleted"})
}
