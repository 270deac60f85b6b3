package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// notificationHandler exposes notifications and the activity log.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

// registerNotificationRoutes registers routes related to notifications and activity logs.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notificationService: notificationService}

	rg.GET("/notifications", h.listNotifications)
	rg.POST("/notifications/:notificationID/read", h.markRead)
	rg.GET("/activity-logs", h.listActivityLogs)
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param unreadOnly query bool false "Only unread notifications"
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), actor.UserID, params.UnreadOnly)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// markRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Param notificationID path string true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkNotificationRead(c.Request.Context(), c.Param("notificationID"), actor.UserID); err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

// listActivityLogs godoc
// @Summary Page through the activity log
// @Description Admin only.
// @Tags activity
// @Produce json
// @Param targetID query string false "Filter by target"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListActivityLogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /activity-logs [get]
func (h *notificationHandler) listActivityLogs(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var params dto.ListActivityLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.notificationService.ListActivityLogs(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list activity logs")
		return
	}
	c.JSON(http.StatusOK, resp)
}
