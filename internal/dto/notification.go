package dto

import (
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// ListNotificationsParams defines the query parameters for listing notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unreadOnly"`
}

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string     `json:"notificationID"`
	SenderID       string     `json:"senderID"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	IsRead         bool       `json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ListActivityLogsParams defines the query parameters for listing activity logs.
type ListActivityLogsParams struct {
	TargetID  string  `form:"targetID"`
	Limit     int     `form:"limit,default=20" validate:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ActivityLogResponse defines the data returned for an activity log entry.
type ActivityLogResponse struct {
	ActivityLogID string    `json:"activityLogID"`
	PerformedBy   string    `json:"performedBy"`
	Action        string    `json:"action"`
	TargetType    string    `json:"targetType"`
	TargetID      string    `json:"targetID"`
	Remarks       *string   `json:"remarks,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ListActivityLogsResponse is one page of the audit trail.
type ListActivityLogsResponse struct {
	ActivityLogs []ActivityLogResponse `json:"activityLogs"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToNotificationResponses converts a slice of domain.Notification to []NotificationResponse.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			SenderID:       n.SenderID,
			Title:          n.Title,
			Message:        n.Message,
			IsRead:         n.IsRead,
			ReadAt:         n.ReadAt,
			CreatedAt:      n.CreatedAt,
		}
	}
	return responses
}

// ToActivityLogResponses converts a slice of domain.ActivityLog to []ActivityLogResponse.
func ToActivityLogResponses(entries []domain.ActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, len(entries))
	for i, e := range entries {
		responses[i] = ActivityLogResponse{
			ActivityLogID: e.ActivityLogID,
			PerformedBy:   e.PerformedBy,
			Action:        e.Action,
			TargetType:    e.TargetType,
			TargetID:      e.TargetID,
			Remarks:       e.Remarks,
			Timestamp:     e.Timestamp,
		}
	}
	return responses
}
