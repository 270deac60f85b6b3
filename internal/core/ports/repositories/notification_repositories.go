package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// NotificationRepositoryFacade persists in-app notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListNotificationsByReceiver returns live notifications for a user, newest first.
	ListNotificationsByReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkNotificationRead returns apperrors.ErrNotFound unless the notification belongs to receiverID.
	MarkNotificationRead(ctx context.Context, notificationID, receiverID string, readAt time.Time) error
}

// ActivityLogRepositoryFacade persists the audit trail.
type ActivityLogRepositoryFacade interface {
	SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error

	// ListActivityLogs returns a page of entries, newest first, filtered by
	// target when targetID is non-empty, and a token for the next page.
	ListActivityLogs(ctx context.Context, targetID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error)
}

// UserReader loads the identity projection of a user.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
