package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/dto"
)

// DispatcherSvc emits best-effort side effects. Failures are logged and
// never returned.
type DispatcherSvc interface {
	Notify(ctx context.Context, receiverID, senderID, title, message string)
	LogActivity(ctx context.Context, performedBy, action, targetType, targetID string, remarks *string)
}

// NotificationSvcFacade exposes the side-effect records to their readers.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkNotificationRead is only allowed for the notification's receiver.
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error

	// ListActivityLogs pages through the audit trail. Admin only.
	ListActivityLogs(ctx context.Context, actor domain.Actor, params dto.ListActivityLogsParams) (*dto.ListActivityLogsResponse, error)
}

// IdentitySvc checks that an authenticated subject may act.
type IdentitySvc interface {
	// Authenticate returns apperrors.ErrUnauthorized for an unknown user and
	// apperrors.ErrForbidden for an inactive or deleted one.
	Authenticate(ctx context.Context, userID string) (*domain.User, error)
}
