package mapping

import (
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification(d)
}

// ToDomainNotifications converts a slice of model Notification to domain Notification
func ToDomainNotifications(ms []models.Notification) []domain.Notification {
	out := make([]domain.Notification, len(ms))
	for i, m := range ms {
		out[i] = domain.Notification(m)
	}
	return out
}

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) models.ActivityLog {
	return models.ActivityLog(d)
}

// ToDomainActivityLogs converts a slice of model ActivityLog to domain ActivityLog
func ToDomainActivityLogs(ms []models.ActivityLog) []domain.ActivityLog {
	out := make([]domain.ActivityLog, len(ms))
	for i, m := range ms {
		out[i] = domain.ActivityLog(m)
	}
	return out
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		IsActive:  m.IsActive,
		IsDeleted: m.IsDeleted,
	}
}
