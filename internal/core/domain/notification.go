package domain

import "time"

// Notification is an in-app message produced as a side effect of a transition.
type Notification struct {
	NotificationID string     `json:"notificationID"`
	SenderID       string     `json:"senderID"`
	ReceiverID     string     `json:"receiverID"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	IsRead         bool       `json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	IsDeleted      bool       `json:"isDeleted"`
}

// ActivityLog is one append-only audit entry.
type ActivityLog struct {
	ActivityLogID string    `json:"activityLogID"`
	PerformedBy   string    `json:"performedBy"`
	Action        string    `json:"action"`
	TargetType    string    `json:"targetType"`
	TargetID      string    `json:"targetID"`
	Remarks       *string   `json:"remarks,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	IsDeleted     bool      `json:"isDeleted"`
}

// Activity-log target types.
const (
	TargetDocument    = "document"
	TargetRequest     = "document_request"
	TargetPlaceholder = "signature_placeholder"
	TargetVersion     = "document_version"
)
