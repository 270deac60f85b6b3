package models

import "time"

// Notification is the notifications table row.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	SenderID       string     `db:"sender_id"`
	ReceiverID     string     `db:"receiver_id"`
	Title          string     `db:"title"`
	Message        string     `db:"message"`
	IsRead         bool       `db:"is_read"`
	ReadAt         *time.Time `db:"read_at"`
	CreatedAt      time.Time  `db:"created_at"`
	IsDeleted      bool       `db:"is_deleted"`
}

// ActivityLog is the activity_logs table row.
type ActivityLog struct {
	ActivityLogID string    `db:"activity_log_id"`
	PerformedBy   string    `db:"performed_by"`
	Action        string    `db:"action"`
	TargetType    string    `db:"target_type"`
	TargetID      string    `db:"target_id"`
	Remarks       *string   `db:"remarks"`
	Timestamp     time.Time `db:"timestamp"`
	IsDeleted     bool      `db:"is_deleted"`
}

// User is the slice of the users table the workflow reads.
type User struct {
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Role      string `db:"role"`
	IsActive  bool   `db:"is_active"`
	IsDeleted bool   `db:"is_deleted"`
}
