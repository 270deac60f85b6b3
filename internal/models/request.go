package models

import "time"

// DocumentRequest is the document_requests table row joined with its status name.
type DocumentRequest struct {
	RequestID       string     `db:"request_id"`
	DocumentID      string     `db:"document_id"`
	RequestedByID   string     `db:"requested_by_id"`
	RecipientUserID string     `db:"recipient_user_id"`
	StatusID        int        `db:"status_id"`
	StatusName      string     `db:"status_name"`
	Priority        string     `db:"priority"`
	Remarks         *string    `db:"remarks"`
	RequestedAt     time.Time  `db:"requested_at"`
	CompletedAt     *time.Time `db:"completed_at"`
	IsDeleted       bool       `db:"is_deleted"`
}

// Status is the statuses table row.
type Status struct {
	StatusID int    `db:"status_id"`
	Name     string `db:"name"`
}
