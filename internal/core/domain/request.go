package domain

import "time"

// Priority of a document request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// DocumentRequest is one (document, approver) pair.
type DocumentRequest struct {
	RequestID       string     `json:"requestID"`
	DocumentID      string     `json:"documentID"`
	RequestedByID   string     `json:"requestedByID"`
	RecipientUserID string     `json:"recipientUserID"`
	StatusID        int        `json:"statusID"`
	Status          StatusName `json:"status"`
	Priority        Priority   `json:"priority"`
	Remarks         *string    `json:"remarks,omitempty"`
	RequestedAt     time.Time  `json:"requestedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	IsDeleted       bool       `json:"isDeleted"`
}

// WithStatus returns a copy of the request moved to status.
func (r DocumentRequest) WithStatus(status Status) DocumentRequest {
	r.StatusID = status.StatusID
	r.Status = status.Name
	return r
}
