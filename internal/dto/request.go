package dto

import (
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// RouteRequest lists the approvers a document is sent to.
type RouteRequest struct {
	ApproverIDs []string `json:"approverIDs" binding:"required,min=1,dive,required"`
}

// HoldRequest carries the approver's objection.
type HoldRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// RequestResponse defines the data returned for a document request.
type RequestResponse struct {
	RequestID       string     `json:"requestID"`
	DocumentID      string     `json:"documentID"`
	RequestedByID   string     `json:"requestedByID"`
	RecipientUserID string     `json:"recipientUserID"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Remarks         *string    `json:"remarks,omitempty"`
	RequestedAt     time.Time  `json:"requestedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// AllInStatusResponse answers an aggregate status question.
type AllInStatusResponse struct {
	DocumentID string `json:"documentID"`
	Result     bool   `json:"result"`
}

// ToRequestResponse converts a domain.DocumentRequest to RequestResponse DTO.
func ToRequestResponse(r *domain.DocumentRequest) RequestResponse {
	return RequestResponse{
		RequestID:       r.RequestID,
		DocumentID:      r.DocumentID,
		RequestedByID:   r.RequestedByID,
		RecipientUserID: r.RecipientUserID,
		Status:          string(r.Status),
		Priority:        string(r.Priority),
		Remarks:         r.Remarks,
		RequestedAt:     r.RequestedAt,
		CompletedAt:     r.CompletedAt,
	}
}

// ToRequestResponses converts a slice of domain.DocumentRequest to []RequestResponse.
func ToRequestResponses(requests []domain.DocumentRequest) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}
