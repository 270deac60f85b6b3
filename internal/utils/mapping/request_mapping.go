package mapping

import (
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/models"
)

// ToModelRequest converts a domain DocumentRequest to a model DocumentRequest
func ToModelRequest(d domain.DocumentRequest) models.DocumentRequest {
	return models.DocumentRequest{
		RequestID:       d.RequestID,
		DocumentID:      d.DocumentID,
		RequestedByID:   d.RequestedByID,
		RecipientUserID: d.RecipientUserID,
		StatusID:        d.StatusID,
		StatusName:      string(d.Status),
		Priority:        string(d.Priority),
		Remarks:         d.Remarks,
		RequestedAt:     d.RequestedAt,
		CompletedAt:     d.CompletedAt,
		IsDeleted:       d.IsDeleted,
	}
}

// ToDomainRequest converts a model DocumentRequest to a domain DocumentRequest
func ToDomainRequest(m models.DocumentRequest) domain.DocumentRequest {
	return domain.DocumentRequest{
		RequestID:       m.RequestID,
		DocumentID:      m.DocumentID,
		RequestedByID:   m.RequestedByID,
		RecipientUserID: m.RecipientUserID,
		StatusID:        m.StatusID,
		Status:          domain.StatusName(m.StatusName),
		Priority:        domain.Priority(m.Priority),
		Remarks:         m.Remarks,
		RequestedAt:     m.RequestedAt,
		CompletedAt:     m.CompletedAt,
		IsDeleted:       m.IsDeleted,
	}
}

// ToDomainRequests converts a slice of model DocumentRequest to domain DocumentRequest
func ToDomainRequests(ms []models.DocumentRequest) []domain.DocumentRequest {
	out := make([]domain.DocumentRequest, len(ms))
	for i, m := range ms {
		out[i] = ToDomainRequest(m)
	}
	return out
}

// ToDomainStatus converts a model Status to a domain Status
func ToDomainStatus(m models.Status) domain.Status {
	return domain.Status{StatusID: m.StatusID, Name: domain.StatusName(m.Name)}
}
