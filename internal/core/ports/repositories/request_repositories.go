package repositories

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// RequestReader defines read operations for document requests
type RequestReader interface {
	// FindRequestByID retrieves a live request with its status name resolved.
	FindRequestByID(ctx context.Context, requestID string) (*domain.DocumentRequest, error)

	// ListRequestsByDocument returns the live requests of a document ordered by requested_at.
	ListRequestsByDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error)

	// ListRequestsByRecipient returns the live requests addressed to a user, newest first.
	ListRequestsByRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error)
}

// RequestWriter defines write operations for document requests
type RequestWriter interface {
	SaveRequests(ctx context.Context, requests []domain.DocumentRequest) error

	// UpdateRequestStates persists status, remarks and completed_at of each request.
	UpdateRequestStates(ctx context.Context, requests []domain.DocumentRequest) error
}

// RequestRepositoryFacade combines all request-related repository interfaces
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}

// StatusReader resolves the status vocabulary.
type StatusReader interface {
	// FindStatusByName returns apperrors.ErrNotFound when the vocabulary row is missing.
	FindStatusByName(ctx context.Context, name domain.StatusName) (*domain.Status, error)

	ListStatuses(ctx context.Context) ([]domain.Status, error)
}
