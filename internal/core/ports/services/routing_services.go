package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// RoutingSvcFacade fans a document out to its approvers and answers
// questions about the resulting requests.
type RoutingSvcFacade interface {
	// RouteToApprovers creates one In-Process request per distinct approver.
	RouteToApprovers(ctx context.Context, documentID, creatorID string, approverIDs []string) ([]domain.DocumentRequest, error)

	RequestsForDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error)

	// AllRequestsInStatus is false for a document without requests.
	AllRequestsInStatus(ctx context.Context, documentID string, statusID int) (bool, error)

	// RequestsForRecipient lists the requests addressed to a user.
	RequestsForRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error)
}
