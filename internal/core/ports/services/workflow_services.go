package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// WorkflowSvcFacade applies approval actions to documents. Every action runs
// in one transaction under the document lock and dispatches its
// notifications and activity logs only after commit.
type WorkflowSvcFacade interface {
	// Approve is idempotent for an already approved request.
	Approve(ctx context.Context, requestID, approverID string) (*domain.DocumentRequest, error)

	// Hold puts every request of the request's document on hold with remark.
	Hold(ctx context.Context, requestID, approverID, remark string) ([]domain.DocumentRequest, error)

	// Resume returns an on-hold document to In-Process. Creator only.
	Resume(ctx context.Context, documentID string, actor domain.Actor) ([]domain.DocumentRequest, error)

	// MarkComplete completes an Awaiting-Completion document. Creator or admin.
	MarkComplete(ctx context.Context, requestID string, actor domain.Actor) (*domain.Document, error)

	// UndoSignatures resets all signatures and drops the latest version above v1.
	UndoSignatures(ctx context.Context, documentID, performerID string) (*domain.Document, error)
}
