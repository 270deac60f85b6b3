package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// SignatureSvcFacade tracks the signature slots of a document.
type SignatureSvcFacade interface {
	RegisterPlaceholders(ctx context.Context, documentID string, inputs []domain.PlaceholderInput, actor domain.Actor) ([]domain.SignaturePlaceholder, error)

	// MarkSigned signs a placeholder as its assignee. Re-signing with the same
	// data is a no-op; with different data it fails with apperrors.ErrAlreadySigned.
	MarkSigned(ctx context.Context, placeholderID, signerID, signatureData string) (*domain.SignaturePlaceholder, error)

	// MarkSignedWithFile behaves like MarkSigned and also appends signedFile as a new document version.
	MarkSignedWithFile(ctx context.Context, placeholderID, signerID, signatureData string, signedFile *domain.FileUpload) (*domain.SignaturePlaceholder, error)

	// AllSigned is false for a document without placeholders.
	AllSigned(ctx context.Context, documentID string) (bool, error)

	// UndoAllSignatures resets every placeholder of a document. Callers enforce who may do this.
	UndoAllSignatures(ctx context.Context, documentID string) error

	PlaceholdersForDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error)
}
