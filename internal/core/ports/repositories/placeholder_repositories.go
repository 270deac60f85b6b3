package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// PlaceholderReader defines read operations for signature placeholders
type PlaceholderReader interface {
	FindPlaceholderByID(ctx context.Context, placeholderID string) (*domain.SignaturePlaceholder, error)

	// ListPlaceholdersByDocument returns the live placeholders of a document ordered by page.
	ListPlaceholdersByDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error)

	// HasSignedPlaceholder reports whether userID has signed at least one placeholder of the document.
	HasSignedPlaceholder(ctx context.Context, documentID, userID string) (bool, error)
}

// PlaceholderWriter defines write operations for signature placeholders
type PlaceholderWriter interface {
	SavePlaceholders(ctx context.Context, placeholders []domain.SignaturePlaceholder) error

	MarkPlaceholderSigned(ctx context.Context, placeholderID string, signatureData string, signedAt time.Time) error

	// ResetPlaceholders clears signed state and the deleted flag of every
	// placeholder of the document and returns how many rows changed.
	ResetPlaceholders(ctx context.Context, documentID string) (int64, error)
}

// PlaceholderRepositoryFacade combines all placeholder-related repository interfaces
type PlaceholderRepositoryFacade interface {
	PlaceholderReader
	PlaceholderWriter
}
