package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a live (not soft-deleted) document.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// DocumentWriter defines write operations for document data
type DocumentWriter interface {
	SaveDocument(ctx context.Context, document domain.Document) error

	// LockDocument loads a live document and holds a row lock on it until the
	// surrounding transaction ends. All per-document mutations take this lock first.
	LockDocument(ctx context.Context, documentID string) (*domain.Document, error)

	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.StatusName, updatedAt time.Time) error

	// SoftDeleteDocument flags the document and every request and placeholder scoped to it.
	SoftDeleteDocument(ctx context.Context, documentID string, deletedAt time.Time) error

	// PurgeDocument hard deletes the document and every row scoped to it.
	PurgeDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// VersionReader defines read operations for document versions
type VersionReader interface {
	// FindLatestVersion returns the highest version of a document, nil when it has none.
	FindLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error)

	ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error)
}

// VersionWriter defines write operations for document versions
type VersionWriter interface {
	// MaxVersionNumber returns the highest version number of a document, 0 when it has none.
	MaxVersionNumber(ctx context.Context, documentID string) (int, error)

	SaveVersion(ctx context.Context, version domain.DocumentVersion) error

	DeleteVersion(ctx context.Context, versionID string) error
}

// VersionRepositoryFacade combines all version-related repository interfaces
type VersionRepositoryFacade interface {
	VersionReader
	VersionWriter
}
