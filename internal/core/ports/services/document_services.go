package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/dto"
)

// DocumentReaderSvc defines read operations for documents and their versions
type DocumentReaderSvc interface {
	// GetDocument retrieves a live document, served from cache when possible.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)

	// CurrentVersion returns the highest version of a document, nil when it has none.
	CurrentVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error)

	ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error)
}

// DocumentWriterSvc defines write operations for documents and their versions
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorID string) (*domain.Document, error)

	// CreateDocumentWithFile stores file in the blob store and creates the document with it as version 1.
	CreateDocumentWithFile(ctx context.Context, req dto.CreateDocumentRequest, file domain.FileUpload, creatorID string) (*domain.Document, *domain.DocumentVersion, error)

	// AddVersion appends the next version number under the document lock.
	AddVersion(ctx context.Context, documentID, filePath, changedBy, changeDescription string) (*domain.DocumentVersion, error)

	// UploadVersion stores file in the blob store and appends it as a new version.
	UploadVersion(ctx context.Context, documentID string, file domain.FileUpload, changeDescription string, actor domain.Actor) (*domain.DocumentVersion, error)

	// DeleteLatestVersion removes the newest version; version 1 is never removed.
	DeleteLatestVersion(ctx context.Context, documentID string) error

	DeleteDocument(ctx context.Context, documentID string, actor domain.Actor) error

	// PurgeDocument hard deletes a document and everything scoped to it. Admin only.
	PurgeDocument(ctx context.Context, documentID string, actor domain.Actor) error
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
