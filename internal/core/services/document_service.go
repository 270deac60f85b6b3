package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
)

var validate = validator.New()

// documentService owns documents and their version history.
type documentService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	documentRepo portsrepo.DocumentRepositoryFacade
	versionRepo  portsrepo.VersionRepositoryFacade
	dispatcher   portssvc.DispatcherSvc
	blobStore    portssvc.BlobStore
	cache        portssvc.DocumentCache
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(txManager portsrepo.TransactionManager, documentRepo portsrepo.DocumentRepositoryFacade, versionRepo portsrepo.VersionRepositoryFacade, dispatcher portssvc.DispatcherSvc, opts ...ServiceOption) portssvc.DocumentSvcFacade {
	o := applyOptions(opts)
	return &documentService{
		BaseService:  BaseService{clock: o.clock},
		txManager:    txManager,
		documentRepo: documentRepo,
		versionRepo:  versionRepo,
		dispatcher:   dispatcher,
		blobStore:    o.blobStore,
		cache:        o.cache,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) newDocument(req dto.CreateDocumentRequest, creatorID string) (domain.Document, error) {
	// whitespace-only values count as missing
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.TypeID = strings.TrimSpace(req.TypeID)
	if err := validate.Struct(req); err != nil {
		return domain.Document{}, apperrors.NewValidationError(fmt.Sprintf("invalid document: %v", err))
	}
	if strings.TrimSpace(creatorID) == "" {
		return domain.Document{}, apperrors.NewValidationError("creator is required")
	}
	now := s.now()
	return domain.Document{
		DocumentID:   uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		TypeID:       req.TypeID,
		DepartmentID: req.DepartmentID,
		CreatorID:    creatorID,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorID string) (*domain.Document, error) {
	doc, err := s.newDocument(req, creatorID)
	if err != nil {
		return nil, err
	}
	if err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		return s.documentRepo.SaveDocument(ctx, doc)
	}); err != nil {
		s.LogError(ctx, err, "Failed to create document", slog.String("creator_id", creatorID))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	fx := &effects{}
	fx.logActivity(creatorID, "Created document", domain.TargetDocument, doc.DocumentID, nil)
	fx.flush(ctx, s.dispatcher, s.cache)

	s.LogInfo(ctx, "Document created", slog.String("document_id", doc.DocumentID))
	return &doc, nil
}

// saveFile puts an upload in the blob store. It runs before any transaction
// is opened so no row lock is held during the upload.
func (s *documentService) saveFile(ctx context.Context, file domain.FileUpload) (string, error) {
	return saveUpload(ctx, s.blobStore, file)
}

func saveUpload(ctx context.Context, blobStore portssvc.BlobStore, file domain.FileUpload) (string, error) {
	if blobStore == nil {
		return "", apperrors.NewConfigurationError("no blob store configured", nil)
	}
	if len(file.Data) == 0 {
		return "", apperrors.NewValidationError("uploaded file is empty")
	}
	path, err := blobStore.Save(ctx, file.Data, file.Name)
	if err != nil {
		return "", fmt.Errorf("failed to store file %q: %w", file.Name, err)
	}
	return path, nil
}

func (s *documentService) CreateDocumentWithFile(ctx context.Context, req dto.CreateDocumentRequest, file domain.FileUpload, creatorID string) (*domain.Document, *domain.DocumentVersion, error) {
	doc, err := s.newDocument(req, creatorID)
	if err != nil {
		return nil, nil, err
	}
	path, err := s.saveFile(ctx, file)
	if err != nil {
		s.LogError(ctx, err, "Failed to store initial document file", slog.String("file_name", file.Name))
		return nil, nil, err
	}

	var version *domain.DocumentVersion
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
			return err
		}
		v, err := appendVersion(ctx, s.versionRepo, doc.DocumentID, path, creatorID, "Initial version", doc.CreatedAt)
		version = v
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create document with file", slog.String("blob_path", path))
		return nil, nil, fmt.Errorf("failed to create document: %w", err)
	}

	fx := &effects{}
	fx.logActivity(creatorID, "Created document", domain.TargetDocument, doc.DocumentID, nil)
	fx.logActivity(creatorID, "Uploaded version 1", domain.TargetVersion, version.VersionID, nil)
	fx.flush(ctx, s.dispatcher, s.cache)

	s.LogInfo(ctx, "Document created", slog.String("document_id", doc.DocumentID), slog.String("blob_path", path))
	return &doc, version, nil
}

func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.cache != nil {
		if doc, ok := s.cache.Get(ctx, documentID); ok {
			return doc, nil
		}
	}
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		s.LogError(ctx, err, "Failed to get document", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, *doc)
	}
	return doc, nil
}

func (s *documentService) CurrentVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	if _, err := s.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	version, err := s.versionRepo.FindLatestVersion(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current version of document %s: %w", documentID, err)
	}
	return version, nil
}

func (s *documentService) ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	if _, err := s.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	versions, err := s.versionRepo.ListVersions(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of document %s: %w", documentID, err)
	}
	return versions, nil
}

func (s *documentService) AddVersion(ctx context.Context, documentID, filePath, changedBy, changeDescription string) (*domain.DocumentVersion, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, apperrors.NewValidationError("file path is required")
	}
	var version *domain.DocumentVersion
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.documentRepo.LockDocument(ctx, documentID); err != nil {
			return err
		}
		v, err := appendVersion(ctx, s.versionRepo, documentID, filePath, changedBy, changeDescription, s.now())
		version = v
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		s.LogError(ctx, err, "Failed to add version", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to add version to document %s: %w", documentID, err)
	}

	fx := &effects{}
	fx.logActivity(changedBy, fmt.Sprintf("Uploaded version %d", version.VersionNumber), domain.TargetVersion, version.VersionID, nil)
	fx.flush(ctx, s.dispatcher, s.cache)
	return version, nil
}

func (s *documentService) UploadVersion(ctx context.Context, documentID string, file domain.FileUpload, changeDescription string, actor domain.Actor) (*domain.DocumentVersion, error) {
	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CreatorID != actor.UserID && !actor.IsAdmin() {
		return nil, apperrors.NewPermissionError("only the creator can upload a new version")
	}
	if doc.Status == domain.StatusCompleted {
		return nil, apperrors.NewConflictError("a completed document cannot receive new versions")
	}
	path, err := s.saveFile(ctx, file)
	if err != nil {
		s.LogError(ctx, err, "Failed to store version file", slog.String("document_id", documentID))
		return nil, err
	}
	return s.AddVersion(ctx, documentID, path, actor.UserID, changeDescription)
}

func (s *documentService) DeleteLatestVersion(ctx context.Context, documentID string) error {
	var removed *domain.DocumentVersion
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.documentRepo.LockDocument(ctx, documentID); err != nil {
			return err
		}
		v, err := removeLatestVersion(ctx, s.versionRepo, documentID)
		if err != nil {
			return err
		}
		if v == nil {
			return apperrors.NewNotFoundError("removable version of document", documentID)
		}
		removed = v
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete latest version", slog.String("document_id", documentID))
		return fmt.Errorf("failed to delete latest version of document %s: %w", documentID, err)
	}
	s.LogInfo(ctx, "Latest version deleted", slog.String("document_id", documentID), slog.Int("version", removed.VersionNumber))
	return nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, actor domain.Actor) error {
	fx := &effects{}
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.CreatorID != actor.UserID && !actor.IsAdmin() {
			return apperrors.NewPermissionError("only the creator can delete this document")
		}
		if err := s.documentRepo.SoftDeleteDocument(ctx, documentID, s.now()); err != nil {
			return err
		}
		fx.logActivity(actor.UserID, "Deleted document", domain.TargetDocument, documentID, nil)
		fx.touch(documentID)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("document", documentID)
		}
		if errors.Is(err, apperrors.ErrPermission) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return nil
}

func (s *documentService) PurgeDocument(ctx context.Context, documentID string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return apperrors.NewPermissionError("only admins can purge documents")
	}
	if err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		return s.documentRepo.PurgeDocument(ctx, documentID)
	}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("document", documentID)
		}
		s.LogError(ctx, err, "Failed to purge document", slog.String("document_id", documentID))
		return fmt.Errorf("failed to purge document %s: %w", documentID, err)
	}

	fx := &effects{}
	fx.logActivity(actor.UserID, "Purged document", domain.TargetDocument, documentID, nil)
	fx.touch(documentID)
	fx.flush(ctx, s.dispatcher, s.cache)

	s.LogInfo(ctx, "Document purged", slog.String("document_id", documentID))
	return nil
}
