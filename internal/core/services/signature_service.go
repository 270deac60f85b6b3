package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// signatureService tracks signature placeholders.
type signatureService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	documentRepo    portsrepo.DocumentRepositoryFacade
	versionRepo     portsrepo.VersionRepositoryFacade
	requestRepo     portsrepo.RequestRepositoryFacade
	placeholderRepo portsrepo.PlaceholderRepositoryFacade
	dispatcher      portssvc.DispatcherSvc
	blobStore       portssvc.BlobStore
	cache           portssvc.DocumentCache
}

// NewSignatureService creates a new SignatureService.
func NewSignatureService(repos *portsrepo.RepositoryProvider, dispatcher portssvc.DispatcherSvc, opts ...ServiceOption) portssvc.SignatureSvcFacade {
	o := applyOptions(opts)
	return &signatureService{
		BaseService:     BaseService{clock: o.clock},
		txManager:       repos.TxManager,
		documentRepo:    repos.DocumentRepo,
		versionRepo:     repos.VersionRepo,
		requestRepo:     repos.RequestRepo,
		placeholderRepo: repos.PlaceholderRepo,
		dispatcher:      dispatcher,
		blobStore:       o.blobStore,
		cache:           o.cache,
	}
}

var _ portssvc.SignatureSvcFacade = (*signatureService)(nil)

func validatePlaceholderInput(i int, in domain.PlaceholderInput) error {
	switch {
	case in.Page < 1:
		return apperrors.NewValidationError(fmt.Sprintf("placeholder %d: page must be at least 1", i))
	case in.X.IsNegative() || in.Y.IsNegative():
		return apperrors.NewValidationError(fmt.Sprintf("placeholder %d: position must not be negative", i))
	case !in.Width.IsPositive() || !in.Height.IsPositive():
		return apperrors.NewValidationError(fmt.Sprintf("placeholder %d: width and height must be positive", i))
	case strings.TrimSpace(in.AssignedToID) == "":
		return apperrors.NewValidationError(fmt.Sprintf("placeholder %d: assignee is required", i))
	}
	return nil
}

func (s *signatureService) RegisterPlaceholders(ctx context.Context, documentID string, inputs []domain.PlaceholderInput, actor domain.Actor) ([]domain.SignaturePlaceholder, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("at least one placeholder is required")
	}
	for i, in := range inputs {
		if err := validatePlaceholderInput(i, in); err != nil {
			return nil, err
		}
	}

	fx := &effects{}
	placeholders := make([]domain.SignaturePlaceholder, len(inputs))
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.CreatorID != actor.UserID && !actor.IsAdmin() {
			return apperrors.NewPermissionError("only the creator can place signature slots")
		}
		if doc.Status == domain.StatusCompleted {
			return apperrors.NewConflictError("cannot add placeholders to a completed document")
		}
		requests, err := s.requestRepo.ListRequestsByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		approvers := make(map[string]bool, len(requests))
		for _, r := range requests {
			approvers[r.RecipientUserID] = true
		}
		for i, in := range inputs {
			if !approvers[in.AssignedToID] {
				return apperrors.NewValidationError(fmt.Sprintf("user %s is not an approver of this document", in.AssignedToID))
			}
			placeholders[i] = domain.SignaturePlaceholder{
				PlaceholderID: uuid.NewString(),
				DocumentID:    documentID,
				Page:          in.Page,
				X:             in.X,
				Y:             in.Y,
				Width:         in.Width,
				Height:        in.Height,
				AssignedToID:  in.AssignedToID,
			}
		}
		if err := s.placeholderRepo.SavePlaceholders(ctx, placeholders); err != nil {
			return err
		}
		fx.logActivity(actor.UserID, fmt.Sprintf("Registered %d signature placeholder(s)", len(placeholders)), domain.TargetDocument, documentID, nil)
		return nil
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		s.LogError(ctx, err, "Failed to register placeholders", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to register placeholders on document %s: %w", documentID, err)
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return placeholders, nil
}

func (s *signatureService) MarkSigned(ctx context.Context, placeholderID, signerID, signatureData string) (*domain.SignaturePlaceholder, error) {
	return s.MarkSignedWithFile(ctx, placeholderID, signerID, signatureData, nil)
}

func (s *signatureService) MarkSignedWithFile(ctx context.Context, placeholderID, signerID, signatureData string, signedFile *domain.FileUpload) (*domain.SignaturePlaceholder, error) {
	logger := s.GetLogger(ctx).With(slog.String("placeholder_id", placeholderID), slog.String("signer_id", signerID))

	if strings.TrimSpace(signatureData) == "" {
		return nil, apperrors.NewValidationError("signature data is required")
	}
	placeholder, err := s.findPlaceholder(ctx, placeholderID)
	if err != nil {
		return nil, err
	}
	if placeholder.AssignedToID != signerID {
		return nil, apperrors.NewPermissionError("only the assigned approver can sign this placeholder")
	}

	var filePath string
	if signedFile != nil && !placeholder.IsSigned {
		if filePath, err = saveUpload(ctx, s.blobStore, *signedFile); err != nil {
			logger.Error("Failed to store signed file", slog.String("error", err.Error()))
			return nil, err
		}
	}

	fx := &effects{}
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, placeholder.DocumentID)
		if err != nil {
			return err
		}
		// re-read under the lock; a concurrent signature may have landed
		current, err := s.placeholderRepo.FindPlaceholderByID(ctx, placeholderID)
		if err != nil {
			return err
		}
		if current.IsSigned {
			if current.SignatureData != nil && *current.SignatureData == signatureData {
				placeholder = current
				return nil
			}
			return apperrors.NewAlreadySignedError(placeholderID)
		}
		if doc.Status == domain.StatusOnHold || doc.Status == domain.StatusCompleted {
			return apperrors.NewConflictError(fmt.Sprintf("cannot sign a document that is %s", doc.Status))
		}

		now := s.now()
		if err := s.placeholderRepo.MarkPlaceholderSigned(ctx, placeholderID, signatureData, now); err != nil {
			return err
		}
		current.IsSigned = true
		current.SignedAt = &now
		current.SignatureData = &signatureData
		placeholder = current

		if filePath != "" {
			version, err := appendVersion(ctx, s.versionRepo, doc.DocumentID, filePath, signerID, "Signed copy", now)
			if err != nil {
				return err
			}
			fx.logActivity(signerID, fmt.Sprintf("Uploaded version %d", version.VersionNumber), domain.TargetVersion, version.VersionID, nil)
		}
		fx.logActivity(signerID, "Signed document", domain.TargetPlaceholder, placeholderID, nil)

		all, err := s.placeholderRepo.ListPlaceholdersByDocument(ctx, doc.DocumentID)
		if err != nil {
			return err
		}
		if allSigned(all) {
			fx.notify(doc.CreatorID, signerID, "All signatures collected",
				fmt.Sprintf("Every signature on %q has been collected.", doc.Title))
		}
		fx.touch(doc.DocumentID)
		return nil
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("placeholder", placeholderID)
		}
		logger.Error("Failed to sign placeholder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign placeholder %s: %w", placeholderID, err)
	}

	fx.flush(ctx, s.dispatcher, s.cache)
	return placeholder, nil
}

func (s *signatureService) findPlaceholder(ctx context.Context, placeholderID string) (*domain.SignaturePlaceholder, error) {
	placeholder, err := s.placeholderRepo.FindPlaceholderByID(ctx, placeholderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("placeholder", placeholderID)
		}
		return nil, fmt.Errorf("failed to get placeholder %s: %w", placeholderID, err)
	}
	return placeholder, nil
}

func allSigned(placeholders []domain.SignaturePlaceholder) bool {
	live := 0
	for _, p := range placeholders {
		if p.IsDeleted {
			continue
		}
		live++
		if !p.IsSigned {
			return false
		}
	}
	return live > 0
}

func (s *signatureService) AllSigned(ctx context.Context, documentID string) (bool, error) {
	placeholders, err := s.PlaceholdersForDocument(ctx, documentID)
	if err != nil {
		return false, err
	}
	return allSigned(placeholders), nil
}

func (s *signatureService) UndoAllSignatures(ctx context.Context, documentID string) error {
	var reset int64
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.documentRepo.LockDocument(ctx, documentID); err != nil {
			return err
		}
		n, err := s.placeholderRepo.ResetPlaceholders(ctx, documentID)
		reset = n
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("document", documentID)
		}
		s.LogError(ctx, err, "Failed to reset placeholders", slog.String("document_id", documentID))
		return fmt.Errorf("failed to reset placeholders of document %s: %w", documentID, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, documentID)
	}
	s.LogInfo(ctx, "Placeholders reset", slog.String("document_id", documentID), slog.Int64("count", reset))
	return nil
}

func (s *signatureService) PlaceholdersForDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error) {
	if _, err := s.documentRepo.FindDocumentByID(ctx, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	placeholders, err := s.placeholderRepo.ListPlaceholdersByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list placeholders", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to list placeholders of document %s: %w", documentID, err)
	}
	return placeholders, nil
}
