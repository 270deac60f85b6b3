package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
)

// lookupStatus resolves a vocabulary row. A missing row is a deployment
// defect, so it is logged at error level and reported as a configuration error.
func lookupStatus(ctx context.Context, statusRepo portsrepo.StatusReader, name domain.StatusName) (domain.Status, error) {
	status, err := statusRepo.FindStatusByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			cfgErr := apperrors.NewConfigurationError(fmt.Sprintf("status %q is missing from the status vocabulary", name), err)
			middleware.GetLoggerFromCtx(ctx).Error("Status vocabulary incomplete", slog.String("status", string(name)), slog.String("error", cfgErr.Error()))
			return domain.Status{}, cfgErr
		}
		return domain.Status{}, fmt.Errorf("failed to resolve status %q: %w", name, err)
	}
	return *status, nil
}

// conflictFrom turns an illegal domain transition into a ConflictError.
func conflictFrom(err error) error {
	if errors.Is(err, domain.ErrIllegalTransition) {
		return apperrors.NewConflictError(err.Error())
	}
	return err
}

// projectDocumentStatus recomputes the document status from its requests and
// persists it when it changed. It must run in the transaction that mutated the requests.
func projectDocumentStatus(ctx context.Context, documentRepo portsrepo.DocumentWriter, doc *domain.Document, requests []domain.DocumentRequest, now time.Time) (domain.StatusName, error) {
	derived := domain.DeriveDocumentStatus(requests)
	if derived == doc.Status {
		return derived, nil
	}
	if err := documentRepo.UpdateDocumentStatus(ctx, doc.DocumentID, derived, now); err != nil {
		return "", fmt.Errorf("failed to project status of document %s: %w", doc.DocumentID, err)
	}
	doc.Status = derived
	doc.UpdatedAt = now
	return derived, nil
}

// appendVersion allocates the next version number and inserts it. The caller
// must hold the document lock.
func appendVersion(ctx context.Context, versionRepo portsrepo.VersionWriter, documentID, filePath, changedBy, changeDescription string, now time.Time) (*domain.DocumentVersion, error) {
	maxVersion, err := versionRepo.MaxVersionNumber(ctx, documentID)
	if err != nil {
		return nil, err
	}
	version := domain.DocumentVersion{
		VersionID:         uuid.NewString(),
		DocumentID:        documentID,
		VersionNumber:     maxVersion + 1,
		FilePath:          filePath,
		ChangedBy:         changedBy,
		ChangeDescription: changeDescription,
		CreatedAt:         now,
	}
	if err := versionRepo.SaveVersion(ctx, version); err != nil {
		return nil, err
	}
	return &version, nil
}

// removeLatestVersion deletes the newest version unless it is version 1, in
// which case nothing is removed and nil is returned. The caller must hold the document lock.
func removeLatestVersion(ctx context.Context, versionRepo portsrepo.VersionRepositoryFacade, documentID string) (*domain.DocumentVersion, error) {
	latest, err := versionRepo.FindLatestVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if latest == nil || latest.VersionNumber <= 1 {
		return nil, nil
	}
	if err := versionRepo.DeleteVersion(ctx, latest.VersionID); err != nil {
		return nil, err
	}
	return latest, nil
}

// recipientsOf lists the approvers of requests.
func recipientsOf(requests []domain.DocumentRequest) []string {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.RecipientUserID)
	}
	return ids
}

// isAppError reports whether err already carries a failure kind and can be
// returned to the caller unchanged.
func isAppError(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Kind != nil
}
