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

type routingService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	documentRepo portsrepo.DocumentRepositoryFacade
	requestRepo  portsrepo.RequestRepositoryFacade
	statusRepo   portsrepo.StatusReader
	userRepo     portsrepo.UserReader
	dispatcher   portssvc.DispatcherSvc
	cache        portssvc.DocumentCache
}

// NewRoutingService creates the service that fans documents out to approvers.
func NewRoutingService(repos *portsrepo.RepositoryProvider, dispatcher portssvc.DispatcherSvc, opts ...ServiceOption) portssvc.RoutingSvcFacade {
	o := applyOptions(opts)
	return &routingService{
		BaseService:  BaseService{clock: o.clock},
		txManager:    repos.TxManager,
		documentRepo: repos.DocumentRepo,
		requestRepo:  repos.RequestRepo,
		statusRepo:   repos.StatusRepo,
		userRepo:     repos.UserRepo,
		dispatcher:   dispatcher,
		cache:        o.cache,
	}
}

var _ portssvc.RoutingSvcFacade = (*routingService)(nil)

// distinctIDs trims ids and drops blanks and duplicates, keeping order.
func distinctIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *routingService) checkApprovers(ctx context.Context, approverIDs []string) error {
	if s.userRepo == nil {
		return nil
	}
	for _, id := range approverIDs {
		user, err := s.userRepo.FindUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError(fmt.Sprintf("approver %s does not exist", id))
			}
			return fmt.Errorf("failed to load approver %s: %w", id, err)
		}
		if !user.IsActive || user.IsDeleted {
			return apperrors.NewValidationError(fmt.Sprintf("approver %s is not an active user", id))
		}
	}
	return nil
}

func (s *routingService) RouteToApprovers(ctx context.Context, documentID, creatorID string, approverIDs []string) ([]domain.DocumentRequest, error) {
	logger := s.GetLogger(ctx).With(slog.String("document_id", documentID), slog.String("creator_id", creatorID))

	approverIDs = distinctIDs(approverIDs)
	if len(approverIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one approver is required")
	}
	inProcess, err := lookupStatus(ctx, s.statusRepo, domain.StatusInProcess)
	if err != nil {
		return nil, err
	}
	if err := s.checkApprovers(ctx, approverIDs); err != nil {
		return nil, err
	}

	fx := &effects{}
	var routed []domain.DocumentRequest
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.CreatorID != creatorID {
			return apperrors.NewPermissionError("only the creator can route this document")
		}
		if doc.Status == domain.StatusOnHold || doc.Status == domain.StatusCompleted {
			return apperrors.NewConflictError(fmt.Sprintf("cannot route a document that is %s", doc.Status))
		}

		existing, err := s.requestRepo.ListRequestsByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		byRecipient := make(map[string]domain.DocumentRequest, len(existing))
		for _, r := range existing {
			byRecipient[r.RecipientUserID] = r
		}

		now := s.now()
		created := make([]domain.DocumentRequest, 0, len(approverIDs))
		for _, approverID := range approverIDs {
			if r, ok := byRecipient[approverID]; ok {
				routed = append(routed, r)
				continue
			}
			req := domain.DocumentRequest{
				RequestID:       uuid.NewString(),
				DocumentID:      documentID,
				RequestedByID:   creatorID,
				RecipientUserID: approverID,
				Priority:        domain.PriorityNormal,
				RequestedAt:     now,
			}.WithStatus(inProcess)
			created = append(created, req)
			routed = append(routed, req)
		}
		if len(created) == 0 {
			return nil
		}
		if err := s.requestRepo.SaveRequests(ctx, created); err != nil {
			return err
		}
		if _, err := projectDocumentStatus(ctx, s.documentRepo, doc, append(existing, created...), now); err != nil {
			return err
		}

		for _, r := range created {
			fx.notify(r.RecipientUserID, creatorID, "New document for review",
				fmt.Sprintf("%q is awaiting your review.", doc.Title))
		}
		fx.logActivity(creatorID, fmt.Sprintf("Routed document to %d approver(s)", len(created)), domain.TargetDocument, documentID, nil)
		fx.touch(documentID)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("document was routed concurrently, retry")
		}
		if isAppError(err) {
			return nil, err
		}
		logger.Error("Failed to route document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to route document %s: %w", documentID, err)
	}

	fx.flush(ctx, s.dispatcher, s.cache)
	logger.Info("Document routed", slog.Int("approvers", len(routed)))
	return routed, nil
}

func (s *routingService) RequestsForDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error) {
	if _, err := s.documentRepo.FindDocumentByID(ctx, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	requests, err := s.requestRepo.ListRequestsByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list requests", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to list requests of document %s: %w", documentID, err)
	}
	return requests, nil
}

func (s *routingService) AllRequestsInStatus(ctx context.Context, documentID string, statusID int) (bool, error) {
	requests, err := s.RequestsForDocument(ctx, documentID)
	if err != nil {
		return false, err
	}
	live := 0
	for _, r := range requests {
		if r.IsDeleted {
			continue
		}
		live++
		if r.StatusID != statusID {
			return false, nil
		}
	}
	return live > 0, nil
}

func (s *routingService) RequestsForRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error) {
	requests, err := s.requestRepo.ListRequestsByRecipient(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list requests for recipient", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list requests for user %s: %w", userID, err)
	}
	return requests, nil
}
