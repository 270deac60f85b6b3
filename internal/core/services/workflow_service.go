package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// workflowService applies approval actions. Each action locks the document,
// moves its requests and re-projects the document status in one transaction.
type workflowService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	documentRepo    portsrepo.DocumentRepositoryFacade
	versionRepo     portsrepo.VersionRepositoryFacade
	requestRepo     portsrepo.RequestRepositoryFacade
	statusRepo      portsrepo.StatusReader
	placeholderRepo portsrepo.PlaceholderRepositoryFacade
	dispatcher      portssvc.DispatcherSvc
	cache           portssvc.DocumentCache
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(repos *portsrepo.RepositoryProvider, dispatcher portssvc.DispatcherSvc, opts ...ServiceOption) portssvc.WorkflowSvcFacade {
	o := applyOptions(opts)
	return &workflowService{
		BaseService:     BaseService{clock: o.clock},
		txManager:       repos.TxManager,
		documentRepo:    repos.DocumentRepo,
		versionRepo:     repos.VersionRepo,
		requestRepo:     repos.RequestRepo,
		statusRepo:      repos.StatusRepo,
		placeholderRepo: repos.PlaceholderRepo,
		dispatcher:      dispatcher,
		cache:           o.cache,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// lockRequestDocument locks the document a request belongs to and re-reads
// the request under that lock.
func (s *workflowService) lockRequestDocument(ctx context.Context, requestID string) (*domain.DocumentRequest, *domain.Document, error) {
	req, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.documentRepo.LockDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	req, err = s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	return req, doc, nil
}

// transition moves every request accepted by include to the status action
// leads to. Requests the action leaves unchanged are skipped.
func (s *workflowService) transition(ctx context.Context, requests []domain.DocumentRequest, action domain.Action, include func(domain.DocumentRequest) bool, mutate func(*domain.DocumentRequest)) ([]domain.DocumentRequest, error) {
	changed := make([]domain.DocumentRequest, 0, len(requests))
	statuses := make(map[domain.StatusName]domain.Status)
	for i := range requests {
		r := requests[i]
		if r.IsDeleted || (include != nil && !include(r)) {
			continue
		}
		next, err := domain.NextRequestStatus(r.Status, action)
		if err != nil {
			return nil, conflictFrom(err)
		}
		if next == r.Status && mutate == nil {
			continue
		}
		status, ok := statuses[next]
		if !ok {
			if status, err = lookupStatus(ctx, s.statusRepo, next); err != nil {
				return nil, err
			}
			statuses[next] = status
		}
		r = r.WithStatus(status)
		if mutate != nil {
			mutate(&r)
		}
		requests[i] = r
		changed = append(changed, r)
	}
	if len(changed) == 0 {
		return changed, nil
	}
	if err := s.requestRepo.UpdateRequestStates(ctx, changed); err != nil {
		return nil, err
	}
	return changed, nil
}

// finish maps a transaction error onto the error returned to callers.
func (s *workflowService) finish(ctx context.Context, err error, msg string, attrs ...any) error {
	if isAppError(err) {
		s.LogDebug(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
		return err
	}
	s.LogError(ctx, err, msg, attrs...)
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}

func (s *workflowService) Approve(ctx context.Context, requestID, approverID string) (*domain.DocumentRequest, error) {
	fx := &effects{}
	var result *domain.DocumentRequest
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		req, doc, err := s.lockRequestDocument(ctx, requestID)
		if err != nil {
			return err
		}
		if req.RecipientUserID != approverID {
			return apperrors.NewPermissionError("only the assigned approver can approve this request")
		}
		if req.Status == domain.StatusApproved {
			result = req
			return nil
		}

		now := s.now()
		requests, err := s.requestRepo.ListRequestsByDocument(ctx, doc.DocumentID)
		if err != nil {
			return err
		}
		changed, err := s.transition(ctx, requests, domain.ActionApprove,
			func(r domain.DocumentRequest) bool { return r.RequestID == requestID },
			func(r *domain.DocumentRequest) { r.CompletedAt = &now })
		if err != nil {
			return err
		}
		if len(changed) != 1 {
			return fmt.Errorf("request %s is not a live request of document %s", requestID, doc.DocumentID)
		}
		result = &changed[0]

		previous := doc.Status
		status, err := projectDocumentStatus(ctx, s.documentRepo, doc, requests, now)
		if err != nil {
			return err
		}
		fx.logActivity(approverID, "Approved document request", domain.TargetRequest, requestID, nil)
		if status == domain.StatusAwaitingCompletion && previous != domain.StatusAwaitingCompletion {
			fx.notify(doc.CreatorID, approverID, "All approvals received",
				fmt.Sprintf("Every approver has approved %q. It can now be marked complete.", doc.Title))
		}
		fx.touch(doc.DocumentID)
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, err, "Failed to approve request", slog.String("request_id", requestID), slog.String("approver_id", approverID))
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return result, nil
}

func (s *workflowService) Hold(ctx context.Context, requestID, approverID, remark string) ([]domain.DocumentRequest, error) {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return nil, apperrors.NewValidationError("a remark is required to put a document on hold")
	}

	fx := &effects{}
	var result []domain.DocumentRequest
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		req, doc, err := s.lockRequestDocument(ctx, requestID)
		if err != nil {
			return err
		}
		if req.RecipientUserID != approverID {
			return apperrors.NewPermissionError("only the assigned approver can put this request on hold")
		}

		requests, err := s.requestRepo.ListRequestsByDocument(ctx, doc.DocumentID)
		if err != nil {
			return err
		}
		if _, err := s.transition(ctx, requests, domain.ActionHold, nil, func(r *domain.DocumentRequest) {
			r.Remarks = &remark
			r.CompletedAt = nil
		}); err != nil {
			return err
		}
		if _, err := projectDocumentStatus(ctx, s.documentRepo, doc, requests, s.now()); err != nil {
			return err
		}
		result = requests

		fx.logActivity(approverID, "Put document on hold", domain.TargetRequest, requestID, &remark)
		fx.notifyAll(append([]string{req.RequestedByID}, recipientsOf(requests)...), approverID, approverID,
			"Document on hold", fmt.Sprintf("%q was put on hold: %s", doc.Title, remark))
		fx.touch(doc.DocumentID)
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, err, "Failed to hold request", slog.String("request_id", requestID), slog.String("approver_id", approverID))
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return result, nil
}

func (s *workflowService) Resume(ctx context.Context, documentID string, actor domain.Actor) ([]domain.DocumentRequest, error) {
	fx := &effects{}
	var result []domain.DocumentRequest
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.CreatorID != actor.UserID {
			return apperrors.NewPermissionError("only the creator can resume this document")
		}
		if doc.Status != domain.StatusOnHold {
			return apperrors.NewConflictError(fmt.Sprintf("cannot resume a document that is %s", doc.Status))
		}

		requests, err := s.requestRepo.ListRequestsByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if _, err := s.transition(ctx, requests, domain.ActionResume,
			func(r domain.DocumentRequest) bool { return r.Status == domain.StatusOnHold }, nil); err != nil {
			return err
		}
		if _, err := projectDocumentStatus(ctx, s.documentRepo, doc, requests, s.now()); err != nil {
			return err
		}
		result = requests

		fx.logActivity(actor.UserID, "Resumed document", domain.TargetDocument, documentID, nil)
		fx.notifyAll(recipientsOf(requests), actor.UserID, actor.UserID,
			"Document resumed", fmt.Sprintf("%q is back in review.", doc.Title))
		fx.touch(documentID)
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, err, "Failed to resume document", slog.String("document_id", documentID))
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return result, nil
}

func (s *workflowService) MarkComplete(ctx context.Context, requestID string, actor domain.Actor) (*domain.Document, error) {
	fx := &effects{}
	var result *domain.Document
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		req, doc, err := s.lockRequestDocument(ctx, requestID)
		if err != nil {
			return err
		}
		if doc.CreatorID != actor.UserID && !actor.IsAdmin() {
			return apperrors.NewPermissionError("only the creator can complete this document")
		}
		result = doc
		if doc.Status == domain.StatusCompleted {
			return nil
		}

		requests, err := s.requestRepo.ListRequestsByDocument(ctx, doc.DocumentID)
		if err != nil {
			return err
		}
		if !domain.AllInStatus(requests, domain.StatusApproved) {
			return apperrors.NewConflictError("every approver must approve before the document can be completed")
		}
		now := s.now()
		if _, err := s.transition(ctx, requests, domain.ActionComplete, nil,
			func(r *domain.DocumentRequest) { r.CompletedAt = &now }); err != nil {
			return err
		}
		if _, err := projectDocumentStatus(ctx, s.documentRepo, doc, requests, now); err != nil {
			return err
		}

		fx.logActivity(actor.UserID, "Marked document complete", domain.TargetDocument, doc.DocumentID, nil)
		title, message := "Document completed", fmt.Sprintf("%q has been completed.", doc.Title)
		recipients := recipientsOf(requests)
		fx.notifyAll(recipients, actor.UserID, actor.UserID, title, message)
		// the requester is told even when completing the document themselves
		if req.RequestedByID == actor.UserID || !slices.Contains(recipients, req.RequestedByID) {
			fx.notify(req.RequestedByID, actor.UserID, title, message)
		}
		fx.touch(doc.DocumentID)
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, err, "Failed to complete document", slog.String("request_id", requestID))
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return result, nil
}

func (s *workflowService) UndoSignatures(ctx context.Context, documentID, performerID string) (*domain.Document, error) {
	fx := &effects{}
	var result *domain.Document
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.documentRepo.LockDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.CreatorID != performerID {
			signed, err := s.placeholderRepo.HasSignedPlaceholder(ctx, documentID, performerID)
			if err != nil {
				return err
			}
			if !signed {
				return apperrors.NewPermissionError("only the creator or a signer can undo signatures")
			}
		}
		if doc.Status == domain.StatusCompleted {
			return apperrors.NewConflictError("signatures of a completed document cannot be undone")
		}

		if _, err := s.placeholderRepo.ResetPlaceholders(ctx, documentID); err != nil {
			return err
		}
		removed, err := removeLatestVersion(ctx, s.versionRepo, documentID)
		if err != nil {
			return err
		}

		requests, err := s.requestRepo.ListRequestsByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		reverted, err := s.transition(ctx, requests, domain.ActionUndo,
			func(r domain.DocumentRequest) bool { return r.Status == domain.StatusApproved },
			func(r *domain.DocumentRequest) { r.CompletedAt = nil })
		if err != nil {
			return err
		}
		if _, err := projectDocumentStatus(ctx, s.documentRepo, doc, requests, s.now()); err != nil {
			return err
		}
		result = doc

		var remarks *string
		if removed != nil {
			r := fmt.Sprintf("removed version %d", removed.VersionNumber)
			remarks = &r
		}
		fx.logActivity(performerID, "Undid signatures", domain.TargetDocument, documentID, remarks)
		fx.notifyAll(recipientsOf(reverted), performerID, performerID,
			"Signatures reset", fmt.Sprintf("Signatures on %q were reset. Please review it again.", doc.Title))
		fx.touch(documentID)
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, err, "Failed to undo signatures", slog.String("document_id", documentID), slog.String("performer_id", performerID))
	}
	fx.flush(ctx, s.dispatcher, s.cache)
	return result, nil
}
