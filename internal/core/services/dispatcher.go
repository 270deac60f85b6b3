package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/SscSPs/document_tracking_app/internal/utils/pagination"
)

const (
	defaultActivityLogLimit = 20
	maxActivityLogLimit     = 100
	mailTimeout             = 30 * time.Second
)

// Dispatcher writes notifications and activity logs after a transition has
// committed. Every failure is logged as a side-effect error and swallowed.
type Dispatcher struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	activityLogRepo  portsrepo.ActivityLogRepositoryFacade
	userRepo         portsrepo.UserReader
	mailSender       portssvc.MailSender
	mailWG           sync.WaitGroup
}

// NewDispatcher creates the side-effect dispatcher. With WithMailSender every
// notification is also emailed to its receiver in the background.
func NewDispatcher(notificationRepo portsrepo.NotificationRepositoryFacade, activityLogRepo portsrepo.ActivityLogRepositoryFacade, userRepo portsrepo.UserReader, opts ...ServiceOption) *Dispatcher {
	o := applyOptions(opts)
	return &Dispatcher{
		BaseService:      BaseService{clock: o.clock},
		notificationRepo: notificationRepo,
		activityLogRepo:  activityLogRepo,
		userRepo:         userRepo,
		mailSender:       o.mailSender,
	}
}

var (
	_ portssvc.DispatcherSvc         = (*Dispatcher)(nil)
	_ portssvc.NotificationSvcFacade = (*Dispatcher)(nil)
)

// Notify persists an in-app notification and queues the matching email.
func (d *Dispatcher) Notify(ctx context.Context, receiverID, senderID, title, message string) {
	// the request may already be finished; the effect still has to land
	ctx = context.WithoutCancel(ctx)
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Title:          title,
		Message:        message,
		CreatedAt:      d.now(),
	}
	if err := d.notificationRepo.SaveNotification(ctx, notification); err != nil {
		d.LogError(ctx, apperrors.NewSideEffectError("failed to save notification", err), "Notification dropped",
			slog.String("receiver_id", receiverID), slog.String("title", title))
	}
	if d.mailSender == nil {
		return
	}
	d.mailWG.Add(1)
	go func() {
		defer d.mailWG.Done()
		d.sendMail(ctx, receiverID, title, message)
	}()
}

func (d *Dispatcher) sendMail(ctx context.Context, receiverID, subject, body string) {
	ctx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	user, err := d.userRepo.FindUserByID(ctx, receiverID)
	if err != nil {
		d.LogError(ctx, apperrors.NewSideEffectError("failed to resolve mail recipient", err), "Mail dropped",
			slog.String("receiver_id", receiverID))
		return
	}
	if user.Email == "" {
		d.LogDebug(ctx, "Receiver has no email address", slog.String("receiver_id", receiverID))
		return
	}
	if err := d.mailSender.Send(ctx, user.Email, subject, body); err != nil {
		d.LogError(ctx, apperrors.NewSideEffectError("failed to send mail", err), "Mail dropped",
			slog.String("receiver_id", receiverID))
	}
}

// Wait blocks until queued emails have been handed to the mail sender.
func (d *Dispatcher) Wait() {
	d.mailWG.Wait()
}

// LogActivity appends an audit entry.
func (d *Dispatcher) LogActivity(ctx context.Context, performedBy, action, targetType, targetID string, remarks *string) {
	ctx = context.WithoutCancel(ctx)
	entry := domain.ActivityLog{
		ActivityLogID: uuid.NewString(),
		PerformedBy:   performedBy,
		Action:        action,
		TargetType:    targetType,
		TargetID:      targetID,
		Remarks:       remarks,
		Timestamp:     d.now(),
	}
	if err := d.activityLogRepo.SaveActivityLog(ctx, entry); err != nil {
		d.LogError(ctx, apperrors.NewSideEffectError("failed to save activity log", err), "Activity log dropped",
			slog.String("action", action), slog.String("target_id", targetID))
	}
}

func (d *Dispatcher) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := d.notificationRepo.ListNotificationsByReceiver(ctx, userID, unreadOnly)
	if err != nil {
		d.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (d *Dispatcher) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	if err := d.notificationRepo.MarkNotificationRead(ctx, notificationID, userID, d.now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("notification", notificationID)
		}
		d.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (d *Dispatcher) ListActivityLogs(ctx context.Context, actor domain.Actor, params dto.ListActivityLogsParams) (*dto.ListActivityLogsResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewPermissionError("only admins can read the activity log")
	}
	limit := pagination.ClampLimit(params.Limit, defaultActivityLogLimit, maxActivityLogLimit)
	if params.NextToken != nil && *params.NextToken != "" {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, apperrors.NewValidationError("invalid nextToken")
		}
	}

	entries, next, err := d.activityLogRepo.ListActivityLogs(ctx, params.TargetID, limit, params.NextToken)
	if err != nil {
		d.LogError(ctx, err, "Failed to list activity logs", slog.String("target_id", params.TargetID))
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return &dto.ListActivityLogsResponse{
		ActivityLogs: dto.ToActivityLogResponses(entries),
		NextToken:    next,
	}, nil
}
