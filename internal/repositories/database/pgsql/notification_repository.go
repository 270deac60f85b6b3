package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/document_tracking_app/internal/models"
	"github.com/SscSPs/document_tracking_app/internal/utils/mapping"
	"github.com/SscSPs/document_tracking_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxNotificationRepository stores notifications and the activity log.
type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)
	_ portsrepo.ActivityLogRepositoryFacade  = (*PgxNotificationRepository)(nil)
)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO notifications (
			notification_id, sender_id, receiver_id, title, message, is_read, read_at, created_at, is_deleted
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.NotificationID, m.SenderID, m.ReceiverID, m.Title, m.Message, m.IsRead, m.ReadAt, m.CreatedAt, m.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification for %s: %w", m.ReceiverID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsByReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, sender_id, receiver_id, title, message, is_read, read_at, created_at, is_deleted
		FROM notifications
		WHERE receiver_id = $1 AND NOT is_deleted AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, notification_id
		LIMIT 200;`
	rows, err := r.db(ctx).Query(ctx, query, receiverID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for %s: %w", receiverID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Notification])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications for %s: %w", receiverID, err)
	}
	return mapping.ToDomainNotifications(ms), nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, receiverID string, readAt time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $3)
		WHERE notification_id = $1 AND receiver_id = $2 AND NOT is_deleted;`,
		notificationID, receiverID, readAt)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification", notificationID)
	}
	return nil
}

func (r *PgxNotificationRepository) SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error {
	m := mapping.ToModelActivityLog(entry)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO activity_logs (
			activity_log_id, performed_by, action, target_type, target_id, remarks, timestamp, is_deleted
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.ActivityLogID, m.PerformedBy, m.Action, m.TargetType, m.TargetID, m.Remarks, m.Timestamp, m.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log %q: %w", m.Action, err)
	}
	return nil
}

// ListActivityLogs pages newest first using a (timestamp, id) keyset cursor.
func (r *PgxNotificationRepository) ListActivityLogs(ctx context.Context, targetID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error) {
	args := []any{targetID, limit + 1}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, ts, id)
		cursorClause = ` AND (timestamp, activity_log_id) < ($3, $4)`
	}

	query := `
		SELECT activity_log_id, performed_by, action, target_type, target_id, remarks, timestamp, is_deleted
		FROM activity_logs
		WHERE NOT is_deleted AND ($1 = '' OR target_id = $1)` + cursorClause + `
		ORDER BY timestamp DESC, activity_log_id DESC
		LIMIT $2;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityLog])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan activity logs: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.Timestamp, last.ActivityLogID)
		next = &token
	}
	return mapping.ToDomainActivityLogs(ms), next, nil
}
