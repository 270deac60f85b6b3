package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/document_tracking_app/internal/models"
	"github.com/SscSPs/document_tracking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestSelect = `
		SELECT r.request_id, r.document_id, r.requested_by_id, r.recipient_user_id,
		       r.status_id, s.name AS status_name, r.priority, r.remarks,
		       r.requested_at, r.completed_at, r.is_deleted
		FROM document_requests r
		JOIN statuses s ON s.status_id = r.status_id`

// PgxRequestRepository stores document requests and reads the status vocabulary.
type PgxRequestRepository struct {
	BaseRepository
}

func newPgxRequestRepository(pool *pgxpool.Pool) *PgxRequestRepository {
	return &PgxRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)
	_ portsrepo.StatusReader            = (*PgxRequestRepository)(nil)
)

// SaveRequests inserts all requests in one batch.
func (r *PgxRequestRepository) SaveRequests(ctx context.Context, requests []domain.DocumentRequest) error {
	if len(requests) == 0 {
		return nil
	}
	query := `
		INSERT INTO document_requests (
			request_id, document_id, requested_by_id, recipient_user_id, status_id,
			priority, remarks, requested_at, completed_at, is_deleted
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, req := range requests {
		m := mapping.ToModelRequest(req)
		batch.Queue(query,
			m.RequestID, m.DocumentID, m.RequestedByID, m.RecipientUserID, m.StatusID,
			m.Priority, m.Remarks, m.RequestedAt, m.CompletedAt, m.IsDeleted,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("approver already routed: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert document requests: %w", err)
	}
	return nil
}

// UpdateRequestStates persists status, remarks and completed_at of each request in one batch.
func (r *PgxRequestRepository) UpdateRequestStates(ctx context.Context, requests []domain.DocumentRequest) error {
	if len(requests) == 0 {
		return nil
	}
	query := `
		UPDATE document_requests
		SET status_id = $2, remarks = $3, completed_at = $4
		WHERE request_id = $1 AND NOT is_deleted;
	`
	batch := &pgx.Batch{}
	for _, req := range requests {
		batch.Queue(query, req.RequestID, req.StatusID, req.Remarks, req.CompletedAt)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for _, req := range requests {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update request %s: %w", req.RequestID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("request", req.RequestID)
		}
	}
	return br.Close()
}

// FindRequestByID retrieves a live request by its ID.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.DocumentRequest, error) {
	rows, err := r.db(ctx).Query(ctx, requestSelect+` WHERE r.request_id = $1 AND NOT r.is_deleted;`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query request %s: %w", requestID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.DocumentRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("request", requestID)
		}
		return nil, fmt.Errorf("failed to scan request %s: %w", requestID, err)
	}
	d := mapping.ToDomainRequest(m)
	return &d, nil
}

// ListRequestsByDocument returns the live requests of a document in routing order.
func (r *PgxRequestRepository) ListRequestsByDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error) {
	query := requestSelect + ` WHERE r.document_id = $1 AND NOT r.is_deleted ORDER BY r.requested_at, r.request_id;`
	return r.listRequests(ctx, query, documentID)
}

// ListRequestsByRecipient returns the live requests addressed to a user, newest first.
func (r *PgxRequestRepository) ListRequestsByRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error) {
	query := requestSelect + ` WHERE r.recipient_user_id = $1 AND NOT r.is_deleted ORDER BY r.requested_at DESC, r.request_id;`
	return r.listRequests(ctx, query, userID)
}

func (r *PgxRequestRepository) listRequests(ctx context.Context, query, arg string) ([]domain.DocumentRequest, error) {
	rows, err := r.db(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DocumentRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to scan requests: %w", err)
	}
	return mapping.ToDomainRequests(ms), nil
}

// FindStatusByName resolves one vocabulary row.
func (r *PgxRequestRepository) FindStatusByName(ctx context.Context, name domain.StatusName) (*domain.Status, error) {
	var m models.Status
	err := r.db(ctx).QueryRow(ctx, `SELECT status_id, name FROM statuses WHERE name = $1;`, string(name)).
		Scan(&m.StatusID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("status", string(name))
		}
		return nil, fmt.Errorf("failed to query status %q: %w", name, err)
	}
	s := mapping.ToDomainStatus(m)
	return &s, nil
}

// ListStatuses returns the whole vocabulary.
func (r *PgxRequestRepository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT status_id, name FROM statuses ORDER BY status_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Status])
	if err != nil {
		return nil, fmt.Errorf("failed to scan statuses: %w", err)
	}
	statuses := make([]domain.Status, len(ms))
	for i, m := range ms {
		statuses[i] = mapping.ToDomainStatus(m)
	}
	return statuses, nil
}
