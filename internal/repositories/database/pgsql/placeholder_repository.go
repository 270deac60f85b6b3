package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/document_tracking_app/internal/models"
	"github.com/SscSPs/document_tracking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const placeholderColumns = `placeholder_id, document_id, page, x, y, width, height, assigned_to_id,
		is_signed, signed_at, signature_data, is_deleted`

// PgxPlaceholderRepository stores signature placeholders.
type PgxPlaceholderRepository struct {
	BaseRepository
}

func newPgxPlaceholderRepository(pool *pgxpool.Pool) *PgxPlaceholderRepository {
	return &PgxPlaceholderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlaceholderRepositoryFacade = (*PgxPlaceholderRepository)(nil)

// SavePlaceholders inserts all placeholders in one batch.
func (r *PgxPlaceholderRepository) SavePlaceholders(ctx context.Context, placeholders []domain.SignaturePlaceholder) error {
	if len(placeholders) == 0 {
		return nil
	}
	query := `INSERT INTO signature_placeholders (` + placeholderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	batch := &pgx.Batch{}
	for _, p := range placeholders {
		m := mapping.ToModelPlaceholder(p)
		batch.Queue(query,
			m.PlaceholderID, m.DocumentID, m.Page, m.X, m.Y, m.Width, m.Height, m.AssignedToID,
			m.IsSigned, m.SignedAt, m.SignatureData, m.IsDeleted,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert placeholders: %w", err)
	}
	return nil
}

// FindPlaceholderByID retrieves a live placeholder by its ID.
func (r *PgxPlaceholderRepository) FindPlaceholderByID(ctx context.Context, placeholderID string) (*domain.SignaturePlaceholder, error) {
	query := `SELECT ` + placeholderColumns + ` FROM signature_placeholders WHERE placeholder_id = $1 AND NOT is_deleted;`
	rows, err := r.db(ctx).Query(ctx, query, placeholderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query placeholder %s: %w", placeholderID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SignaturePlaceholder])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("placeholder", placeholderID)
		}
		return nil, fmt.Errorf("failed to scan placeholder %s: %w", placeholderID, err)
	}
	p := mapping.ToDomainPlaceholder(m)
	return &p, nil
}

// ListPlaceholdersByDocument returns the live placeholders of a document by page.
func (r *PgxPlaceholderRepository) ListPlaceholdersByDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error) {
	query := `SELECT ` + placeholderColumns + `
		FROM signature_placeholders
		WHERE document_id = $1 AND NOT is_deleted
		ORDER BY page, placeholder_id;`
	rows, err := r.db(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placeholders of document %s: %w", documentID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SignaturePlaceholder])
	if err != nil {
		return nil, fmt.Errorf("failed to scan placeholders of document %s: %w", documentID, err)
	}
	return mapping.ToDomainPlaceholders(ms), nil
}

// HasSignedPlaceholder reports whether userID signed any placeholder of the document.
func (r *PgxPlaceholderRepository) HasSignedPlaceholder(ctx context.Context, documentID, userID string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM signature_placeholders
			WHERE document_id = $1 AND assigned_to_id = $2 AND is_signed
		);`, documentID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check signer %s on document %s: %w", userID, documentID, err)
	}
	return exists, nil
}

// MarkPlaceholderSigned stores a signature on an unsigned placeholder.
func (r *PgxPlaceholderRepository) MarkPlaceholderSigned(ctx context.Context, placeholderID string, signatureData string, signedAt time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE signature_placeholders
		SET is_signed = TRUE, signed_at = $2, signature_data = $3
		WHERE placeholder_id = $1 AND NOT is_deleted AND NOT is_signed;`,
		placeholderID, signedAt, signatureData)
	if err != nil {
		return fmt.Errorf("failed to sign placeholder %s: %w", placeholderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("placeholder %s is no longer signable", placeholderID))
	}
	return nil
}

// ResetPlaceholders clears the signed state and the deleted flag of every placeholder of the document.
func (r *PgxPlaceholderRepository) ResetPlaceholders(ctx context.Context, documentID string) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE signature_placeholders
		SET is_signed = FALSE, signed_at = NULL, signature_data = NULL, is_deleted = FALSE
		WHERE document_id = $1;`, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset placeholders of document %s: %w", documentID, err)
	}
	return tag.RowsAffected(), nil
}
