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

const documentColumns = `document_id, title, description, type_id, department_id, creator_id,
		status, is_deleted, created_at, updated_at`

// PgxDocumentRepository stores documents and their versions.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)
	_ portsrepo.VersionRepositoryFacade  = (*PgxDocumentRepository)(nil)
)

// SaveDocument inserts a new document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.DocumentID, m.Title, m.Description, m.TypeID, m.DepartmentID, m.CreatorID,
		m.Status, m.IsDeleted, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document %s: %w", m.DocumentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a live document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND NOT is_deleted;`
	return r.queryDocument(ctx, query, documentID)
}

// LockDocument retrieves a live document and locks its row for the rest of the transaction.
func (r *PgxDocumentRepository) LockDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND NOT is_deleted FOR UPDATE;`
	return r.queryDocument(ctx, query, documentID)
}

func (r *PgxDocumentRepository) queryDocument(ctx context.Context, query, documentID string) (*domain.Document, error) {
	rows, err := r.db(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", documentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document", documentID)
		}
		return nil, fmt.Errorf("failed to scan document %s: %w", documentID, err)
	}
	d := mapping.ToDomainDocument(m)
	return &d, nil
}

// UpdateDocumentStatus writes the projected status of a document.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.StatusName, updatedAt time.Time) error {
	query := `UPDATE documents SET status = $2, updated_at = $3 WHERE document_id = $1 AND NOT is_deleted;`
	tag, err := r.db(ctx).Exec(ctx, query, documentID, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document", documentID)
	}
	return nil
}

// SoftDeleteDocument flags the document, its requests and its placeholders as deleted in one batch.
func (r *PgxDocumentRepository) SoftDeleteDocument(ctx context.Context, documentID string, deletedAt time.Time) error {
	batch := &pgx.Batch{}
	batch.Queue(`UPDATE documents SET is_deleted = TRUE, updated_at = $2 WHERE document_id = $1 AND NOT is_deleted;`, documentID, deletedAt)
	batch.Queue(`UPDATE document_requests SET is_deleted = TRUE WHERE document_id = $1;`, documentID)
	batch.Queue(`UPDATE signature_placeholders SET is_deleted = TRUE WHERE document_id = $1;`, documentID)

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()

	tag, err := br.Exec()
	if err != nil {
		return fmt.Errorf("failed to soft delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document", documentID)
	}
	for range 2 {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to soft delete children of document %s: %w", documentID, err)
		}
	}
	return br.Close()
}

// PurgeDocument hard deletes a document; versions, requests and placeholders
// go with it through ON DELETE CASCADE.
func (r *PgxDocumentRepository) PurgeDocument(ctx context.Context, documentID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to purge document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document", documentID)
	}
	return nil
}

const versionColumns = `version_id, document_id, version_number, file_path, changed_by, change_description, created_at`

// MaxVersionNumber returns the highest version number of a document, 0 when it has none.
func (r *PgxDocumentRepository) MaxVersionNumber(ctx context.Context, documentID string) (int, error) {
	var maxVersion int
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM document_versions WHERE document_id = $1;`,
		documentID,
	).Scan(&maxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to read max version of document %s: %w", documentID, err)
	}
	return maxVersion, nil
}

// SaveVersion inserts a version. UNIQUE(document_id, version_number) rejects a duplicate number.
func (r *PgxDocumentRepository) SaveVersion(ctx context.Context, version domain.DocumentVersion) error {
	m := mapping.ToModelVersion(version)
	query := `INSERT INTO document_versions (` + versionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.VersionID, m.DocumentID, m.VersionNumber, m.FilePath, m.ChangedBy, m.ChangeDescription, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("version %d of document %s: %w", m.VersionNumber, m.DocumentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert version of document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindLatestVersion returns the highest version of a document, nil when it has none.
func (r *PgxDocumentRepository) FindLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	query := `
		SELECT ` + versionColumns + `
		FROM document_versions
		WHERE document_id = $1
		ORDER BY version_number DESC
		LIMIT 1;
	`
	rows, err := r.db(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest version of document %s: %w", documentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.DocumentVersion])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan latest version of document %s: %w", documentID, err)
	}
	v := mapping.ToDomainVersion(m)
	return &v, nil
}

// ListVersions returns every version of a document, oldest first.
func (r *PgxDocumentRepository) ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM document_versions WHERE document_id = $1 ORDER BY version_number ASC;`
	rows, err := r.db(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of document %s: %w", documentID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DocumentVersion])
	if err != nil {
		return nil, fmt.Errorf("failed to scan versions of document %s: %w", documentID, err)
	}
	return mapping.ToDomainVersions(ms), nil
}

// DeleteVersion removes one version row.
func (r *PgxDocumentRepository) DeleteVersion(ctx context.Context, versionID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM document_versions WHERE version_id = $1;`, versionID)
	if err != nil {
		return fmt.Errorf("failed to delete version %s: %w", versionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("version", versionID)
	}
	return nil
}
