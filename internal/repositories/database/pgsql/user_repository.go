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

// PgxUserRepository reads the identity projection of users.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

// FindUserByID returns deleted and inactive users too; callers decide what that means.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	err := r.db(ctx).QueryRow(ctx, `
		SELECT user_id, name, email, role, is_active, is_deleted
		FROM users
		WHERE user_id = $1;`, userID).
		Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.IsActive, &m.IsDeleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
