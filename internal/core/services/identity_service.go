package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

type identityService struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewIdentityService creates the service the auth middleware asks whether a
// token subject may still act.
func NewIdentityService(userRepo portsrepo.UserReader) portssvc.IdentitySvc {
	return &identityService{userRepo: userRepo}
}

var _ portssvc.IdentitySvc = (*identityService)(nil)

func (s *identityService) Authenticate(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("missing subject")
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("unknown user")
		}
		s.LogError(ctx, err, "Failed to load user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user.IsDeleted {
		return nil, apperrors.NewForbiddenError("account has been deleted")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("account is inactive")
	}
	return user, nil
}
