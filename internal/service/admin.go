package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/store"
)

// AdminService handles admin-only user management operations.
type AdminService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// ListUsers returns all users.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns a user by ID.
func (s *AdminService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUserRole changes a user's role.
// An admin cannot demote their own account.
func (s *AdminService) UpdateUserRole(ctx context.Context, adminID, targetUserID string, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domainerrors.Validationf("invalid role: %s", role)
	}

	user, err := s.store.GetUser(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if adminID == targetUserID && role != domain.RoleAdmin {
		return nil, domainerrors.Forbidden("cannot change your own admin role")
	}

	if user.Role == role {
		return user, nil
	}

	user.Role = role
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	// Outstanding access tokens still carry the old role until they
	// expire; revoking sessions stops them being refreshed.
	if err := s.store.DeleteAllUserSessions(ctx, targetUserID); err != nil {
		return nil, fmt.Errorf("revoke user sessions: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User role updated",
			"admin_id", adminID,
			"user_id", targetUserID,
			"role", role,
		)
	}

	return user, nil
}
