package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/store"
	"github.com/distillapp/distill-server/internal/store/sqlite"
)

func setupAdminTest(t *testing.T) (*AdminService, store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewAdminService(s, slog.New(slog.DiscardHandler)), s
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)
	seedUser(t, s, "user-reader", domain.RoleCustomer)

	user, err := adminService.UpdateUserRole(ctx, "user-admin", "user-reader", domain.RoleResearcher)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleResearcher, user.Role)

	got, err := s.GetUser(ctx, "user-reader")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleResearcher, got.Role)
}

func TestAdminService_UpdateUserRole_RevokesSessions(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)
	seedUser(t, s, "user-reader", domain.RoleCustomer)

	now := time.Now()
	require.NoError(t, s.CreateSession(ctx, &domain.Session{
		ID:               "session-reader",
		UserID:           "user-reader",
		RefreshTokenHash: "hash",
		ExpiresAt:        now.Add(time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
	}))

	_, err := adminService.UpdateUserRole(ctx, "user-admin", "user-reader", domain.RoleResearcher)
	require.NoError(t, err)

	// Sessions carrying the old role are gone
	_, err = s.GetSession(ctx, "session-reader")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAdminService_UpdateUserRole_InvalidRole(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)
	seedUser(t, s, "user-reader", domain.RoleCustomer)

	_, err := adminService.UpdateUserRole(ctx, "user-admin", "user-reader", "superuser")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAdminService_UpdateUserRole_SelfDemotion(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)

	_, err := adminService.UpdateUserRole(ctx, "user-admin", "user-admin", domain.RoleCustomer)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Keeping admin on your own account is fine
	user, err := adminService.UpdateUserRole(ctx, "user-admin", "user-admin", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAdminService_UpdateUserRole_NotFound(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)

	_, err := adminService.UpdateUserRole(ctx, "user-admin", "user-missing", domain.RoleResearcher)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminService_ListUsers(t *testing.T) {
	adminService, s := setupAdminTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-admin", domain.RoleAdmin)
	seedUser(t, s, "user-reader", domain.RoleCustomer)

	users, err := adminService.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
