package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/store"
)

func makeTestSession(id, userID, tokenHash string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        now.Add(24 * time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "192.0.2.10",
		ClientName:       "distill-web",
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-s1", "s1@example.com", domain.RoleCustomer)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	sess := makeTestSession("session-1", "user-s1", "hash-1")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != "user-s1" {
		t.Errorf("UserID: got %q, want %q", got.UserID, "user-s1")
	}
	if got.RefreshTokenHash != "hash-1" {
		t.Errorf("RefreshTokenHash: got %q, want %q", got.RefreshTokenHash, "hash-1")
	}
	if got.IPAddress != "192.0.2.10" {
		t.Errorf("IPAddress: got %q, want %q", got.IPAddress, "192.0.2.10")
	}
}

func TestGetSessionByRefreshToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-s2", "s2@example.com", domain.RoleCustomer)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	sess := makeTestSession("session-2", "user-s2", "hash-2")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByRefreshToken(ctx, "hash-2")
	if err != nil {
		t.Fatalf("GetSessionByRefreshToken: %v", err)
	}
	if got.ID != "session-2" {
		t.Errorf("ID: got %q, want %q", got.ID, "session-2")
	}

	_, err = s.GetSessionByRefreshToken(ctx, "unknown-hash")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-s3", "s3@example.com", domain.RoleCustomer)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	sess := makeTestSession("session-3", "user-s3", "hash-3")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "session-3"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, "session-3"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteSession(ctx, "session-3"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteAllUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-s4", "s4@example.com", domain.RoleCustomer)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	for i, id := range []string{"session-4a", "session-4b"} {
		sess := makeTestSession(id, "user-s4", "hash-4"+string(rune('a'+i)))
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession(%s): %v", id, err)
		}
	}

	if err := s.DeleteAllUserSessions(ctx, "user-s4"); err != nil {
		t.Fatalf("DeleteAllUserSessions: %v", err)
	}
	if _, err := s.GetSession(ctx, "session-4a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected session-4a gone, got %v", err)
	}
	if _, err := s.GetSession(ctx, "session-4b"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected session-4b gone, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-s5", "s5@example.com", domain.RoleCustomer)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	expired := makeTestSession("session-exp", "user-s5", "hash-exp")
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	if err := s.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession expired: %v", err)
	}
	live := makeTestSession("session-live", "user-s5", "hash-live")
	if err := s.CreateSession(ctx, live); err != nil {
		t.Fatalf("CreateSession live: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := s.GetSession(ctx, "session-live"); err != nil {
		t.Errorf("live session should remain: %v", err)
	}
}
