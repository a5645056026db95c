// Package store defines the persistence interface for the Distill server.
package store

import (
	"context"

	"github.com/distillapp/distill-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// Infographics
	CreateInfographic(ctx context.Context, info *domain.Infographic, tagIDs []string) error
	GetInfographic(ctx context.Context, id string) (*domain.Infographic, error)
	UpdateInfographic(ctx context.Context, info *domain.Infographic) error
	ListApprovedInfographics(ctx context.Context) ([]*domain.Infographic, error)
	ListApprovedInfographicsByTags(ctx context.Context, tagIDs []string) ([]*domain.Infographic, error)
	ListPendingInfographics(ctx context.Context) ([]*domain.Infographic, error)
	ListInfographicsByResearcher(ctx context.Context, researcherID string) ([]*domain.Infographic, error)
	GetInfographicTags(ctx context.Context, infographicID string) ([]*domain.Tag, error)

	// Tag preferences
	AddUserTagPreference(ctx context.Context, userID, tagID string) error
	RemoveUserTagPreference(ctx context.Context, userID, tagID string) error
	ListUserTagPreferences(ctx context.Context, userID string) ([]*domain.Tag, error)
}
