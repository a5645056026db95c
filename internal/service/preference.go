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

// PreferenceService manages the tags a user follows for the
// personalized feed.
type PreferenceService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(store store.Store, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{
		store:  store,
		logger: logger,
	}
}

// ListPreferences returns the tags a user follows, oldest first.
func (s *PreferenceService) ListPreferences(ctx context.Context, userID string) ([]*domain.Tag, error) {
	tags, err := s.store.ListUserTagPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tag preferences: %w", err)
	}
	return tags, nil
}

// AddPreference subscribes a user to a tag. Adding a tag the user
// already follows is a no-op.
func (s *PreferenceService) AddPreference(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	if err := s.store.AddUserTagPreference(ctx, userID, tagID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return tag, nil
		}
		return nil, fmt.Errorf("add tag preference: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tag preference added",
			"user_id", userID,
			"tag_id", tagID,
		)
	}

	return tag, nil
}

// RemovePreference unsubscribes a user from a tag.
func (s *PreferenceService) RemovePreference(ctx context.Context, userID, tagID string) error {
	if err := s.store.RemoveUserTagPreference(ctx, userID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tag preference not found")
		}
		return fmt.Errorf("remove tag preference: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tag preference removed",
			"user_id", userID,
			"tag_id", tagID,
		)
	}

	return nil
}
