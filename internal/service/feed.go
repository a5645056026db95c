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

// FeedService composes the reader-facing content feeds.
// Only approved infographics ever appear in a feed.
type FeedService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(store store.Store, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:  store,
		logger: logger,
	}
}

// Explore returns all approved infographics, newest first.
func (s *FeedService) Explore(ctx context.Context) ([]*domain.Infographic, error) {
	infos, err := s.store.ListApprovedInfographics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved infographics: %w", err)
	}
	return infos, nil
}

// Personalized returns approved infographics matching any of the user's
// preferred tags. A user with no preferences gets the explore feed.
func (s *FeedService) Personalized(ctx context.Context, userID string) ([]*domain.Infographic, error) {
	prefs, err := s.store.ListUserTagPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tag preferences: %w", err)
	}

	if len(prefs) == 0 {
		return s.Explore(ctx)
	}

	tagIDs := make([]string, len(prefs))
	for i, tag := range prefs {
		tagIDs[i] = tag.ID
	}

	infos, err := s.store.ListApprovedInfographicsByTags(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("list infographics by tags: %w", err)
	}
	return infos, nil
}

// ByTags returns approved infographics matching any of the given tags.
// An empty tag list returns the full explore feed.
func (s *FeedService) ByTags(ctx context.Context, tagIDs []string) ([]*domain.Infographic, error) {
	if len(tagIDs) == 0 {
		return s.Explore(ctx)
	}

	infos, err := s.store.ListApprovedInfographicsByTags(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("list infographics by tags: %w", err)
	}
	return infos, nil
}

// Get returns a single infographic with its tags.
func (s *FeedService) Get(ctx context.Context, infographicID string) (*domain.Infographic, error) {
	info, err := s.store.GetInfographic(ctx, infographicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("infographic not found")
		}
		return nil, fmt.Errorf("get infographic: %w", err)
	}
	return info, nil
}
