package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/id"
	"github.com/distillapp/distill-server/internal/store"
	"github.com/distillapp/distill-server/internal/util"
)

// TagService manages the global tag vocabulary.
// Tags are created and deleted by admins; everyone can list them.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// CreateTagRequest contains the fields for a new tag.
type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=500"`
}

// ListTags returns all tags ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GetTag returns a tag by ID.
func (s *TagService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// CreateTag creates a new tag. Names are unique case-insensitively.
func (s *TagService) CreateTag(ctx context.Context, adminID string, req CreateTagRequest) (*domain.Tag, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	name := util.NormalizeTagName(req.Name)
	if name == "" {
		return nil, domainerrors.Validation("name is empty after normalization")
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:          tagID,
		Name:        name,
		Description: req.Description,
		CreatedBy:   adminID,
		CreatedAt:   time.Now(),
	}

	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("tag %q already exists", name)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tag created",
			"tag_id", tagID,
			"name", name,
			"admin_id", adminID,
		)
	}

	return tag, nil
}

// DeleteTag removes a tag. Infographic associations and user preferences
// referencing the tag are removed with it.
func (s *TagService) DeleteTag(ctx context.Context, adminID, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tag not found")
		}
		return fmt.Errorf("delete tag: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tag deleted",
			"tag_id", tagID,
			"admin_id", adminID,
		)
	}

	return nil
}
