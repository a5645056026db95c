package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/generation"
	"github.com/distillapp/distill-server/internal/id"
	"github.com/distillapp/distill-server/internal/store"
)

// SubmissionService turns researcher paper text into pending infographics.
// Generation is a single synchronous call; nothing is queued or retried, and
// a failed generation leaves no row behind.
type SubmissionService struct {
	store     store.Store
	generator generation.Generator
	logger    *slog.Logger
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(store store.Store, generator generation.Generator, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		store:     store,
		generator: generator,
		logger:    logger,
	}
}

// SubmitRequest contains a paper submission.
// Callers must paste raw text; PDF uploads are not supported.
type SubmitRequest struct {
	ResearchText    string   `json:"research_text" validate:"required"`
	ResearcherNotes string   `json:"researcher_notes"`
	TagIDs          []string `json:"tag_ids"`
	PaperPDF        []byte   `json:"paper_pdf,omitempty"`
}

// Submit generates an infographic from paper text and persists it as pending.
// Tag associations are written in the same transaction as the row.
func (s *SubmissionService) Submit(ctx context.Context, researcherID string, req SubmitRequest) (*domain.Infographic, error) {
	if len(req.PaperPDF) > 0 {
		if _, err := generation.ExtractTextFromPDF(req.PaperPDF); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	// Resolve tags before the expensive generation call
	for _, tagID := range req.TagIDs {
		if _, err := s.store.GetTag(ctx, tagID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.Validationf("unknown tag: %s", tagID)
			}
			return nil, fmt.Errorf("get tag: %w", err)
		}
	}

	start := time.Now()
	content, err := s.generator.Generate(ctx, req.ResearchText, req.ResearcherNotes)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("Infographic generation failed",
				"researcher_id", researcherID,
				"error", err,
			)
		}
		return nil, err
	}

	// An incomplete document must never produce a row.
	if err := generation.ValidateContent(content); err != nil {
		return nil, err
	}

	infographicID, err := id.Generate("info")
	if err != nil {
		return nil, fmt.Errorf("generate infographic ID: %w", err)
	}

	info := &domain.Infographic{
		ID:                infographicID,
		ResearcherID:      researcherID,
		Status:            domain.StatusPending,
		Content:           *content,
		OriginalPaperText: req.ResearchText,
		ResearcherNotes:   req.ResearcherNotes,
	}
	info.InitTimestamps()

	if err := s.store.CreateInfographic(ctx, info, req.TagIDs); err != nil {
		return nil, fmt.Errorf("save infographic: %w", err)
	}

	tags, err := s.store.GetInfographicTags(ctx, infographicID)
	if err != nil {
		return nil, fmt.Errorf("get infographic tags: %w", err)
	}
	info.Tags = tags

	if s.logger != nil {
		s.logger.Info("Infographic submitted",
			"infographic_id", infographicID,
			"researcher_id", researcherID,
			"tags", len(req.TagIDs),
			"duration", time.Since(start),
		)
	}

	return info, nil
}

// ListByResearcher returns all of a researcher's submissions, newest first,
// in every status.
func (s *SubmissionService) ListByResearcher(ctx context.Context, researcherID string) ([]*domain.Infographic, error) {
	infos, err := s.store.ListInfographicsByResearcher(ctx, researcherID)
	if err != nil {
		return nil, fmt.Errorf("list infographics: %w", err)
	}
	return infos, nil
}
