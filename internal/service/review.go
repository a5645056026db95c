package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/store"
)

// ReviewService handles the admin moderation queue.
type ReviewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// ReviewRequest contains a moderation decision.
type ReviewRequest struct {
	Status          domain.InfographicStatus `json:"status"`
	RejectionReason string                   `json:"rejection_reason"`
}

// ListPending returns the moderation queue, newest submissions first.
func (s *ReviewService) ListPending(ctx context.Context) ([]*domain.Infographic, error) {
	infos, err := s.store.ListPendingInfographics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending infographics: %w", err)
	}
	return infos, nil
}

// Review applies an admin decision to a pending infographic.
// Approved and rejected are terminal; a reviewed infographic cannot be
// reviewed again. Rejections require a reason, checked before any mutation.
func (s *ReviewService) Review(ctx context.Context, adminID, infographicID string, req ReviewRequest) (*domain.Infographic, error) {
	if req.Status != domain.StatusApproved && req.Status != domain.StatusRejected {
		return nil, domainerrors.Validation("status must be 'approved' or 'rejected'")
	}
	if req.Status == domain.StatusRejected && req.RejectionReason == "" {
		return nil, domainerrors.Validation("rejection reason is required")
	}

	info, err := s.store.GetInfographic(ctx, infographicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("infographic not found")
		}
		return nil, fmt.Errorf("get infographic: %w", err)
	}

	if info.IsReviewed() {
		return nil, domainerrors.Conflictf("infographic is already %s", info.Status)
	}

	now := time.Now().UTC()
	info.Status = req.Status
	info.ReviewedBy = adminID
	info.ReviewedAt = &now
	if req.Status == domain.StatusRejected {
		info.RejectionReason = req.RejectionReason
	}
	info.Touch()

	if err := s.store.UpdateInfographic(ctx, info); err != nil {
		return nil, fmt.Errorf("update infographic: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Infographic reviewed",
			"infographic_id", infographicID,
			"status", info.Status,
			"admin_id", adminID,
		)
	}

	return info, nil
}
