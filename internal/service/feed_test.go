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

func setupFeedTest(t *testing.T) (*FeedService, store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewFeedService(s, slog.New(slog.DiscardHandler)), s
}

// seedApprovedInfographic inserts an approved infographic with the given
// tags and creation time.
func seedApprovedInfographic(t *testing.T, s store.Store, infoID, researcherID string, tagIDs []string, createdAt time.Time) {
	t.Helper()
	reviewedAt := createdAt.Add(time.Hour)
	info := &domain.Infographic{
		ID:                infoID,
		ResearcherID:      researcherID,
		Status:            domain.StatusApproved,
		Content:           *makeTestContent(),
		OriginalPaperText: "Paper text.",
		ReviewedBy:        researcherID,
		ReviewedAt:        &reviewedAt,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	require.NoError(t, s.CreateInfographic(context.Background(), info, tagIDs))
}

func idsOf(infos []*domain.Infographic) []string {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

func TestFeedService_Explore(t *testing.T) {
	feedService, s := setupFeedTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	base := time.Now().Add(-time.Hour)
	seedApprovedInfographic(t, s, "info-old", "user-researcher", nil, base)
	seedApprovedInfographic(t, s, "info-new", "user-researcher", nil, base.Add(time.Minute))
	seedPendingInfographic(t, s, "info-pending", "user-researcher")

	infos, err := feedService.Explore(ctx)
	require.NoError(t, err)

	// Approved only, newest first
	assert.Equal(t, []string{"info-new", "info-old"}, idsOf(infos))
}

func TestFeedService_Personalized_NoPreferencesFallsBackToExplore(t *testing.T) {
	feedService, s := setupFeedTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedUser(t, s, "user-reader", domain.RoleCustomer)
	seedTag(t, s, "tag-neuro", "Neuroscience")
	base := time.Now().Add(-time.Hour)
	seedApprovedInfographic(t, s, "info-1", "user-researcher", []string{"tag-neuro"}, base)
	seedApprovedInfographic(t, s, "info-2", "user-researcher", nil, base.Add(time.Minute))

	personalized, err := feedService.Personalized(ctx, "user-reader")
	require.NoError(t, err)

	explore, err := feedService.Explore(ctx)
	require.NoError(t, err)

	assert.Equal(t, idsOf(explore), idsOf(personalized))
}

func TestFeedService_Personalized_UnionOfPreferredTags(t *testing.T) {
	feedService, s := setupFeedTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedUser(t, s, "user-reader", domain.RoleCustomer)
	seedTag(t, s, "tag-a", "Astronomy")
	seedTag(t, s, "tag-b", "Biology")
	seedTag(t, s, "tag-c", "Chemistry")

	base := time.Now().Add(-time.Hour)
	// Matches both preferred tags; must appear exactly once
	seedApprovedInfographic(t, s, "info-both", "user-researcher", []string{"tag-a", "tag-b"}, base)
	seedApprovedInfographic(t, s, "info-a", "user-researcher", []string{"tag-a"}, base.Add(time.Minute))
	seedApprovedInfographic(t, s, "info-c", "user-researcher", []string{"tag-c"}, base.Add(2*time.Minute))
	seedApprovedInfographic(t, s, "info-untagged", "user-researcher", nil, base.Add(3*time.Minute))

	require.NoError(t, s.AddUserTagPreference(ctx, "user-reader", "tag-a"))
	require.NoError(t, s.AddUserTagPreference(ctx, "user-reader", "tag-b"))

	infos, err := feedService.Personalized(ctx, "user-reader")
	require.NoError(t, err)

	// Union of preferred tags, deduped, newest first
	assert.Equal(t, []string{"info-a", "info-both"}, idsOf(infos))
}

func TestFeedService_ByTags(t *testing.T) {
	feedService, s := setupFeedTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedTag(t, s, "tag-a", "Astronomy")
	seedTag(t, s, "tag-b", "Biology")

	base := time.Now().Add(-time.Hour)
	seedApprovedInfographic(t, s, "info-a", "user-researcher", []string{"tag-a"}, base)
	seedApprovedInfographic(t, s, "info-b", "user-researcher", []string{"tag-b"}, base.Add(time.Minute))

	infos, err := feedService.ByTags(ctx, []string{"tag-a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"info-a"}, idsOf(infos))

	// Empty tag list means no filter
	infos, err = feedService.ByTags(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"info-b", "info-a"}, idsOf(infos))
}

func TestFeedService_Get(t *testing.T) {
	feedService, s := setupFeedTest(t)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedTag(t, s, "tag-a", "Astronomy")
	seedApprovedInfographic(t, s, "info-1", "user-researcher", []string{"tag-a"}, time.Now())

	info, err := feedService.Get(ctx, "info-1")
	require.NoError(t, err)
	assert.Equal(t, "info-1", info.ID)
	require.Len(t, info.Tags, 1)
	assert.Equal(t, "Astronomy", info.Tags[0].Name)

	_, err = feedService.Get(ctx, "info-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
