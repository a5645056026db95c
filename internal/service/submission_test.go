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

// fakeGenerator returns canned content or a canned error, and records
// whether it was called.
type fakeGenerator struct {
	content *domain.InfographicContent
	err     error
	calls   int
}

func (g *fakeGenerator) Generate(_ context.Context, _, _ string) (*domain.InfographicContent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

// makeTestContent builds a fully populated infographic document.
func makeTestContent() *domain.InfographicContent {
	return &domain.InfographicContent{
		Overview: domain.OverviewSection{
			Title:   "Sleep and Memory Consolidation",
			Summary: "Slow-wave sleep strengthens hippocampal memory traces.",
			Statistics: []domain.Statistic{
				{Value: "23%", Label: "recall improvement"},
				{Value: "120", Label: "participants"},
				{Value: "8h", Label: "sleep duration"},
			},
			Sources:     []string{"Journal of Neuroscience, 2024"},
			Conclusions: []string{"Sleep quality predicts recall performance."},
		},
		Methods: domain.MethodsSection{
			Methodology:    "Randomized controlled trial",
			Participants:   "120 healthy adults aged 18-35",
			TechnicalTerms: []string{"slow-wave sleep", "hippocampus"},
			StudyDesign:    "Two-arm parallel design",
		},
		Solutions: []domain.SolutionPage{
			{Badge: 1, Title: "Keep a schedule", Steps: []string{"Fixed bedtime", "Fixed wake time"}},
			{Badge: 2, Title: "Limit screens", Steps: []string{"No screens after 22:00"}},
			{Badge: 3, Title: "Track sleep", Steps: []string{"Keep a sleep diary"}},
		},
	}
}

func setupSubmissionTest(t *testing.T, gen *fakeGenerator) (*SubmissionService, store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewSubmissionService(s, gen, slog.New(slog.DiscardHandler)), s
}

// seedUser inserts a user row so infographics can reference it.
func seedUser(t *testing.T, s store.Store, userID string, role domain.Role) {
	t.Helper()
	now := time.Now()
	err := s.CreateUser(context.Background(), &domain.User{
		ID:        userID,
		Email:     userID + "@example.com",
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

// seedTag inserts a tag row.
func seedTag(t *testing.T, s store.Store, tagID, name string) {
	t.Helper()
	err := s.CreateTag(context.Background(), &domain.Tag{
		ID:        tagID,
		Name:      name,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestSubmissionService_Submit(t *testing.T) {
	gen := &fakeGenerator{content: makeTestContent()}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedTag(t, s, "tag-neuro", "Neuroscience")
	seedTag(t, s, "tag-sleep", "Sleep")

	info, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
		ResearchText:    "Full paper text about sleep and memory.",
		ResearcherNotes: "Focus on the practical side.",
		TagIDs:          []string{"tag-neuro", "tag-sleep"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, info.Status)
	assert.Equal(t, "user-researcher", info.ResearcherID)
	assert.Equal(t, "Sleep and Memory Consolidation", info.Content.Overview.Title)
	assert.Equal(t, "Full paper text about sleep and memory.", info.OriginalPaperText)
	assert.Empty(t, info.ReviewedBy)
	assert.Nil(t, info.ReviewedAt)
	require.Len(t, info.Tags, 2)
	assert.Equal(t, 1, gen.calls)
}

func TestSubmissionService_Submit_GenerationFailureLeavesNoRow(t *testing.T) {
	gen := &fakeGenerator{err: domainerrors.Internal("no content generated")}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)

	_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
		ResearchText: "Some paper text.",
	})
	require.Error(t, err)

	infos, err := s.ListInfographicsByResearcher(ctx, "user-researcher")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSubmissionService_Submit_IncompleteDocumentLeavesNoRow(t *testing.T) {
	content := makeTestContent()
	content.Solutions = content.Solutions[:2]
	gen := &fakeGenerator{content: content}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)

	_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
		ResearchText: "Some paper text.",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	infos, err := s.ListInfographicsByResearcher(ctx, "user-researcher")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSubmissionService_Submit_UnknownTag(t *testing.T) {
	gen := &fakeGenerator{content: makeTestContent()}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)

	_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
		ResearchText: "Some paper text.",
		TagIDs:       []string{"tag-missing"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Tags are resolved before the generation call is made
	assert.Equal(t, 0, gen.calls)
}

func TestSubmissionService_Submit_PDFNotSupported(t *testing.T) {
	gen := &fakeGenerator{content: makeTestContent()}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)

	_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
		PaperPDF: []byte("%PDF-1.7"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Contains(t, err.Error(), "paste text directly")
	assert.Equal(t, 0, gen.calls)
}

func TestSubmissionService_Submit_MissingText(t *testing.T) {
	gen := &fakeGenerator{content: makeTestContent()}
	submissionService, _ := setupSubmissionTest(t, gen)
	ctx := context.Background()

	_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, 0, gen.calls)
}

func TestSubmissionService_ListByResearcher(t *testing.T) {
	gen := &fakeGenerator{content: makeTestContent()}
	submissionService, s := setupSubmissionTest(t, gen)
	ctx := context.Background()

	seedUser(t, s, "user-researcher", domain.RoleResearcher)
	seedUser(t, s, "user-other", domain.RoleResearcher)

	for range 2 {
		_, err := submissionService.Submit(ctx, "user-researcher", SubmitRequest{
			ResearchText: "Some paper text.",
		})
		require.NoError(t, err)
	}

	infos, err := submissionService.ListByResearcher(ctx, "user-researcher")
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	infos, err = submissionService.ListByResearcher(ctx, "user-other")
	require.NoError(t, err)
	assert.Empty(t, infos)
}
