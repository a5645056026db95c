package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distillapp/distill-server/internal/domain"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
	"github.com/distillapp/distill-server/internal/store"
	"github.com/distillapp/distill-server/internal/store/sqlite"
)

func setupTagTest(t *testing.T) (*TagService, store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	seedUser(t, s, "user-admin", domain.RoleAdmin)

	return NewTagService(s, slog.New(slog.DiscardHandler)), s
}

func TestTagService_CreateTag(t *testing.T) {
	tagService, _ := setupTagTest(t)
	ctx := context.Background()

	tag, err := tagService.CreateTag(ctx, "user-admin", CreateTagRequest{
		Name:        "  Machine   Learning ",
		Description: "ML research",
	})
	require.NoError(t, err)

	// Whitespace collapsed, display casing preserved
	assert.Equal(t, "Machine Learning", tag.Name)
	assert.Equal(t, "ML research", tag.Description)
	assert.Equal(t, "user-admin", tag.CreatedBy)
	assert.NotEmpty(t, tag.ID)
}

func TestTagService_CreateTag_DuplicateName(t *testing.T) {
	tagService, _ := setupTagTest(t)
	ctx := context.Background()

	_, err := tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: "Neuroscience"})
	require.NoError(t, err)

	// Duplicates are detected case-insensitively
	_, err = tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: "NEUROSCIENCE"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestTagService_CreateTag_Validation(t *testing.T) {
	tagService, _ := setupTagTest(t)
	ctx := context.Background()

	_, err := tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: ""})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagService_ListTags(t *testing.T) {
	tagService, _ := setupTagTest(t)
	ctx := context.Background()

	for _, name := range []string{"genetics", "Astronomy", "biology"} {
		_, err := tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: name})
		require.NoError(t, err)
	}

	tags, err := tagService.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)

	// Ordered by name, case-insensitively
	assert.Equal(t, "Astronomy", tags[0].Name)
	assert.Equal(t, "biology", tags[1].Name)
	assert.Equal(t, "genetics", tags[2].Name)
}

func TestTagService_DeleteTag(t *testing.T) {
	tagService, _ := setupTagTest(t)
	ctx := context.Background()

	tag, err := tagService.CreateTag(ctx, "user-admin", CreateTagRequest{Name: "Chemistry"})
	require.NoError(t, err)

	require.NoError(t, tagService.DeleteTag(ctx, "user-admin", tag.ID))

	_, err = tagService.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = tagService.DeleteTag(ctx, "user-admin", tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
