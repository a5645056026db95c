package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/store"
)

// AddUserTagPreference records that a user wants the given tag in their
// personalized feed. Returns store.ErrAlreadyExists if the preference is
// already present.
func (s *Store) AddUserTagPreference(ctx context.Context, userID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_tag_preferences (user_id, tag_id, added_at)
		VALUES (?, ?, ?)`,
		userID,
		tagID,
		formatTime(time.Now().UTC()),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveUserTagPreference removes a tag from a user's preferences.
// Returns store.ErrNotFound if the preference does not exist.
func (s *Store) RemoveUserTagPreference(ctx context.Context, userID, tagID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM user_tag_preferences WHERE user_id = ? AND tag_id = ?`,
		userID, tagID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListUserTagPreferences returns the tags a user has marked as preferred,
// in the order they were added.
func (s *Store) ListUserTagPreferences(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixColumns("t", tagColumns)+`
		FROM tags t
		JOIN user_tag_preferences p ON p.tag_id = t.id
		WHERE p.user_id = ?
		ORDER BY p.added_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
