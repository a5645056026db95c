package domain

import "time"

// Tag is an admin-created category label. Tags are attached to
// infographics and chosen by users as feed preferences.
// Name is unique case-insensitively.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"` // Admin user ID
	CreatedAt   time.Time `json:"created_at"`
}

// InfographicTag is the many-to-many link between infographics and tags.
// Rows are removed by cascade when either parent is deleted.
type InfographicTag struct {
	InfographicID string    `json:"infographic_id"`
	TagID         string    `json:"tag_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserTagPreference is a user's opt-in to a tag for the personalized feed.
// Rows are removed by cascade when either parent is deleted. AddedAt is
// informational only; preference order is not significant.
type UserTagPreference struct {
	UserID  string    `json:"user_id"`
	TagID   string    `json:"tag_id"`
	AddedAt time.Time `json:"added_at"`
}
