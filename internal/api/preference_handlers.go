package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerPreferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTagPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/user/tags",
		Summary:     "List tag preferences",
		Description: "Returns the tags the user follows for the personalized feed",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTagPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTagPreference",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/tags/{tagId}",
		Summary:     "Follow tag",
		Description: "Adds a tag to the user's feed preferences",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddTagPreference)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeTagPreference",
		Method:      http.MethodDelete,
		Path:        "/api/v1/user/tags/{tagId}",
		Summary:     "Unfollow tag",
		Description: "Removes a tag from the user's feed preferences",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveTagPreference)
}

// === DTOs ===

// ListPreferencesInput contains the auth header for listing preferences.
type ListPreferencesInput struct {
	Authorization string `header:"Authorization"`
}

// TagPreferenceInput contains parameters for adding or removing a preference.
type TagPreferenceInput struct {
	Authorization string `header:"Authorization"`
	TagID         string `path:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTagPreferences(ctx context.Context, input *ListPreferencesInput) (*ListTagsOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Preference.ListPreferences(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = mapTagResponse(t)
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleAddTagPreference(ctx context.Context, input *TagPreferenceInput) (*TagOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Preference.AddPreference(ctx, user.ID, input.TagID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: mapTagResponse(tag)}, nil
}

func (s *Server) handleRemoveTagPreference(ctx context.Context, input *TagPreferenceInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Preference.RemovePreference(ctx, user.ID, input.TagID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag preference removed"}}, nil
}
