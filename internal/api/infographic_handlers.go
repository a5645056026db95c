package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/service"
)

func (s *Server) registerInfographicRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exploreInfographics",
		Method:      http.MethodGet,
		Path:        "/api/v1/infographics",
		Summary:     "Explore feed",
		Description: "Returns all approved infographics, newest first",
		Tags:        []string{"Infographics"},
	}, s.handleExplore)

	huma.Register(s.api, huma.Operation{
		OperationID: "personalizedFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/infographics/feed/personalized",
		Summary:     "Personalized feed",
		Description: "Returns approved infographics matching the user's tag preferences. Falls back to the explore feed when no preferences are set.",
		Tags:        []string{"Infographics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePersonalizedFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "infographicsByTags",
		Method:      http.MethodPost,
		Path:        "/api/v1/infographics/by-tags",
		Summary:     "Filter by tags",
		Description: "Returns approved infographics matching any of the given tags",
		Tags:        []string{"Infographics"},
	}, s.handleByTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getInfographic",
		Method:      http.MethodGet,
		Path:        "/api/v1/infographics/{id}",
		Summary:     "Get infographic",
		Description: "Returns a single infographic with its tags",
		Tags:        []string{"Infographics"},
	}, s.handleGetInfographic)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitInfographic",
		Method:      http.MethodPost,
		Path:        "/api/v1/infographics",
		Summary:     "Submit paper",
		Description: "Generates an infographic from paper text and queues it for review (researcher or admin)",
		Tags:        []string{"Infographics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubmitInfographic)

	huma.Register(s.api, huma.Operation{
		OperationID: "listResearcherInfographics",
		Method:      http.MethodGet,
		Path:        "/api/v1/researcher/infographics",
		Summary:     "My submissions",
		Description: "Returns the researcher's own submissions in every status (researcher or admin)",
		Tags:        []string{"Infographics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListResearcherInfographics)
}

// === DTOs ===

// InfographicResponse contains infographic data in API responses.
// The original paper text is included only for its owner and admins.
type InfographicResponse struct {
	ID                string                    `json:"id" doc:"Infographic ID"`
	ResearcherID      string                    `json:"researcher_id" doc:"Submitting researcher"`
	Status            string                    `json:"status" doc:"Review status (pending, approved, rejected)"`
	Content           domain.InfographicContent `json:"content" doc:"Three-section infographic document"`
	OriginalPaperText string                    `json:"original_paper_text,omitempty" doc:"Submitted paper text"`
	ResearcherNotes   string                    `json:"researcher_notes,omitempty" doc:"Notes from the researcher"`
	ReviewedBy        string                    `json:"reviewed_by,omitempty" doc:"Reviewing admin"`
	ReviewedAt        *time.Time                `json:"reviewed_at,omitempty" doc:"Review timestamp"`
	RejectionReason   string                    `json:"rejection_reason,omitempty" doc:"Reason given on rejection"`
	CreatedAt         time.Time                 `json:"created_at" doc:"Submission time"`
	UpdatedAt         time.Time                 `json:"updated_at" doc:"Last update time"`
	Tags              []TagResponse             `json:"tags" doc:"Associated tags"`
}

// InfographicListResponse contains a list of infographics.
type InfographicListResponse struct {
	Infographics []InfographicResponse `json:"infographics" doc:"List of infographics"`
}

// InfographicListOutput wraps the list response for Huma.
type InfographicListOutput struct {
	Body InfographicListResponse
}

// InfographicOutput wraps a single infographic response for Huma.
type InfographicOutput struct {
	Body InfographicResponse
}

// PersonalizedFeedInput contains the auth header for the personalized feed.
type PersonalizedFeedInput struct {
	Authorization string `header:"Authorization"`
}

// ByTagsRequest is the request body for tag filtering.
type ByTagsRequest struct {
	TagIDs []string `json:"tag_ids" doc:"Tag IDs to match (empty means no filter)"`
}

// ByTagsInput wraps the tag filter request for Huma.
type ByTagsInput struct {
	Body ByTagsRequest
}

// GetInfographicInput contains parameters for fetching one infographic.
type GetInfographicInput struct {
	ID string `path:"id" doc:"Infographic ID"`
}

// SubmitInfographicRequest is the request body for a paper submission.
type SubmitInfographicRequest struct {
	ResearchText    string   `json:"research_text" validate:"required" doc:"Raw paper text"`
	ResearcherNotes string   `json:"researcher_notes,omitempty" doc:"Optional context for generation"`
	TagIDs          []string `json:"tag_ids,omitempty" doc:"Tags to attach to the submission"`
}

// SubmitInfographicInput wraps the submission request for Huma.
type SubmitInfographicInput struct {
	Authorization string `header:"Authorization"`
	Body          SubmitInfographicRequest
}

// ResearcherInfographicsInput contains the auth header for listing own submissions.
type ResearcherInfographicsInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleExplore(ctx context.Context, _ *struct{}) (*InfographicListOutput, error) {
	infos, err := s.services.Feed.Explore(ctx)
	if err != nil {
		return nil, err
	}
	return &InfographicListOutput{Body: InfographicListResponse{Infographics: mapInfographicList(infos, false)}}, nil
}

func (s *Server) handlePersonalizedFeed(ctx context.Context, input *PersonalizedFeedInput) (*InfographicListOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	infos, err := s.services.Feed.Personalized(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &InfographicListOutput{Body: InfographicListResponse{Infographics: mapInfographicList(infos, false)}}, nil
}

func (s *Server) handleByTags(ctx context.Context, input *ByTagsInput) (*InfographicListOutput, error) {
	infos, err := s.services.Feed.ByTags(ctx, input.Body.TagIDs)
	if err != nil {
		return nil, err
	}
	return &InfographicListOutput{Body: InfographicListResponse{Infographics: mapInfographicList(infos, false)}}, nil
}

func (s *Server) handleGetInfographic(ctx context.Context, input *GetInfographicInput) (*InfographicOutput, error) {
	info, err := s.services.Feed.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &InfographicOutput{Body: mapInfographicResponse(info, false)}, nil
}

func (s *Server) handleSubmitInfographic(ctx context.Context, input *SubmitInfographicInput) (*InfographicOutput, error) {
	user, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleResearcher, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	info, err := s.services.Submission.Submit(ctx, user.ID, service.SubmitRequest{
		ResearchText:    input.Body.ResearchText,
		ResearcherNotes: input.Body.ResearcherNotes,
		TagIDs:          input.Body.TagIDs,
	})
	if err != nil {
		return nil, err
	}

	return &InfographicOutput{Body: mapInfographicResponse(info, true)}, nil
}

func (s *Server) handleListResearcherInfographics(ctx context.Context, input *ResearcherInfographicsInput) (*InfographicListOutput, error) {
	user, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleResearcher, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	infos, err := s.services.Submission.ListByResearcher(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &InfographicListOutput{Body: InfographicListResponse{Infographics: mapInfographicList(infos, true)}}, nil
}

// === Helpers ===

func mapInfographicResponse(info *domain.Infographic, includePaperText bool) InfographicResponse {
	resp := InfographicResponse{
		ID:              info.ID,
		ResearcherID:    info.ResearcherID,
		Status:          string(info.Status),
		Content:         info.Content,
		ResearcherNotes: info.ResearcherNotes,
		ReviewedBy:      info.ReviewedBy,
		ReviewedAt:      info.ReviewedAt,
		RejectionReason: info.RejectionReason,
		CreatedAt:       info.CreatedAt,
		UpdatedAt:       info.UpdatedAt,
		Tags:            make([]TagResponse, len(info.Tags)),
	}
	if includePaperText {
		resp.OriginalPaperText = info.OriginalPaperText
	}
	for i, t := range info.Tags {
		resp.Tags[i] = mapTagResponse(t)
	}
	return resp
}

func mapInfographicList(infos []*domain.Infographic, includePaperText bool) []InfographicResponse {
	resp := make([]InfographicResponse, len(infos))
	for i, info := range infos {
		resp[i] = mapInfographicResponse(info, includePaperText)
	}
	return resp
}
