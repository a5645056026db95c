package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPendingInfographics",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/infographics/pending",
		Summary:     "Pending queue",
		Description: "Returns the moderation queue, newest submissions first (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPendingInfographics)

	huma.Register(s.api, huma.Operation{
		OperationID: "reviewInfographic",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/infographics/{id}/review",
		Summary:     "Review infographic",
		Description: "Approves or rejects a pending infographic (admin only). Rejections require a reason.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReviewInfographic)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Description: "Returns all user accounts (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUserRole",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/users/{id}/role",
		Summary:     "Update user role",
		Description: "Changes a user's role (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUserRole)
}

// === DTOs ===

// PendingInfographicsInput contains the auth header for the pending queue.
type PendingInfographicsInput struct {
	Authorization string `header:"Authorization"`
}

// ReviewRequest is the request body for a moderation decision.
type ReviewRequest struct {
	Status          string `json:"status" validate:"required" doc:"Decision: approved or rejected"`
	RejectionReason string `json:"rejection_reason,omitempty" doc:"Reason, required when rejecting"`
}

// ReviewInfographicInput wraps the review request for Huma.
type ReviewInfographicInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Infographic ID"`
	Body          ReviewRequest
}

// ListUsersInput contains the auth header for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

// UserListResponse contains a list of users.
type UserListResponse struct {
	Users []UserResponse `json:"users" doc:"List of users"`
}

// UserListOutput wraps the user list response for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// UpdateUserRoleRequest is the request body for changing a user's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required" doc:"New role (customer, researcher, admin)"`
}

// UpdateUserRoleInput wraps the role update request for Huma.
type UpdateUserRoleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          UpdateUserRoleRequest
}

// === Handlers ===

func (s *Server) handleListPendingInfographics(ctx context.Context, input *PendingInfographicsInput) (*InfographicListOutput, error) {
	_, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	infos, err := s.services.Review.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return &InfographicListOutput{Body: InfographicListResponse{Infographics: mapInfographicList(infos, true)}}, nil
}

func (s *Server) handleReviewInfographic(ctx context.Context, input *ReviewInfographicInput) (*InfographicOutput, error) {
	admin, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	info, err := s.services.Review.Review(ctx, admin.ID, input.ID, service.ReviewRequest{
		Status:          domain.InfographicStatus(input.Body.Status),
		RejectionReason: input.Body.RejectionReason,
	})
	if err != nil {
		return nil, err
	}

	return &InfographicOutput{Body: mapInfographicResponse(info, true)}, nil
}

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error) {
	_, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	users, err := s.services.Admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapUserResponse(u)
	}
	return &UserListOutput{Body: UserListResponse{Users: resp}}, nil
}

func (s *Server) handleUpdateUserRole(ctx context.Context, input *UpdateUserRoleInput) (*UserOutput, error) {
	admin, err := s.authenticateAndRequireRoles(ctx, input.Authorization, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.UpdateUserRole(ctx, admin.ID, input.ID, domain.Role(input.Body.Role))
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}
