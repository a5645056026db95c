package api

import (
	"github.com/distillapp/distill-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth       *service.AuthService
	Session    *service.SessionService
	Tag        *service.TagService
	Submission *service.SubmissionService
	Review     *service.ReviewService
	Feed       *service.FeedService
	Preference *service.PreferenceService
	Admin      *service.AdminService
}
