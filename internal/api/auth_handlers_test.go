package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distillapp/distill-server/internal/domain"
)

func TestSetup_CreatesAdmin(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":      "admin@example.com",
		"password":   "AdminPassword1!",
		"first_name": "Ada",
		"last_name":  "Admin",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		User         struct {
			Role  string `json:"role"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, resp.Body.Bytes(), &body)

	assert.Equal(t, "admin", body.User.Role)
	assert.Equal(t, "admin@example.com", body.User.Email)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.NotEmpty(t, body.AccessToken)
	assert.NotEmpty(t, body.RefreshToken)
}

func TestSetup_SecondCallConflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAdmin(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":      "second@example.com",
		"password":   "AdminPassword1!",
		"first_name": "Second",
		"last_name":  "Admin",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAdmin(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "admin@example.com",
		"password": "WrongPassword1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Unknown emails get the same response
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "WrongPassword1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	adminAuth, adminID := ts.setupAdmin(t)

	resp := ts.api.Get("/api/v1/auth/user", "Authorization: "+adminAuth)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, adminID, body.ID)
	assert.Equal(t, "admin", body.Role)

	// No token
	resp = ts.api.Get("/api/v1/auth/user")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Garbage token
	resp = ts.api.Get("/api/v1/auth/user", "Authorization: Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	ts := newTestServer(t)

	setupResp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":      "admin@example.com",
		"password":   "AdminPassword1!",
		"first_name": "Ada",
		"last_name":  "Admin",
	})
	require.Equal(t, http.StatusOK, setupResp.Code)

	var setup struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		SessionID    string `json:"session_id"`
	}
	decodeBody(t, setupResp.Body.Bytes(), &setup)

	// Refresh rotates the token
	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": setup.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var refreshed struct {
		RefreshToken string `json:"refresh_token"`
		SessionID    string `json:"session_id"`
	}
	decodeBody(t, resp.Body.Bytes(), &refreshed)
	assert.NotEqual(t, setup.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, setup.SessionID, refreshed.SessionID)

	// The old refresh token no longer works
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": setup.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logout requires authentication
	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": setup.SessionID,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// A different user cannot revoke this session
	otherAuth, _ := ts.createUser(t, "reader@example.com", domain.RoleCustomer)
	resp = ts.api.Post("/api/v1/auth/logout",
		"Authorization: "+otherAuth,
		map[string]any{"session_id": setup.SessionID},
	)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// The owner can
	resp = ts.api.Post("/api/v1/auth/logout",
		"Authorization: Bearer "+setup.AccessToken,
		map[string]any{"session_id": setup.SessionID},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshed.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
