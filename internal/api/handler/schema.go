package handler

import (
	"time"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// identityResponse mirrors the shape the front end stores: { username, role, id }.
type identityResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ID       string `json:"id"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	User      identityResponse `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type sessionResponse struct {
	User            *identityResponse `json:"user"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	// Routes lists the path prefixes the user may navigate to.
	Routes []string `json:"routes"`
}

type navigationResponse struct {
	Path     string `json:"path"`
	Decision string `json:"decision"`
	Redirect string `json:"redirect,omitempty"`
}

type recordListResponse struct {
	Items []domain.Record `json:"items"`
	Count int             `json:"count"`
}

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{
		Username: id.Username,
		Role:     string(id.Role),
		ID:       id.AccountID,
	}
}
