package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/api/metrics"
	"github.com/clinicdesk/emr-api/internal/api/middleware"
	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/guard"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	guard       *guard.Guard
}

func NewAuthHandler(authService ports.AuthService, g *guard.Guard) *AuthHandler {
	return &AuthHandler{authService: authService, guard: g}
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		User:      toIdentityResponse(res.Identity),
		ExpiresAt: res.ExpiresAt.UTC(),
	})
}

// Logout revokes the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	rec, ok := middleware.Record(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	if err := h.authService.Logout(c.Request().Context(), rec); err != nil {
		return err
	}
	middleware.Store(c).Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is logged in and which routes they may open.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	state := middleware.Store(c).Snapshot()
	resp := sessionResponse{IsAuthenticated: state.IsAuthenticated, Routes: []string{}}
	if state.User != nil {
		user := toIdentityResponse(*state.User)
		resp.User = &user
		if h.guard != nil {
			resp.Routes = h.guard.Prefixes(state.User.Role)
		}
	}
	return c.JSON(http.StatusOK, resp)
}
