package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/session"
)

// SessionResolver turns a bearer token into the persisted session it refers to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.SessionRecord, error)
}

// Auth requires a valid bearer token and injects the caller's session into context.
// Resolver failures other than a bad or revoked token reach the error handler as is.
func Auth(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			rec, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if isAuthError(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			Bind(c, *rec)
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a valid token is present and otherwise
// lets the request through with an empty session.
func OptionalAuth(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if ok {
				rec, err := resolver.Resolve(c.Request().Context(), token)
				switch {
				case err == nil:
					Bind(c, *rec)
					return next(c)
				case !isAuthError(err):
					return err
				}
			}
			SetStore(c, session.New())
			return next(c)
		}
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrSessionNotFound)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
