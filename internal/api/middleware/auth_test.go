package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/session"
)

type stubResolver map[string]domain.SessionRecord

func (s stubResolver) Resolve(_ context.Context, token string) (*domain.SessionRecord, error) {
	rec, ok := s[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &rec, nil
}

var resolver = stubResolver{
	"good": {
		ID:       "sid-1",
		Identity: domain.Identity{Username: "alice", Role: domain.RoleDoctor, AccountID: "acc_1"},
	},
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(resolver)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(keyUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if Role(c) != "doctor" {
			t.Fatalf("role not set")
		}
		if c.Get(keyAccountID) != "acc_1" {
			t.Fatalf("account_id not set")
		}
		if !Store(c).IsAuthenticated() {
			t.Fatalf("session not set")
		}
		if r, ok := Record(c); !ok || r.ID != "sid-1" {
			t.Fatalf("session_record not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	headers := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token good",
		"empty token":    "Bearer ",
		"unknown token":  "Bearer not-a-token",
	}

	for name, header := range headers {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := Auth(resolver)
		handler := mw(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := map[string]struct {
		header string
		authed bool
	}{
		"no header":    {"", false},
		"bad token":    {"Bearer nope", false},
		"valid token":  {"Bearer good", true},
		"wrong scheme": {"Basic good", false},
	}

	for name, tt := range tests {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		handler := OptionalAuth(resolver)(func(c echo.Context) error {
			called = true
			if _, ok := c.Get(keySession).(*session.Store); !ok {
				t.Fatalf("%s: session not set", name)
			}
			if Store(c).IsAuthenticated() != tt.authed {
				t.Fatalf("%s: expected authenticated=%v", name, tt.authed)
			}
			return nil
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if !called {
			t.Fatalf("%s: next not called", name)
		}
	}
}

type failingResolver struct{ err error }

func (r failingResolver) Resolve(context.Context, string) (*domain.SessionRecord, error) {
	return nil, r.err
}

func TestAuthMiddleware_BackendFailureIsNotUnauthorized(t *testing.T) {
	outage := errors.New("redis get: dial tcp: connection refused")

	for name, mw := range map[string]echo.MiddlewareFunc{
		"auth":          Auth(failingResolver{outage}),
		"optional auth": OptionalAuth(failingResolver{outage}),
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		err := handler(c)
		if !errors.Is(err, outage) {
			t.Fatalf("%s: expected the resolver error, got %v", name, err)
		}
		e.HTTPErrorHandler(err, c)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", name, rec.Code)
		}
	}
}

func TestAuthMiddleware_RevokedSessionIsUnauthorized(t *testing.T) {
	revoked := failingResolver{fmt.Errorf("load session: %w", domain.ErrSessionNotFound)}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(revoked)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// OptionalAuth treats the same request as anonymous
	c = e.NewContext(req, httptest.NewRecorder())
	called := false
	handler = OptionalAuth(revoked)(func(c echo.Context) error {
		called = true
		if Store(c).IsAuthenticated() {
			t.Fatalf("expected anonymous session")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
