package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/clinicdesk/emr-api/internal/api/middleware"
	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/session"
)

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *stubAuditSink) Record(e domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func navigate(t *testing.T, h *NavigationHandler, identity *domain.Identity, path string) (int, navigationResponse) {
	t.Helper()
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/v1/navigation?path="+url.QueryEscape(path), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := session.New()
	if identity != nil {
		store.Login(*identity)
	}
	middleware.SetStore(c, store)

	if err := h.Authorize(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp navigationResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
	}
	return rec.Code, resp
}

func TestNavigationHandler_Decisions(t *testing.T) {
	audit := &stubAuditSink{}
	h := NewNavigationHandler(defaultGuard(t), audit)
	frontdesk := &domain.Identity{Username: "frontdesk", Role: domain.RoleFrontDesk}

	tests := []struct {
		identity     *domain.Identity
		path         string
		wantDecision string
		wantRedirect string
	}{
		{nil, "/admin", "redirect_to_login", "/login"},
		{frontdesk, "/admin", "redirect_to_unauthorized", "/unauthorized"},
		{frontdesk, "/frontdesk/patients", "allow", ""},
	}

	for _, tt := range tests {
		code, resp := navigate(t, h, tt.identity, tt.path)
		if code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, code)
		}
		if resp.Decision != tt.wantDecision || resp.Redirect != tt.wantRedirect || resp.Path != tt.path {
			t.Fatalf("%s: unexpected response %+v", tt.path, resp)
		}
	}

	if len(audit.events) != 1 {
		t.Fatalf("expected one denied navigation audited, got %d", len(audit.events))
	}
	if ev := audit.events[0]; ev.Action != domain.AuditNavigationDenied || ev.Username != "frontdesk" || ev.Path != "/admin" {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestNavigationHandler_MissingPath(t *testing.T) {
	h := NewNavigationHandler(defaultGuard(t), nil)
	if code, _ := navigate(t, h, nil, ""); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
