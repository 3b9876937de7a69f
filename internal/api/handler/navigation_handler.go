package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/api/metrics"
	"github.com/clinicdesk/emr-api/internal/api/middleware"
	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/guard"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

// NavigationHandler answers the front-end router's "may I open this path?" question.
type NavigationHandler struct {
	guard *guard.Guard
	audit ports.AuditSink
}

func NewNavigationHandler(g *guard.Guard, audit ports.AuditSink) *NavigationHandler {
	return &NavigationHandler{guard: g, audit: audit}
}

// Authorize handles GET /v1/navigation?path=<path>.
//
// @Summary      Authorize a navigation
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        path  query     string  true  "Requested front-end path"
// @Success      200   {object}  navigationResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Authorize(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "path is required"})
	}

	var identity *domain.Identity
	role := "anonymous"
	if id, ok := middleware.Store(c).Current(); ok {
		identity = &id
		role = string(id.Role)
	}

	decision := h.guard.Authorize(identity, path)
	metrics.GuardDecisionsTotal.WithLabelValues(decision.String(), role).Inc()

	if decision == guard.RedirectToUnauthorized && h.audit != nil {
		h.audit.Record(domain.AuditEvent{
			Action:   domain.AuditNavigationDenied,
			Username: identity.Username,
			Role:     identity.Role,
			Path:     path,
			At:       time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, navigationResponse{
		Path:     path,
		Decision: decision.String(),
		Redirect: decision.Redirect(),
	})
}
