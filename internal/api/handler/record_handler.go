package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/api/metrics"
	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

// RecordHandler exposes one read-only table per record kind.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// List returns a handler scanning the table configured for kind.
// Failures are reported as 500 with the underlying message.
//
// @Summary      List records
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  recordListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/patients [get]
// @Router       /v1/appointments [get]
// @Router       /v1/billing [get]
// @Router       /v1/users [get]
func (h *RecordHandler) List(kind domain.RecordKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		res, err := h.service.List(c.Request().Context(), kind)
		if err != nil {
			metrics.RecordScanDuration.WithLabelValues(string(kind), "error").Observe(time.Since(start).Seconds())
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		metrics.RecordScanDuration.WithLabelValues(string(kind), "ok").Observe(time.Since(start).Seconds())

		return c.JSON(http.StatusOK, recordListResponse{Items: res.Items, Count: res.Count})
	}
}
