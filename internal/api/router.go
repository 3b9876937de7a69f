package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clinicdesk/emr-api/internal/api/docs"
	"github.com/clinicdesk/emr-api/internal/api/handler"
	"github.com/clinicdesk/emr-api/internal/api/middleware"
	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/guard"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

// RouterConfig carries everything NewRouter wires into handlers.
type RouterConfig struct {
	AuthService   ports.AuthService
	RecordService ports.RecordService
	Guard         *guard.Guard
	Audit         ports.AuditSink // optional
	Checks        map[string]handler.DependencyCheck
	CORSOrigin    string
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{corsOrigin(cfg.CORSOrigin)},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Metrics())

	auth := middleware.Auth(cfg.AuthService)
	optionalAuth := middleware.OptionalAuth(cfg.AuthService)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Guard)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)
	e.GET("/auth/session", authHandler.Session, optionalAuth)

	// --- Navigation guard ---
	navHandler := handler.NewNavigationHandler(cfg.Guard, cfg.Audit)
	v1 := e.Group("/v1")
	v1.GET("/navigation", navHandler.Authorize, optionalAuth)

	// --- Records ---
	records := handler.NewRecordHandler(cfg.RecordService)
	clinical := []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleFrontDesk}
	v1.GET("/patients", records.List(domain.KindPatients), auth, middleware.RBAC(clinical...))
	v1.GET("/appointments", records.List(domain.KindAppointments), auth, middleware.RBAC(clinical...))
	v1.GET("/billing", records.List(domain.KindBilling), auth, middleware.RBAC(domain.RoleAdmin, domain.RoleFrontDesk))
	v1.GET("/users", records.List(domain.KindUsers), auth, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Checks)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsOrigin(origin string) string {
	if origin == "" {
		return "*"
	}
	return origin
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
