package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tenantgate/admin-portal/internal/api/handler"
	"github.com/tenantgate/admin-portal/internal/api/middleware"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

const metricsSubsystem = "portal_http"

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Credentials  ports.CredentialService
	Users        ports.UserService
	Transactions ports.TransactionService
	Groups       ports.GroupService
	Tokens       middleware.TokenVerifier
	Readiness    map[string]handler.Pinger
	Logger       zerolog.Logger
	// Swagger mounts /swagger/* when true.
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	// HTTP collectors get a registry per router; /metrics merges it with the default one.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: httpMetrics,
	}))

	auth := middleware.Auth(deps.Tokens)

	authHandler := handler.NewAuthHandler(deps.Credentials)
	userHandler := handler.NewUserHandler(deps.Users)
	txHandler := handler.NewTransactionHandler(deps.Transactions)
	groupHandler := handler.NewGroupHandler(deps.Groups)

	// --- Auth routes ---
	a := e.Group("/auth")
	a.GET("/verify-otp", authHandler.VerifyOTP)
	a.POST("/login", authHandler.Login)
	a.POST("/refresh-token", authHandler.Refresh, auth)
	a.PATCH("/set-password", authHandler.SetPassword, auth)

	// --- Users ---
	u := e.Group("/users", auth)
	u.POST("/create", userHandler.Create)
	u.GET("", userHandler.List)
	u.GET("/:id", userHandler.Get)
	u.DELETE("/:id", userHandler.Delete)

	// --- Transactions ---
	t := e.Group("/transactions", auth)
	t.POST("", txHandler.Create)
	t.GET("", txHandler.List)
	t.GET("/:id", txHandler.Get)
	t.PATCH("/:id", txHandler.Update)
	t.DELETE("/:id", txHandler.Delete)

	// --- Groups ---
	g := e.Group("/groups", auth, middleware.Authorize(policy.ActionManageGroups))
	g.POST("", groupHandler.Create)
	g.GET("", groupHandler.List)
	g.GET("/:id", groupHandler.Get)
	g.PATCH("/:id", groupHandler.Rename)
	g.DELETE("/:id", groupHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	if deps.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	return e
}
