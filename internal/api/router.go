package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/api/handler"
	"github.com/sustaincity/city-backend/internal/api/middleware"
	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

// Services bundles the core services the HTTP layer exposes.
type Services struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Simulations   ports.SimulationService
	Notifications ports.NotificationService
	Dashboard     ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the Redis-backed login throttle is disabled.
func NewRouter(svcs Services, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("city"))

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register/city-manager", authHandler.RegisterCityManager)
	e.POST("/api/auth/register/service-provider-admin", authHandler.RegisterServiceProviderAdmin)

	// --- User management (admin roles only) ---
	userHandler := handler.NewUserHandler(svcs.Users)
	users := e.Group("/api/users", authMiddleware,
		middleware.RBAC(domain.RoleGovernmentAdmin, domain.RoleCityManager, domain.RoleServiceProviderAdmin))
	users.GET("", userHandler.List)
	users.POST("/service-provider", userHandler.CreateServiceProvider)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Simulations ---
	simulationHandler := handler.NewSimulationHandler(svcs.Simulations)
	sims := e.Group("/api/simulations", authMiddleware)
	sims.GET("", simulationHandler.List)
	sims.POST("/run", simulationHandler.Run)
	sims.DELETE("/:id", simulationHandler.Delete)

	// --- Notifications ---
	notificationHandler := handler.NewNotificationHandler(svcs.Notifications)
	notes := e.Group("/api/notifications", authMiddleware)
	notes.GET("", notificationHandler.List)
	notes.PUT("/:id/read", notificationHandler.MarkRead)
	notes.PUT("/mark-all-read", notificationHandler.MarkAllRead)

	// --- Dashboard / indicators / system (mock data) ---
	dashboardHandler := handler.NewDashboardHandler(svcs.Dashboard)
	e.GET("/api/dashboard/stats", dashboardHandler.Stats, authMiddleware)
	e.GET("/api/dashboard/overview", dashboardHandler.Overview, authMiddleware)
	e.GET("/api/indicators/:mode", dashboardHandler.Indicator, authMiddleware)
	e.GET("/api/system/status", dashboardHandler.SystemStatus, authMiddleware)
	e.GET("/api/system/health", dashboardHandler.SystemHealth)

	// --- Observability & health probes (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
