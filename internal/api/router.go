package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/transitline/metro-console/internal/api/handler"
	"github.com/transitline/metro-console/internal/api/middleware"
	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions ports.SessionService
	Guard    middleware.Session
	Transit  ports.TransitAPI
	Admin    ports.AdminAPI
	Status   handler.BoardReader
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	authHandler := handler.NewAuthHandler(d.Sessions)
	consoleHandler := handler.NewConsoleHandler(d.Transit, d.Status, d.Sessions)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Transit, d.Sessions)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(d.Redis, d.Status)

	e.GET("/health", healthHandler.Liveness)       // liveness: is the process alive?
	e.GET("/health/ready", readyHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Auth surface (public) ---
	e.GET(middleware.LoginPath, authHandler.LoginPage)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET(middleware.AdminLoginPath, authHandler.AdminLoginPage)
	e.POST(middleware.AdminLoginPath, authHandler.AdminLogin)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// --- Public network data ---
	e.GET("/status", consoleHandler.ServiceStatus)
	e.GET("/stations", consoleHandler.Stations)
	e.GET("/lines", consoleHandler.Lines)
	e.GET("/fares", consoleHandler.Fares)

	// --- Passenger surface (guarded) ---
	guarded := e.Group("", middleware.Guard(d.Guard))
	guarded.GET("/dashboard", consoleHandler.Dashboard)
	guarded.POST("/routes/search", consoleHandler.PlanJourney)

	// --- Admin surface (admin guarded) ---
	admin := e.Group("/admin", middleware.AdminGuard(d.Guard))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/analytics", adminHandler.Analytics)

	admin.GET("/stations", adminHandler.ListStations)
	admin.POST("/stations", adminHandler.CreateStation)
	admin.PUT("/stations/:id", adminHandler.UpdateStation)
	admin.DELETE("/stations/:id", adminHandler.DeleteStation)

	admin.GET("/lines", adminHandler.ListLines)
	admin.POST("/lines", adminHandler.CreateLine)
	admin.PUT("/lines/:id", adminHandler.UpdateLine)
	admin.DELETE("/lines/:id", adminHandler.DeleteLine)

	admin.GET("/routes", adminHandler.ListRoutes)
	admin.POST("/routes", adminHandler.CreateRoute)
	admin.DELETE("/routes/:id", adminHandler.DeleteRoute)

	admin.GET("/fares", adminHandler.ListFares)
	admin.PUT("/fares/:id", adminHandler.UpdateFare)
	admin.PUT("/service-status/:id", adminHandler.SetLineStatus)

	// User management needs the super_admin role on top of admin status.
	users := e.Group("/admin/users", middleware.AdminGuard(d.Guard, domain.RoleSuperAdmin))
	users.GET("", adminHandler.ListUsers)
	users.PUT("/:id", adminHandler.UpdateUser)
	users.DELETE("/:id", adminHandler.DeleteUser)

	return e
}
