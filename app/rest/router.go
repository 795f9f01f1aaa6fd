package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"pairing-service/app/port"
	"pairing-service/app/rest/handlers"
	custommw "pairing-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	AuthUsecase    port.AuthUsecase
	PairingUsecase port.PairingUsecase
	SessionUsecase port.SessionUsecase
	HealthCheckers map[string]handlers.HealthChecker
	CORSOrigins    []string
	EnableDebug    bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	pairingHandler := handlers.NewPairingHandler(config.PairingUsecase, config.AuthUsecase, config.Logger)
	sessionHandler := handlers.NewSessionHandler(config.SessionUsecase, config.AuthUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.HealthCheckers)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.CORS(config.CORSOrigins))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")

	// Public auth endpoints (no auth required)
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// Protected auth endpoints (require authentication)
	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth())
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/me", authHandler.Me)

	// Pairing endpoints. Start, state and the event stream are public: the
	// requesting device is not signed in yet, that is the whole point.
	pairing := v1.Group("/pairing")
	pairing.POST("", pairingHandler.Start)
	pairing.GET("/:token", pairingHandler.State)
	pairing.GET("/:token/events", pairingHandler.Events)
	pairing.DELETE("/:token", pairingHandler.Cancel)

	// Approval comes from an already signed-in device
	pairing.POST("/:token/authorize", pairingHandler.Authorize, authMiddleware.RequireAuth())

	// Session registry endpoints
	sessions := v1.Group("/sessions")
	sessions.Use(authMiddleware.RequireAuth())
	sessions.GET("", sessionHandler.List)
	sessions.DELETE("/:sessionId", sessionHandler.Terminate)
	sessions.POST("/terminate-others", sessionHandler.TerminateOthers)

	return e
}
