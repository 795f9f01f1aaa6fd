package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"pairing-service/app/config"
	"pairing-service/app/driver/kratos"
	"pairing-service/app/driver/postgres"
	"pairing-service/app/driver/redisdoc"
	"pairing-service/app/gateway"
	"pairing-service/app/port"
	"pairing-service/app/rest"
	"pairing-service/app/rest/handlers"
	"pairing-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	Store        *redisdoc.Client
	DB           *postgres.DB
	KratosClient *kratos.Client

	// Usecases
	AuthUsecase    port.AuthUsecase
	PairingUsecase port.PairingUsecase
	SessionUsecase port.SessionUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Initialize drivers
	var err error

	// Initialize document store. Pairing requests expire at the store level,
	// session documents live until revoked.
	container.Store, err = redisdoc.New(cfg.RedisURL,
		redisdoc.WithCollectionTTL("pairing", cfg.PairingRequestTTL),
		redisdoc.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	// Initialize Kratos client
	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	// The audit trail is optional, everything else works without Postgres
	var auditRepo port.AuditRecorder
	if cfg.DatabaseURL != "" && cfg.EnableAuditLog {
		container.DB, err = postgres.NewConnection(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize audit database: %w", err)
		}
		auditRepo = postgres.NewAuditRepository(container.DB.Pool(), logger)
	}

	// Initialize gateways
	identityGateway := gateway.NewIdentityGateway(container.KratosClient, logger)
	auditGateway := gateway.NewAuditGateway(auditRepo, logger)
	sessionGateway := gateway.NewSessionGateway(container.Store, logger)
	pairingGateway := gateway.NewPairingGateway(container.Store, logger)

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUseCase(sessionGateway, auditGateway, logger)
	container.SessionUsecase = sessionUsecase

	container.PairingUsecase = usecase.NewPairingUseCase(
		pairingGateway,
		sessionUsecase,
		auditGateway,
		cfg.PairingBaseURL,
		cfg.PairingRequestTTL,
		logger,
	)

	authUsecase := usecase.NewAuthUseCase(identityGateway, sessionUsecase, auditGateway, logger)
	container.AuthUsecase = authUsecase

	// Pick up a provider session that survived a restart. Best effort, the
	// device just signs in again if it fails.
	restoreCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authUsecase.Restore(restoreCtx, ""); err != nil {
		logger.Warn("Failed to restore identity provider session", "error", err)
	}

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:         c.Logger,
		AuthUsecase:    c.AuthUsecase,
		PairingUsecase: c.PairingUsecase,
		SessionUsecase: c.SessionUsecase,
		HealthCheckers: c.healthCheckers(),
		CORSOrigins:    c.Config.CORSOrigins,
		EnableDebug:    c.Config.EnableDebug,
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// healthCheckers lists the dependencies probed by the readiness endpoint.
func (c *Container) healthCheckers() map[string]handlers.HealthChecker {
	checkers := map[string]handlers.HealthChecker{
		"redis":  c.Store.Ping,
		"kratos": c.KratosClient.HealthCheck,
	}
	if c.DB != nil {
		checkers["postgres"] = c.DB.HealthCheck
	}
	return checkers
}

// Close closes all resources
func (c *Container) Close() error {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.Warn("Failed to close document store", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	// Note: Kratos client doesn't need explicit cleanup

	c.Logger.Info("Container closed successfully")
	return nil
}
