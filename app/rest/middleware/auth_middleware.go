package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pairing-service/app/port"
)

// AuthMiddleware guards routes that need a signed-in identity.
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth middleware that requires a signed-in identity
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, session := m.authUsecase.Current()
			if identity.IsZero() {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set("identity_id", identity.ID)
			c.Set("identity_email", identity.Email)
			if session != nil {
				c.Set("session_id", session.ID)
			}

			return next(c)
		}
	}
}
