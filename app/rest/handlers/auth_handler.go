package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pairing-service/app/domain"
	"pairing-service/app/port"
	appvalidator "pairing-service/app/utils/validator"
)

var validate = appvalidator.New()

// ErrorResponse is the JSON error envelope for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// CredentialsRequest carries an email/password pair plus the device's
// self-description for the session list.
type CredentialsRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	ClientDescriptor string `json:"client_descriptor" validate:"client_descriptor"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Identity domain.Identity `json:"identity"`
	Session  domain.Session  `json:"session"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: domain.ErrCodeMalformedEmail})
	}

	descriptor := clientDescriptor(c, req.ClientDescriptor)
	identity, session, err := h.authUsecase.Login(c.Request().Context(), req.Email, req.Password, descriptor)
	if err != nil {
		return authErrorJSON(c, h.logger, "login", err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Identity: *identity, Session: *session})
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: domain.ErrCodeMalformedEmail})
	}
	// Strength is only enforced for new accounts, existing passwords must
	// keep working at login
	if !appvalidator.IsValidPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "password must contain at least 8 characters with uppercase, lowercase, number and special character",
		})
	}

	descriptor := clientDescriptor(c, req.ClientDescriptor)
	identity, session, err := h.authUsecase.Register(c.Request().Context(), req.Email, req.Password, descriptor)
	if err != nil {
		return authErrorJSON(c, h.logger, "register", err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{Identity: *identity, Session: *session})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUsecase.Logout(c.Request().Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	identity, session := h.authUsecase.Current()
	if identity.IsZero() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}

	response := AuthResponse{Identity: identity}
	if session != nil {
		response.Session = *session
	}
	return c.JSON(http.StatusOK, response)
}

// clientDescriptor falls back to the User-Agent header when the device did
// not describe itself.
func clientDescriptor(c echo.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return c.Request().Header.Get("User-Agent")
}

// authErrorJSON maps domain errors onto HTTP responses.
func authErrorJSON(c echo.Context, logger *slog.Logger, operation string, err error) error {
	if authErr, ok := domain.AsAuthError(err); ok {
		status := http.StatusUnauthorized
		switch authErr.Code {
		case domain.ErrCodeMalformedEmail:
			status = http.StatusBadRequest
		case domain.ErrCodeRateLimited:
			status = http.StatusTooManyRequests
		case domain.ErrCodeInternal:
			status = http.StatusInternalServerError
		}
		return c.JSON(status, ErrorResponse{Error: authErr.Message, Code: authErr.Code})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	if errors.Is(err, domain.ErrAlreadyConsumed) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "already used"})
	}

	logger.Error("request failed", "operation", operation, "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
