package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// SessionHandler handles session registry HTTP requests
type SessionHandler struct {
	sessionUsecase port.SessionUsecase
	authUsecase    port.AuthUsecase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionUsecase port.SessionUsecase, authUsecase port.AuthUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		authUsecase:    authUsecase,
		logger:         logger,
	}
}

// SessionListResponse is the device overview list, newest first.
type SessionListResponse struct {
	Sessions []SessionView `json:"sessions"`
	Total    int           `json:"total"`
}

// SessionView is one session as shown to the user, flagged when it is the
// session of the requesting device itself.
type SessionView struct {
	domain.Session
	Current bool `json:"current"`
}

// List handles GET /v1/sessions
func (h *SessionHandler) List(c echo.Context) error {
	identity, current := h.authUsecase.Current()
	if identity.IsZero() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}

	sessions, err := h.sessionUsecase.List(c.Request().Context(), identity.ID)
	if err != nil {
		h.logger.Error("failed to list sessions", "identity_id", identity.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list sessions"})
	}

	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, SessionView{
			Session: session,
			Current: current != nil && current.ID == session.ID,
		})
	}
	return c.JSON(http.StatusOK, SessionListResponse{Sessions: views, Total: len(views)})
}

// Terminate handles DELETE /v1/sessions/:sessionId
func (h *SessionHandler) Terminate(c echo.Context) error {
	identity, _ := h.authUsecase.Current()
	if identity.IsZero() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}

	sessionID := c.Param("sessionId")
	if err := h.sessionUsecase.Terminate(c.Request().Context(), identity.ID, sessionID); err != nil {
		h.logger.Error("failed to terminate session", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to terminate session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// TerminateOthers handles POST /v1/sessions/terminate-others. Every session
// except the caller's own is revoked.
func (h *SessionHandler) TerminateOthers(c echo.Context) error {
	identity, current := h.authUsecase.Current()
	if identity.IsZero() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}

	keep := ""
	if current != nil {
		keep = current.ID
	}
	if err := h.sessionUsecase.TerminateAllExcept(c.Request().Context(), identity.ID, keep); err != nil {
		h.logger.Error("bulk revocation left survivors", "identity_id", identity.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "some sessions could not be revoked"})
	}
	return c.NoContent(http.StatusNoContent)
}
