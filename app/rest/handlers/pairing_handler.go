package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// PairingHandler handles QR pairing HTTP requests. It keeps the handshakes
// started by this device so the event stream and cancellation can find them.
type PairingHandler struct {
	pairingUsecase port.PairingUsecase
	authUsecase    port.AuthUsecase
	logger         *slog.Logger

	mu     sync.Mutex
	active map[string]*activeHandshake
}

// activeHandshake fans one handshake's state stream out to any number of
// event-stream subscribers and remembers the latest state for late joiners.
type activeHandshake struct {
	handshake *port.Handshake

	mu    sync.Mutex
	last  port.HandshakeUpdate
	subs  map[chan port.HandshakeUpdate]struct{}
	ended bool
}

// NewPairingHandler creates a new pairing handler
func NewPairingHandler(pairingUsecase port.PairingUsecase, authUsecase port.AuthUsecase, logger *slog.Logger) *PairingHandler {
	return &PairingHandler{
		pairingUsecase: pairingUsecase,
		authUsecase:    authUsecase,
		logger:         logger,
		active:         make(map[string]*activeHandshake),
	}
}

// StartPairingRequest carries the device's self-description.
type StartPairingRequest struct {
	ClientDescriptor string `json:"client_descriptor"`
}

// StartPairingResponse is returned when a handshake begins.
type StartPairingResponse struct {
	Token      string `json:"token"`
	PairingURL string `json:"pairing_url"`
}

// PairingStateResponse is the landing page's view of a pairing request.
type PairingStateResponse struct {
	State string `json:"state"`
}

// Start handles POST /v1/pairing. It begins a handshake on behalf of this
// device and adopts the session once an approver accepts.
func (h *PairingHandler) Start(c echo.Context) error {
	var req StartPairingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	descriptor := clientDescriptor(c, req.ClientDescriptor)
	hs, err := h.pairingUsecase.StartHandshake(c.Request().Context(), descriptor)
	if err != nil {
		h.logger.Error("failed to start handshake", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start pairing"})
	}

	run := &activeHandshake{
		handshake: hs,
		last:      port.HandshakeUpdate{State: port.HandshakeDisplaying},
		subs:      make(map[chan port.HandshakeUpdate]struct{}),
	}
	h.mu.Lock()
	h.active[hs.Token] = run
	h.mu.Unlock()

	go h.pump(hs.Token, run)

	return c.JSON(http.StatusCreated, StartPairingResponse{
		Token:      hs.Token,
		PairingURL: hs.PairingURL,
	})
}

// pump consumes the handshake's state stream, adopting the session on
// completion and forwarding every update to the subscribers.
func (h *PairingHandler) pump(token string, run *activeHandshake) {
	for update := range run.handshake.States {
		if update.State == port.HandshakeSessionAdopted && update.Session != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := h.authUsecase.LoginWithPairing(ctx, update.Session.Owner, update.Session); err != nil {
				h.logger.Error("failed to adopt paired session", "token", token, "error", err)
				update = port.HandshakeUpdate{State: port.HandshakeInvalid}
			}
			cancel()
		}
		run.broadcast(update)
	}

	run.finish()
	h.mu.Lock()
	delete(h.active, token)
	h.mu.Unlock()
}

func (r *activeHandshake) broadcast(update port.HandshakeUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = update
	for sub := range r.subs {
		select {
		case sub <- update:
		default:
			// Slow subscriber keeps only the terminal state it will
			// re-read on attach
		}
	}
}

func (r *activeHandshake) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = true
	for sub := range r.subs {
		close(sub)
	}
	r.subs = make(map[chan port.HandshakeUpdate]struct{})
}

// attach subscribes to the handshake's updates, delivering the latest state
// immediately. The returned channel is closed when the handshake ends.
func (r *activeHandshake) attach() (<-chan port.HandshakeUpdate, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := make(chan port.HandshakeUpdate, 8)
	sub <- r.last
	if r.ended {
		close(sub)
		return sub, func() {}
	}

	r.subs[sub] = struct{}{}
	detach := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[sub]; ok {
			delete(r.subs, sub)
			close(sub)
		}
	}
	return sub, detach
}

// Events handles GET /v1/pairing/:token/events as a server-sent event
// stream of handshake states.
func (h *PairingHandler) Events(c echo.Context) error {
	token := c.Param("token")

	h.mu.Lock()
	run, ok := h.active[token]
	h.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active handshake"})
	}

	updates, detach := run.attach()
	defer detach()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-store")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for {
		select {
		case update, open := <-updates:
			if !open {
				return nil
			}
			payload, err := json.Marshal(handshakeEvent(update))
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(resp, "event: state\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			resp.Flush()
			if update.State.Terminal() {
				return nil
			}
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

// HandshakeEvent is one SSE payload.
type HandshakeEvent struct {
	State   string          `json:"state"`
	Session *domain.Session `json:"session,omitempty"`
}

func handshakeEvent(update port.HandshakeUpdate) HandshakeEvent {
	return HandshakeEvent{
		State:   string(update.State),
		Session: update.Session,
	}
}

// State handles GET /v1/pairing/:token. It backs the landing page the QR
// payload points at: waiting, authorized, or invalid.
func (h *PairingHandler) State(c echo.Context) error {
	token := c.Param("token")

	req, err := h.pairingUsecase.Get(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusOK, PairingStateResponse{State: "invalid"})
	}

	state := "waiting"
	if req.Status != domain.PairingStatusPending {
		state = "authorized"
	}
	return c.JSON(http.StatusOK, PairingStateResponse{State: state})
}

// Authorize handles POST /v1/pairing/:token/authorize. The signed-in
// approver accepts the pairing request.
func (h *PairingHandler) Authorize(c echo.Context) error {
	token := c.Param("token")

	approver, _ := h.authUsecase.Current()
	if approver.IsZero() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}

	if err := h.pairingUsecase.Authorize(c.Request().Context(), token, approver); err != nil {
		return authErrorJSON(c, h.logger, "authorize pairing", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel handles DELETE /v1/pairing/:token. The device abandons its attempt.
func (h *PairingHandler) Cancel(c echo.Context) error {
	token := c.Param("token")

	h.mu.Lock()
	run, ok := h.active[token]
	h.mu.Unlock()
	if ok {
		run.handshake.Cancel()
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.pairingUsecase.Cancel(c.Request().Context(), token); err != nil {
		return authErrorJSON(c, h.logger, "cancel pairing", err)
	}
	return c.NoContent(http.StatusNoContent)
}
