package integration_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pairing-service/app/driver/redisdoc"
	"pairing-service/app/gateway"
	mock_port "pairing-service/app/mocks"
	"pairing-service/app/port"
	"pairing-service/app/rest"
	"pairing-service/app/rest/handlers"
	"pairing-service/app/usecase"
)

const testPairingBaseURL = "https://pair.example.com"

// testStack is the full service wired against miniredis and a mocked
// identity provider, served over a local HTTP listener.
type testStack struct {
	server *httptest.Server
	kratos *mock_port.MockKratosClient
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	ctrl := gomock.NewController(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisdoc.NewWithClient(rdb, redisdoc.WithCollectionTTL("pairing", time.Minute))
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	kratosClient := mock_port.NewMockKratosClient(ctrl)
	identityGateway := gateway.NewIdentityGateway(kratosClient, logger)
	auditGateway := gateway.NewAuditGateway(nil, logger)
	sessionGateway := gateway.NewSessionGateway(store, logger)
	pairingGateway := gateway.NewPairingGateway(store, logger)

	sessionUsecase := usecase.NewSessionUseCase(sessionGateway, auditGateway, logger)
	pairingUsecase := usecase.NewPairingUseCase(
		pairingGateway, sessionUsecase, auditGateway, testPairingBaseURL, time.Minute, logger)
	authUsecase := usecase.NewAuthUseCase(identityGateway, sessionUsecase, auditGateway, logger)

	router := rest.NewRouter(rest.RouterConfig{
		Logger:         logger,
		AuthUsecase:    authUsecase,
		PairingUsecase: pairingUsecase,
		SessionUsecase: sessionUsecase,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testStack{server: server, kratos: kratosClient}
}

func (s *testStack) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// collectHandshakeEvents reads the SSE stream and forwards every state
// payload until the stream ends.
func collectHandshakeEvents(t *testing.T, body io.Reader, events chan<- handlers.HandshakeEvent) {
	t.Helper()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event handlers.HandshakeEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue
		}
		events <- event
	}
	close(events)
}

func TestPairingFlow_EndToEnd(t *testing.T) {
	stack := newTestStack(t)

	stack.kratos.EXPECT().
		RegisterWithPassword(gomock.Any(), "owner@example.com", "Str0ng!pass").
		Return(&port.ProviderSession{IdentityID: "identity-owner", Email: "owner@example.com"}, nil)

	// The approver device signs up with credentials
	resp := stack.postJSON(t, "/v1/auth/register", map[string]string{
		"email":             "owner@example.com",
		"password":          "Str0ng!pass",
		"client_descriptor": "Laptop",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeBody[handlers.AuthResponse](t, resp)
	assert.Equal(t, "identity-owner", registered.Identity.ID)

	// The new device starts a pairing handshake
	resp = stack.postJSON(t, "/v1/pairing", map[string]string{
		"client_descriptor": "Living room TV",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decodeBody[handlers.StartPairingResponse](t, resp)
	require.NotEmpty(t, started.Token)
	assert.Equal(t, testPairingBaseURL+"/auth/token/"+started.Token, started.PairingURL)

	// The landing page sees the request as pending
	stateResp, err := http.Get(stack.server.URL + "/v1/pairing/" + started.Token)
	require.NoError(t, err)
	state := decodeBody[handlers.PairingStateResponse](t, stateResp)
	assert.Equal(t, "waiting", state.State)

	// The new device subscribes to handshake updates
	eventsResp, err := http.Get(stack.server.URL + "/v1/pairing/" + started.Token + "/events")
	require.NoError(t, err)
	defer eventsResp.Body.Close()
	require.Equal(t, http.StatusOK, eventsResp.StatusCode)
	assert.Contains(t, eventsResp.Header.Get("Content-Type"), "text/event-stream")

	events := make(chan handlers.HandshakeEvent, 8)
	go collectHandshakeEvents(t, eventsResp.Body, events)

	first, ok := <-events
	require.True(t, ok)
	assert.Equal(t, string(port.HandshakeDisplaying), first.State)

	// The approver scans the code and accepts
	resp = stack.postJSON(t, "/v1/pairing/"+started.Token+"/authorize", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// A second approval of the same request is rejected
	resp = stack.postJSON(t, "/v1/pairing/"+started.Token+"/authorize", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The stream reports authorization, then session adoption
	var adopted *handlers.HandshakeEvent
	deadline := time.After(5 * time.Second)
	for adopted == nil {
		select {
		case event, open := <-events:
			if !open {
				t.Fatal("event stream ended before the session was adopted")
			}
			if event.State == string(port.HandshakeSessionAdopted) {
				adopted = &event
			}
		case <-deadline:
			t.Fatal("timed out waiting for session adoption")
		}
	}
	require.NotNil(t, adopted.Session)
	assert.Equal(t, "identity-owner", adopted.Session.Owner.ID)
	assert.Equal(t, "Living room TV", adopted.Session.ClientDescriptor)

	// Both devices now appear in the session registry, with the freshly
	// adopted session marked current
	listResp, err := http.Get(stack.server.URL + "/v1/sessions")
	require.NoError(t, err)
	list := decodeBody[handlers.SessionListResponse](t, listResp)
	require.Equal(t, 2, list.Total)

	descriptors := make(map[string]bool)
	for _, view := range list.Sessions {
		descriptors[view.Session.ClientDescriptor] = view.Current
	}
	assert.Contains(t, descriptors, "Laptop")
	assert.Contains(t, descriptors, "Living room TV")
	assert.True(t, descriptors["Living room TV"], "adopted session should be current")

	// The consumed record reports authorized until its TTL reaps it
	stateResp, err = http.Get(stack.server.URL + "/v1/pairing/" + started.Token)
	require.NoError(t, err)
	state = decodeBody[handlers.PairingStateResponse](t, stateResp)
	assert.Equal(t, "authorized", state.State)
}

func TestPairingFlow_Cancel(t *testing.T) {
	stack := newTestStack(t)

	resp := stack.postJSON(t, "/v1/pairing", map[string]string{
		"client_descriptor": "Tablet",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decodeBody[handlers.StartPairingResponse](t, resp)

	req, err := http.NewRequest(http.MethodDelete, stack.server.URL+"/v1/pairing/"+started.Token, nil)
	require.NoError(t, err)
	deleteResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	deleteResp.Body.Close()
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	// The record is removed, so the landing page reports invalid
	require.Eventually(t, func() bool {
		stateResp, err := http.Get(stack.server.URL + "/v1/pairing/" + started.Token)
		if err != nil {
			return false
		}
		return decodeBody[handlers.PairingStateResponse](t, stateResp).State == "invalid"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestPairingFlow_ForcedLogout(t *testing.T) {
	stack := newTestStack(t)

	stack.kratos.EXPECT().
		LoginWithPassword(gomock.Any(), "owner@example.com", "Str0ng!pass").
		Return(&port.ProviderSession{IdentityID: "identity-owner", Email: "owner@example.com"}, nil)
	// Remote revocation tears the provider session down as well
	stack.kratos.EXPECT().Logout(gomock.Any()).Return(nil)

	resp := stack.postJSON(t, "/v1/auth/login", map[string]string{
		"email":    "owner@example.com",
		"password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decodeBody[handlers.AuthResponse](t, resp)

	// Another device of the same identity revokes this session
	req, err := http.NewRequest(http.MethodDelete,
		stack.server.URL+"/v1/sessions/"+loggedIn.Session.ID, nil)
	require.NoError(t, err)
	deleteResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	deleteResp.Body.Close()
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	// The watchdog notices and signs the device out
	require.Eventually(t, func() bool {
		meResp, err := http.Get(stack.server.URL + "/v1/auth/me")
		if err != nil {
			return false
		}
		defer meResp.Body.Close()
		return meResp.StatusCode == http.StatusUnauthorized
	}, 5*time.Second, 50*time.Millisecond)
}
