package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pairing-service/app/domain"
	mock_port "pairing-service/app/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	identity := &domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-1", Owner: domain.Identity{ID: "identity-1"}, CreatedAt: time.Now(), ClientDescriptor: "laptop"}

	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *mock_port.MockAuthUsecase)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name: "valid credentials return identity and session",
			body: `{"email":"user@example.com","password":"correct horse","client_descriptor":"laptop"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "user@example.com", "correct horse", "laptop").
					Return(identity, session, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "identity-1", resp.Identity.ID)
				assert.Equal(t, "session-1", resp.Session.ID)
			},
		},
		{
			name: "wrong password returns 401 with code",
			body: `{"email":"user@example.com","password":"nope"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "user@example.com", "nope", gomock.Any()).
					Return(nil, nil, &domain.AuthError{Code: domain.ErrCodeInvalidCredentials, Message: "invalid credentials"})
			},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, domain.ErrCodeInvalidCredentials, resp.Code)
			},
		},
		{
			name: "rate limited returns 429",
			body: `{"email":"user@example.com","password":"pw"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil, &domain.AuthError{Code: domain.ErrCodeRateLimited, Message: "slow down"})
			},
			expectedStatus: http.StatusTooManyRequests,
			checkBody: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, domain.ErrCodeRateLimited, resp.Code)
			},
		},
		{
			name:           "missing password rejected before the usecase is called",
			body:           `{"email":"user@example.com"}`,
			mockSetup:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.NotEmpty(t, resp.Error)
			},
		},
		{
			name:           "malformed email rejected before the usecase is called",
			body:           `{"email":"not-an-email","password":"pw"}`,
			mockSetup:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			checkBody:      func(t *testing.T, body []byte) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuth := mock_port.NewMockAuthUsecase(ctrl)
			tt.mockSetup(mockAuth)
			handler := NewAuthHandler(mockAuth, testLogger())

			e := echo.New()
			c, rec := newJSONContext(e, http.MethodPost, "/v1/auth/login", tt.body)

			require.NoError(t, handler.Login(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkBody(t, rec.Body.Bytes())
		})
	}
}

func TestAuthHandler_Login_FallsBackToUserAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-1", Owner: domain.Identity{ID: "identity-1"}}

	mockAuth := mock_port.NewMockAuthUsecase(ctrl)
	mockAuth.EXPECT().
		Login(gomock.Any(), "user@example.com", "pw", "TestBrowser/1.0").
		Return(identity, session, nil)
	handler := NewAuthHandler(mockAuth, testLogger())

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/auth/login", `{"email":"user@example.com","password":"pw"}`)
	c.Request().Header.Set("User-Agent", "TestBrowser/1.0")

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &domain.Identity{ID: "identity-2", Email: "new@example.com"}
	session := &domain.Session{ID: "session-2", Owner: domain.Identity{ID: "identity-2"}}

	mockAuth := mock_port.NewMockAuthUsecase(ctrl)
	mockAuth.EXPECT().
		Register(gomock.Any(), "new@example.com", "Str0ng!pass", "phone").
		Return(identity, session, nil)
	handler := NewAuthHandler(mockAuth, testLogger())

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/auth/register",
		`{"email":"new@example.com","password":"Str0ng!pass","client_descriptor":"phone"}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "identity-2", resp.Identity.ID)
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_port.NewMockAuthUsecase(ctrl)
	mockAuth.EXPECT().Logout(gomock.Any()).Return(nil)
	handler := NewAuthHandler(mockAuth, testLogger())

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/auth/logout", "")

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(m *mock_port.MockAuthUsecase)
		expectedStatus int
	}{
		{
			name: "signed in",
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().Current().Return(
					domain.Identity{ID: "identity-1", Email: "user@example.com"},
					&domain.Session{ID: "session-1", Owner: domain.Identity{ID: "identity-1"}},
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not signed in",
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().Current().Return(domain.Identity{}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuth := mock_port.NewMockAuthUsecase(ctrl)
			tt.mockSetup(mockAuth)
			handler := NewAuthHandler(mockAuth, testLogger())

			e := echo.New()
			c, rec := newJSONContext(e, http.MethodGet, "/v1/auth/me", "")

			require.NoError(t, handler.Me(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
