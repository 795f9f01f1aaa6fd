package kratos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing-service/app/domain"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantCode string
		wantNil  bool
	}{
		{
			name:     "invalid credentials",
			message:  "The provided credentials are invalid, check for spelling mistakes in your password or username, email address, or phone number.",
			wantCode: domain.ErrCodeInvalidCredentials,
		},
		{
			name:     "malformed email",
			message:  `"not-an-email" is not valid "email"`,
			wantCode: domain.ErrCodeMalformedEmail,
		},
		{
			name:     "duplicate account",
			message:  "An account with the same identifier (email, phone, username, ...) exists already.",
			wantCode: domain.ErrCodeInvalidCredentials,
		},
		{
			name:     "disabled account",
			message:  "Your account is disabled, contact support.",
			wantCode: domain.ErrCodeAccountDisabled,
		},
		{
			name:     "rate limited",
			message:  "Too many requests, slow down.",
			wantCode: domain.ErrCodeRateLimited,
		},
		{
			name:     "weak password",
			message:  "The password can not be used because the password has been found in data breaches and must no longer be used.",
			wantCode: domain.ErrCodeInvalidCredentials,
		},
		{
			name:    "unrecognized message",
			message: "something informational",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyMessage(tt.message)
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			authErr, ok := domain.AsAuthError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestClassifyErrorBody(t *testing.T) {
	t.Run("flow ui messages", func(t *testing.T) {
		body := []byte(`{
			"ui": {
				"messages": [
					{"id": 4000006, "text": "The provided credentials are invalid.", "type": "error"}
				]
			}
		}`)

		err := classifyErrorBody(body)

		require.Error(t, err)
		authErr, ok := domain.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrCodeInvalidCredentials, authErr.Code)
	})

	t.Run("node level messages", func(t *testing.T) {
		body := []byte(`{
			"ui": {
				"nodes": [
					{"messages": [{"text": "\"bad\" is not valid \"email\"", "type": "error"}]}
				]
			}
		}`)

		err := classifyErrorBody(body)

		require.Error(t, err)
		authErr, ok := domain.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrCodeMalformedEmail, authErr.Code)
	})

	t.Run("plain error object", func(t *testing.T) {
		body := []byte(`{"error": {"message": "Your account is disabled, contact support."}}`)

		err := classifyErrorBody(body)

		require.Error(t, err)
		authErr, ok := domain.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrCodeAccountDisabled, authErr.Code)
	})

	t.Run("unclassifiable body yields nil", func(t *testing.T) {
		assert.NoError(t, classifyErrorBody([]byte(`{"ok": true}`)))
	})
}
