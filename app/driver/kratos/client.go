// Package kratos wraps the Ory Kratos native self-service flows behind
// port.KratosClient. The client keeps the active session token in memory;
// this process serves one signed-in identity at a time.
package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	kratosclient "github.com/ory/kratos-client-go"

	"pairing-service/app/config"
	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// Client represents a Kratos client wrapper.
type Client struct {
	publicAPI *kratosclient.APIClient
	publicURL string
	logger    *slog.Logger

	mu           sync.Mutex
	sessionToken string
}

// NewClient creates a new Kratos client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if !isValidURL(cfg.KratosPublicURL) {
		return nil, fmt.Errorf("invalid Kratos public URL: %s", cfg.KratosPublicURL)
	}

	publicConfig := kratosclient.NewConfiguration()
	publicConfig.Servers = []kratosclient.ServerConfiguration{
		{
			URL: cfg.KratosPublicURL,
		},
	}
	publicConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	logger.Info("Kratos client initialized", "public_url", cfg.KratosPublicURL)

	return &Client{
		publicAPI: kratosclient.NewAPIClient(publicConfig),
		publicURL: cfg.KratosPublicURL,
		logger:    logger,
	}, nil
}

// LoginWithPassword runs the native login flow with the password method and
// stores the resulting session token.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (*port.ProviderSession, error) {
	flow, httpResp, err := c.publicAPI.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, c.transformKratosError(err, httpResp, "create login flow")
	}

	body := kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(
		kratosclient.NewUpdateLoginFlowWithPasswordMethod(email, "password", password),
	)
	success, httpResp, err := c.publicAPI.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(body).
		Execute()
	if err != nil {
		return nil, c.transformKratosError(err, httpResp, "login")
	}

	session := toProviderSession(&success.Session)
	if session == nil {
		return nil, domain.NewAuthError(domain.ErrCodeInternal, "login response carried no identity", nil)
	}

	c.setSessionToken(success.SessionToken)
	c.logger.Info("native login completed", "identity_id", session.IdentityID)
	return session, nil
}

// RegisterWithPassword runs the native registration flow with the password
// method and stores the resulting session token. Kratos signs the new
// account in as part of registration.
func (c *Client) RegisterWithPassword(ctx context.Context, email, password string) (*port.ProviderSession, error) {
	flow, httpResp, err := c.publicAPI.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, c.transformKratosError(err, httpResp, "create registration flow")
	}

	method := kratosclient.NewUpdateRegistrationFlowWithPasswordMethod(
		"password",
		password,
		map[string]interface{}{"email": email},
	)
	body := kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(method)
	success, httpResp, err := c.publicAPI.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(body).
		Execute()
	if err != nil {
		return nil, c.transformKratosError(err, httpResp, "registration")
	}

	session := toProviderSession(success.Session)
	if session == nil {
		// Fall back to the identity on the registration response
		session = &port.ProviderSession{
			IdentityID: success.Identity.Id,
			Email:      emailFromTraits(success.Identity.Traits),
		}
	}

	c.setSessionToken(success.SessionToken)
	c.logger.Info("native registration completed", "identity_id", session.IdentityID)
	return session, nil
}

// ActiveSession resolves the held session token to its identity.
func (c *Client) ActiveSession(ctx context.Context) (*port.ProviderSession, error) {
	token := c.getSessionToken()
	if token == "" {
		return nil, domain.ErrNotFound
	}

	kratosSession, httpResp, err := c.publicAPI.FrontendAPI.ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		if httpResp != nil && httpResp.StatusCode == http.StatusUnauthorized {
			// Token no longer valid; forget it
			c.setSessionToken(nil)
			return nil, domain.ErrNotFound
		}
		return nil, c.transformKratosError(err, httpResp, "whoami")
	}

	session := toProviderSession(kratosSession)
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// Logout revokes the held session token. Logging out with no token is a
// no-op.
func (c *Client) Logout(ctx context.Context) error {
	token := c.getSessionToken()
	if token == "" {
		return nil
	}

	httpResp, err := c.publicAPI.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*kratosclient.NewPerformNativeLogoutBody(token)).
		Execute()
	if err != nil {
		if httpResp != nil && httpResp.StatusCode == http.StatusUnauthorized {
			// Already revoked upstream
			c.setSessionToken(nil)
			return nil
		}
		return c.transformKratosError(err, httpResp, "logout")
	}

	c.setSessionToken(nil)
	c.logger.Info("native logout completed")
	return nil
}

// HealthCheck checks if Kratos is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, response, err := c.publicAPI.MetadataAPI.GetVersion(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to connect to Kratos public API: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("Kratos public API returned status %d", response.StatusCode)
	}
	return nil
}

// GetPublicURL returns the public URL.
func (c *Client) GetPublicURL() string {
	return c.publicURL
}

func (c *Client) setSessionToken(token *string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == nil {
		c.sessionToken = ""
		return
	}
	c.sessionToken = *token
}

func (c *Client) getSessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionToken
}

func toProviderSession(session *kratosclient.Session) *port.ProviderSession {
	if session == nil || session.Identity == nil {
		return nil
	}
	return &port.ProviderSession{
		IdentityID: session.Identity.Id,
		Email:      emailFromTraits(session.Identity.Traits),
	}
}

// emailFromTraits digs the email out of the identity traits. The default
// identity schema keys it at the top level.
func emailFromTraits(traits interface{}) string {
	m, ok := traits.(map[string]interface{})
	if !ok {
		return ""
	}
	email, _ := m["email"].(string)
	return email
}

// isValidURL validates if a URL is properly formatted.
func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	return parsedURL.Scheme != "" && parsedURL.Host != ""
}
