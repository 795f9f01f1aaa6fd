package gateway

import (
	"context"
	"log/slog"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// IdentityGateway implements port.IdentityProvider over the Kratos client.
// It acts as an anti-corruption layer between the domain and the external
// identity provider.
type IdentityGateway struct {
	kratosClient port.KratosClient
	logger       *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance.
func NewIdentityGateway(kratosClient port.KratosClient, logger *slog.Logger) *IdentityGateway {
	return &IdentityGateway{
		kratosClient: kratosClient,
		logger:       logger.With("component", "identity_gateway"),
	}
}

// Authenticate verifies credentials against the provider.
func (g *IdentityGateway) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	session, err := g.kratosClient.LoginWithPassword(ctx, email, password)
	if err != nil {
		g.logger.Warn("login rejected by identity provider", "error", err)
		return nil, asAuthError("login failed", err)
	}

	g.logger.Info("identity authenticated", "identity_id", session.IdentityID)
	return toIdentity(session), nil
}

// CreateAccount registers a new account and signs it in.
func (g *IdentityGateway) CreateAccount(ctx context.Context, email, password string) (*domain.Identity, error) {
	session, err := g.kratosClient.RegisterWithPassword(ctx, email, password)
	if err != nil {
		g.logger.Warn("registration rejected by identity provider", "error", err)
		return nil, asAuthError("registration failed", err)
	}

	g.logger.Info("account created", "identity_id", session.IdentityID)
	return toIdentity(session), nil
}

// CurrentIdentity returns the identity behind the active provider session.
func (g *IdentityGateway) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	session, err := g.kratosClient.ActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	return toIdentity(session), nil
}

// SignOut revokes the active provider session.
func (g *IdentityGateway) SignOut(ctx context.Context) error {
	if err := g.kratosClient.Logout(ctx); err != nil {
		g.logger.Error("failed to sign out of identity provider", "error", err)
		return err
	}
	return nil
}

func toIdentity(session *port.ProviderSession) *domain.Identity {
	return &domain.Identity{
		ID:    session.IdentityID,
		Email: session.Email,
	}
}

// asAuthError keeps provider AuthErrors intact and folds anything else into
// an internal one, so callers always see the same error shape.
func asAuthError(message string, err error) error {
	if _, ok := domain.AsAuthError(err); ok {
		return err
	}
	return domain.NewAuthError(domain.ErrCodeInternal, message, err)
}
