package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"

	"pairing-service/app/domain"
)

// IdentityProvider is the external credential verifier. Credential policy,
// account state and token issuance live behind it; this service only
// orchestrates.
type IdentityProvider interface {
	// Authenticate verifies an email/password pair and establishes a provider
	// session. Rejections come back as *domain.AuthError.
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	// CreateAccount registers a new account and signs it in.
	CreateAccount(ctx context.Context, email, password string) (*domain.Identity, error)
	// CurrentIdentity returns the identity of the active provider session, or
	// domain.ErrNotFound when no session is active.
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)
	// SignOut revokes the active provider session. Signing out with no
	// active session is a no-op.
	SignOut(ctx context.Context) error
}

// AuthUsecase is the single entry point devices use for authentication.
type AuthUsecase interface {
	Login(ctx context.Context, email, password, clientDescriptor string) (*domain.Identity, *domain.Session, error)
	Register(ctx context.Context, email, password, clientDescriptor string) (*domain.Identity, *domain.Session, error)
	// LoginWithPairing adopts the identity and session conveyed by a
	// completed handshake.
	LoginWithPairing(ctx context.Context, identity domain.Identity, session *domain.Session) error
	Logout(ctx context.Context) error
	// Current returns the locally tracked identity and session, zero-valued
	// when signed out.
	Current() (domain.Identity, *domain.Session)
}
