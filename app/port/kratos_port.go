package port

//go:generate mockgen -source=kratos_port.go -destination=../mocks/mock_kratos_port.go

import "context"

// ProviderSession is the raw session view returned by the identity provider.
type ProviderSession struct {
	IdentityID string
	Email      string
}

// KratosClient wraps the Ory Kratos native self-service flows. The client
// holds the active session token for this process; this service runs on a
// device, one signed-in identity at a time.
type KratosClient interface {
	LoginWithPassword(ctx context.Context, email, password string) (*ProviderSession, error)
	RegisterWithPassword(ctx context.Context, email, password string) (*ProviderSession, error)
	// ActiveSession returns the session currently held by the client, or
	// domain.ErrNotFound when signed out.
	ActiveSession(ctx context.Context) (*ProviderSession, error)
	Logout(ctx context.Context) error
}
