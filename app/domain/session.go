package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session represents one logged-in device instance for an identity. Deletion
// of the record is the sole revocation signal; there is no revoked flag.
type Session struct {
	ID               string    `json:"id"`
	Owner            Identity  `json:"owner"`
	CreatedAt        time.Time `json:"created_at"`
	ClientDescriptor string    `json:"client_descriptor,omitempty"`
}

// NewSession creates a session record for the given owner. The client
// descriptor is an opaque display string contributed by the device; the core
// never parses it.
func NewSession(owner Identity, clientDescriptor string) (*Session, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("session owner is required")
	}
	return &Session{
		ID:               uuid.New().String(),
		Owner:            owner,
		CreatedAt:        time.Now().UTC(),
		ClientDescriptor: clientDescriptor,
	}, nil
}

// SortSessionsByNewest orders sessions by creation time descending, newest
// first. Ordering is for display only.
func SortSessionsByNewest(sessions []Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
