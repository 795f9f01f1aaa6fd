package domain

// Identity is an opaque reference to an account managed by the external
// identity provider. The core never interprets it beyond the ID and the
// email used for display.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IsZero returns true if the identity carries no reference.
func (i Identity) IsZero() bool {
	return i.ID == ""
}
