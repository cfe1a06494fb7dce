// Package identity resolves who is typing. Progress is only persisted
// for identified players; anonymous sessions still run and score.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

type Identity struct {
	UserID string
	Name   string
}

func (id Identity) Known() bool {
	return id.UserID != ""
}

// Provider turns a connection-supplied token into an identity.
type Provider interface {
	Resolve(token string) (Identity, error)
}

// StaticProvider trusts the token as an opaque stable user id and takes
// the display name from the client. A guest token mints a throwaway id.
type StaticProvider struct{}

func (StaticProvider) Resolve(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, nil
	}
	return Identity{UserID: token}, nil
}

// NewGuestID mints an id for a connection without a token. Guest ids are
// session-scoped; nothing is persisted under them.
func NewGuestID() string {
	return "guest-" + uuid.NewString()
}
