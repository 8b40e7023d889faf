package domain

import (
	"encoding/json"
	"time"
)

// Identity is the authenticated user's profile as held by the console.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts both "id" and the remote API's "_id".
func (i *Identity) UnmarshalJSON(data []byte) error {
	type plain Identity
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Identity(raw.plain)
	if i.ID == "" {
		i.ID = raw.MongoID
	}
	return nil
}

// SessionState is one of the two states of the client session.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Session pairs an Identity with the bearer credential proving it.
// Both fields are set together or not at all.
type Session struct {
	Identity   *Identity
	Credential string
	Version    uint64
}

// State reports whether the session carries an identity.
func (s Session) State() SessionState {
	if s.Identity == nil || s.Credential == "" {
		return StateAnonymous
	}
	return StateAuthenticated
}
