package ports

import "context"

// Keys of the two durable client storage entries holding the session.
const (
	StorageKeyUser  = "user"
	StorageKeyToken = "token"
)

// ClientStorage is durable string-keyed storage that survives restarts.
// Presence or absence of a key is the only contract; values are opaque.
type ClientStorage interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMany writes all entries, overwriting existing values.
	SetMany(ctx context.Context, entries map[string]string) error
	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
