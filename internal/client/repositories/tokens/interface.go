// Package tokens persists small key-value auth material for the CLI: the
// bearer token and the one-time anti-forgery value from a login round-trip.
package tokens

import "context"

// Repository is a tiny key-value store for locally persisted auth state.
type Repository interface {
	// Get returns the stored value for key, or "" when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes everything.
	Clear(ctx context.Context) error
}
