// Package common contains shared constants and small helpers used across
// client layers.
package common

const (
	// AuthTokenKey is the local storage key holding the persisted bearer token.
	AuthTokenKey = "auth_token"

	// OAuthStateKey is the local storage key holding the one-time anti-forgery
	// value issued when a login round-trip begins.
	OAuthStateKey = "oauth_state"
)
