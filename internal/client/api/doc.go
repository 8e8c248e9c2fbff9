// Package api contains the client-side API surface for the gitreadme backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     auth (LoginURL, CurrentUser), repository resolution (ListRepos,
//     GetRepo, ImportRepo), and README generation (StartGeneration,
//     GetGeneration, GenerationHistory, CommitReadme).
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer token to every request, normalizes non-2xx responses into
//     *RequestError carrying the backend's detail message, and maps
//     transport failures to ErrUnavailable.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. A
// *RequestError matches ErrUnauthorized for 401/403 responses and
// ErrNotFound for 404, so callers rarely need the concrete type.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use; the token may be swapped at any
// time via SetToken. All operations accept context.Context and honor
// cancellation/timeouts.
package api
