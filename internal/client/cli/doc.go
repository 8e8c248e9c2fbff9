// Package cli provides the interactive gitreadme command-line client.
//
// It wires configuration, local storage, the backend API client, and an
// interactive REPL around the two stateful workflows: the GitHub OAuth
// session and README generation.
//
// Key features:
//   - Login / Logout via the backend's GitHub OAuth flow
//   - List and resolve repositories
//   - Generate a README from a template, with live polling progress
//   - Inspect, save, and commit generated results
//   - Local draft history that survives restarts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
