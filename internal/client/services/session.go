// Package services contains application services for the gitreadme client.
// This file defines the session service: the single source of truth for the
// current bearer token and resolved user profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitreadme/internal/client/api"
	"gitreadme/internal/client/models"
	"gitreadme/internal/client/repositories/tokens"
	"gitreadme/internal/common"
	"gitreadme/internal/logging"
)

// SessionStatus describes where the session currently stands.
type SessionStatus string

const (
	StatusLoading         SessionStatus = "loading"
	StatusUnauthenticated SessionStatus = "unauthenticated"
	StatusAuthenticated   SessionStatus = "authenticated"
)

// ErrLoginRejected is returned when the identity provider redirected back
// with an error code instead of a token.
var ErrLoginRejected = errors.New("authentication failed")

// ErrNoAuthToken is returned when a login callback carried neither a token
// nor an error code.
var ErrNoAuthToken = errors.New("no authentication token received")

// SessionService maintains the authenticated session for the CLI.
//
// Contract:
//   - Initialize: seed the session from the persisted token, validating it
//     against the backend. Any rejection discards the token; a transport
//     failure keeps it and is returned for observability.
//   - BeginLogin: obtain the authorization URL, persisting the anti-forgery
//     value locally; the caller sends the user to the URL.
//   - CompleteLogin: accept the provider's redirect payload (a callback URL
//     or a bare token), persist the token, and validate it.
//   - Logout: discard the persisted token and all in-memory state. No
//     server round-trip: the token is a stateless bearer credential (if the
//     backend grows a revocation endpoint this must start calling it).
//   - CurrentToken: the credential every outbound call should carry.
//
// Status is authenticated iff both token and user are present and the last
// validation succeeded.
type SessionService interface {
	Initialize(ctx context.Context) error
	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, callback string) error
	Logout(ctx context.Context) error
	CurrentToken() string
	Status() SessionStatus
	User() *models.User
}

type sessionService struct {
	client api.Client
	tokens tokens.Repository
	log    logging.Logger

	mu     sync.Mutex
	token  string
	user   *models.User
	status SessionStatus

	// inflight debounces validation per token value: a second caller for
	// the same token waits for the first result instead of issuing a new
	// request.
	inflight map[string]*validation
}

type validation struct {
	done chan struct{}
	user *models.User
	err  error
}

// NewSessionService constructs a SessionService bound to the given API
// client and local token store.
func NewSessionService(client api.Client, tokens tokens.Repository, log logging.Logger) SessionService {
	return &sessionService{
		client:   client,
		tokens:   tokens,
		log:      log,
		status:   StatusLoading,
		inflight: make(map[string]*validation),
	}
}

func (s *sessionService) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *sessionService) setStatus(status SessionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *sessionService) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *sessionService) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Initialize reads the persisted token, if any, and validates it against
// the backend's "who am I" endpoint.
//
// Outcomes:
//   - no persisted token: unauthenticated, nil error.
//   - token accepted: authenticated.
//   - token rejected (any non-success response): the persisted token is
//     discarded and the session is unauthenticated. All rejection causes
//     are treated identically; nil error.
//   - backend unreachable: unauthenticated but the token is kept (a
//     transient failure must not force a logout); the error is returned.
func (s *sessionService) Initialize(ctx context.Context) error {
	s.setStatus(StatusLoading)

	token, err := s.tokens.Get(ctx, common.AuthTokenKey)
	if err != nil {
		s.setStatus(StatusUnauthenticated)
		return fmt.Errorf("read persisted token: %w", err)
	}
	if token == "" {
		s.setStatus(StatusUnauthenticated)
		return nil
	}

	return s.adoptToken(ctx, token)
}

// adoptToken installs and validates a candidate token, applying the
// persistence rules shared by Initialize and CompleteLogin.
func (s *sessionService) adoptToken(ctx context.Context, token string) error {
	s.client.SetToken(token)

	user, err := s.validate(ctx, token)
	if err == nil {
		s.mu.Lock()
		s.token = token
		s.user = user
		s.status = StatusAuthenticated
		s.mu.Unlock()
		return nil
	}

	if errors.Is(err, api.ErrUnavailable) {
		// Transient: keep the persisted token so a later restart can retry.
		s.client.SetToken("")
		s.setStatus(StatusUnauthenticated)
		return err
	}

	// Token treated as revoked, whatever the backend's exact reason.
	s.log.Warn(ctx, "persisted token rejected, clearing session", "err", err)
	s.client.SetToken("")
	if derr := s.tokens.Delete(ctx, common.AuthTokenKey); derr != nil {
		s.log.Error(ctx, "failed to discard rejected token", "err", derr)
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
	return nil
}

// validate runs at most one "who am I" call per token value; concurrent
// callers for the same token share the outcome.
func (s *sessionService) validate(ctx context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	if v, ok := s.inflight[token]; ok {
		s.mu.Unlock()
		select {
		case <-v.done:
			return v.user, v.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	v := &validation{done: make(chan struct{})}
	s.inflight[token] = v
	s.mu.Unlock()

	v.user, v.err = s.client.CurrentUser(ctx)
	close(v.done)

	s.mu.Lock()
	delete(s.inflight, token)
	s.mu.Unlock()

	return v.user, v.err
}

// BeginLogin requests the authorization URL and anti-forgery value from the
// backend, persists the value locally, and returns the URL for the view
// layer to open.
func (s *sessionService) BeginLogin(ctx context.Context) (string, error) {
	authURL, state, err := s.client.LoginURL(ctx)
	if err != nil {
		return "", fmt.Errorf("begin login: %w", err)
	}
	if state != "" {
		if err := s.tokens.Set(ctx, common.OAuthStateKey, state); err != nil {
			return "", fmt.Errorf("persist oauth state: %w", err)
		}
	}
	return authURL, nil
}

// CompleteLogin consumes the provider's redirect payload: either the full
// callback URL (with ?token=... or ?error=...) or a bare token pasted by
// the user. On success the token is persisted and validated exactly the
// way Initialize validates a seeded token.
func (s *sessionService) CompleteLogin(ctx context.Context, callback string) error {
	token, errCode := parseCallback(callback)

	// The one-time state has served its purpose either way.
	if derr := s.tokens.Delete(ctx, common.OAuthStateKey); derr != nil {
		s.log.Warn(ctx, "failed to clear oauth state", "err", derr)
	}

	if errCode != "" {
		return fmt.Errorf("%w: %s", ErrLoginRejected, errCode)
	}
	if token == "" {
		return ErrNoAuthToken
	}

	if err := s.tokens.Set(ctx, common.AuthTokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	if err := s.adoptToken(ctx, token); err != nil {
		return err
	}
	if s.Status() != StatusAuthenticated {
		return fmt.Errorf("%w: token validation failed", ErrLoginRejected)
	}
	return nil
}

// Logout synchronously discards the persisted token and all in-memory
// session state.
func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	s.client.SetToken("")
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
	return nil
}

// parseCallback extracts the token or error code from a login callback.
// Full URLs are inspected for token/error query parameters; anything else
// is treated as a bare token.
func parseCallback(input string) (token string, errCode string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}
	if strings.Contains(input, "://") || strings.HasPrefix(input, "/") {
		u, err := url.Parse(input)
		if err != nil {
			return "", ""
		}
		q := u.Query()
		return q.Get("token"), q.Get("error")
	}
	return input, ""
}

// TokenHint makes a best-effort, non-verifying peek into a JWT-shaped token
// for a friendly status line (email and expiry). Opaque tokens yield "".
// Nothing here affects auth decisions: the backend is the only validator.
func TokenHint(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	var parts []string
	if email, ok := claims["email"].(string); ok && email != "" {
		parts = append(parts, email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		parts = append(parts, "expires "+exp.Time.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, ", ")
}
