package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gitreadme/internal/client/models"
)

// genericRequestFailed is the fallback detail used when the backend's error
// body is missing, not JSON, or has no detail field.
const genericRequestFailed = "Request failed"

// HTTPClient implements Client over the backend's JSON REST interface.
// It is the single choke point for outbound calls: every request gets
// Content-Type set, and the bearer token attached when one is installed.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the given backend origin. A zero timeout
// disables the per-request cap (callers still control lifetime via context).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend origin.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one JSON request/response round-trip. Transport-level failures
// come back wrapped in ErrUnavailable; non-2xx responses come back as
// *RequestError with the backend's detail message when parseable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newRequestError(resp *http.Response) *RequestError {
	detail := genericRequestFailed
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
			detail = payload.Detail
		}
	}
	return &RequestError{StatusCode: resp.StatusCode, Detail: detail}
}

// --- auth ---

func (c *HTTPClient) LoginURL(ctx context.Context) (string, string, error) {
	var resp struct {
		AuthURL string `json:"auth_url"`
		State   string `json:"state"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/github/login", nil, &resp); err != nil {
		return "", "", err
	}
	if resp.AuthURL == "" {
		return "", "", errors.New("backend did not return an authorization URL")
	}
	return resp.AuthURL, resp.State, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- repositories ---

func (c *HTTPClient) ListRepos(ctx context.Context) ([]models.Repo, error) {
	var repos []models.Repo
	if err := c.do(ctx, http.MethodGet, "/api/repos/", nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// repositoryResponse is the backend's persisted-repository shape, distinct
// from the GitHub-shaped records in list responses.
type repositoryResponse struct {
	ID            string `json:"id"`
	GitHubRepoID  int64  `json:"github_repo_id"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
}

func (r *repositoryResponse) toModel() *models.Repo {
	name := r.FullName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return &models.Repo{
		ID:            r.GitHubRepoID,
		Name:          name,
		FullName:      r.FullName,
		DefaultBranch: r.DefaultBranch,
		DatabaseID:    r.ID,
	}
}

func (c *HTTPClient) GetRepo(ctx context.Context, identifier string) (*models.Repo, error) {
	var resp repositoryResponse
	path := "/api/repos/" + url.PathEscape(identifier)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) ImportRepo(ctx context.Context, repo models.Repo) (string, error) {
	var resp repositoryResponse
	if err := c.do(ctx, http.MethodPost, "/api/repos/import", repo, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("import did not return a repository id")
	}
	return resp.ID, nil
}

// --- generation ---

// generationResponse tolerates both wire spellings of the job id: the submit
// endpoint answers with generation_id, the poll endpoint with id.
type generationResponse struct {
	GenerationID string `json:"generation_id"`
	ID           string `json:"id"`
	Status       string `json:"status"`
	Content      string `json:"content"`
}

func (g *generationResponse) toModel() *models.Generation {
	id := g.GenerationID
	if id == "" {
		id = g.ID
	}
	return &models.Generation{
		ID:      id,
		Status:  models.GenerationStatus(g.Status),
		Content: g.Content,
	}
}

func (c *HTTPClient) StartGeneration(ctx context.Context, repoID string, kind models.TemplateKind) (*models.Generation, error) {
	req := struct {
		RepoID       string `json:"repo_id"`
		TemplateType string `json:"template_type"`
	}{RepoID: repoID, TemplateType: string(kind)}

	var resp generationResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate/", req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) GetGeneration(ctx context.Context, generationID string) (*models.Generation, error) {
	var resp generationResponse
	path := "/api/generate/" + url.PathEscape(generationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) GenerationHistory(ctx context.Context, repoID string) ([]models.Generation, error) {
	path := "/api/generate/history"
	if repoID != "" {
		path += "?repo_id=" + url.QueryEscape(repoID)
	}
	var resp []generationResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Generation, 0, len(resp))
	for i := range resp {
		out = append(out, *resp[i].toModel())
	}
	return out, nil
}

func (c *HTTPClient) CommitReadme(ctx context.Context, generationID string, message string) error {
	req := struct {
		GenerationID  string `json:"generation_id"`
		CommitMessage string `json:"commit_message"`
	}{GenerationID: generationID, CommitMessage: message}

	return c.do(ctx, http.MethodPost, "/api/generate/commit", req, nil)
}
