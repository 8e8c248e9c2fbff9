package api

import (
	"context"

	"gitreadme/internal/client/models"
)

// Client is the API contract for talking to the gitreadme backend.
//
// Contract:
//   - SetToken: install the bearer token attached to subsequent requests;
//     an empty string clears it.
//   - LoginURL: obtain the GitHub authorization URL and anti-forgery state.
//   - CurrentUser: validate the current token and return the profile.
//   - ListRepos / GetRepo: repository resolution, list-first with a direct
//     by-identifier fallback.
//   - ImportRepo: persist a repository in the backend, returning its id.
//   - StartGeneration / GetGeneration: submit a generation request and
//     observe the resulting job.
//   - GenerationHistory: list past generations for a repository.
//   - CommitReadme: commit a completed generation back to GitHub.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Close() error
	SetToken(token string)
	LoginURL(ctx context.Context) (authURL string, state string, err error)
	CurrentUser(ctx context.Context) (*models.User, error)
	ListRepos(ctx context.Context) ([]models.Repo, error)
	GetRepo(ctx context.Context, identifier string) (*models.Repo, error)
	ImportRepo(ctx context.Context, repo models.Repo) (string, error)
	StartGeneration(ctx context.Context, repoID string, kind models.TemplateKind) (*models.Generation, error)
	GetGeneration(ctx context.Context, generationID string) (*models.Generation, error)
	GenerationHistory(ctx context.Context, repoID string) ([]models.Generation, error)
	CommitReadme(ctx context.Context, generationID string, message string) error
}
