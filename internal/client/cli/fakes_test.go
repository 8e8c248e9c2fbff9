package cli

import (
	"bufio"
	"context"
	"strings"

	"gitreadme/internal/client/api"
	"gitreadme/internal/client/config"
	"gitreadme/internal/client/models"
	"gitreadme/internal/client/services"
)

// fakeSession implements services.SessionService.
type fakeSession struct {
	StatusRet services.SessionStatus
	UserRet   *models.User
	TokenRet  string

	LoginURLRet string
	BeginErr    error

	CompleteErrs  []error
	CompleteCalls int
	LastCallback  string

	LogoutCalls int
}

func (f *fakeSession) Initialize(ctx context.Context) error { return nil }

func (f *fakeSession) BeginLogin(ctx context.Context) (string, error) {
	return f.LoginURLRet, f.BeginErr
}

func (f *fakeSession) CompleteLogin(ctx context.Context, callback string) error {
	idx := f.CompleteCalls
	f.CompleteCalls++
	f.LastCallback = callback
	if idx >= len(f.CompleteErrs) {
		idx = len(f.CompleteErrs) - 1
	}
	if idx < 0 {
		return nil
	}
	err := f.CompleteErrs[idx]
	if err == nil {
		f.StatusRet = services.StatusAuthenticated
	}
	return err
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.LogoutCalls++
	f.StatusRet = services.StatusUnauthenticated
	f.UserRet = nil
	return nil
}

func (f *fakeSession) CurrentToken() string           { return f.TokenRet }
func (f *fakeSession) Status() services.SessionStatus { return f.StatusRet }
func (f *fakeSession) User() *models.User             { return f.UserRet }

// fakeGeneration implements services.GenerationService.
type fakeGeneration struct {
	ResolveRet     *models.Repo
	ResolveErr     error
	LastIdentifier string

	GenerateRet  *models.Generation
	GenerateErr  error
	LastRepo     *models.Repo
	LastKind     models.TemplateKind
	ProgressMsgs []string

	HistoryRet []models.Generation
	HistoryErr error

	DraftsRet []models.Draft
	DraftsErr error

	DraftRet    *models.Draft
	DraftErr    error
	LastDraftID string

	DiscardErr    error
	DiscardedIDs  []string
	LastDiscardID string
}

func (f *fakeGeneration) Resolve(ctx context.Context, identifier string) (*models.Repo, error) {
	f.LastIdentifier = identifier
	return f.ResolveRet, f.ResolveErr
}

func (f *fakeGeneration) Generate(ctx context.Context, repo *models.Repo, kind models.TemplateKind, progress services.ProgressFunc) (*models.Generation, error) {
	f.LastRepo = repo
	f.LastKind = kind
	if progress != nil {
		progress("Requesting generation...")
		f.ProgressMsgs = append(f.ProgressMsgs, "Requesting generation...")
	}
	return f.GenerateRet, f.GenerateErr
}

func (f *fakeGeneration) History(ctx context.Context, repoID string) ([]models.Generation, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeGeneration) LocalDrafts(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error) {
	return f.DraftsRet, f.DraftsErr
}

func (f *fakeGeneration) Draft(ctx context.Context, id string) (*models.Draft, error) {
	f.LastDraftID = id
	return f.DraftRet, f.DraftErr
}

func (f *fakeGeneration) DiscardDraft(ctx context.Context, id string) error {
	f.LastDiscardID = id
	if f.DiscardErr != nil {
		return f.DiscardErr
	}
	f.DiscardedIDs = append(f.DiscardedIDs, id)
	return nil
}

// fakeAPI implements the slice of api.Client the App calls directly.
type fakeAPI struct {
	ReposRet []models.Repo
	ReposErr error

	CommitErr     error
	LastCommitID  string
	LastCommitMsg string
}

func (f *fakeAPI) Close() error    { return nil }
func (f *fakeAPI) SetToken(string) {}

func (f *fakeAPI) LoginURL(ctx context.Context) (string, string, error) { return "", "", nil }

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.User, error) { return nil, nil }

func (f *fakeAPI) ListRepos(ctx context.Context) ([]models.Repo, error) {
	return f.ReposRet, f.ReposErr
}

func (f *fakeAPI) GetRepo(ctx context.Context, identifier string) (*models.Repo, error) {
	return nil, api.ErrNotFound
}

func (f *fakeAPI) ImportRepo(ctx context.Context, repo models.Repo) (string, error) {
	return "", nil
}

func (f *fakeAPI) StartGeneration(ctx context.Context, repoID string, kind models.TemplateKind) (*models.Generation, error) {
	return nil, nil
}

func (f *fakeAPI) GetGeneration(ctx context.Context, generationID string) (*models.Generation, error) {
	return nil, nil
}

func (f *fakeAPI) GenerationHistory(ctx context.Context, repoID string) ([]models.Generation, error) {
	return nil, nil
}

func (f *fakeAPI) CommitReadme(ctx context.Context, generationID string, message string) error {
	f.LastCommitID = generationID
	f.LastCommitMsg = message
	return f.CommitErr
}

// newTestApp wires an App around fakes, with stdin preloaded from input.
func newTestApp(fs *fakeSession, fg *fakeGeneration, fc *fakeAPI, input string) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:     cfg,
		client:     fc,
		session:    fs,
		generation: fg,
		reader:     bufio.NewReader(strings.NewReader(input)),
		theme:      defaultTheme(),
	}
}
