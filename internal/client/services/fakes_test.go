package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"gitreadme/internal/client/models"
	"gitreadme/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient implements api.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	SetTokenCalls []string

	LoginURLRet   string
	LoginStateRet string
	LoginURLErr   error

	UserRet   *models.User
	UserErr   error
	UserCalls int
	// UserGate, when set, blocks CurrentUser until the channel is closed.
	UserGate chan struct{}

	ReposRet  []models.Repo
	ReposErr  error
	ListCalls int

	RepoRet       *models.Repo
	RepoErr       error
	GetRepoCalls  int
	LastGetRepoID string

	ImportIDRet     string
	ImportErr       error
	ImportCalls     int
	LastImportedRepo models.Repo

	StartRet        *models.Generation
	StartErr        error
	StartCalls      int
	LastStartRepoID string
	LastStartKind   models.TemplateKind

	// PollResults are returned in order; the last one repeats once the
	// slice is exhausted.
	PollResults []*models.Generation
	PollErr     error
	PollCalls   int

	HistoryRet []models.Generation
	HistoryErr error

	CommitErr     error
	LastCommitID  string
	LastCommitMsg string
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetTokenCalls = append(f.SetTokenCalls, token)
}

func (f *fakeClient) LoginURL(ctx context.Context) (string, string, error) {
	return f.LoginURLRet, f.LoginStateRet, f.LoginURLErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.UserCalls++
	gate := f.UserGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.UserRet, f.UserErr
}

func (f *fakeClient) ListRepos(ctx context.Context) ([]models.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	return f.ReposRet, f.ReposErr
}

func (f *fakeClient) GetRepo(ctx context.Context, identifier string) (*models.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetRepoCalls++
	f.LastGetRepoID = identifier
	return f.RepoRet, f.RepoErr
}

func (f *fakeClient) ImportRepo(ctx context.Context, repo models.Repo) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ImportCalls++
	f.LastImportedRepo = repo
	return f.ImportIDRet, f.ImportErr
}

func (f *fakeClient) StartGeneration(ctx context.Context, repoID string, kind models.TemplateKind) (*models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StartCalls++
	f.LastStartRepoID = repoID
	f.LastStartKind = kind
	return f.StartRet, f.StartErr
}

func (f *fakeClient) GetGeneration(ctx context.Context, generationID string) (*models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PollErr != nil {
		f.PollCalls++
		return nil, f.PollErr
	}
	idx := f.PollCalls
	f.PollCalls++
	if idx >= len(f.PollResults) {
		idx = len(f.PollResults) - 1
	}
	return f.PollResults[idx], nil
}

func (f *fakeClient) GenerationHistory(ctx context.Context, repoID string) ([]models.Generation, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) CommitReadme(ctx context.Context, generationID string, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCommitID = generationID
	f.LastCommitMsg = message
	return f.CommitErr
}

// fakeDrafts implements drafts.Repository in memory.
type fakeDrafts struct {
	mu        sync.Mutex
	Inserted  []models.Draft
	InsertErr error

	TrimCalls    int
	LastTrimRepo string
	LastTrimKeep int

	DeletedIDs []string
	DeleteErr  error
}

func (f *fakeDrafts) Insert(ctx context.Context, d *models.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	f.Inserted = append(f.Inserted, *d)
	return nil
}

func (f *fakeDrafts) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Inserted {
		if f.Inserted[i].ID == id {
			d := f.Inserted[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDrafts) List(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Draft
	for _, d := range f.Inserted {
		if repoFullName == "" || d.RepoFullName == repoFullName {
			out = append(out, d)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDrafts) TrimTo(ctx context.Context, repoFullName string, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TrimCalls++
	f.LastTrimRepo = repoFullName
	f.LastTrimKeep = keep
	return nil
}

func (f *fakeDrafts) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.DeletedIDs = append(f.DeletedIDs, id)
	return nil
}
