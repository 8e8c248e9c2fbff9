// This file defines the generation service: repository resolution and the
// import -> request -> poll cycle that drives one README generation attempt.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"gitreadme/internal/client/api"
	"gitreadme/internal/client/models"
	"gitreadme/internal/client/repositories/drafts"
	"gitreadme/internal/logging"
)

var (
	// ErrGenerationFailed is returned when the backend reports the job in
	// the failed state.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrGenerationTimeout is returned when the poll cap is exhausted
	// before the job reaches a terminal state.
	ErrGenerationTimeout = errors.New("generation timed out")

	errStillPending = errors.New("generation still pending")

	// ErrDraftNotFound is returned when a draft id does not exist locally.
	ErrDraftNotFound = errors.New("draft not found")
)

// draftRetention caps how many drafts are kept per repository; older ones
// are pruned as new results come in.
const draftRetention = 20

// ProgressFunc receives coarse human-readable progress lines during a
// generation attempt. It may be nil.
type ProgressFunc func(msg string)

// GenerationService drives a single README generation attempt to completion
// or failure.
//
// Contract:
//   - Resolve: turn a user-supplied identifier into a repository record,
//     list-first with one direct-lookup fallback.
//   - Generate: import the repository if the backend doesn't hold it yet,
//     request generation, and poll until a terminal state or the poll cap.
//     Successful results are also cached in the local draft store.
//   - History: list past generations for an imported repository.
//   - LocalDrafts / Draft / DiscardDraft: manage locally cached results.
//
// All methods honor context cancellation; cancelling the context is the
// supported way to abandon an in-flight poll loop.
type GenerationService interface {
	Resolve(ctx context.Context, identifier string) (*models.Repo, error)
	Generate(ctx context.Context, repo *models.Repo, kind models.TemplateKind, progress ProgressFunc) (*models.Generation, error)
	History(ctx context.Context, repoID string) ([]models.Generation, error)
	LocalDrafts(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error)
	Draft(ctx context.Context, id string) (*models.Draft, error)
	DiscardDraft(ctx context.Context, id string) error
}

type generationService struct {
	client api.Client
	drafts drafts.Repository
	log    logging.Logger

	pollInterval    time.Duration
	pollMaxAttempts int

	now func() time.Time
}

// NewGenerationService constructs a GenerationService with the given poll
// cadence (interval between polls, maximum number of polls per attempt).
func NewGenerationService(client api.Client, draftRepo drafts.Repository, log logging.Logger, pollInterval time.Duration, pollMaxAttempts int) GenerationService {
	return &generationService{
		client:          client,
		drafts:          draftRepo,
		log:             log,
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
		now:             time.Now,
	}
}

// Resolve finds a repository by numeric id or owner/name string. The user's
// repository list is consulted first; when the list fetch fails or has no
// match, exactly one direct lookup runs as a fallback. The direct path is
// the only one that yields a backend database id.
func (s *generationService) Resolve(ctx context.Context, identifier string) (*models.Repo, error) {
	repos, err := s.client.ListRepos(ctx)
	if err != nil {
		s.log.Warn(ctx, "repo list fetch failed, falling back to direct lookup", "err", err)
	} else {
		for i := range repos {
			if repos[i].Matches(identifier) {
				return &repos[i], nil
			}
		}
	}

	repo, err := s.client.GetRepo(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve repository %q: %w", identifier, err)
	}
	return repo, nil
}

// Generate runs one attempt: import if the repository has no backend id
// yet, request generation, then poll once per interval until the job is
// terminal or the attempt cap runs out. The returned Generation carries
// the README content on success.
func (s *generationService) Generate(ctx context.Context, repo *models.Repo, kind models.TemplateKind, progress ProgressFunc) (*models.Generation, error) {
	if progress == nil {
		progress = func(string) {}
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	if !repo.Imported() {
		progress("Importing repository...")
		id, err := s.client.ImportRepo(ctx, repo.WithImportDefaults(s.now()))
		if err != nil {
			return nil, fmt.Errorf("import repository: %w", err)
		}
		repo.DatabaseID = id
	}

	progress("Requesting generation...")
	gen, err := s.client.StartGeneration(ctx, repo.DatabaseID, kind)
	if err != nil {
		return nil, fmt.Errorf("request generation: %w", err)
	}

	switch {
	case gen.Status == models.GenerationFailed:
		return nil, ErrGenerationFailed
	case gen.Status == models.GenerationPending && gen.ID != "":
		gen, err = s.poll(ctx, gen.ID, progress)
		if err != nil {
			return nil, err
		}
	case gen.Content != "":
		// Synchronous reply; nothing to poll.
	default:
		return nil, errors.New("backend returned neither content nor a job id")
	}

	s.saveDraft(ctx, repo, kind, gen)
	return gen, nil
}

// poll observes the job once per interval. The job's terminal states end
// the cycle immediately; exhausting the cap ends it with a timeout.
func (s *generationService) poll(ctx context.Context, generationID string, progress ProgressFunc) (*models.Generation, error) {
	var result *models.Generation
	attempt := 0

	backoff := retry.WithMaxRetries(uint64(s.pollMaxAttempts-1), retry.NewConstant(s.pollInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		progress(fmt.Sprintf("Generating... (%d/%d)", attempt, s.pollMaxAttempts))

		gen, err := s.client.GetGeneration(ctx, generationID)
		if err != nil {
			return err
		}
		switch gen.Status {
		case models.GenerationCompleted:
			result = gen
			return nil
		case models.GenerationFailed:
			return ErrGenerationFailed
		default:
			return retry.RetryableError(errStillPending)
		}
	})
	if err != nil {
		if errors.Is(err, errStillPending) {
			return nil, fmt.Errorf("%w after %d attempts", ErrGenerationTimeout, attempt)
		}
		return nil, err
	}
	return result, nil
}

// saveDraft caches a completed result locally. Failure to cache never fails
// the attempt.
func (s *generationService) saveDraft(ctx context.Context, repo *models.Repo, kind models.TemplateKind, gen *models.Generation) {
	if gen == nil || gen.Content == "" {
		return
	}
	draft := &models.Draft{
		ID:           uuid.NewString(),
		RepoFullName: repo.FullName,
		Template:     kind,
		GenerationID: gen.ID,
		Content:      gen.Content,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.drafts.Insert(ctx, draft); err != nil {
		s.log.Warn(ctx, "failed to cache draft locally", "err", err)
		return
	}
	if err := s.drafts.TrimTo(ctx, repo.FullName, draftRetention); err != nil {
		s.log.Warn(ctx, "failed to prune old drafts", "err", err)
	}
}

func (s *generationService) History(ctx context.Context, repoID string) ([]models.Generation, error) {
	return s.client.GenerationHistory(ctx, repoID)
}

func (s *generationService) LocalDrafts(ctx context.Context, repoFullName string, limit int) ([]models.Draft, error) {
	return s.drafts.List(ctx, repoFullName, limit)
}

// Draft loads one cached result by its id.
func (s *generationService) Draft(ctx context.Context, id string) (*models.Draft, error) {
	d, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return d, nil
}

// DiscardDraft removes one cached result.
func (s *generationService) DiscardDraft(ctx context.Context, id string) error {
	return s.drafts.DeleteByID(ctx, id)
}
