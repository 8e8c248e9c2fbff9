package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gitreadme/internal/client/api"
	"gitreadme/internal/client/config"
	"gitreadme/internal/client/models"
	"gitreadme/internal/client/services"
	"gitreadme/internal/client/storage"
	"gitreadme/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config     *config.Config
	client     api.Client
	session    services.SessionService
	generation services.GenerationService
	store      *storage.Repositories
	reader     *bufio.Reader
	theme      theme

	// last holds the most recent generation result, the target of the
	// show/save/commit commands.
	last *models.Draft
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	store, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	ss := services.NewSessionService(apiClient, store.Tokens, logger)
	gs := services.NewGenerationService(apiClient, store.Drafts, logger, c.PollInterval, c.PollMaxAttempts)

	return &App{
		config:     c,
		client:     apiClient,
		session:    ss,
		generation: gs,
		store:      store,
		reader:     bufio.NewReader(os.Stdin),
		theme:      defaultTheme(),
	}, nil
}

// Run seeds the session from the persisted token and hands control to the
// REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Println(a.theme.Header.Render("Welcome to gitreadme CLI (type 'help' for commands)"))

	if err := a.session.Initialize(ctx); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			fmt.Println(a.theme.Danger.Render("Backend unreachable. Is the server running at " + a.config.APIBaseURL + "? Your saved session will be retried next time."))
		} else {
			log.Printf("error restoring session: %v", err)
		}
	}
	if a.isLoggedIn() {
		fmt.Printf("Signed in as %s\n", a.session.User().DisplayName())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the API client and the local database.
func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		log.Printf("error closing api client: %v", err)
	}
	if err := a.store.Close(); err != nil {
		log.Printf("error closing database: %v", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == services.StatusAuthenticated
}

func (a *App) getStatus() string {
	if user := a.session.User(); user != nil {
		return fmt.Sprintf("(%s)", user.DisplayName())
	}
	return "(signed out)"
}

// setLast records a generation result as the target of show/save/commit.
func (a *App) setLast(repo *models.Repo, kind models.TemplateKind, gen *models.Generation) {
	a.last = &models.Draft{
		RepoFullName: repo.FullName,
		Template:     kind,
		GenerationID: gen.ID,
		Content:      gen.Content,
	}
}

// requireLast returns the last generation result, or an error suitable for
// the user when no generation has run yet.
func (a *App) requireLast() (*models.Draft, error) {
	if a.last == nil || a.last.Content == "" {
		return nil, errors.New("nothing generated yet, run 'generate' first")
	}
	return a.last, nil
}

// Show re-renders the most recent generation result, or, given a draft id,
// loads that draft from the local cache and makes it the new target of
// save/commit.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) > 0 {
		draft, err := a.generation.Draft(ctx, args[0])
		if err != nil {
			if errors.Is(err, services.ErrDraftNotFound) {
				fmt.Println("No draft with that id. Run 'history' to list cached drafts.")
			} else {
				fmt.Println(a.theme.Danger.Render("Could not load draft: " + err.Error()))
			}
			return err
		}
		a.last = draft
	}

	last, err := a.requireLast()
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("%s (%s)\n", a.theme.Accent.Render(last.RepoFullName), last.Template)
	fmt.Println(a.theme.renderPreview(last.Content))
	return nil
}

// Save writes the most recent generation result to disk, defaulting to
// README.md in the current directory.
func (a *App) Save(ctx context.Context, args []string) error {
	last, err := a.requireLast()
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	path := "README.md"
	if len(args) > 0 {
		path = args[0]
	}

	content := last.Content
	if len(content) == 0 || content[len(content)-1] != '\n' {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println(a.theme.Success.Render("Saved to " + path))
	return nil
}

// Commit pushes the most recent generation result to the repository's
// default branch via the backend.
func (a *App) Commit(ctx context.Context) error {
	last, err := a.requireLast()
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if last.GenerationID == "" {
		fmt.Println("This result cannot be committed: the backend did not track it as a generation.")
		return errors.New("no generation id")
	}

	message, err := GetSimpleText(a.reader, "Commit message (empty for default)", os.Stdout)
	if err != nil {
		return err
	}
	if message == "" {
		message = "docs: add generated README"
	}

	if err := a.client.CommitReadme(ctx, last.GenerationID, message); err != nil {
		fmt.Println(a.theme.Danger.Render("Commit failed: " + err.Error()))
		return err
	}
	fmt.Println(a.theme.Success.Render("README committed to " + last.RepoFullName))
	return nil
}

// Delete removes a cached draft from the local history.
func (a *App) Delete(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = GetSimpleText(a.reader, "Enter draft id to delete", os.Stdout)
		if err != nil {
			return err
		}
	}
	if id == "" {
		fmt.Println("Nothing to delete. Run 'history' to list cached drafts.")
		return nil
	}

	if err := a.generation.DiscardDraft(ctx, id); err != nil {
		fmt.Println(a.theme.Danger.Render("Delete failed: " + err.Error()))
		return err
	}
	if a.last != nil && a.last.ID == id {
		a.last = nil
	}
	fmt.Println(a.theme.Success.Render("Draft deleted"))
	return nil
}
