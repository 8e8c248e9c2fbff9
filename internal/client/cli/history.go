package cli

import (
	"context"
	"fmt"
	"log"

	"gitreadme/internal/client/models"
)

// localHistoryLimit caps how many cached drafts the history view shows.
const localHistoryLimit = 10

// History lists past generations. With a repository argument it shows the
// backend's record for that repository; local drafts are shown either way,
// so previous results remain reachable even when the backend is down.
func (a *App) History(ctx context.Context, args []string) error {
	var repoFullName string

	if len(args) > 0 {
		repo, err := a.generation.Resolve(ctx, args[0])
		if err != nil {
			fmt.Println(a.theme.Danger.Render("Repository not found: " + err.Error()))
			return err
		}
		repoFullName = repo.FullName

		if repo.Imported() {
			gens, err := a.generation.History(ctx, repo.DatabaseID)
			if err != nil {
				log.Printf("error: %v", err)
			} else {
				a.printRemoteHistory(repo, gens)
			}
		} else {
			fmt.Println(a.theme.Muted.Render("Repository not imported yet, no backend history."))
		}
	}

	drafts, err := a.generation.LocalDrafts(ctx, repoFullName, localHistoryLimit)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("No local drafts.")
		return nil
	}

	fmt.Println(a.theme.Header.Render("Local drafts:"))
	for i := range drafts {
		fmt.Println(a.theme.renderDraftLine(&drafts[i]))
	}
	fmt.Println(a.theme.Muted.Render("Use 'show <id>' to view a draft, 'delete <id>' to remove it."))
	return nil
}

func (a *App) printRemoteHistory(repo *models.Repo, gens []models.Generation) {
	if len(gens) == 0 {
		fmt.Println(a.theme.Muted.Render("No generations recorded for " + repo.FullName + "."))
		return
	}
	fmt.Println(a.theme.Header.Render("Generations for " + repo.FullName + ":"))
	for i := range gens {
		g := &gens[i]
		line := fmt.Sprintf("%s  %s", g.ID, string(g.Status))
		switch g.Status {
		case models.GenerationCompleted:
			fmt.Println(a.theme.Success.Render(line))
		case models.GenerationFailed:
			fmt.Println(a.theme.Danger.Render(line))
		default:
			fmt.Println(line)
		}
	}
}
