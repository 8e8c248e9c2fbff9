package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Repos lists the signed-in user's repositories as the backend sees them.
// An optional argument filters by substring of the full name.
func (a *App) Repos(ctx context.Context, args []string) error {
	repos, err := a.client.ListRepos(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	shown := 0
	for i := range repos {
		if filter != "" && !strings.Contains(strings.ToLower(repos[i].FullName), filter) {
			continue
		}
		fmt.Println(a.theme.renderRepoLine(&repos[i]))
		shown++
	}
	if shown == 0 {
		fmt.Println("No repositories found for your account.")
	}
	return nil
}
