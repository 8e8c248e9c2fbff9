package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gitreadme/internal/client/models"
	"gitreadme/internal/client/services"
)

// selectTemplate is an indirection used to facilitate testing.
var selectTemplate = SelectTemplate

// Generate runs one README generation end to end: resolve the repository,
// pick a template, import if needed, request, poll, and preview the result.
//
// Arguments are optional: "generate owner/name minimalist" skips both
// prompts, "generate owner/name" prompts only for the template.
func (a *App) Generate(ctx context.Context, args []string) error {
	identifier, err := a.generateIdentifier(args)
	if err != nil {
		return err
	}

	kind, err := a.generateKind(args)
	if err != nil {
		return err
	}

	repo, err := a.generation.Resolve(ctx, identifier)
	if err != nil {
		fmt.Println(a.theme.Danger.Render("Repository not found: " + err.Error()))
		return err
	}

	gen, err := a.generation.Generate(ctx, repo, kind, func(msg string) {
		fmt.Println(a.theme.Muted.Render(msg))
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGenerationTimeout):
			fmt.Println(a.theme.Danger.Render("Generation did not finish in time. Check 'history' later, the job may still complete."))
		case errors.Is(err, services.ErrGenerationFailed):
			fmt.Println(a.theme.Danger.Render("The backend could not generate a README for this repository."))
		case errors.Is(err, context.Canceled):
			fmt.Println("Generation cancelled.")
		default:
			log.Printf("error: %v", err)
		}
		return err
	}

	a.setLast(repo, kind, gen)

	fmt.Println(a.theme.Success.Render("README generated for " + repo.FullName))
	fmt.Println(a.theme.renderPreview(gen.Content))
	fmt.Println(a.theme.Muted.Render("Use 'save' to write it to disk or 'commit' to push it to the repository."))
	return nil
}

func (a *App) generateIdentifier(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	identifier, err := GetSimpleText(a.reader, "Repository (owner/name or numeric id)", os.Stdout)
	if err != nil {
		return "", err
	}
	if identifier == "" {
		fmt.Println("A repository is required.")
		return "", errors.New("repository identifier is required")
	}
	return identifier, nil
}

func (a *App) generateKind(args []string) (models.TemplateKind, error) {
	if len(args) > 1 {
		kind := models.TemplateKind(args[1])
		if err := kind.Validate(); err != nil {
			fmt.Println(err.Error())
			return "", err
		}
		return kind, nil
	}
	kind, err := selectTemplate()
	if err != nil {
		return "", err
	}
	return kind, nil
}
