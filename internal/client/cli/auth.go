package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gitreadme/internal/client/api"
	"gitreadme/internal/client/services"
	"gitreadme/internal/common"
)

// getCallback is an indirection used to facilitate testing. It points to the
// interactive input helper and can be swapped in tests.
var getCallback = GetCallback

// sleepFn is a test seam for the retry pause after a rejected login.
var sleepFn = time.Sleep

// maxLoginAttempts bounds the re-prompt loop after rejected callbacks.
const maxLoginAttempts = 3

// Login runs the GitHub OAuth round-trip from the terminal.
//
// The backend hands out the provider's authorization URL; the user opens it
// in a browser, authorizes, and pastes the callback URL (or the bare token
// it carries) back into the CLI. A rejected callback prints the reason,
// pauses briefly so it can be read, and re-prompts; a transport failure
// aborts immediately since retrying cannot help until the backend is back.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Printf("Already signed in as %s. Use 'logout' first to switch accounts.\n", a.session.User().DisplayName())
		return nil
	}

	authURL, err := a.session.BeginLogin(ctx)
	if err != nil {
		fmt.Println(a.theme.Danger.Render("Could not start sign-in: " + err.Error()))
		return err
	}

	fmt.Println("Open this URL in your browser and authorize the application:")
	fmt.Println(a.theme.Accent.Render(authURL))

	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		payload, err := getCallback(os.Stdout)
		if err != nil {
			return err
		}
		callback := string(payload)
		common.WipeByteArray(payload)

		err = a.session.CompleteLogin(ctx, callback)
		if err == nil {
			fmt.Println(a.theme.Success.Render("Signed in as " + a.session.User().DisplayName()))
			return nil
		}

		switch {
		case errors.Is(err, services.ErrLoginRejected):
			fmt.Println(a.theme.Danger.Render("Authentication failed: " + err.Error()))
			if attempt < maxLoginAttempts {
				sleepFn(a.config.LoginRetryDelay)
				fmt.Println("Try authorizing again, then paste the new callback.")
			}
		case errors.Is(err, services.ErrNoAuthToken):
			fmt.Println("That input carried no token. Paste the full callback URL or the token itself.")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Println(a.theme.Danger.Render("Backend unreachable, sign-in aborted. Your token was kept and will be retried on restart."))
			return err
		default:
			log.Printf("error: %v", err)
			return err
		}
	}

	return services.ErrLoginRejected
}

// Logout discards the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.last = nil
	fmt.Println("Signed out.")
	return nil
}

// Whoami prints the signed-in user and, when the token is JWT-shaped, its
// claims hint.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s", a.theme.Accent.Render(user.DisplayName()))
	if user.Login != "" && user.Login != user.DisplayName() {
		fmt.Printf(" (@%s)", user.Login)
	}
	fmt.Println()
	if user.Email != "" {
		fmt.Println(a.theme.Muted.Render(user.Email))
	}
	if hint := services.TokenHint(a.session.CurrentToken()); hint != "" {
		fmt.Println(a.theme.Muted.Render("token: " + hint))
	}
	return nil
}
