package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Repos(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Commit(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the gitreadme CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — sign in with GitHub
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                      — show available commands
//	  - repos [filter]            — list your repositories
//	  - generate [repo] [kind]    — generate a README
//	  - show [draft-id]           — show the last README, or a cached draft
//	  - history [repo]            — list past generations and local drafts
//	  - save [path]               — write the last README to disk
//	  - commit                    — commit the last README to the repository
//	  - delete [draft-id]         — remove a cached draft
//	  - whoami                    — show the signed-in user
//	  - logout                    — sign out
//	  - exit | quit               — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("readme> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: repos [filter], (g)enerate [repo] [template], show [draft-id], history [repo], save [path], commit, delete [draft-id], whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "repos":
			_ = a.Repos(ctx, args)

		case "g", "generate":
			_ = a.Generate(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "save":
			_ = a.Save(ctx, args)

		case "commit":
			_ = a.Commit(ctx)

		case "delete":
			_ = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
