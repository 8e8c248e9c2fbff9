package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"

	"gitreadme/internal/client/models"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// askOne is a test seam for survey.AskOne.
var askOne = survey.AskOne

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetCallback prompts for the OAuth callback payload without echoing it.
// The payload carries the bearer token, so it stays off the terminal the
// same way a password would. A newline is printed after the read to keep
// the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetCallback(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Paste the callback URL (or token): "); err != nil {
		return nil, err
	}
	payload, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// SelectTemplate asks the user to pick one of the README templates.
func SelectTemplate() (models.TemplateKind, error) {
	kinds := models.TemplateKinds()
	options := make([]string, 0, len(kinds))
	for _, k := range kinds {
		options = append(options, string(k))
	}

	var choice string
	q := &survey.Select{
		Message: "Choose a README template:",
		Options: options,
		Default: options[0],
	}
	if err := askOne(q, &choice); err != nil {
		return "", err
	}
	return models.TemplateKind(choice), nil
}
