package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// promptPassword prints a prompt and reads a password from the user's
// terminal without echo. A newline is printed after the read to keep the
// UI tidy.
func (a *App) promptPassword() (string, error) {
	if _, err := fmt.Fprint(a.out, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// passwordArg returns args[idx] when present, otherwise falls back to an
// interactive no-echo prompt.
func (a *App) passwordArg(args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	return a.promptPassword()
}
