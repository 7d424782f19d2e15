package cli

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// PromptCredentials fills in whichever of username and password are missing
// by asking on the terminal. The password is read without echo.
func PromptCredentials(username, password string) (string, string, error) {
	if username == "" {
		line, err := readline.Line("Username: ")
		if err != nil {
			return "", "", fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		secret, err := readline.Password("Password: ")
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(secret)
	}
	if username == "" || password == "" {
		return "", "", fmt.Errorf("credentials are required")
	}
	return username, password, nil
}
