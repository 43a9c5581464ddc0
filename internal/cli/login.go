// login.go - session commands: login, register, logout.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// runLogin prompts for credentials and persists the session.
func (a *App) runLogin(args *ArgParser) error {
	email := args.Flag("email")
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.Gate.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	fmt.Println("Signed in as", sess.Username)
	return nil
}

// runRegister creates an account and signs in with the same credentials.
func (a *App) runRegister(args *ArgParser) error {
	username := args.Flag("username")
	if username == "" {
		var err error
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	email := args.Flag("email")
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.Gate.Register(context.Background(), username, email, password)
	if err != nil {
		return err
	}
	fmt.Println("Account created. Signed in as", sess.Username)
	return nil
}

// runLogout clears the session locally no matter what the backend says.
func (a *App) runLogout() error {
	a.Gate.Logout(context.Background())
	fmt.Println("Signed out.")
	return nil
}

// promptLine reads one line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo, falling back to a plain
// read when stdin is not a terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine("")
}
