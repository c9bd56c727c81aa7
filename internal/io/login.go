package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ciwatch/cli/internal/auth"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/models"
)

var _ auth.Prompter = (*LoginPrompter)(nil)

// LoginPrompter asks for login details. With Interactive set it shows huh
// forms, otherwise it reads plain lines from In. Values preset from flags are
// used without asking.
type LoginPrompter struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool

	// Method picks an auth method without asking
	Method   models.AuthType
	Username string
	Password string

	// OpenBrowser opens the page that hands out external tokens
	OpenBrowser func(url string) error

	lines *bufio.Reader
}

func (p *LoginPrompter) readLine() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.In)
	}
	line, err := p.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ChooseMethod picks one of several auth methods
func (p *LoginPrompter) ChooseMethod(methods []models.AuthMethod) (models.AuthMethod, error) {
	if p.Method != "" {
		for _, m := range methods {
			if m.Type == p.Method {
				return m, nil
			}
		}
		return models.AuthMethod{}, cierrors.NewValidationError(nil,
			fmt.Sprintf("the team does not accept %s logins", p.Method.DisplayName()))
	}
	if p.Username != "" {
		for _, m := range methods {
			if m.Type == models.AuthTypeBasic {
				return m, nil
			}
		}
	}

	if !p.Interactive {
		labels := make([]string, 0, len(methods))
		for _, m := range methods {
			labels = append(labels, string(m.Type))
		}
		return models.AuthMethod{}, cierrors.NewValidationError(ErrNoTTY,
			"cannot choose a login method without a terminal",
			fmt.Sprintf("Pass --method with one of: %s", strings.Join(labels, ", ")))
	}

	options := make([]huh.Option[int], 0, len(methods))
	for i, m := range methods {
		options = append(options, huh.NewOption(m.Label(), i))
	}

	var choice int
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Choose a login method").
				Options(options...).
				Value(&choice),
		),
	).
		WithShowHelp(false).
		Run()
	if err != nil {
		return models.AuthMethod{}, abortedOr(err)
	}
	return methods[choice], nil
}

// Credentials asks for a username and password
func (p *LoginPrompter) Credentials() (string, string, error) {
	username, password := p.Username, p.Password
	if username != "" && password != "" {
		return username, password, nil
	}

	if !p.Interactive {
		var err error
		if username == "" {
			fmt.Fprint(p.Out, "Username: ")
			if username, err = p.readLine(); err != nil {
				return "", "", err
			}
		}
		if password == "" {
			fmt.Fprint(p.Out, "Password: ")
			if password, err = p.readLine(); err != nil {
				return "", "", err
			}
		}
		return strings.TrimSpace(username), password, nil
	}

	nonEmpty := func(s string) error {
		if len(strings.TrimSpace(s)) == 0 {
			return errors.New("value cannot be empty")
		}
		return nil
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username: ").Value(&username).Validate(nonEmpty).Inline(true).Prompt(""),
			huh.NewInput().Title("Password: ").Value(&password).EchoMode(huh.EchoModePassword).Inline(true).Prompt(""),
		),
	).WithTheme(huh.ThemeBase16()).Run()
	if err != nil {
		return "", "", abortedOr(err)
	}
	return strings.TrimSpace(username), password, nil
}

// ExternalToken shows where to get a token and reads the pasted value
func (p *LoginPrompter) ExternalToken(method models.AuthMethod) (string, error) {
	if method.URL != "" {
		fmt.Fprintf(p.Out, "Log in with %s at:\n\n  %s\n\nthen paste the token shown.\n", method.Label(), method.URL)
		if p.OpenBrowser != nil && p.Interactive {
			if err := p.OpenBrowser(method.URL); err != nil {
				fmt.Fprintf(p.Out, "Could not open a browser: %v\n", err)
			}
		}
	}

	if !p.Interactive {
		fmt.Fprint(p.Out, "Token: ")
		return p.readLine()
	}

	var token string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Token: ").Value(&token).EchoMode(huh.EchoModePassword).Inline(true).Prompt(""),
		),
	).WithTheme(huh.ThemeBase16()).Run()
	if err != nil {
		return "", abortedOr(err)
	}
	return token, nil
}

func abortedOr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return cierrors.NewUserAbortedError(err, "login cancelled")
	}
	return err
}
