package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"

	"tyler-cli/internal/api"
	"tyler-cli/internal/model"
	"tyler-cli/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pw := password
			if pw == "" {
				pw, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			creds := model.Credentials{Username: args[0], Password: pw}
			if err := client.Login(context.Background(), creds); err != nil {
				return writeErr(cmd, authError(err))
			}
			save()
			return writeOut(cmd, app, map[string]string{"status": "logged in", "username": args[0]})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted; prefer the prompt so it stays out of shell history)")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pw := password
			if pw == "" {
				pw, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			creds := model.Credentials{Username: args[0], Password: pw}
			if err := client.Register(context.Background(), creds); err != nil {
				return writeErr(cmd, authError(err))
			}
			save()
			return writeOut(cmd, app, map[string]string{"status": "registered", "username": args[0]})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and drop stored cookies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Best-effort server-side logout; the local session is cleared
			// either way.
			if err := client.Logout(context.Background()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "server logout failed:", err)
			}
			if err := store.ClearCookies(app.Dir); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "logged out"})
		},
	}
}

// authError maps the auth endpoints' status codes to the messages the screens
// show inline.
func authError(err error) error {
	switch api.StatusOf(err) {
	case http.StatusUnauthorized:
		return errors.New("invalid credentials")
	case http.StatusConflict:
		return errors.New("username is already taken")
	case http.StatusTooManyRequests:
		return errors.New("too many attempts, try again later")
	}
	return err
}

func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		// Not a terminal (piped input): fall back to reading a line.
		var line string
		if _, scanErr := fmt.Fscanln(os.Stdin, &line); scanErr != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	return string(b), nil
}
