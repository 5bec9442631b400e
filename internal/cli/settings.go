package cli

import (
	"errors"

	"tyler-cli/internal/store"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [light|dark|system]",
		Short: "Show or set the theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]string{"theme": string(cfg.Theme)})
			}
			theme, ok := store.ParseTheme(args[0])
			if !ok {
				return writeErr(cmd, errors.New("theme must be light, dark, or system"))
			}
			cfg.Theme = theme
			if err := store.SaveConfig(dir, cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"theme": string(theme)})
		},
	}
	return cmd
}

func newTutorialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Tutorial commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show the onboarding walkthrough again on next launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.TutorialCompleted = false
			if err := store.SaveConfig(dir, cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "tutorial reset"})
		},
	})

	return cmd
}
