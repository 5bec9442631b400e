package cli

import (
	"fmt"
	"os"
	"strings"

	"tyler-cli/internal/api"
	"tyler-cli/internal/format"
	"tyler-cli/internal/logging"
	"tyler-cli/internal/store"
	"tyler-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	ServerURL  string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tyler",
		Short:        "Tyler task board (TUI + CLI client)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  tyler

  # Scriptable commands
  tyler login alice
  tyler tasks list --week -1
  tyler tasks add --name "Write report" --due 2024-01-10 --priority 2
  tyler dayoff set 2024-01-10
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TYLER_DIR", ""), "Path to state dir (default: ~/.tyler)")
	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", envOr("TYLER_SERVER_URL", ""), "Server base URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newDayoffCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newTutorialCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, cfg, err := loadState(app)
	if err != nil {
		return err
	}
	logger := logging.New(dir)
	defer func() { _ = logger.Sync() }()

	client, err := api.New(serverURL(app, cfg), api.WithLogger(logger))
	if err != nil {
		return err
	}
	client.SetCookies(store.LoadCookies(dir))
	defer persistSession(dir, client, logger)

	return tui.Run(tui.Deps{
		Dir:    dir,
		Config: cfg,
		Client: client,
		Logger: logger,
	})
}

// loadState resolves the state dir and reads the local config.
func loadState(app *App) (string, *store.Config, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.Dir()
		if err != nil {
			return "", nil, err
		}
		dir = d
		app.Dir = dir
	}
	cfg, err := store.LoadConfig(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, cfg, nil
}

func serverURL(app *App, cfg *store.Config) string {
	if strings.TrimSpace(app.ServerURL) != "" {
		return app.ServerURL
	}
	return cfg.ResolvedServerURL()
}

// newClient builds a session-seeded client for one CLI invocation. The
// returned save func persists the (possibly refreshed) session cookies; call
// it after the command's requests are done.
func newClient(app *App) (*api.Client, func(), error) {
	dir, cfg, err := loadState(app)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(dir)

	client, err := api.New(serverURL(app, cfg), api.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	client.SetCookies(store.LoadCookies(dir))

	save := func() {
		persistSession(dir, client, logger)
		_ = logger.Sync()
	}
	return client, save, nil
}

func persistSession(dir string, client *api.Client, logger *zap.Logger) {
	if err := store.SaveCookies(dir, client.Cookies()); err != nil {
		logger.Warn("persist session cookies", zap.Error(err))
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
