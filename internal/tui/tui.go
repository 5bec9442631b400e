package tui

import (
	"tyler-cli/internal/api"
	"tyler-cli/internal/store"
	"tyler-cli/internal/toast"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Deps wires the board to the outside world. Construction order matters: the
// notification sink is attached to the request pipeline before the first
// command runs, so even startup failures have somewhere to land.
type Deps struct {
	Dir    string
	Config *store.Config
	Client *api.Client
	Logger *zap.Logger
}

// notifyMsg carries a pipeline notification onto the event loop. The api
// client invokes the notifier from command goroutines, so it must not touch
// model state directly.
type notifyMsg struct {
	Severity toast.Severity
	Message  string
}

type programNotifier struct {
	p *tea.Program
}

func (n *programNotifier) Notify(sev toast.Severity, message string) {
	n.p.Send(notifyMsg{Severity: sev, Message: message})
}

// Run starts the interactive board and blocks until quit.
func Run(deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	applyColorProfilePreference()
	applyThemePreference(deps.Config.Theme)

	m := newAppModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	deps.Client.SetNotifier(&programNotifier{p: p})

	_, err := p.Run()
	return err
}
