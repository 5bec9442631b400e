package tui

import (
	"time"

	"tyler-cli/internal/toast"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Toast timers run as tea.Tick commands keyed by toast identity. The sink
// ignores timers that fire against a toast that already moved on, so the
// entrance and auto-dismiss timers for the same toast never conflict.

func toastEnterCmd(id string) tea.Cmd {
	return tea.Tick(toast.EnterDelay, func(time.Time) tea.Msg {
		return toastEnterMsg{id: id}
	})
}

func toastAutoDismissCmd(id string) tea.Cmd {
	return tea.Tick(toast.AutoDismiss, func(time.Time) tea.Msg {
		return toastAutoDismissMsg{id: id}
	})
}

func toastGoneCmd(id string) tea.Cmd {
	return tea.Tick(toast.ExitDelay, func(time.Time) tea.Msg {
		return toastGoneMsg{id: id}
	})
}

func toastColor(sev toast.Severity) lipgloss.TerminalColor {
	switch sev {
	case toast.SeveritySuccess:
		return colorToastSuccessFg
	case toast.SeverityWarning:
		return colorToastWarningFg
	case toast.SeverityError:
		return colorToastErrorFg
	}
	return colorToastInfoFg
}

func toastIcon(sev toast.Severity) string {
	switch sev {
	case toast.SeveritySuccess:
		return "✓"
	case toast.SeverityWarning:
		return "!"
	case toast.SeverityError:
		return "✗"
	}
	return "i"
}

// toastsView stacks the active toasts for the top-right corner. Pending
// toasts (entrance timer not fired) are not drawn; leaving toasts render
// faint during the exit delay.
func (m appModel) toastsView() string {
	var cards []string
	for _, t := range m.sink.Active() {
		if t.State == toast.StatePending {
			continue
		}
		st := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toastColor(t.Severity)).
			Padding(0, 1)
		if t.State == toast.StateLeaving {
			st = st.Faint(true)
		}
		line := lipgloss.NewStyle().Foreground(toastColor(t.Severity)).Render(toastIcon(t.Severity)) + " " + t.Message
		cards = append(cards, st.Render(line))
	}
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Right, cards...)
}
