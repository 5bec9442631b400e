package tui

import (
	"context"
	"errors"
	"strings"

	"tyler-cli/internal/api"
	"tyler-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginModel is the auth screen: a username/password pair that submits either
// a login or a registration. Auth failures render as an inline banner rather
// than a toast.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	register bool
	banner   string
	busy     bool
}

func newLoginModel() loginModel {
	u := textinput.New()
	u.Prompt = ""
	u.Placeholder = "username"
	u.CharLimit = 64
	u.Focus()

	p := textinput.New()
	p.Prompt = ""
	p.Placeholder = "password"
	p.CharLimit = 128
	p.EchoMode = textinput.EchoPassword

	return loginModel{username: u, password: p}
}

func (l *loginModel) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	l.username, cmd = l.username.Update(msg)
	cmds = append(cmds, cmd)
	l.password, cmd = l.password.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (l *loginModel) cycleFocus() {
	l.focus = (l.focus + 1) % 2
	if l.focus == 0 {
		l.username.Focus()
		l.password.Blur()
	} else {
		l.username.Blur()
		l.password.Focus()
	}
}

func (l *loginModel) setError(register bool, err error) {
	l.busy = false
	l.banner = authBanner(register, err)
}

// authBanner maps the server response to the copy shown under the form.
func authBanner(register bool, err error) string {
	switch api.StatusOf(err) {
	case 401:
		return "Invalid username or password."
	case 409:
		return "That username is already taken."
	case 429:
		return "Too many attempts. Please try again later."
	}
	var ae *api.APIError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return "Something went wrong. Please try again."
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.login.cycleFocus()
		return m, nil
	case "ctrl+r":
		m.login.register = !m.login.register
		m.login.banner = ""
		return m, nil
	case "enter":
		return m.submitAuth()
	}
	cmd := m.login.update(msg)
	return m, cmd
}

func (m appModel) submitAuth() (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}
	creds := model.Credentials{
		Username: strings.TrimSpace(m.login.username.Value()),
		Password: m.login.password.Value(),
	}
	if creds.Username == "" || creds.Password == "" {
		m.login.banner = "Enter a username and password."
		return m, nil
	}
	m.login.busy = true
	m.login.banner = ""
	register := m.login.register
	client := m.deps.Client
	return m, func() tea.Msg {
		var err error
		if register {
			err = client.Register(context.Background(), creds)
		} else {
			err = client.Login(context.Background(), creds)
		}
		return authDoneMsg{register: register, err: err}
	}
}

func (m appModel) loginView() string {
	title := "Tyler"
	action := "Log in"
	alt := "ctrl+r to register instead"
	if m.login.register {
		action = "Create account"
		alt = "ctrl+r to log in instead"
	}

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1).
		Width(34)

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		"",
		field.Render(m.login.username.View()),
		field.Render(m.login.password.View()),
	}
	if m.login.banner != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorBannerErrorFg).Render(m.login.banner))
	}
	status := action + "  ·  enter"
	if m.login.busy {
		status = "Working..."
	}
	rows = append(rows, "",
		lipgloss.NewStyle().Bold(true).Render(status),
		styleMuted().Render("tab switch field  ·  "+alt+"  ·  ctrl+c quit"),
	)

	card := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
