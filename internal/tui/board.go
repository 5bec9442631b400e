package tui

import (
	"fmt"
	"strings"
	"time"

	"tyler-cli/internal/model"
	"tyler-cli/internal/week"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	switch m.screen {
	case screenLoading:
		return m.loadingView()
	case screenLogin:
		return m.loginView()
	}

	if m.tour.Active() {
		return m.tutorialView()
	}
	switch m.modal {
	case modalTaskForm:
		return m.taskFormView()
	case modalConfirmDelete:
		return m.confirmDeleteView()
	case modalTaskDetail:
		return m.taskDetailView()
	}
	return m.boardView()
}

func (m appModel) loadingView() string {
	body := "Loading..."
	if m.loadErr != "" {
		body = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(colorBannerErrorFg).Render("Could not reach the server"),
			styleMuted().Render(m.loadErr),
			"",
			styleMuted().Render("q quit"),
		)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m appModel) boardView() string {
	days := m.days()
	buckets := m.buckets()

	header := m.headerView(days)
	sidebar := m.sidebarView()
	footer := m.footerView()

	sidebarW := xansi.StringWidth(strings.Split(sidebar, "\n")[0])
	colsW := m.width - sidebarW - 1
	if colsW < 21 {
		colsW = 21
	}
	colH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if colH < 3 {
		colH = 3
	}

	columns := m.columnsView(days, buckets, colsW, colH)
	mid := lipgloss.JoinHorizontal(lipgloss.Top, columns, " ", sidebar)

	out := lipgloss.JoinVertical(lipgloss.Left, header, mid, footer)
	if toasts := m.toastsView(); toasts != "" {
		// Stack toasts over the header area, right-aligned.
		tw := lipgloss.Width(toasts)
		pad := m.width - tw
		if pad < 0 {
			pad = 0
		}
		shifted := lipgloss.NewStyle().MarginLeft(pad).Render(toasts)
		out = lipgloss.JoinVertical(lipgloss.Left, shifted, out)
	}
	return out
}

func (m appModel) headerView(days []time.Time) string {
	rangeLabel := fmt.Sprintf("%s – %s", days[0].Format("Jan 2"), days[6].Format("Jan 2, 2006"))
	title := lipgloss.NewStyle().Bold(true).Render("Tyler")
	where := ""
	switch {
	case m.offset == 0:
		where = "this week"
	case m.offset == -1:
		where = "last week"
	case m.offset == 1:
		where = "next week"
	case m.offset < 0:
		where = fmt.Sprintf("%d weeks ago", -m.offset)
	default:
		where = fmt.Sprintf("in %d weeks", m.offset)
	}
	return title + "  " + rangeLabel + "  " + styleMuted().Render("("+where+")")
}

func (m appModel) sidebarView() string {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1).
		Width(22)

	if m.profile == nil {
		return st.Render(styleMuted().Render("(no profile)"))
	}
	p := m.profile

	quota := fmt.Sprintf("%d / %d xp", p.CurrentXp, p.DailyQuota)
	bar := progressBar(p.CurrentXp, p.DailyQuota, 18)

	used := 0
	if m.dayoffMgr != nil {
		used = len(m.dayoffMgr.MarkedInWindow(week.Dates(m.today, 0)))
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(p.Username),
		"",
		styleMuted().Render("Today's quota"),
		quota,
		bar,
		"",
		styleMuted().Render("Streak"),
		fmt.Sprintf("%d days", p.CurrentStreak),
		"",
		styleMuted().Render("Days off this week"),
		fmt.Sprintf("%d / %d", used, p.DaysOffPerWeek),
	}
	return st.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func progressBar(have, want, width int) string {
	if want <= 0 || width <= 0 {
		return ""
	}
	filled := have * width / want
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	full := lipgloss.NewStyle().Foreground(colorAccent).Render(strings.Repeat("█", filled))
	rest := styleMuted().Render(strings.Repeat("░", width-filled))
	return full + rest
}

func (m appModel) columnsView(days []time.Time, buckets map[string][]model.Task, width, height int) string {
	colW := width/7 - 1
	if colW < 10 {
		colW = 10
	}

	rendered := make([]string, 0, 7)
	for i, day := range days {
		rendered = append(rendered, m.dayColumnView(i, day, buckets[week.Key(day)], colW, height))
	}

	out := rendered[0]
	for i := 1; i < 7; i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, " ", rendered[i])
	}
	return out
}

func (m appModel) dayColumnView(idx int, day time.Time, tasks []model.Task, colW, height int) string {
	isOff := m.dayoffMgr != nil && m.dayoffMgr.IsDayOff(week.Key(day))
	selectedCol := idx == m.selDay
	isToday := week.Key(day) == week.Key(m.today)

	head := day.Format("Mon 2")
	headStyle := lipgloss.NewStyle().Bold(true)
	if isToday {
		headStyle = headStyle.Foreground(colorAccent)
	}
	if isOff {
		headStyle = headStyle.Foreground(colorDayOffFg)
		head += " ☾"
	}

	lines := []string{headStyle.Render(head), ""}
	if len(tasks) == 0 {
		empty := "(no tasks)"
		if isOff {
			empty = "(day off)"
		}
		lines = append(lines, styleMuted().Render(empty))
	}
	for i, t := range tasks {
		lines = append(lines, m.taskCardLines(t, selectedCol && i == m.selTask, colW-2)...)
	}

	border := colorCardBorder
	if isOff {
		border = colorDayOffBorder
	} else if selectedCol {
		border = colorSelectedBorder
	}
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(colW).
		Height(height - 2)
	return st.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m appModel) taskCardLines(t model.Task, selected bool, innerW int) []string {
	marker := "○"
	titleStyle := lipgloss.NewStyle()
	if t.Done {
		marker = "●"
		titleStyle = titleStyle.Foreground(colorDoneFg).Strikethrough(true)
	}
	if selected {
		titleStyle = titleStyle.Bold(true).Background(colorSelectedBg)
	}
	prefix := marker + " "
	if t.IsSubtask() {
		prefix = "  ↳ " + marker + " "
	}
	title := truncate(prefix+t.Name, innerW)
	out := []string{titleStyle.Render(title)}
	if t.RemainingXp > 0 && !t.Done {
		out = append(out, styleMuted().Render(truncate(fmt.Sprintf("  %d xp", t.RemainingXp), innerW)))
	}
	return out
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w-1, "…")
}

func (m appModel) footerView() string {
	hints := []string{
		"←/→/↑/↓ move", "h/l week", "t today", "a add", "s subtask",
		"enter edit", "v view", "x done", "d delete", "[/] reschedule",
		"o day off", "r refresh", "? tutorial", "q quit",
	}
	return styleMuted().Render(strings.Join(hints, "  ·  "))
}

func (m appModel) taskDetailView() string {
	t := m.detailTask

	status := "open"
	if t.Done {
		status = "done"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(t.Name),
		styleMuted().Render(fmt.Sprintf("due %s  ·  deadline %s  ·  %d xp  ·  %s", t.DueDate, t.Deadline, t.RemainingXp, status)),
	}
	if desc := renderMarkdown(t.Description, 56); desc != "" {
		lines = append(lines, "", desc)
	}
	if t.Subtasks > 0 {
		lines = append(lines, "", styleMuted().Render(fmt.Sprintf("%d subtasks", t.Subtasks)))
	}
	lines = append(lines, "", styleMuted().Render("esc close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(60).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m appModel) tutorialView() string {
	step, ok := m.tour.Current()
	if !ok {
		return m.boardView()
	}
	cur, total := m.tour.Position()

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(step.Title),
		"",
	}
	lines = append(lines, strings.Split(step.Body, "\n")...)
	lines = append(lines, "",
		styleMuted().Render(fmt.Sprintf("step %d of %d  ·  enter next  ·  p back  ·  esc skip", cur, total)),
	)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(56).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
