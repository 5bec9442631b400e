package tui

import (
	"context"
	"fmt"

	"tyler-cli/internal/form"
	"tyler-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldName formField = iota
	fieldDescription
	fieldDueDate
	fieldDeadline
	fieldPriority
	fieldCount
)

// taskFormModel is the add/edit modal. The draft owns the values and the
// validation rules; this model owns the inputs and focus handling.
type taskFormModel struct {
	draft      *form.Draft
	priorities []model.Priority
	prioIdx    int

	name     textinput.Model
	desc     textarea.Model
	dueDate  textinput.Model
	deadline textinput.Model

	focus formField
	err   string
}

func newTaskFormModel(draft *form.Draft, priorities []model.Priority) *taskFormModel {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Task name"
	name.CharLimit = form.MaxNameLength
	name.SetValue(draft.Name)
	name.Focus()

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = form.MaxDescriptionLength
	desc.SetValue(draft.Description)
	desc.SetHeight(4)

	due := textinput.New()
	due.Prompt = ""
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.SetValue(draft.DueDate)

	dl := textinput.New()
	dl.Prompt = ""
	dl.Placeholder = "YYYY-MM-DD"
	dl.CharLimit = 10
	dl.SetValue(draft.Deadline)

	f := &taskFormModel{
		draft:    draft,
		name:     name,
		desc:     desc,
		dueDate:  due,
		deadline: dl,
	}
	f.setPriorities(priorities)
	return f
}

func (f *taskFormModel) setPriorities(priorities []model.Priority) {
	f.priorities = priorities
	f.prioIdx = 0
	for i, p := range priorities {
		if p.ID == f.draft.PriorityID {
			f.prioIdx = i
			break
		}
	}
}

func (f *taskFormModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	case fieldDeadline:
		f.deadline, cmd = f.deadline.Update(msg)
	}
	return cmd
}

func (f *taskFormModel) cycleFocus(back bool) {
	f.blur()
	if back {
		f.focus = (f.focus + fieldCount - 1) % fieldCount
	} else {
		f.focus = (f.focus + 1) % fieldCount
	}
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldDescription:
		f.desc.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	case fieldDeadline:
		f.deadline.Focus()
	}
}

func (f *taskFormModel) blur() {
	f.name.Blur()
	f.desc.Blur()
	f.dueDate.Blur()
	f.deadline.Blur()
}

func (f *taskFormModel) cyclePriority(delta int) {
	if len(f.priorities) == 0 {
		return
	}
	f.prioIdx = (f.prioIdx + delta + len(f.priorities)) % len(f.priorities)
}

// syncDraft copies the input values back into the draft before validation.
func (f *taskFormModel) syncDraft() {
	f.draft.Name = f.name.Value()
	f.draft.Description = f.desc.Value()
	f.draft.DueDate = f.dueDate.Value()
	f.draft.Deadline = f.deadline.Value()
	if len(f.priorities) > 0 {
		f.draft.PriorityID = f.priorities[f.prioIdx].ID
	}
}

func (m appModel) openCreateForm(date string, parentID *int64) (tea.Model, tea.Cmd) {
	draft := form.NewCreate(date, parentID, m.priorities)
	m.taskForm = newTaskFormModel(draft, m.priorities)
	m.modal = modalTaskForm
	return m, textinput.Blink
}

func (m appModel) openEditForm(task model.Task) (tea.Model, tea.Cmd) {
	draft := form.NewEdit(task, m.priorities)
	m.taskForm = newTaskFormModel(draft, m.priorities)
	m.modal = modalTaskForm
	return m, textinput.Blink
}

func (m appModel) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.taskForm
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.taskForm = nil
		return m, nil
	case "tab", "down":
		f.cycleFocus(false)
		return m, nil
	case "shift+tab", "up":
		f.cycleFocus(true)
		return m, nil
	case "left", "right":
		if f.focus == fieldPriority {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			f.cyclePriority(delta)
			return m, nil
		}
	case "enter":
		// Enter inserts a newline while the description has focus; submit
		// from anywhere else.
		if f.focus != fieldDescription {
			return m.submitTaskForm()
		}
	}
	cmd := f.update(msg)
	return m, cmd
}

func (m appModel) submitTaskForm() (tea.Model, tea.Cmd) {
	f := m.taskForm
	f.syncDraft()
	if err := f.draft.Validate(); err != nil {
		f.err = err.Error()
		return m, nil
	}
	req := f.draft.Request()
	op := "create"
	var call func(ctx context.Context) error
	if f.draft.Mode == form.ModeEdit {
		op = "update"
		id := f.draft.TaskID
		call = func(ctx context.Context) error {
			return m.deps.Client.UpdateTask(ctx, id, req)
		}
	} else {
		call = func(ctx context.Context) error {
			return m.deps.Client.CreateTask(ctx, req)
		}
	}
	m.modal = modalNone
	m.taskForm = nil
	return m, m.mutateCmd(op, call)
}

func (m appModel) taskFormView() string {
	f := m.taskForm

	title := "New task"
	if f.draft.Mode == form.ModeEdit {
		title = "Edit task"
	} else if f.draft.ParentID != nil {
		title = "New subtask"
	}

	label := func(s string, focused bool) string {
		st := styleMuted()
		if focused {
			st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		return st.Render(s)
	}

	prio := "(none)"
	if len(f.priorities) > 0 {
		p := f.priorities[f.prioIdx]
		prio = fmt.Sprintf("◀ %s (%d xp) ▶", p.Name, p.Xp)
	}

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		"",
		label("Name", f.focus == fieldName),
		f.name.View(),
		"",
		label("Description", f.focus == fieldDescription),
		f.desc.View(),
		"",
		label("Due date", f.focus == fieldDueDate),
		f.dueDate.View(),
		"",
		label("Deadline", f.focus == fieldDeadline),
		f.deadline.View(),
		"",
		label("Priority", f.focus == fieldPriority),
		prio,
	}
	if f.err != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorBannerErrorFg).Render(f.err))
	}
	rows = append(rows, "", styleMuted().Render("tab next field  ·  enter save  ·  esc cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(52).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m appModel) confirmDeleteView() string {
	name := m.confirmTask.Name
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Delete task?"),
		"",
		name,
		"",
		styleMuted().Render("y delete  ·  n cancel"),
	)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBannerErrorFg).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
