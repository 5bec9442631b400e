package tui

import (
	"context"
	"errors"
	"time"

	"tyler-cli/internal/api"
	"tyler-cli/internal/dayoff"
	"tyler-cli/internal/form"
	"tyler-cli/internal/model"
	"tyler-cli/internal/store"
	"tyler-cli/internal/toast"
	"tyler-cli/internal/tutorial"
	"tyler-cli/internal/week"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type screen int

const (
	screenLoading screen = iota
	screenLogin
	screenBoard
)

type modalKind int

const (
	modalNone modalKind = iota
	modalTaskForm
	modalConfirmDelete
	modalTaskDetail
)

type appModel struct {
	deps Deps

	width  int
	height int

	screen screen
	modal  modalKind

	today  time.Time
	offset int

	tasks      []model.Task
	profile    *model.UserProfile
	priorities []model.Priority
	dayoffMgr  *dayoff.Manager

	// Per-resource fetch guards: issued is the newest request sequence,
	// applied the newest response folded into state.
	tasksIssued, tasksApplied     int
	profileIssued, profileApplied int

	selDay  int // 0..6 within the visible week
	selTask int // index within the selected day's bucket

	sink *toast.Sink
	tour *tutorial.Walkthrough

	taskForm    *taskFormModel
	confirmTask model.Task
	detailTask  model.Task
	login       loginModel

	loadErr string
}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:   deps,
		screen: screenLoading,
		today:  time.Now(),
		sink:   toast.NewSink(),
		tour:   tutorial.New(tutorial.DefaultSteps()),
		login:  newLoginModel(),
	}
	return m
}

// Init only schedules the bootstrap. bubbletea keeps the model returned by
// Update, not the receiver Init was called on, so the sequence counters must
// not advance here; loadAll runs once the boot message arrives in Update.
func (m appModel) Init() tea.Cmd {
	return func() tea.Msg { return bootMsg{} }
}

// loadAll kicks off the mount fetches. Sequence counters advance on the
// receiver, so it must run where the resulting model is retained (Update).
func (m *appModel) loadAll() tea.Cmd {
	return tea.Batch(m.fetchProfile(), m.fetchTasks(), m.fetchPriorities())
}

func (m *appModel) fetchTasks() tea.Cmd {
	m.tasksIssued++
	seq := m.tasksIssued
	client := m.deps.Client
	return func() tea.Msg {
		tasks, err := client.Tasks(context.Background())
		return tasksMsg{seq: seq, tasks: tasks, err: err}
	}
}

func (m *appModel) fetchProfile() tea.Cmd {
	m.profileIssued++
	seq := m.profileIssued
	client := m.deps.Client
	return func() tea.Msg {
		profile, err := client.Me(context.Background())
		return profileMsg{seq: seq, profile: profile, err: err}
	}
}

func (m *appModel) fetchPriorities() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		priorities, err := client.Priorities(context.Background())
		return prioritiesMsg{priorities: priorities, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootMsg:
		return m, m.loadAll()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notifyMsg:
		return m, m.showToast(msg.Severity, msg.Message)

	case toastEnterMsg:
		m.sink.MarkVisible(msg.id)
		return m, nil
	case toastAutoDismissMsg:
		m.sink.Dismiss(msg.id)
		return m, toastGoneCmd(msg.id)
	case toastGoneMsg:
		m.sink.Remove(msg.id)
		return m, nil

	case tasksMsg:
		return m.applyTasks(msg), nil

	case profileMsg:
		return m.applyProfile(msg)

	case prioritiesMsg:
		if msg.err == nil {
			m.priorities = msg.priorities
			if m.taskForm != nil {
				m.taskForm.setPriorities(msg.priorities)
			}
		}
		return m, nil

	case opDoneMsg:
		// Mutations never patch local state; success and failure both end in
		// a re-fetch so the board reflects the server.
		var cmds []tea.Cmd
		switch msg.op {
		case "dayoff":
			cmds = append(cmds, m.fetchProfile())
		default:
			cmds = append(cmds, m.fetchTasks(), m.fetchProfile())
		}
		if msg.err == nil {
			switch msg.op {
			case "create":
				cmds = append(cmds, m.showToast(toast.SeveritySuccess, "Task created"))
			case "update":
				cmds = append(cmds, m.showToast(toast.SeveritySuccess, "Task updated"))
			}
		} else if errors.Is(msg.err, api.ErrSessionExpired) {
			m.screen = screenLogin
			m.login = newLoginModel()
		}
		return m, tea.Batch(cmds...)

	case authDoneMsg:
		return m.applyAuthDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToFocused(msg)
}

func (m appModel) applyTasks(msg tasksMsg) appModel {
	if msg.seq <= m.tasksApplied {
		// Stale response from rapid navigation; a newer fetch already landed.
		m.deps.Logger.Info("discarding stale tasks response", zap.Int("seq", msg.seq), zap.Int("applied", m.tasksApplied))
		return m
	}
	m.tasksApplied = msg.seq
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrSessionExpired) {
			m.screen = screenLogin
			m.login = newLoginModel()
		}
		return m
	}
	m.tasks = msg.tasks
	if m.screen == screenLoading && m.profile != nil {
		m.screen = screenBoard
	}
	m.clampSelection()
	return m
}

func (m appModel) applyProfile(msg profileMsg) (tea.Model, tea.Cmd) {
	if msg.seq <= m.profileApplied {
		m.deps.Logger.Info("discarding stale profile response", zap.Int("seq", msg.seq), zap.Int("applied", m.profileApplied))
		return m, nil
	}
	m.profileApplied = msg.seq
	if msg.err != nil {
		// The page-level loader redirects to login when the session cannot
		// be established.
		if errors.Is(msg.err, api.ErrSessionExpired) || api.StatusOf(msg.err) == 401 {
			m.screen = screenLogin
			m.login = newLoginModel()
			return m, nil
		}
		if m.screen == screenLoading {
			m.loadErr = msg.err.Error()
		}
		return m, nil
	}
	m.profile = msg.profile
	if m.dayoffMgr == nil {
		m.dayoffMgr = dayoff.NewManager(m.deps.Client, msg.profile)
	} else {
		m.dayoffMgr.SetProfile(msg.profile)
	}
	if m.screen == screenLoading {
		m.screen = screenBoard
		if !m.deps.Config.TutorialCompleted {
			m.tour.Start()
		}
	}
	return m, nil
}

func (m appModel) applyAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.login.setError(msg.register, msg.err)
		return m, nil
	}
	// Fresh session: reload everything the board needs.
	m.screen = screenLoading
	m.loadErr = ""
	return m, m.loadAll()
}

// routeToFocused forwards non-key messages (cursor blinks etc.) to whichever
// input-bearing component is active.
func (m appModel) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.screen == screenLogin:
		cmd := m.login.update(msg)
		return m, cmd
	case m.modal == modalTaskForm && m.taskForm != nil:
		cmd := m.taskForm.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenLoading:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case screenLogin:
		return m.handleLoginKey(msg)
	}

	// Tutorial overlay captures navigation keys while active.
	if m.tour.Active() {
		return m.handleTourKey(msg)
	}

	switch m.modal {
	case modalTaskForm:
		return m.handleTaskFormKey(msg)
	case modalConfirmDelete:
		return m.handleConfirmKey(msg)
	case modalTaskDetail:
		switch msg.String() {
		case "esc", "v", "enter", "q":
			m.modal = modalNone
		}
		return m, nil
	}

	return m.handleBoardKey(msg)
}

func (m appModel) handleTourKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "n", "right":
		m.tour.Next()
	case "p", "left":
		m.tour.Prev()
	case "esc", "s":
		m.tour.Skip()
	case "q", "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	if !m.tour.Active() && m.tour.Completed() && !m.deps.Config.TutorialCompleted {
		m.deps.Config.TutorialCompleted = true
		if err := store.SaveConfig(m.deps.Dir, m.deps.Config); err != nil {
			m.deps.Logger.Warn("persist tutorial flag", zap.Error(err))
		}
	}
	return m, nil
}

func (m appModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "left":
		if m.selDay > 0 {
			m.selDay--
			m.selTask = 0
		}
		return m, nil
	case "right":
		if m.selDay < 6 {
			m.selDay++
			m.selTask = 0
		}
		return m, nil
	case "up":
		if m.selTask > 0 {
			m.selTask--
		}
		return m, nil
	case "down":
		m.selTask++
		m.clampSelection()
		return m, nil

	case "h":
		m.offset--
		m.selTask = 0
		return m, nil
	case "l":
		m.offset++
		m.selTask = 0
		return m, nil
	case "t":
		m.offset = 0
		m.selTask = 0
		return m, nil

	case "r":
		return m, m.loadAll()

	case "a":
		return m.openCreateForm(week.Key(m.days()[m.selDay]), nil)
	case "s":
		if task, ok := m.selectedTask(); ok && !task.IsSubtask() {
			id := task.ID
			return m.openCreateForm(week.Key(m.days()[m.selDay]), &id)
		}
		return m, nil
	case "enter", "e":
		if task, ok := m.selectedTask(); ok {
			return m.openEditForm(task)
		}
		return m, nil

	case "x":
		if task, ok := m.selectedTask(); ok {
			return m, m.mutateCmd("done", func(ctx context.Context) error {
				return m.deps.Client.ToggleDone(ctx, task.ID)
			})
		}
		return m, nil

	case "d":
		if task, ok := m.selectedTask(); ok {
			m.modal = modalConfirmDelete
			m.confirmTask = task
		}
		return m, nil

	case "v":
		if task, ok := m.selectedTask(); ok {
			m.modal = modalTaskDetail
			m.detailTask = task
		}
		return m, nil

	case "[", "]":
		return m.rescheduleSelected(msg.String() == "]")

	case "o":
		return m.toggleDayOff()

	case "?":
		m.tour.Start()
		return m, nil
	}
	return m, nil
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		task := m.confirmTask
		m.modal = modalNone
		return m, m.mutateCmd("delete", func(ctx context.Context) error {
			return m.deps.Client.DeleteTask(ctx, task.ID)
		})
	case "n", "esc":
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

// mutateCmd wraps a mutation; completion triggers the re-fetch cycle.
func (m appModel) mutateCmd(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

func (m appModel) toggleDayOff() (tea.Model, tea.Cmd) {
	if m.dayoffMgr == nil {
		return m, nil
	}
	days := m.days()
	date := week.Key(days[m.selDay])
	switch m.dayoffMgr.Decide(date, days, m.offset) {
	case dayoff.OutcomeNoop:
		// Not the current week: no call, no state change.
		return m, nil
	case dayoff.OutcomeRejected:
		return m, m.showToast(toast.SeverityWarning, m.dayoffMgr.RejectionMessage())
	case dayoff.OutcomeRemoved:
		return m, m.mutateCmd("dayoff", func(ctx context.Context) error {
			return m.deps.Client.RemoveDayOff(ctx, date)
		})
	default:
		return m, m.mutateCmd("dayoff", func(ctx context.Context) error {
			return m.deps.Client.AddDayOff(ctx, date)
		})
	}
}

// rescheduleSelected moves the selected task one day forward or back. The
// move is a full update against the server followed by a re-fetch; a failed
// update therefore reverts on its own instead of drifting from server state.
func (m appModel) rescheduleSelected(forward bool) (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	delta := 1
	if !forward {
		delta = -1
	}
	newDay := m.selDay + delta
	if newDay < 0 || newDay > 6 {
		return m, nil
	}

	due, err := time.Parse(week.DateLayout, task.DueDate)
	if err != nil {
		return m, nil
	}
	req := model.TaskRequest{
		ParentID:    task.ParentID,
		Name:        task.Name,
		Description: task.Description,
		DueDate:     week.Key(due.AddDate(0, 0, delta)),
		Deadline:    task.Deadline,
		PriorityID:  form.ResolvePriority(task, m.priorities),
	}
	m.selDay = newDay
	m.selTask = 0
	return m, m.mutateCmd("update", func(ctx context.Context) error {
		return m.deps.Client.UpdateTask(ctx, task.ID, req)
	})
}

func (m *appModel) showToast(sev toast.Severity, message string) tea.Cmd {
	id := m.sink.Show(sev, message)
	return tea.Batch(toastEnterCmd(id), toastAutoDismissCmd(id))
}

// days returns the visible week window.
func (m appModel) days() []time.Time {
	return week.Dates(m.today, m.offset)
}

// buckets groups the task list for the visible window.
func (m appModel) buckets() map[string][]model.Task {
	return week.Group(m.tasks, m.days())
}

func (m appModel) selectedDayTasks() []model.Task {
	return m.buckets()[week.Key(m.days()[m.selDay])]
}

func (m appModel) selectedTask() (model.Task, bool) {
	ts := m.selectedDayTasks()
	if m.selTask < 0 || m.selTask >= len(ts) {
		return model.Task{}, false
	}
	return ts[m.selTask], true
}

func (m *appModel) clampSelection() {
	if m.selDay < 0 {
		m.selDay = 0
	}
	if m.selDay > 6 {
		m.selDay = 6
	}
	n := len(m.selectedDayTasks())
	if n == 0 {
		m.selTask = 0
		return
	}
	if m.selTask >= n {
		m.selTask = n - 1
	}
	if m.selTask < 0 {
		m.selTask = 0
	}
}
