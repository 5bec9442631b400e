package cli

import (
	"context"
	"errors"
	"strconv"
	"time"

	"tyler-cli/internal/form"
	"tyler-cli/internal/model"
	"tyler-cli/internal/week"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))

	return cmd
}

// weekListing mirrors the board view: one entry per visible day.
type weekListing struct {
	WeekStart string       `json:"weekStart"`
	Offset    int          `json:"offset"`
	Days      []dayListing `json:"days"`
}

type dayListing struct {
	Date   string       `json:"date"`
	DayOff bool         `json:"dayOff"`
	Tasks  []model.Task `json:"tasks"`
}

func newTasksListCmd(app *App) *cobra.Command {
	var offset int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by day for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()

			ctx := context.Background()
			tasks, err := client.Tasks(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if all {
				return writeOut(cmd, app, tasks)
			}

			profile, err := client.Me(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			days := week.Dates(time.Now(), offset)
			buckets := week.Group(tasks, days)

			out := weekListing{WeekStart: week.Key(days[0]), Offset: offset}
			for _, d := range days {
				k := week.Key(d)
				ts := buckets[k]
				if ts == nil {
					ts = []model.Task{}
				}
				out.Days = append(out.Days, dayListing{
					Date:   k,
					DayOff: profile.HasDayOff(k),
					Tasks:  ts,
				})
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().IntVar(&offset, "week", 0, "Week offset (0 = current week, negative = past)")
	cmd.Flags().BoolVar(&all, "all", false, "Dump the flat task list without grouping")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var name, description, due, deadline string
	var priorityID, parentID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()

			var parent *int64
			if parentID != 0 {
				parent = &parentID
			}
			draft := form.NewCreate(due, parent, nil)
			draft.Name = name
			draft.Description = description
			if deadline != "" {
				draft.Deadline = deadline
			}
			if priorityID != 0 {
				draft.PriorityID = priorityID
			}
			if err := draft.Validate(); err != nil {
				return writeErr(cmd, err)
			}
			if err := client.CreateTask(context.Background(), draft.Request()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "created", "name": draft.Request().Name})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline YYYY-MM-DD (default: due date)")
	cmd.Flags().Int64Var(&priorityID, "priority", 1, "Priority id (see `tyler tasks priorities` via the board form)")
	cmd.Flags().Int64Var(&parentID, "parent", 0, "Parent task id (creates a subtask)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var name, description, due, deadline string
	var priorityID int64

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update a task (full update; unset flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()

			ctx := context.Background()
			task, err := findTask(ctx, client, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			priorities, err := client.Priorities(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			draft := form.NewEdit(*task, priorities)
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("description") {
				draft.Description = description
			}
			if cmd.Flags().Changed("due") {
				draft.DueDate = due
			}
			if cmd.Flags().Changed("deadline") {
				draft.Deadline = deadline
			}
			if cmd.Flags().Changed("priority") {
				draft.PriorityID = priorityID
			}
			if err := draft.Validate(); err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UpdateTask(ctx, id, draft.Request()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "updated", "id": id})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date YYYY-MM-DD")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline YYYY-MM-DD")
	cmd.Flags().Int64Var(&priorityID, "priority", 0, "Priority id")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task's completion flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()
			if err := client.ToggleDone(context.Background(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "toggled", "id": id})
		},
	}
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()
			if err := client.DeleteTask(context.Background(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "deleted", "id": id})
		},
	}
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()
			task, err := findTask(context.Background(), client, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, task)
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("task id must be a positive integer")
	}
	return id, nil
}

// findTask resolves an id through the list endpoint; the API has no
// GET /tasks/{id}.
func findTask(ctx context.Context, client taskLister, id int64) (*model.Task, error) {
	tasks, err := client.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, errors.New("task not found: " + strconv.FormatInt(id, 10))
}

type taskLister interface {
	Tasks(ctx context.Context) ([]model.Task, error)
}
