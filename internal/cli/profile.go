package cli

import (
	"context"
	"errors"
	"time"

	"tyler-cli/internal/dayoff"
	"tyler-cli/internal/week"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the current user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()
			profile, err := client.Me(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, profile)
		},
	}
}

func newDayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dayoff",
		Short: "Day-off commands (current week only)",
	}
	cmd.AddCommand(newDayoffListCmd(app))
	cmd.AddCommand(newDayoffSetCmd(app))
	cmd.AddCommand(newDayoffUnsetCmd(app))
	return cmd
}

func newDayoffListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List marked days off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, save, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer save()
			profile, err := client.Me(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			days := week.Dates(time.Now(), 0)
			m := dayoff.NewManager(client, profile)
			return writeOut(cmd, app, map[string]any{
				"daysOff":          profile.DaysOff,
				"thisWeek":         m.MarkedInWindow(days),
				"perWeekAllowance": profile.DaysOffPerWeek,
			})
		},
	}
}

func newDayoffSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <date>",
		Short: "Mark a date in the current week as a day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleDayOff(cmd, app, args[0], true)
		},
	}
}

func newDayoffUnsetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <date>",
		Short: "Remove a day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleDayOff(cmd, app, args[0], false)
		},
	}
}

func toggleDayOff(cmd *cobra.Command, app *App, date string, set bool) error {
	if _, err := time.Parse(week.DateLayout, date); err != nil {
		return writeErr(cmd, errors.New("date must be YYYY-MM-DD"))
	}
	client, save, err := newClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer save()

	ctx := context.Background()
	profile, err := client.Me(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	m := dayoff.NewManager(client, profile)
	if set == m.IsDayOff(date) {
		if set {
			return writeErr(cmd, errors.New(date+" is already a day off"))
		}
		return writeErr(cmd, errors.New(date+" is not a day off"))
	}

	days := week.Dates(time.Now(), 0)
	if !week.Contains(days, date) {
		return writeErr(cmd, errors.New("days off can only be toggled in the current week"))
	}

	outcome, err := m.Toggle(ctx, date, days, 0)
	if err != nil {
		return writeErr(cmd, err)
	}
	if outcome == dayoff.OutcomeRejected {
		return writeErr(cmd, errors.New(m.RejectionMessage()))
	}

	// Re-fetch so the output reflects the server's acknowledgment.
	profile, err = client.Me(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"date": date, "daysOff": profile.DaysOff})
}
