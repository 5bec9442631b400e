// Package dayoff enforces the client-side day-off rules: exact calendar
// dates only, toggling restricted to the currently displayed week, and a
// per-week cap checked against the visible 7-day window. The server's own
// enforcement (if any) is unknown, so rejections here are a UX guard, not a
// guarantee.
package dayoff

import (
	"context"
	"fmt"
	"time"

	"tyler-cli/internal/model"
	"tyler-cli/internal/week"
)

// DefaultAllowance applies when the profile does not carry a per-week
// allowance.
const DefaultAllowance = 2

// API is the slice of the request pipeline the manager needs.
type API interface {
	AddDayOff(ctx context.Context, date string) error
	RemoveDayOff(ctx context.Context, date string) error
}

// Outcome reports what a toggle did, so the caller knows whether to re-fetch
// the profile (any network branch) or show a warning (rejection).
type Outcome int

const (
	// OutcomeNoop: not viewing the current week; no call, no state change.
	OutcomeNoop Outcome = iota
	// OutcomeAdded / OutcomeRemoved: the network call was issued; the caller
	// must re-fetch the profile rather than mutate local state.
	OutcomeAdded
	OutcomeRemoved
	// OutcomeRejected: the weekly cap is reached; no call was made.
	OutcomeRejected
)

// Manager tracks the marked-off dates from the latest profile fetch.
type Manager struct {
	api       API
	allowance int
	daysOff   []string
}

func NewManager(api API, profile *model.UserProfile) *Manager {
	m := &Manager{api: api, allowance: DefaultAllowance}
	m.SetProfile(profile)
	return m
}

// SetProfile replaces local state after a profile re-fetch.
func (m *Manager) SetProfile(profile *model.UserProfile) {
	if profile == nil {
		return
	}
	m.daysOff = append([]string(nil), profile.DaysOff...)
	if profile.DaysOffPerWeek > 0 {
		m.allowance = profile.DaysOffPerWeek
	}
}

// IsDayOff reports whether the exact date is currently marked off.
func (m *Manager) IsDayOff(date string) bool {
	for _, d := range m.daysOff {
		if d == date {
			return true
		}
	}
	return false
}

// MarkedInWindow returns the subset of marked-off dates inside the visible
// 7-day window.
func (m *Manager) MarkedInWindow(days []time.Time) []string {
	var out []string
	for _, d := range m.daysOff {
		if week.Contains(days, d) {
			out = append(out, d)
		}
	}
	return out
}

// RejectionMessage is the user-visible warning for a cap rejection.
func (m *Manager) RejectionMessage() string {
	return fmt.Sprintf("You can only take %d days off per week.", m.allowance)
}

// Decide is the pure half of Toggle: it picks the outcome for date inside
// the window described by days at the given week offset, without touching the
// network. The TUI decides on the event loop and issues the call as a
// command; Toggle below does both for synchronous callers.
//
// Removal always wins regardless of subset size. Addition is rejected once
// the window already holds `allowance` marked dates.
func (m *Manager) Decide(date string, days []time.Time, offset int) Outcome {
	if offset != 0 {
		return OutcomeNoop
	}
	if m.IsDayOff(date) {
		return OutcomeRemoved
	}
	if len(m.MarkedInWindow(days)) >= m.allowance {
		return OutcomeRejected
	}
	return OutcomeAdded
}

// Toggle flips the day-off state for date. Either network branch leaves
// local state untouched; the caller re-fetches the profile so the view
// reflects the server's acknowledgment.
func (m *Manager) Toggle(ctx context.Context, date string, days []time.Time, offset int) (Outcome, error) {
	switch out := m.Decide(date, days, offset); out {
	case OutcomeRemoved:
		return out, m.api.RemoveDayOff(ctx, date)
	case OutcomeAdded:
		return out, m.api.AddDayOff(ctx, date)
	default:
		return out, nil
	}
}
