package tui

import (
	"tyler-cli/internal/model"
)

// bootMsg triggers the mount fetches from inside Update, where the model
// (and its advanced sequence counters) is the one bubbletea keeps.
type bootMsg struct{}

// Fetch results carry the sequence number of the request that produced them.
// Rapid week navigation or repeated actions can complete out of order; the
// model discards any response older than the last one it applied, so a stale
// fetch can never overwrite fresher state.

type tasksMsg struct {
	seq   int
	tasks []model.Task
	err   error
}

type profileMsg struct {
	seq     int
	profile *model.UserProfile
	err     error
}

type prioritiesMsg struct {
	priorities []model.Priority
	err        error
}

// opDoneMsg reports a mutation (create/update/done/delete/day-off). State is
// never mutated optimistically; a completed mutation triggers a re-fetch so
// the view reflects the server's acknowledgment.
type opDoneMsg struct {
	op  string
	err error
}

type authDoneMsg struct {
	register bool
	err      error
}

// Toast lifecycle timers. Each carries the toast identity; firing against a
// toast that already advanced (or vanished) is a no-op in the sink.
type toastEnterMsg struct{ id string }
type toastAutoDismissMsg struct{ id string }
type toastGoneMsg struct{ id string }
