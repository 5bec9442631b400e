// Package toast holds the transient-notification state machine. The sink is
// deliberately free of timers and rendering: the TUI schedules the lifecycle
// transitions (entrance delay, auto-dismiss, exit animation) and calls back
// in, so the whole lifecycle is testable without a terminal.
package toast

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// State is the visible lifecycle: pending → visible → leaving → removed.
// A removed toast is deleted from the set, so StateRemoved never appears in
// Active().
type State int

const (
	StatePending State = iota
	StateVisible
	StateLeaving
)

// Suggested timer durations for the TUI wiring.
const (
	EnterDelay  = 50 * time.Millisecond
	ExitDelay   = 300 * time.Millisecond
	AutoDismiss = 5 * time.Second
)

type Toast struct {
	ID        string
	Severity  Severity
	Message   string
	State     State
	CreatedAt time.Time
}

// Sink is the process-wide set of active toasts, ordered by insertion.
// It is not safe for concurrent use; all access happens on the UI event loop.
type Sink struct {
	entries []Toast
	now     func() time.Time
}

func NewSink() *Sink {
	return &Sink{now: time.Now}
}

// Show appends a new pending toast and returns its generated identity.
// The set is unbounded and identical messages are not deduplicated.
func (s *Sink) Show(sev Severity, message string) string {
	id := uuid.NewString()
	s.entries = append(s.entries, Toast{
		ID:        id,
		Severity:  sev,
		Message:   message,
		State:     StatePending,
		CreatedAt: s.now(),
	})
	return id
}

// MarkVisible transitions a pending toast to visible (the entrance timer
// fired). Toasts already visible or leaving are left alone.
func (s *Sink) MarkVisible(id string) {
	if t := s.find(id); t != nil && t.State == StatePending {
		t.State = StateVisible
	}
}

// Dismiss begins removal (timer expiry or user close). Dismissing a toast
// whose entrance timer has not fired yet still moves it to leaving, so the
// exit timer removes it and nothing leaks.
func (s *Sink) Dismiss(id string) {
	if t := s.find(id); t != nil && t.State != StateLeaving {
		t.State = StateLeaving
	}
}

// Remove deletes the entry from the set once the exit delay has elapsed.
func (s *Sink) Remove(id string) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Active returns the current set in insertion order.
func (s *Sink) Active() []Toast {
	out := make([]Toast, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Sink) Len() int { return len(s.entries) }

func (s *Sink) find(id string) *Toast {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i]
		}
	}
	return nil
}

// Notify satisfies the api notifier contract so the request pipeline can emit
// straight into the sink.
func (s *Sink) Notify(sev Severity, message string) {
	s.Show(sev, message)
}
