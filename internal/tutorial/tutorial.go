// Package tutorial sequences the onboarding walkthrough. Progress is purely
// client-local; only the completed flag survives across sessions (persisted
// by the caller via the config store).
package tutorial

// Placement hints where the step's callout is rendered relative to its
// target region.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementLeft   Placement = "left"
	PlacementRight  Placement = "right"
	PlacementCenter Placement = "center"
)

type Step struct {
	ID    string
	Title string
	Body  string

	// Target names the board region the step points at ("" = whole screen).
	Target    string
	Placement Placement

	// DisableOverlay renders the step without dimming the board.
	DisableOverlay bool
	// DisableNext hides the next button (the step advances via OnNext's
	// side effect instead).
	DisableNext bool
	// OnNext runs when advancing past the step.
	OnNext func()
}

// Walkthrough tracks progress through an ordered step list.
type Walkthrough struct {
	steps  []Step
	index  int
	active bool
	done   bool
}

func New(steps []Step) *Walkthrough {
	return &Walkthrough{steps: steps}
}

// DefaultSteps is the onboarding tour shown on first launch.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:             "welcome",
			Title:          "Welcome to Tyler!",
			Body:           "Let's take a quick tour of your task board. You can skip this tutorial at any time.",
			Placement:      PlacementCenter,
			DisableOverlay: true,
		},
		{
			ID:        "calendar-view",
			Title:     "Weekly Calendar",
			Body:      "This is your weekly view. Tasks are organized into one column per day.",
			Target:    "board",
			Placement: PlacementTop,
		},
		{
			ID:        "profile-sidebar",
			Title:     "Your Profile",
			Body:      "Here you can see your progress, XP, and current streak.",
			Target:    "sidebar",
			Placement: PlacementRight,
		},
		{
			ID:        "progress-bar",
			Title:     "Daily Progress",
			Body:      "Track your daily XP progress toward your quota here.",
			Target:    "progress",
			Placement: PlacementRight,
		},
		{
			ID:        "days-off",
			Title:     "Days Off",
			Body:      "You can set up to 2 days off per week. Press o on a day to mark it as a day off.",
			Target:    "daysoff",
			Placement: PlacementRight,
		},
		{
			ID:        "add-task",
			Title:     "Add Tasks",
			Body:      "Press a to add a new task to the selected day.",
			Target:    "board",
			Placement: PlacementLeft,
		},
		{
			ID:        "day-column",
			Title:     "Day View",
			Body:      "Each column is one day. Move between days with the arrow keys.",
			Target:    "board",
			Placement: PlacementTop,
		},
		{
			ID:        "week-navigation",
			Title:     "Navigate Weeks",
			Body:      "Use h and l to move between weeks, and t to jump back to today.",
			Target:    "header",
			Placement: PlacementBottom,
		},
		{
			ID:             "complete",
			Title:          "You're All Set!",
			Body:           "That's it! You can restart this tutorial anytime with ?.",
			Placement:      PlacementCenter,
			DisableOverlay: true,
		},
	}
}

func (w *Walkthrough) Active() bool { return w.active }

// Completed reports whether the walkthrough finished or was skipped since
// Start. The cross-session flag lives in the config store, not here.
func (w *Walkthrough) Completed() bool { return w.done }

// Current returns the active step, false when the walkthrough is not running.
func (w *Walkthrough) Current() (Step, bool) {
	if !w.active || w.index < 0 || w.index >= len(w.steps) {
		return Step{}, false
	}
	return w.steps[w.index], true
}

// Position returns the 1-based step number and total for display.
func (w *Walkthrough) Position() (int, int) {
	return w.index + 1, len(w.steps)
}

func (w *Walkthrough) Start() {
	if len(w.steps) == 0 {
		return
	}
	w.active = true
	w.done = false
	w.index = 0
}

// Next advances past the current step, invoking its side effect. Advancing
// past the last step finishes the walkthrough.
func (w *Walkthrough) Next() {
	cur, ok := w.Current()
	if !ok {
		return
	}
	if cur.OnNext != nil {
		cur.OnNext()
	}
	if w.index >= len(w.steps)-1 {
		w.finish()
		return
	}
	w.index++
}

// Prev steps back; a no-op on the first step.
func (w *Walkthrough) Prev() {
	if !w.active || w.index == 0 {
		return
	}
	w.index--
}

// Skip abandons the walkthrough. Skipping still counts as completion so the
// tour does not reappear on every launch.
func (w *Walkthrough) Skip() {
	if !w.active {
		return
	}
	w.finish()
}

func (w *Walkthrough) finish() {
	w.active = false
	w.done = true
	w.index = 0
}
