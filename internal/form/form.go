// Package form holds the local draft state for creating and editing a task,
// independent of persistence until submit.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tyler-cli/internal/model"
	"tyler-cli/internal/week"
)

// Field limits mirror the server contract so validation failures are caught
// before a round trip.
const (
	MinNameLength        = 3
	MaxNameLength        = 255
	MaxDescriptionLength = 500
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Draft is the editable state of the task form.
type Draft struct {
	Mode   Mode
	TaskID int64 // edit only

	Name        string
	Description string
	DueDate     string
	Deadline    string
	PriorityID  int64
	ParentID    *int64

	// seed remembers the create defaults so submit can reset the form.
	seed struct {
		date     string
		parentID *int64
	}
}

// NewCreate seeds a create draft. defaultDate falls back to today; both due
// date and deadline start there. The first catalog priority is the default
// when available.
func NewCreate(defaultDate string, parentID *int64, priorities []model.Priority) *Draft {
	if strings.TrimSpace(defaultDate) == "" {
		defaultDate = time.Now().Format(week.DateLayout)
	}
	d := &Draft{
		Mode:       ModeCreate,
		DueDate:    defaultDate,
		Deadline:   defaultDate,
		ParentID:   parentID,
		PriorityID: 1,
	}
	if len(priorities) > 0 {
		d.PriorityID = priorities[0].ID
	}
	d.seed.date = defaultDate
	d.seed.parentID = parentID
	return d
}

// NewEdit seeds an edit draft from the task's current values and the fetched
// priority catalog.
func NewEdit(task model.Task, priorities []model.Priority) *Draft {
	return &Draft{
		Mode:        ModeEdit,
		TaskID:      task.ID,
		Name:        task.Name,
		Description: task.Description,
		DueDate:     task.DueDate,
		Deadline:    task.Deadline,
		ParentID:    task.ParentID,
		PriorityID:  ResolvePriority(task, priorities),
	}
}

// ResolvePriority finds the task's current priority in the catalog.
//
// Newer servers transmit priorityId directly; that wins. Otherwise fall back
// to the legacy shim of matching the remaining XP value against the catalog,
// which mis-resolves when two priorities share an XP value. 0 means
// unresolved.
func ResolvePriority(task model.Task, priorities []model.Priority) int64 {
	if task.PriorityID != nil && *task.PriorityID != 0 {
		return *task.PriorityID
	}
	for _, p := range priorities {
		if p.Xp == task.RemainingXp {
			return p.ID
		}
	}
	return 0
}

// Validate mirrors the server-side constraints.
func (d *Draft) Validate() error {
	name := strings.TrimSpace(d.Name)
	if len(name) < MinNameLength {
		return fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if len(d.Description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if _, err := time.Parse(week.DateLayout, d.DueDate); err != nil {
		return errors.New("due date must be a valid YYYY-MM-DD date")
	}
	if _, err := time.Parse(week.DateLayout, d.Deadline); err != nil {
		return errors.New("deadline must be a valid YYYY-MM-DD date")
	}
	if d.PriorityID <= 0 {
		return errors.New("select a priority")
	}
	return nil
}

// Request builds the wire body for POST /tasks or PUT /tasks/{id}.
func (d *Draft) Request() model.TaskRequest {
	return model.TaskRequest{
		ParentID:    d.ParentID,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		DueDate:     d.DueDate,
		Deadline:    d.Deadline,
		PriorityID:  d.PriorityID,
	}
}

// Reset returns a create draft to its seeded defaults (after a successful
// submit). Edit drafts are discarded by the caller instead.
func (d *Draft) Reset(priorities []model.Priority) {
	if d.Mode != ModeCreate {
		return
	}
	*d = *NewCreate(d.seed.date, d.seed.parentID, priorities)
}
