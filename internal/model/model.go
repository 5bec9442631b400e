package model

// Wire types for the Tyler REST API. JSON tags follow the server contract;
// the client never renames fields.

type Task struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId,omitempty"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// DueDate and Deadline are calendar dates (YYYY-MM-DD, no time component)
	// and are independently settable.
	DueDate  string `json:"dueDate"`
	Deadline string `json:"deadline"`

	// RemainingXp is what completing the task still awards; 0 once done.
	RemainingXp int `json:"remainingXp"`

	// PriorityID is sent by newer servers. Older servers omit it, in which
	// case the edit form falls back to matching RemainingXp against the
	// priority catalog.
	PriorityID *int64 `json:"priorityId,omitempty"`

	Subtasks int  `json:"subtasks"`
	Done     bool `json:"done"`
}

// IsSubtask reports whether the task belongs to a parent task. Subtasks are
// excluded from top-level counts but still bucket under their own due date.
func (t Task) IsSubtask() bool {
	return t.ParentID != nil && *t.ParentID != 0
}

// TaskRequest is the body for POST /tasks and PUT /tasks/{id}.
type TaskRequest struct {
	ParentID    *int64 `json:"parentId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate"`
	Deadline    string `json:"deadline"`
	PriorityID  int64  `json:"priorityId"`
}

// Priority is immutable reference data fetched per form open.
type Priority struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Xp   int    `json:"xp"`
}

type UserProfile struct {
	Username      string `json:"username"`
	CurrentXp     int    `json:"currentXp"`
	DailyQuota    int    `json:"dailyQuota"`
	CurrentStreak int    `json:"currentStreak"`

	// DaysOffPerWeek is the per-week allowance; DaysOff holds the exact
	// calendar dates (YYYY-MM-DD) currently marked off.
	DaysOffPerWeek int      `json:"daysOffPerWeek"`
	DaysOff        []string `json:"daysOff"`

	LastAchievedDate string `json:"lastAchievedDate,omitempty"`
}

// HasDayOff reports whether the exact date is marked off.
func (u UserProfile) HasDayOff(date string) bool {
	for _, d := range u.DaysOff {
		if d == date {
			return true
		}
	}
	return false
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
