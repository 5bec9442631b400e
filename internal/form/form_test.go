package form

import (
	"strings"
	"testing"
	"time"

	"tyler-cli/internal/model"
	"tyler-cli/internal/week"
)

var catalog = []model.Priority{
	{ID: 1, Name: "Low", Xp: 10},
	{ID: 2, Name: "Medium", Xp: 25},
	{ID: 3, Name: "High", Xp: 50},
}

func TestNewCreate_SeedsDates(t *testing.T) {
	d := NewCreate("2024-01-10", nil, catalog)
	if d.DueDate != "2024-01-10" || d.Deadline != "2024-01-10" {
		t.Fatalf("seed dates: %+v", d)
	}
	if d.PriorityID != 1 {
		t.Fatalf("default priority: %d", d.PriorityID)
	}
}

func TestNewCreate_DefaultsToToday(t *testing.T) {
	d := NewCreate("", nil, nil)
	today := time.Now().Format(week.DateLayout)
	if d.DueDate != today || d.Deadline != today {
		t.Fatalf("expected today seed, got %+v", d)
	}
}

func TestReset_RestoresSeed(t *testing.T) {
	parent := int64(7)
	d := NewCreate("2024-01-10", &parent, catalog)
	d.Name = "write report"
	d.DueDate = "2024-02-01"
	d.PriorityID = 3

	d.Reset(catalog)
	if d.Name != "" || d.DueDate != "2024-01-10" || d.Deadline != "2024-01-10" {
		t.Fatalf("reset did not restore seed: %+v", d)
	}
	if d.ParentID == nil || *d.ParentID != 7 {
		t.Fatalf("reset dropped parent id: %+v", d.ParentID)
	}
}

func TestResolvePriority_PrefersID(t *testing.T) {
	pid := int64(3)
	task := model.Task{PriorityID: &pid, RemainingXp: 10} // XP would match Low
	if got := ResolvePriority(task, catalog); got != 3 {
		t.Fatalf("priorityId must win over XP match, got %d", got)
	}
}

func TestResolvePriority_LegacyXPFallback(t *testing.T) {
	task := model.Task{RemainingXp: 25}
	if got := ResolvePriority(task, catalog); got != 2 {
		t.Fatalf("XP fallback: got %d", got)
	}
	if got := ResolvePriority(model.Task{RemainingXp: 99}, catalog); got != 0 {
		t.Fatalf("unmatched XP should resolve to 0, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Draft {
		d := NewCreate("2024-01-10", nil, catalog)
		d.Name = "buy milk"
		return d
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	d := valid()
	d.Name = "ab"
	if err := d.Validate(); err == nil {
		t.Fatalf("short name accepted")
	}

	d = valid()
	d.Name = strings.Repeat("x", MaxNameLength+1)
	if err := d.Validate(); err == nil {
		t.Fatalf("long name accepted")
	}

	d = valid()
	d.Description = strings.Repeat("x", MaxDescriptionLength+1)
	if err := d.Validate(); err == nil {
		t.Fatalf("long description accepted")
	}

	d = valid()
	d.DueDate = "tomorrow"
	if err := d.Validate(); err == nil {
		t.Fatalf("bad due date accepted")
	}

	d = valid()
	d.PriorityID = 0
	if err := d.Validate(); err == nil {
		t.Fatalf("missing priority accepted")
	}
}

func TestRequest_TrimsName(t *testing.T) {
	d := NewCreate("2024-01-10", nil, catalog)
	d.Name = "  dishes  "
	req := d.Request()
	if req.Name != "dishes" {
		t.Fatalf("name not trimmed: %q", req.Name)
	}
	if req.DueDate != "2024-01-10" || req.PriorityID != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestNewEdit_SeedsFromTask(t *testing.T) {
	task := model.Task{
		ID: 5, Name: "report", Description: "q3",
		DueDate: "2024-01-08", Deadline: "2024-01-12", RemainingXp: 50,
	}
	d := NewEdit(task, catalog)
	if d.Mode != ModeEdit || d.TaskID != 5 {
		t.Fatalf("edit seed: %+v", d)
	}
	if d.PriorityID != 3 {
		t.Fatalf("edit priority resolution: %d", d.PriorityID)
	}
}
