package week

import (
	"testing"
	"time"

	"tyler-cli/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStart_SundayConvention(t *testing.T) {
	// 2024-01-08 is a Monday; its week starts on Sunday 2024-01-07.
	if got := Key(Start(date("2024-01-08"))); got != "2024-01-07" {
		t.Fatalf("Start(Mon): got %s", got)
	}
	// A Sunday is its own week start.
	if got := Key(Start(date("2024-01-07"))); got != "2024-01-07" {
		t.Fatalf("Start(Sun): got %s", got)
	}
	// Saturday belongs to the week that started six days earlier.
	if got := Key(Start(date("2024-01-13"))); got != "2024-01-07" {
		t.Fatalf("Start(Sat): got %s", got)
	}
}

func TestDates_SevenConsecutiveAscending(t *testing.T) {
	for _, offset := range []int{-3, -1, 0, 1, 5} {
		days := Dates(date("2024-01-08"), offset)
		if len(days) != 7 {
			t.Fatalf("offset %d: got %d days", offset, len(days))
		}
		want := Start(date("2024-01-08")).AddDate(0, 0, 7*offset)
		for i, d := range days {
			if !d.Equal(want.AddDate(0, 0, i)) {
				t.Fatalf("offset %d day %d: got %s want %s", offset, i, Key(d), Key(want.AddDate(0, 0, i)))
			}
		}
	}
}

func TestGroup_Scenario(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DueDate: "2024-01-08"},
		{ID: 2, DueDate: "2024-01-10"},
	}
	days := Dates(date("2024-01-08"), 0)
	buckets := Group(tasks, days)

	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if _, ok := buckets["2024-01-07"]; !ok {
		t.Fatalf("expected bucket 2024-01-07")
	}
	if _, ok := buckets["2024-01-13"]; !ok {
		t.Fatalf("expected bucket 2024-01-13")
	}
	if got := buckets["2024-01-08"]; len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("bucket 2024-01-08: %+v", got)
	}
	if got := buckets["2024-01-10"]; len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("bucket 2024-01-10: %+v", got)
	}
	for _, k := range []string{"2024-01-07", "2024-01-09", "2024-01-11", "2024-01-12", "2024-01-13"} {
		if len(buckets[k]) != 0 {
			t.Fatalf("bucket %s should be empty: %+v", k, buckets[k])
		}
	}
}

func TestGroup_EachTaskInExactlyMatchingBucket(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DueDate: "2024-01-07"},
		{ID: 2, DueDate: "2024-01-13"},
		{ID: 3, DueDate: "2024-01-14"}, // next week: no bucket
		{ID: 4, DueDate: "2024-01-06"}, // previous week: no bucket
	}
	days := Dates(date("2024-01-08"), 0)
	buckets := Group(tasks, days)

	seen := map[int64]int{}
	for k, ts := range buckets {
		for _, task := range ts {
			if task.DueDate != k {
				t.Fatalf("task %d due %s filed under %s", task.ID, task.DueDate, k)
			}
			seen[task.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("task %d appears in %d buckets", id, n)
		}
	}
	if seen[3] != 0 || seen[4] != 0 {
		t.Fatalf("out-of-window tasks bucketed: %v", seen)
	}
}

func TestGroup_UnparseableDueDateDropped(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DueDate: ""},
		{ID: 2, DueDate: "not-a-date"},
		{ID: 3, DueDate: "2024-01-08T10:00:00"}, // time component is not the wire format
	}
	buckets := Group(tasks, Dates(date("2024-01-08"), 0))
	for k, ts := range buckets {
		if len(ts) != 0 {
			t.Fatalf("bucket %s should be empty: %+v", k, ts)
		}
	}
}

func TestContains(t *testing.T) {
	days := Dates(date("2024-01-08"), 0)
	if !Contains(days, "2024-01-07") || !Contains(days, "2024-01-13") {
		t.Fatalf("window edges should be contained")
	}
	if Contains(days, "2024-01-14") || Contains(days, "garbage") {
		t.Fatalf("out-of-window dates should not be contained")
	}
}
