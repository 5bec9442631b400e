// Package week computes the visible calendar window and buckets tasks by due
// date. Everything here is pure so the board can re-derive its view on every
// fetch without bookkeeping.
package week

import (
	"time"

	"tyler-cli/internal/model"
)

// DateLayout is the calendar-date wire format used throughout the API.
const DateLayout = "2006-01-02"

// Start returns the Sunday on or before t, at midnight in t's location.
func Start(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// Dates returns the 7 consecutive days of the week `offset` whole weeks away
// from the week containing today, in ascending order. offset may be negative.
func Dates(today time.Time, offset int) []time.Time {
	start := Start(today).AddDate(0, 0, 7*offset)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Key formats a day as its bucket key.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// Group partitions tasks into per-day buckets keyed by Key(day). A task lands
// in the bucket whose key equals its due date with calendar-day equality;
// tasks due outside the window appear in no bucket. Tasks with a missing or
// unparseable due date are dropped rather than crashing the partition.
//
// Every day in days gets an entry, possibly empty, so callers can range over
// the window without nil checks.
func Group(tasks []model.Task, days []time.Time) map[string][]model.Task {
	buckets := make(map[string][]model.Task, len(days))
	keys := make(map[string]bool, len(days))
	for _, d := range days {
		k := Key(d)
		buckets[k] = nil
		keys[k] = true
	}
	for _, t := range tasks {
		due, err := time.Parse(DateLayout, t.DueDate)
		if err != nil {
			continue
		}
		k := Key(due)
		if keys[k] {
			buckets[k] = append(buckets[k], t)
		}
	}
	return buckets
}

// Contains reports whether date (YYYY-MM-DD) falls inside the window.
func Contains(days []time.Time, date string) bool {
	for _, d := range days {
		if Key(d) == date {
			return true
		}
	}
	return false
}
