package types

import "time"

// PlanWeekStart snaps a timestamp to its Monday 00:00 UTC week boundary.
// Weekly plans, log buckets and insight windows all key on this value.
func PlanWeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -daysSinceMonday)
}
