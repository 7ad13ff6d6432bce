package spaced_repetition

import (
	"math"
	"time"
)

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayStart returns the start of logical day d of a plan started at planStart.
// Day 1 is the day of planStart.
func DayStart(planStart time.Time, d int) time.Time {
	return StartOfDay(planStart).AddDate(0, 0, d-1)
}

// DayIndex returns the logical day of the plan that contains now.
// Times before the plan start map to day 1.
func DayIndex(planStart, now time.Time) int {
	start := StartOfDay(planStart)
	today := StartOfDay(now.In(planStart.Location()))
	if today.Before(start) {
		return 1
	}
	// Round to absorb DST shifts of one hour
	return int(math.Round(today.Sub(start).Hours()/24)) + 1
}
