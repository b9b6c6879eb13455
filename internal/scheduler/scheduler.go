package scheduler

import (
	"time"

	"github.com/julianstephens/tracker/internal/models"
)

// IsDue reports whether tracker is scheduled on the calendar day of date.
// An empty schedule means the tracker is due every day.
func IsDue(tracker models.Tracker, date time.Time) bool {
	if tracker.Schedule.EveryDay() {
		return true
	}
	return tracker.Schedule.Contains(models.WeekdayOf(date))
}

// DueTrackers returns the trackers due on date, preserving their order.
func DueTrackers(trackers []models.Tracker, date time.Time) []models.Tracker {
	due := make([]models.Tracker, 0, len(trackers))
	for _, t := range trackers {
		if IsDue(t, date) {
			due = append(due, t)
		}
	}
	return due
}

// DueIDs returns the set of ids of trackers due on date.
func DueIDs(trackers []models.Tracker, date time.Time) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range trackers {
		if IsDue(t, date) {
			ids[t.ID] = true
		}
	}
	return ids
}
