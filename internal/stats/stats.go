// Package stats aggregates completion records into the numbers shown on the
// statistics screen.
package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/scheduler"
	"github.com/julianstephens/tracker/internal/utils"
)

type Summary struct {
	BestStreak       int `json:"best_streak"`
	PerfectDays      int `json:"perfect_days"`
	TotalCompletions int `json:"total_completions"`
	AveragePerDay    int `json:"average_per_day"`
}

// IsEmpty reports whether there is nothing to analyze yet.
func (s Summary) IsEmpty() bool {
	return s == Summary{}
}

// Compute derives every metric from one snapshot of trackers and records.
func Compute(trackers []models.Tracker, records []models.CompletionRecord) Summary {
	byDay := groupByDay(records)
	days := sortedDays(byDay)
	return Summary{
		BestStreak:       bestStreak(days),
		PerfectDays:      perfectDays(trackers, byDay),
		TotalCompletions: len(records),
		AveragePerDay:    averagePerDay(len(records), len(byDay)),
	}
}

// groupByDay maps each calendar day to the set of trackers completed on it.
func groupByDay(records []models.CompletionRecord) map[time.Time]map[string]bool {
	byDay := make(map[time.Time]map[string]bool)
	for _, r := range records {
		day := utils.StartOfDay(r.Date)
		if byDay[day] == nil {
			byDay[day] = make(map[string]bool)
		}
		byDay[day][r.TrackerID] = true
	}
	return byDay
}

func sortedDays[V any](byDay map[time.Time]V) []time.Time {
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// BestStreak is the longest run of consecutive days with at least one completion.
func BestStreak(records []models.CompletionRecord) int {
	return bestStreak(sortedDays(groupByDay(records)))
}

func bestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if utils.NextDay(days[i-1]).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// PerfectDays counts days on which the completed trackers are exactly the
// trackers due that day, and at least one was due.
func PerfectDays(trackers []models.Tracker, records []models.CompletionRecord) int {
	return perfectDays(trackers, groupByDay(records))
}

func perfectDays(trackers []models.Tracker, byDay map[time.Time]map[string]bool) int {
	count := 0
	for day, done := range byDay {
		due := scheduler.DueIDs(trackers, day)
		if len(due) == 0 || len(due) != len(done) {
			continue
		}
		perfect := true
		for id := range due {
			if !done[id] {
				perfect = false
				break
			}
		}
		if perfect {
			count++
		}
	}
	return count
}

// AveragePerDay is total completions over active days, rounded half up.
func AveragePerDay(records []models.CompletionRecord) int {
	return averagePerDay(len(records), len(groupByDay(records)))
}

func averagePerDay(total, activeDays int) int {
	if activeDays == 0 {
		return 0
	}
	return (2*total + activeDays) / (2 * activeDays)
}
