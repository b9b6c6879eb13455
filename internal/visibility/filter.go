// Package visibility decides which trackers are shown for a day.
package visibility

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/scheduler"
	"github.com/julianstephens/tracker/internal/utils"
)

type FilterMode string

const (
	ModeAll         FilterMode = "all"
	ModeToday       FilterMode = "today"
	ModeCompleted   FilterMode = "completed"
	ModeUncompleted FilterMode = "uncompleted"
)

var Modes = []FilterMode{ModeAll, ModeToday, ModeCompleted, ModeUncompleted}

func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAll, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid filter %q (expected all, today, completed or uncompleted)", s)
}

// ResolveDate returns the date a filter should run against: ModeToday always
// means today, every other mode keeps the chosen date.
func ResolveDate(mode FilterMode, date, today time.Time) time.Time {
	if mode == ModeToday {
		return today
	}
	return date
}

// Snapshot is everything Filter reads: categories with their trackers and
// the completion records.
type Snapshot struct {
	Categories []models.Category
	Records    []models.CompletionRecord
}

// Completed returns the set of tracker ids completed on date.
func (s Snapshot) Completed(date time.Time) map[string]bool {
	day := utils.FormatDay(utils.StartOfDay(date))
	done := make(map[string]bool)
	for _, r := range s.Records {
		if r.Day() == day {
			done[r.TrackerID] = true
		}
	}
	return done
}

// Filter returns the sections to display for date. Trackers not due on date
// are dropped, then those not matching search (case-insensitive substring),
// then those excluded by mode. Surviving pinned trackers are moved into a
// leading "Pinned" section; categories left empty are omitted.
func Filter(snapshot Snapshot, date time.Time, search string, mode FilterMode) []models.Category {
	done := snapshot.Completed(date)

	pinned := models.Category{
		ID:    constants.PinnedCategoryID,
		Title: constants.PinnedCategoryTitle,
	}
	var sections []models.Category

	for _, category := range snapshot.Categories {
		var rest []models.Tracker
		for _, t := range category.Trackers {
			if !scheduler.IsDue(t, date) {
				continue
			}
			if search != "" && !t.MatchesSearch(search) {
				continue
			}
			switch mode {
			case ModeCompleted:
				if !done[t.ID] {
					continue
				}
			case ModeUncompleted:
				if done[t.ID] {
					continue
				}
			}

			if t.IsPinned {
				pinned.Trackers = append(pinned.Trackers, t)
			} else {
				rest = append(rest, t)
			}
		}
		if len(rest) == 0 {
			continue
		}
		category.Trackers = rest
		sections = append(sections, category)
	}

	if len(pinned.Trackers) > 0 {
		sections = append([]models.Category{pinned}, sections...)
	}
	return sections
}

// Empty reports whether Filter produced nothing to show.
func Empty(sections []models.Category) bool {
	for _, s := range sections {
		if len(s.Trackers) > 0 {
			return false
		}
	}
	return true
}

// HasAnyForDate reports whether any tracker at all is due on date, ignoring
// search and mode.
func HasAnyForDate(snapshot Snapshot, date time.Time) bool {
	for _, c := range snapshot.Categories {
		for _, t := range c.Trackers {
			if scheduler.IsDue(t, date) {
				return true
			}
		}
	}
	return false
}

// Placeholder tells an empty screen which message to show.
type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	// PlaceholderNothingScheduled: no tracker is due on the date.
	PlaceholderNothingScheduled
	// PlaceholderNothingFound: trackers are due but the search or mode hid them all.
	PlaceholderNothingFound
)

func PlaceholderFor(snapshot Snapshot, date time.Time, sections []models.Category) Placeholder {
	if !Empty(sections) {
		return PlaceholderNone
	}
	if HasAnyForDate(snapshot, date) {
		return PlaceholderNothingFound
	}
	return PlaceholderNothingScheduled
}

func (p Placeholder) String() string {
	switch p {
	case PlaceholderNothingScheduled:
		return "What shall we track?"
	case PlaceholderNothingFound:
		return "Nothing found"
	default:
		return ""
	}
}
