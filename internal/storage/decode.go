package storage

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

// TrackerRow is a tracker as it comes out of the database, before validation.
type TrackerRow struct {
	ID         string
	CategoryID string
	Name       string
	Color      string
	Emoji      string
	Schedule   sql.NullString
	IsPinned   bool
	CreatedAt  time.Time
}

// DecodeTracker turns a row into a Tracker. A NULL schedule decodes as "every
// day"; NormalizeSchedules makes that explicit in storage.
func DecodeTracker(row TrackerRow) (models.Tracker, error) {
	if row.ID == "" {
		return models.Tracker{}, fmt.Errorf("tracker row has no id")
	}
	color, err := models.ParseColor(row.Color)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", row.ID, err)
	}
	schedule := models.Schedule{}
	if row.Schedule.Valid {
		schedule, err = models.DecodeSchedule(row.Schedule.String)
		if err != nil {
			return models.Tracker{}, fmt.Errorf("tracker %s: %w", row.ID, err)
		}
	}
	return models.Tracker{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Color:      color,
		Emoji:      row.Emoji,
		Schedule:   schedule,
		IsPinned:   row.IsPinned,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// DecodeRecord turns a (tracker id, YYYY-MM-DD) pair into a CompletionRecord.
func DecodeRecord(trackerID, day string) (models.CompletionRecord, error) {
	if trackerID == "" {
		return models.CompletionRecord{}, fmt.Errorf("record on %s has no tracker", day)
	}
	date, err := utils.ParseDay(day)
	if err != nil {
		return models.CompletionRecord{}, fmt.Errorf("record for tracker %s: %w", trackerID, err)
	}
	return models.NewCompletionRecord(trackerID, date), nil
}

// Diagnostics counts rows that could not be decoded. Stores embed it so a
// malformed row is skipped without being lost silently.
type Diagnostics struct {
	anomalies atomic.Int64
}

// Skip logs a row that failed to decode and counts it.
func (d *Diagnostics) Skip(kind Kind, id string, err error) {
	d.anomalies.Add(1)
	logger.Warn("Skipping malformed row", "kind", kind, "id", id, "error", err)
}

// Anomalies returns how many rows have been skipped since the store was opened.
func (d *Diagnostics) Anomalies() int {
	return int(d.anomalies.Load())
}

// GroupTrackers attaches trackers to their categories, keeping both orders.
// Trackers whose category is not in the list are left out.
func GroupTrackers(categories []models.Category, trackers []models.Tracker) []models.Category {
	index := make(map[string]int, len(categories))
	for i := range categories {
		categories[i].Trackers = []models.Tracker{}
		index[categories[i].ID] = i
	}
	for _, t := range trackers {
		if i, ok := index[t.CategoryID]; ok {
			categories[i].Trackers = append(categories[i].Trackers, t)
		}
	}
	return categories
}
