package models

import (
	"time"

	"github.com/julianstephens/tracker/internal/utils"
)

// CompletionRecord marks a tracker as done on one calendar day.
// At most one record exists per (TrackerID, day).
type CompletionRecord struct {
	TrackerID string    `json:"tracker_id"`
	Date      time.Time `json:"date"`
}

// NewCompletionRecord builds a record with the date normalized to its day.
func NewCompletionRecord(trackerID string, date time.Time) CompletionRecord {
	return CompletionRecord{TrackerID: trackerID, Date: utils.StartOfDay(date)}
}

// Day returns the YYYY-MM-DD key of the record.
func (r CompletionRecord) Day() string {
	return utils.FormatDay(r.Date)
}
