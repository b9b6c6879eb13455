package storage

import (
	"time"

	"github.com/julianstephens/tracker/internal/models"
)

// Provider is the persistent object store behind the repositories. Every
// mutation either commits completely or leaves the store unchanged, and
// observers subscribed to the affected kinds run after the commit.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Categories. ListCategories fills in each category's trackers in creation order.
	CreateCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	ListCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error

	// Trackers. DeleteTracker also removes the tracker's completion records.
	CreateTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	ListTrackers() ([]models.Tracker, error)
	UpdateTracker(models.Tracker) error
	DeleteTracker(id string) error
	// NormalizeSchedules rewrites unreadable (NULL) schedules to an explicit empty
	// schedule and returns how many rows it touched.
	NormalizeSchedules() (int, error)

	// Completion records, keyed on (tracker id, calendar day).
	UpsertRecord(models.CompletionRecord) (created bool, err error)
	GetRecord(trackerID string, day time.Time) (models.CompletionRecord, error)
	ListRecords() ([]models.CompletionRecord, error)
	CountRecords(trackerID string) (int, error)
	DeleteRecord(trackerID string, day time.Time) error

	// Change notification
	Subscribe(kind Kind, observer Observer) (unsubscribe func())

	// Diagnostics
	Anomalies() int
	SchemaStatus() (current, latest int, err error)

	// Utils
	GetConfigPath() string
}
