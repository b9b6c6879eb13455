package repository

import (
	"fmt"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type TrackerRepository struct {
	store      storage.Provider
	opts       options
	categories *CategoryRepository
}

func NewTrackerRepository(store storage.Provider, opts ...Option) *TrackerRepository {
	o := buildOptions(opts)
	return &TrackerRepository{
		store:      store,
		opts:       o,
		categories: &CategoryRepository{store: store, opts: o},
	}
}

// FetchAll returns every tracker in creation order. Trackers stored without a
// readable schedule are rewritten to an explicit empty one first.
func (r *TrackerRepository) FetchAll() ([]models.Tracker, error) {
	n, err := r.store.NormalizeSchedules()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logger.Warn("Normalized trackers with missing schedules", "count", n)
	}
	return r.store.ListTrackers()
}

func (r *TrackerRepository) Get(id string) (models.Tracker, error) {
	return r.store.GetTracker(id)
}

// Add stores tracker under categoryID with a fresh id and returns that id.
// Name and emoji are the caller's to check; the schedule and color must be
// encodable.
func (r *TrackerRepository) Add(tracker models.Tracker, categoryID string) (string, error) {
	if err := checkEncodable(tracker); err != nil {
		return "", err
	}

	tracker.ID = r.opts.newID()
	tracker.CategoryID = categoryID
	tracker.Schedule = tracker.Schedule.Normalize()
	tracker.CreatedAt = r.opts.now()
	if err := r.store.CreateTracker(tracker); err != nil {
		return "", err
	}

	logger.Debug("Tracker added", "id", tracker.ID, "name", tracker.Name, "category", categoryID)
	return tracker.ID, nil
}

// AddToCategory is Add with the category given by title, created if missing.
func (r *TrackerRepository) AddToCategory(tracker models.Tracker, title string) (string, error) {
	categoryID, err := r.categories.FindOrCreate(title)
	if err != nil {
		return "", err
	}
	return r.Add(tracker, categoryID)
}

// Update replaces the stored tracker with the same id. The creation time is kept.
func (r *TrackerRepository) Update(tracker models.Tracker) error {
	if err := checkEncodable(tracker); err != nil {
		return err
	}

	existing, err := r.store.GetTracker(tracker.ID)
	if err != nil {
		return err
	}
	tracker.CreatedAt = existing.CreatedAt
	tracker.Schedule = tracker.Schedule.Normalize()
	if tracker.CategoryID == "" {
		tracker.CategoryID = existing.CategoryID
	}
	if err := r.store.UpdateTracker(tracker); err != nil {
		return err
	}

	logger.Debug("Tracker updated", "id", tracker.ID)
	return nil
}

// Delete removes the tracker and all of its completion records.
func (r *TrackerRepository) Delete(id string) error {
	if err := r.store.DeleteTracker(id); err != nil {
		return err
	}
	logger.Debug("Tracker deleted", "id", id)
	return nil
}

func (r *TrackerRepository) SetPinned(id string, pinned bool) error {
	tracker, err := r.store.GetTracker(id)
	if err != nil {
		return err
	}
	if tracker.IsPinned == pinned {
		return nil
	}
	return r.Update(tracker.WithPinned(pinned))
}

// Move reassigns the tracker to another existing category.
func (r *TrackerRepository) Move(id, categoryID string) error {
	tracker, err := r.store.GetTracker(id)
	if err != nil {
		return err
	}
	if tracker.CategoryID == categoryID {
		return nil
	}
	return r.Update(tracker.WithCategory(categoryID))
}

func (r *TrackerRepository) Subscribe(observer storage.Observer) func() {
	return r.store.Subscribe(storage.KindTracker, observer)
}

func checkEncodable(tracker models.Tracker) error {
	if err := tracker.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidTracker, err)
	}
	if !tracker.Color.Valid() {
		return fmt.Errorf("%w: color %q is not a valid color", apperrors.ErrInvalidTracker, tracker.Color)
	}
	return nil
}
