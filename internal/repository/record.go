package repository

import (
	"errors"
	"time"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/utils"
)

// RecordRepository stores completion records. Every date is reduced to its
// calendar day in the configured zone before it reaches the store.
type RecordRepository struct {
	store storage.Provider
	opts  options
}

func NewRecordRepository(store storage.Provider, opts ...Option) *RecordRepository {
	return &RecordRepository{store: store, opts: buildOptions(opts)}
}

func (r *RecordRepository) FetchAll() ([]models.CompletionRecord, error) {
	return r.store.ListRecords()
}

// Today is midnight of the current calendar day in the configured zone, so it
// can be passed back to Add, Exists or Toggle unchanged.
func (r *RecordRepository) Today() time.Time {
	return utils.DayIn(r.opts.today(), r.opts.location)
}

// Add marks the tracker done on date's calendar day. Adding an existing record
// is a no-op. Days after today are rejected.
func (r *RecordRepository) Add(trackerID string, date time.Time) error {
	day := r.opts.day(date)
	if day.After(r.opts.today()) {
		return apperrors.ErrFutureDate
	}

	created, err := r.store.UpsertRecord(models.NewCompletionRecord(trackerID, day))
	if err != nil {
		return err
	}
	if created {
		logger.Debug("Record added", "tracker", trackerID, "day", day.Format("2006-01-02"))
	}
	return nil
}

func (r *RecordRepository) Delete(trackerID string, date time.Time) error {
	day := r.opts.day(date)
	if err := r.store.DeleteRecord(trackerID, day); err != nil {
		return err
	}
	logger.Debug("Record deleted", "tracker", trackerID, "day", day.Format("2006-01-02"))
	return nil
}

func (r *RecordRepository) Exists(trackerID string, date time.Time) (bool, error) {
	_, err := r.store.GetRecord(trackerID, r.opts.day(date))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Toggle flips the completion state for the day and reports the new state.
func (r *RecordRepository) Toggle(trackerID string, date time.Time) (bool, error) {
	day := r.opts.day(date)
	if day.After(r.opts.today()) {
		return false, apperrors.ErrFutureDate
	}

	created, err := r.store.UpsertRecord(models.NewCompletionRecord(trackerID, day))
	if err != nil {
		return false, err
	}
	if created {
		return true, nil
	}
	if err := r.store.DeleteRecord(trackerID, day); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// CountForTracker returns on how many days the tracker was completed.
func (r *RecordRepository) CountForTracker(trackerID string) (int, error) {
	return r.store.CountRecords(trackerID)
}

func (r *RecordRepository) Subscribe(observer storage.Observer) func() {
	return r.store.Subscribe(storage.KindRecord, observer)
}
