package sqlite

import (
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

const trackerColumns = `id, category_id, name, color, emoji, schedule, is_pinned, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrackerRow(sc scanner) (storage.TrackerRow, error) {
	var row storage.TrackerRow
	var createdAt string
	if err := sc.Scan(&row.ID, &row.CategoryID, &row.Name, &row.Color, &row.Emoji,
		&row.Schedule, &row.IsPinned, &createdAt); err != nil {
		return storage.TrackerRow{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return row, err
	}
	row.CreatedAt = t
	return row, nil
}

func (s *Store) CreateTracker(tracker models.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Persist("create tracker", err)
	}
	defer tx.Rollback()

	if err := categoryExists(tx, tracker.CategoryID); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO trackers (id, category_id, name, color, emoji, schedule, is_pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tracker.ID, tracker.CategoryID, tracker.Name, string(tracker.Color), tracker.Emoji,
		models.EncodeSchedule(tracker.Schedule), tracker.IsPinned, formatTime(tracker.CreatedAt))
	if err != nil {
		return apperrors.Persist("create tracker", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Persist("create tracker", err)
	}

	s.Notify(storage.KindTracker, storage.KindCategory)
	return nil
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row, err := scanTrackerRow(s.db.QueryRow(`SELECT `+trackerColumns+` FROM trackers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tracker{}, apperrors.ErrTrackerNotFound
		}
		return models.Tracker{}, apperrors.Load("get tracker", err)
	}

	tracker, err := storage.DecodeTracker(row)
	if err != nil {
		return models.Tracker{}, apperrors.Load("get tracker", err)
	}
	return tracker, nil
}

func (s *Store) ListTrackers() ([]models.Tracker, error) {
	return s.queryTrackers("")
}

// queryTrackers lists trackers in creation order, skipping rows that fail to decode.
func (s *Store) queryTrackers(where string, args ...any) ([]models.Tracker, error) {
	rows, err := s.db.Query(`SELECT `+trackerColumns+` FROM trackers `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, apperrors.Load("list trackers", err)
	}
	defer rows.Close()

	trackers := []models.Tracker{}
	for rows.Next() {
		row, err := scanTrackerRow(rows)
		if err != nil {
			s.Skip(storage.KindTracker, row.ID, err)
			continue
		}
		tracker, err := storage.DecodeTracker(row)
		if err != nil {
			s.Skip(storage.KindTracker, row.ID, err)
			continue
		}
		trackers = append(trackers, tracker)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Load("list trackers", err)
	}

	return trackers, nil
}

func (s *Store) UpdateTracker(tracker models.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Persist("update tracker", err)
	}
	defer tx.Rollback()

	if err := categoryExists(tx, tracker.CategoryID); err != nil {
		return err
	}

	result, err := tx.Exec(`
		UPDATE trackers
		SET category_id = ?, name = ?, color = ?, emoji = ?, schedule = ?, is_pinned = ?
		WHERE id = ?`,
		tracker.CategoryID, tracker.Name, string(tracker.Color), tracker.Emoji,
		models.EncodeSchedule(tracker.Schedule), tracker.IsPinned, tracker.ID)
	if err != nil {
		return apperrors.Persist("update tracker", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persist("update tracker", err)
	}
	if rows == 0 {
		return apperrors.ErrTrackerNotFound
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Persist("update tracker", err)
	}

	s.Notify(storage.KindTracker, storage.KindCategory)
	return nil
}

func (s *Store) DeleteTracker(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Persist("delete tracker", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records WHERE tracker_id = ?`, id); err != nil {
		return apperrors.Persist("delete tracker records", err)
	}

	result, err := tx.Exec(`DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		return apperrors.Persist("delete tracker", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persist("delete tracker", err)
	}
	if rows == 0 {
		return apperrors.ErrTrackerNotFound
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Persist("delete tracker", err)
	}

	s.Notify(storage.KindTracker, storage.KindCategory, storage.KindRecord)
	return nil
}

func (s *Store) NormalizeSchedules() (int, error) {
	result, err := s.db.Exec(`UPDATE trackers SET schedule = ? WHERE schedule IS NULL`,
		models.EncodeSchedule(nil))
	if err != nil {
		return 0, apperrors.Persist("normalize schedules", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Persist("normalize schedules", err)
	}

	if rows > 0 {
		s.Notify(storage.KindTracker, storage.KindCategory)
	}
	return int(rows), nil
}

func categoryExists(tx *sql.Tx, id string) error {
	var found int
	err := tx.QueryRow(`SELECT 1 FROM categories WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return apperrors.Load("find category", err)
	}
	return nil
}
