package sqlite

import (
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/utils"
)

func dayKey(t time.Time) string {
	return utils.FormatDay(utils.StartOfDay(t))
}

// UpsertRecord inserts the record unless one already exists for the same
// tracker and day, in a single statement so concurrent toggles cannot double insert.
func (s *Store) UpsertRecord(record models.CompletionRecord) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, apperrors.Persist("add record", err)
	}
	defer tx.Rollback()

	var found int
	err = tx.QueryRow(`SELECT 1 FROM trackers WHERE id = ?`, record.TrackerID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, apperrors.ErrTrackerNotFound
	}
	if err != nil {
		return false, apperrors.Load("find tracker", err)
	}

	result, err := tx.Exec(`
		INSERT INTO records (tracker_id, day, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(tracker_id, day) DO NOTHING`,
		record.TrackerID, dayKey(record.Date), formatTime(time.Now()))
	if err != nil {
		return false, apperrors.Persist("add record", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Persist("add record", err)
	}

	if err := tx.Commit(); err != nil {
		return false, apperrors.Persist("add record", err)
	}

	if rows > 0 {
		s.Notify(storage.KindRecord)
	}
	return rows > 0, nil
}

func (s *Store) GetRecord(trackerID string, day time.Time) (models.CompletionRecord, error) {
	var id, d string
	err := s.db.QueryRow(`
		SELECT tracker_id, day FROM records WHERE tracker_id = ? AND day = ?`,
		trackerID, dayKey(day)).Scan(&id, &d)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CompletionRecord{}, apperrors.ErrRecordNotFound
		}
		return models.CompletionRecord{}, apperrors.Load("get record", err)
	}

	record, err := storage.DecodeRecord(id, d)
	if err != nil {
		return models.CompletionRecord{}, apperrors.Load("get record", err)
	}
	return record, nil
}

func (s *Store) ListRecords() ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`SELECT tracker_id, day FROM records ORDER BY day DESC, tracker_id`)
	if err != nil {
		return nil, apperrors.Load("list records", err)
	}
	defer rows.Close()

	records := []models.CompletionRecord{}
	for rows.Next() {
		var id, d string
		if err := rows.Scan(&id, &d); err != nil {
			return nil, apperrors.Load("list records", err)
		}
		record, err := storage.DecodeRecord(id, d)
		if err != nil {
			s.Skip(storage.KindRecord, id+"@"+d, err)
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Load("list records", err)
	}

	return records, nil
}

func (s *Store) CountRecords(trackerID string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM records WHERE tracker_id = ?`, trackerID).Scan(&n); err != nil {
		return 0, apperrors.Load("count records", err)
	}
	return n, nil
}

func (s *Store) DeleteRecord(trackerID string, day time.Time) error {
	result, err := s.db.Exec(`DELETE FROM records WHERE tracker_id = ? AND day = ?`, trackerID, dayKey(day))
	if err != nil {
		return apperrors.Persist("delete record", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persist("delete record", err)
	}
	if rows == 0 {
		return apperrors.ErrRecordNotFound
	}

	s.Notify(storage.KindRecord)
	return nil
}
