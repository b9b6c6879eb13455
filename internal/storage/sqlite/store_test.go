package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func addCategory(t *testing.T, store *Store, title string) models.Category {
	t.Helper()
	c := models.Category{ID: uuid.NewString(), Title: title, CreatedAt: time.Now()}
	if err := store.CreateCategory(c); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return c
}

func addTracker(t *testing.T, store *Store, categoryID, name string, schedule models.Schedule) models.Tracker {
	t.Helper()
	tr := models.Tracker{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Name:       name,
		Color:      models.MustParseColor("#33cc66"),
		Emoji:      "🏃",
		Schedule:   schedule,
		CreatedAt:  time.Now(),
	}
	if err := store.CreateTracker(tr); err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	return tr
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLoadRequiresInit(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading an uninitialized store")
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := New(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	store.Close()

	reopened := New(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	current, latest, err := reopened.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus() error = %v", err)
	}
	if current != latest || latest == 0 {
		t.Errorf("SchemaStatus() = %d, %d; want equal and non-zero", current, latest)
	}
}

func TestCategoryCRUD(t *testing.T) {
	store := setupTestStore(t)

	work := addCategory(t, store, "Work")
	home := addCategory(t, store, "Home")

	categories, err := store.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 2 || categories[0].ID != work.ID || categories[1].ID != home.ID {
		t.Fatalf("ListCategories() = %+v, want Work then Home", categories)
	}

	work.Title = "Office"
	if err := store.UpdateCategory(work); err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}
	got, err := store.GetCategory(work.ID)
	if err != nil {
		t.Fatalf("GetCategory() error = %v", err)
	}
	if got.Title != "Office" {
		t.Errorf("Title = %q, want Office", got.Title)
	}

	if err := store.DeleteCategory(home.ID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if _, err := store.GetCategory(home.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetCategory() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteCategory(home.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("DeleteCategory() twice error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCategoryWithTrackers(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	addTracker(t, store, c.ID, "Run", nil)

	err := store.DeleteCategory(c.ID)
	if !errors.Is(err, apperrors.ErrHasTrackers) || !errors.Is(err, apperrors.ErrConstraint) {
		t.Fatalf("DeleteCategory() error = %v, want ErrHasTrackers", err)
	}
	if _, err := store.GetCategory(c.ID); err != nil {
		t.Errorf("category should survive a refused delete: %v", err)
	}
}

func TestTrackerRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	schedule := models.Schedule{models.Tuesday, models.Thursday}
	tr := addTracker(t, store, c.ID, "Gym", schedule)

	got, err := store.GetTracker(tr.ID)
	if err != nil {
		t.Fatalf("GetTracker() error = %v", err)
	}
	if len(got.Schedule) != 2 || !got.Schedule.Contains(models.Tuesday) || !got.Schedule.Contains(models.Thursday) {
		t.Errorf("Schedule = %v, want [Tue Thu]", got.Schedule)
	}
	if got.Color != tr.Color || got.Emoji != tr.Emoji || got.Name != tr.Name {
		t.Errorf("GetTracker() = %+v, want %+v", got, tr)
	}

	category, err := store.GetCategory(c.ID)
	if err != nil {
		t.Fatalf("GetCategory() error = %v", err)
	}
	if len(category.Trackers) != 1 || category.Trackers[0].ID != tr.ID {
		t.Errorf("category trackers = %+v, want [%s]", category.Trackers, tr.ID)
	}
}

func TestCreateTrackerUnknownCategory(t *testing.T) {
	store := setupTestStore(t)
	tr := models.Tracker{
		ID:         uuid.NewString(),
		CategoryID: "nope",
		Name:       "Read",
		Color:      models.MustParseColor("#000000"),
		Emoji:      "📚",
		CreatedAt:  time.Now(),
	}
	if err := store.CreateTracker(tr); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("CreateTracker() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateTrackerPinAndMove(t *testing.T) {
	store := setupTestStore(t)
	a := addCategory(t, store, "A")
	b := addCategory(t, store, "B")
	tr := addTracker(t, store, a.ID, "Stretch", nil)

	if err := store.UpdateTracker(tr.WithPinned(true).WithCategory(b.ID)); err != nil {
		t.Fatalf("UpdateTracker() error = %v", err)
	}
	got, err := store.GetTracker(tr.ID)
	if err != nil {
		t.Fatalf("GetTracker() error = %v", err)
	}
	if !got.IsPinned || got.CategoryID != b.ID {
		t.Errorf("GetTracker() = %+v, want pinned in B", got)
	}

	missing := tr
	missing.ID = uuid.NewString()
	if err := store.UpdateTracker(missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateTracker() unknown id error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTrackerRemovesRecords(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	tr := addTracker(t, store, c.ID, "Run", nil)
	other := addTracker(t, store, c.ID, "Swim", nil)

	for _, id := range []string{tr.ID, other.ID} {
		if _, err := store.UpsertRecord(models.NewCompletionRecord(id, day("2024-03-01"))); err != nil {
			t.Fatalf("UpsertRecord() error = %v", err)
		}
	}

	if err := store.DeleteTracker(tr.ID); err != nil {
		t.Fatalf("DeleteTracker() error = %v", err)
	}

	records, err := store.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}
	if len(records) != 1 || records[0].TrackerID != other.ID {
		t.Errorf("ListRecords() = %+v, want only %s", records, other.ID)
	}
	if err := store.DeleteTracker(tr.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("DeleteTracker() twice error = %v, want ErrNotFound", err)
	}
}

func TestUpsertRecordIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	tr := addTracker(t, store, c.ID, "Run", nil)

	morning := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)

	created, err := store.UpsertRecord(models.NewCompletionRecord(tr.ID, morning))
	if err != nil || !created {
		t.Fatalf("first UpsertRecord() = %v, %v; want true, nil", created, err)
	}
	created, err = store.UpsertRecord(models.NewCompletionRecord(tr.ID, evening))
	if err != nil || created {
		t.Fatalf("second UpsertRecord() = %v, %v; want false, nil", created, err)
	}

	n, err := store.CountRecords(tr.ID)
	if err != nil {
		t.Fatalf("CountRecords() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountRecords() = %d, want 1", n)
	}
}

func TestUpsertRecordUnknownTracker(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.UpsertRecord(models.NewCompletionRecord("ghost", day("2024-03-01")))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpsertRecord() error = %v, want ErrNotFound", err)
	}
}

func TestRecordGetAndDelete(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	tr := addTracker(t, store, c.ID, "Run", nil)
	d := day("2024-03-01")

	if _, err := store.GetRecord(tr.ID, d); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetRecord() before add error = %v, want ErrNotFound", err)
	}
	if _, err := store.UpsertRecord(models.NewCompletionRecord(tr.ID, d)); err != nil {
		t.Fatalf("UpsertRecord() error = %v", err)
	}
	got, err := store.GetRecord(tr.ID, d.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if got.Day() != "2024-03-01" {
		t.Errorf("Day() = %s, want 2024-03-01", got.Day())
	}

	if err := store.DeleteRecord(tr.ID, d); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if err := store.DeleteRecord(tr.ID, d); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("DeleteRecord() twice error = %v, want ErrNotFound", err)
	}
}

func TestNormalizeSchedules(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	tr := addTracker(t, store, c.ID, "Run", models.Schedule{models.Monday})

	if _, err := store.GetDB().Exec(`UPDATE trackers SET schedule = NULL WHERE id = ?`, tr.ID); err != nil {
		t.Fatalf("failed to null schedule: %v", err)
	}

	n, err := store.NormalizeSchedules()
	if err != nil {
		t.Fatalf("NormalizeSchedules() error = %v", err)
	}
	if n != 1 {
		t.Errorf("NormalizeSchedules() = %d, want 1", n)
	}

	var raw string
	if err := store.GetDB().QueryRow(`SELECT schedule FROM trackers WHERE id = ?`, tr.ID).Scan(&raw); err != nil {
		t.Fatalf("failed to read schedule: %v", err)
	}
	if raw != "[]" {
		t.Errorf("schedule = %q, want []", raw)
	}

	n, err = store.NormalizeSchedules()
	if err != nil || n != 0 {
		t.Errorf("second NormalizeSchedules() = %d, %v; want 0, nil", n, err)
	}
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	store := setupTestStore(t)
	c := addCategory(t, store, "Health")
	good := addTracker(t, store, c.ID, "Run", nil)
	bad := addTracker(t, store, c.ID, "Broken", nil)

	if _, err := store.GetDB().Exec(`UPDATE trackers SET schedule = '[9]' WHERE id = ?`, bad.ID); err != nil {
		t.Fatalf("failed to corrupt schedule: %v", err)
	}

	trackers, err := store.ListTrackers()
	if err != nil {
		t.Fatalf("ListTrackers() error = %v", err)
	}
	if len(trackers) != 1 || trackers[0].ID != good.ID {
		t.Errorf("ListTrackers() = %+v, want only %s", trackers, good.ID)
	}
	if store.Anomalies() != 1 {
		t.Errorf("Anomalies() = %d, want 1", store.Anomalies())
	}
}

func TestObserversSeeCommittedChanges(t *testing.T) {
	store := setupTestStore(t)

	var categoryEvents, recordEvents int
	unsubscribe := store.Subscribe(storage.KindCategory, func() { categoryEvents++ })
	store.Subscribe(storage.KindRecord, func() { recordEvents++ })

	c := addCategory(t, store, "Health")
	tr := addTracker(t, store, c.ID, "Run", nil)
	if categoryEvents != 2 {
		t.Errorf("category events = %d, want 2", categoryEvents)
	}

	store.UpsertRecord(models.NewCompletionRecord(tr.ID, day("2024-03-01")))
	store.UpsertRecord(models.NewCompletionRecord(tr.ID, day("2024-03-01")))
	if recordEvents != 1 {
		t.Errorf("record events = %d, want 1 (duplicate upsert is not a change)", recordEvents)
	}

	unsubscribe()
	addCategory(t, store, "Home")
	if categoryEvents != 2 {
		t.Errorf("category events after unsubscribe = %d, want 2", categoryEvents)
	}

	if err := store.DeleteCategory(c.ID); err == nil {
		t.Fatal("expected constraint error")
	}
	if categoryEvents != 2 {
		t.Errorf("failed delete notified observers")
	}
}
