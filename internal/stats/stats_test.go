package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/tracker/internal/models"
)

func jan(day int) time.Time {
	return time.Date(2024, time.January, day, 10, 0, 0, 0, time.UTC)
}

func rec(trackerID string, date time.Time) models.CompletionRecord {
	return models.NewCompletionRecord(trackerID, date)
}

func TestBestStreak(t *testing.T) {
	tests := []struct {
		name    string
		records []models.CompletionRecord
		want    int
	}{
		{"no records", nil, 0},
		{"single day", []models.CompletionRecord{rec("a", jan(1))}, 1},
		{
			name:    "gap breaks the run",
			records: []models.CompletionRecord{rec("a", jan(1)), rec("a", jan(2)), rec("a", jan(3)), rec("a", jan(5))},
			want:    3,
		},
		{
			name:    "same day counts once",
			records: []models.CompletionRecord{rec("a", jan(1)), rec("b", jan(1)), rec("a", jan(2))},
			want:    2,
		},
		{
			name:    "unsorted input",
			records: []models.CompletionRecord{rec("a", jan(9)), rec("a", jan(7)), rec("a", jan(1)), rec("a", jan(8))},
			want:    3,
		},
		{
			name: "across a month boundary",
			records: []models.CompletionRecord{
				rec("a", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
				rec("a", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestStreak(tt.records); got != tt.want {
				t.Errorf("BestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPerfectDays(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday, tuesday := jan(1), jan(2)
	nextMonday := jan(8)
	trackers := []models.Tracker{
		{ID: "a"},
		{ID: "b", Schedule: models.Schedule{models.Monday}},
	}

	tests := []struct {
		name    string
		records []models.CompletionRecord
		want    int
	}{
		{"no records", nil, 0},
		{"monday with both done", []models.CompletionRecord{rec("a", monday), rec("b", monday)}, 1},
		{"tuesday with only the due tracker", []models.CompletionRecord{rec("a", tuesday)}, 1},
		{"monday with one missing", []models.CompletionRecord{rec("a", nextMonday)}, 0},
		{
			name:    "mixed days",
			records: []models.CompletionRecord{rec("a", monday), rec("b", monday), rec("a", tuesday), rec("a", nextMonday)},
			want:    2,
		},
		{"completion of a tracker not due", []models.CompletionRecord{rec("a", tuesday), rec("b", tuesday)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PerfectDays(trackers, tt.records); got != tt.want {
				t.Errorf("PerfectDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPerfectDaysNeedsSomethingDue(t *testing.T) {
	trackers := []models.Tracker{{ID: "fri", Schedule: models.Schedule{models.Friday}}}
	if got := PerfectDays(trackers, []models.CompletionRecord{rec("ghost", jan(1))}); got != 0 {
		t.Errorf("PerfectDays() = %d, want 0", got)
	}
	if got := PerfectDays(nil, []models.CompletionRecord{rec("a", jan(1))}); got != 0 {
		t.Errorf("PerfectDays() with no trackers = %d, want 0", got)
	}
}

func TestAveragePerDay(t *testing.T) {
	tests := []struct {
		name    string
		records []models.CompletionRecord
		want    int
	}{
		{"no records", nil, 0},
		{
			name:    "half rounds up",
			records: []models.CompletionRecord{rec("a", jan(1)), rec("b", jan(1)), rec("c", jan(1)), rec("a", jan(2)), rec("b", jan(2))},
			want:    3,
		},
		{
			name:    "rounds down below half",
			records: []models.CompletionRecord{rec("a", jan(1)), rec("b", jan(1)), rec("a", jan(2)), rec("a", jan(3))},
			want:    1,
		},
		{"exact", []models.CompletionRecord{rec("a", jan(1)), rec("b", jan(1))}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AveragePerDay(tt.records); got != tt.want {
				t.Errorf("AveragePerDay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	trackers := []models.Tracker{{ID: "a"}, {ID: "b"}}
	records := []models.CompletionRecord{
		rec("a", jan(1)), rec("b", jan(1)),
		rec("a", jan(2)),
		rec("a", jan(3)), rec("b", jan(3)),
	}

	got := Compute(trackers, records)
	want := Summary{BestStreak: 3, PerfectDays: 2, TotalCompletions: 5, AveragePerDay: 2}
	if got != want {
		t.Errorf("Compute() = %+v, want %+v", got, want)
	}
	if got.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !Compute(trackers, nil).IsEmpty() {
		t.Error("Compute() with no records should be empty")
	}
}
