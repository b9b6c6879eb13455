package visibility

import (
	"testing"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
)

// 2024-03-04 is a Monday.
var (
	monday  = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func tracker(id, name string, pinned bool, schedule ...models.Weekday) models.Tracker {
	return models.Tracker{ID: id, Name: name, IsPinned: pinned, Schedule: schedule, Emoji: "⭐", Color: "#000000"}
}

func ids(sections []models.Category) map[string][]string {
	out := make(map[string][]string)
	for _, s := range sections {
		for _, t := range s.Trackers {
			out[s.ID] = append(out[s.ID], t.ID)
		}
	}
	return out
}

func TestFilterPinning(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Title: "Health", Trackers: []models.Tracker{tracker("a", "Run", true)}},
		{ID: "c2", Title: "Home", Trackers: []models.Tracker{tracker("b", "Clean", false)}},
	}}

	got := Filter(snap, monday, "", ModeAll)
	if len(got) != 2 {
		t.Fatalf("Filter() = %d sections, want 2: %+v", len(got), got)
	}
	if got[0].ID != constants.PinnedCategoryID || got[0].Title != constants.PinnedCategoryTitle {
		t.Errorf("first section = %s/%s, want the pinned section", got[0].ID, got[0].Title)
	}
	if len(got[0].Trackers) != 1 || got[0].Trackers[0].ID != "a" {
		t.Errorf("pinned trackers = %+v, want [a]", got[0].Trackers)
	}
	if got[1].ID != "c2" || len(got[1].Trackers) != 1 || got[1].Trackers[0].ID != "b" {
		t.Errorf("second section = %+v, want Home with [b]", got[1])
	}
}

func TestFilterPinnedOrderFollowsCategories(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{tracker("a", "A", false), tracker("p1", "P1", true)}},
		{ID: "c2", Trackers: []models.Tracker{tracker("p2", "P2", true), tracker("b", "B", false)}},
	}}

	got := Filter(snap, monday, "", ModeAll)
	want := []string{constants.PinnedCategoryID, "c1", "c2"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %d sections, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("section %d = %s, want %s", i, got[i].ID, id)
		}
	}
	pinned := ids(got)[constants.PinnedCategoryID]
	if len(pinned) != 2 || pinned[0] != "p1" || pinned[1] != "p2" {
		t.Errorf("pinned = %v, want [p1 p2]", pinned)
	}
}

func TestFilterSchedule(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{
			tracker("daily", "Daily", false),
			tracker("mon", "Monday only", false, models.Monday),
		}},
		{ID: "c2", Trackers: []models.Tracker{tracker("fri", "Friday only", false, models.Friday)}},
	}}

	got := ids(Filter(snap, tuesday, "", ModeAll))
	if len(got) != 1 || len(got["c1"]) != 1 || got["c1"][0] != "daily" {
		t.Errorf("Filter(tuesday) = %v, want only c1:[daily]", got)
	}

	got = ids(Filter(snap, monday, "", ModeAll))
	if len(got["c1"]) != 2 {
		t.Errorf("Filter(monday) c1 = %v, want [daily mon]", got["c1"])
	}
}

func TestFilterSearch(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{
			tracker("a", "Morning Run", false),
			tracker("b", "Read", false),
		}},
	}}

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"a", "b"}},
		{"run", []string{"a"}},
		{"READ", []string{"b"}},
		{" ", []string{"a"}},
		{"  ", nil},
		{"swim", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := ids(Filter(snap, monday, tt.search, ModeAll))["c1"]
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.search, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter(%q) = %v, want %v", tt.search, got, tt.want)
				}
			}
		})
	}
}

func TestFilterModes(t *testing.T) {
	snap := Snapshot{
		Categories: []models.Category{
			{ID: "c1", Trackers: []models.Tracker{
				tracker("done", "Done", false),
				tracker("todo", "Todo", false),
				tracker("pinned-done", "Pinned", true),
			}},
		},
		Records: []models.CompletionRecord{
			models.NewCompletionRecord("done", monday.Add(9*time.Hour)),
			models.NewCompletionRecord("pinned-done", monday),
			models.NewCompletionRecord("todo", tuesday),
		},
	}

	tests := []struct {
		mode       FilterMode
		wantPinned int
		wantC1     []string
	}{
		{ModeAll, 1, []string{"done", "todo"}},
		{ModeToday, 1, []string{"done", "todo"}},
		{ModeCompleted, 1, []string{"done"}},
		{ModeUncompleted, 0, []string{"todo"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := ids(Filter(snap, monday, "", tt.mode))
			if len(got[constants.PinnedCategoryID]) != tt.wantPinned {
				t.Errorf("pinned = %v, want %d trackers", got[constants.PinnedCategoryID], tt.wantPinned)
			}
			if len(got["c1"]) != len(tt.wantC1) {
				t.Fatalf("c1 = %v, want %v", got["c1"], tt.wantC1)
			}
			for i := range tt.wantC1 {
				if got["c1"][i] != tt.wantC1[i] {
					t.Errorf("c1 = %v, want %v", got["c1"], tt.wantC1)
				}
			}
		})
	}
}

func TestFilterDropsCategoryWithOnlyPinnedTrackers(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{tracker("p", "Pinned", true)}},
		{ID: "c2", Trackers: nil},
	}}

	got := Filter(snap, monday, "", ModeAll)
	if len(got) != 1 || got[0].ID != constants.PinnedCategoryID {
		t.Errorf("Filter() = %+v, want only the pinned section", got)
	}
}

func TestFilterDoesNotMutateSnapshot(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{tracker("a", "A", false), tracker("b", "B", false, models.Friday)}},
	}}
	Filter(snap, monday, "", ModeAll)
	if len(snap.Categories[0].Trackers) != 2 {
		t.Errorf("snapshot trackers = %d, want 2", len(snap.Categories[0].Trackers))
	}
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterMode
		wantErr bool
	}{
		{"", ModeAll, false},
		{"all", ModeAll, false},
		{"Today", ModeToday, false},
		{" completed ", ModeCompleted, false},
		{"uncompleted", ModeUncompleted, false},
		{"done", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilterMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilterMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilterMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	if got := ResolveDate(ModeToday, monday, tuesday); !got.Equal(tuesday) {
		t.Errorf("ResolveDate(today) = %v, want %v", got, tuesday)
	}
	for _, mode := range []FilterMode{ModeAll, ModeCompleted, ModeUncompleted} {
		if got := ResolveDate(mode, monday, tuesday); !got.Equal(monday) {
			t.Errorf("ResolveDate(%s) = %v, want %v", mode, got, monday)
		}
	}
}

func TestPlaceholderFor(t *testing.T) {
	snap := Snapshot{Categories: []models.Category{
		{ID: "c1", Trackers: []models.Tracker{tracker("mon", "Yoga", false, models.Monday)}},
	}}

	tests := []struct {
		name   string
		date   time.Time
		search string
		want   Placeholder
	}{
		{"something to show", monday, "", PlaceholderNone},
		{"nothing due", tuesday, "", PlaceholderNothingScheduled},
		{"search hides everything", monday, "run", PlaceholderNothingFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Filter(snap, tt.date, tt.search, ModeAll)
			if got := PlaceholderFor(snap, tt.date, sections); got != tt.want {
				t.Errorf("PlaceholderFor() = %v, want %v", got, tt.want)
			}
		})
	}
}
