package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/julianstephens/tracker/internal/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#FD4C49", want: "#fd4c49"},
		{in: "fd4c49", want: "#fd4c49"},
		{in: "#fff", want: "#ffffff"},
		{in: "#12345", wantErr: true},
		{in: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	for _, c := range Palette {
		again, err := ParseColor(string(c))
		if err != nil || again != c {
			t.Errorf("palette color %q does not round trip: %q, %v", c, again, err)
		}
	}
}

func TestTrackerValidate(t *testing.T) {
	valid := Tracker{Name: "Read", Emoji: "📚", Color: "#33cf69", Schedule: Schedule{Monday}}

	tests := []struct {
		name    string
		mutate  func(*Tracker)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Tracker) {}},
		{name: "compound emoji is one glyph", mutate: func(tr *Tracker) { tr.Emoji = "❤️" }},
		{name: "blank name", mutate: func(tr *Tracker) { tr.Name = "  " }, wantErr: true},
		{name: "missing emoji", mutate: func(tr *Tracker) { tr.Emoji = "" }, wantErr: true},
		{name: "two emoji", mutate: func(tr *Tracker) { tr.Emoji = "📚📚" }, wantErr: true},
		{name: "bad color", mutate: func(tr *Tracker) { tr.Color = "blue" }, wantErr: true},
		{name: "bad weekday", mutate: func(tr *Tracker) { tr.Schedule = Schedule{9} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			if err := tr.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTrackerCopies(t *testing.T) {
	orig := Tracker{ID: "a", Name: "Run", CategoryID: "c1"}
	pinned := orig.WithPinned(true).WithCategory("c2")
	if orig.IsPinned || orig.CategoryID != "c1" {
		t.Error("With* mutated the original tracker")
	}
	if !pinned.IsPinned || pinned.CategoryID != "c2" || pinned.ID != "a" {
		t.Errorf("unexpected copy %+v", pinned)
	}
	if !orig.MatchesSearch("RU") || orig.MatchesSearch("walk") {
		t.Error("MatchesSearch() is not a case-insensitive substring match")
	}
}

func TestNormalizeCategoryTitle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "empty", in: "", wantErr: apperrors.ErrTitleEmpty},
		{name: "whitespace", in: "   ", wantErr: apperrors.ErrTitleEmpty},
		{name: "trimmed", in: "  Health  ", want: "Health"},
		{name: "38 chars", in: strings.Repeat("a", 38), want: strings.Repeat("a", 38)},
		{name: "39 chars", in: strings.Repeat("a", 39), wantErr: apperrors.ErrTitleTooLong},
		{name: "38 runes of cyrillic", in: strings.Repeat("ж", 38), want: strings.Repeat("ж", 38)},
		{name: "padding does not count", in: " " + strings.Repeat("b", 38) + "\t", want: strings.Repeat("b", 38)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCategoryTitle(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizeCategoryTitle() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeCategoryTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCompletionRecord(t *testing.T) {
	r := NewCompletionRecord("t1", time.Date(2025, 1, 2, 18, 45, 0, 0, time.Local))
	if r.Day() != "2025-01-02" {
		t.Errorf("Day() = %s", r.Day())
	}
	if r.Date.Hour() != 0 {
		t.Errorf("date not normalized: %v", r.Date)
	}
}
