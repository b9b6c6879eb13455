package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Tracker is a recurring habit. Values are immutable by convention: an edit is a
// new Tracker carrying the same ID.
type Tracker struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Color      Color     `json:"color"`
	Emoji      string    `json:"emoji"`
	Schedule   Schedule  `json:"schedule"`
	IsPinned   bool      `json:"is_pinned"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields a caller must supply before handing a tracker to
// the repository.
func (t Tracker) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tracker name cannot be empty")
	}
	if t.Emoji == "" {
		return fmt.Errorf("tracker emoji cannot be empty")
	}
	if uniseg.GraphemeClusterCount(t.Emoji) != 1 {
		return fmt.Errorf("tracker emoji must be a single glyph, got %q", t.Emoji)
	}
	if !t.Color.Valid() {
		return fmt.Errorf("tracker color %q is not a valid color", t.Color)
	}
	return t.Schedule.Validate()
}

// WithPinned returns a copy of t with the pin flag set.
func (t Tracker) WithPinned(pinned bool) Tracker {
	t.IsPinned = pinned
	return t
}

// WithCategory returns a copy of t owned by categoryID.
func (t Tracker) WithCategory(categoryID string) Tracker {
	t.CategoryID = categoryID
	return t
}

// MatchesSearch reports whether the name contains text, ignoring case.
func (t Tracker) MatchesSearch(text string) bool {
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(text))
}
