package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/tracker/internal/constants"
	apperrors "github.com/julianstephens/tracker/internal/errors"
)

// Category groups trackers. Trackers holds the trackers that currently
// reference the category, in creation order.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Trackers  []Tracker `json:"trackers"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeCategoryTitle trims title and checks its length.
func NormalizeCategoryTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ErrTitleEmpty
	}
	if utf8.RuneCountInString(title) > constants.MaxCategoryTitleLength {
		return "", apperrors.ErrTitleTooLong
	}
	return title, nil
}

// HasTrackers reports whether any tracker references the category.
func (c Category) HasTrackers() bool {
	return len(c.Trackers) > 0
}
