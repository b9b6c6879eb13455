// Package repository validates input and applies it to a storage.Provider.
// It is the only layer that mutates the store.
package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/utils"
)

type options struct {
	now      func() time.Time
	location *time.Location
	newID    func() string
}

type Option func(*options)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLocation sets the zone that decides which calendar day "now" and
// incoming dates fall on.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		location: time.Local,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// day normalizes the instant t to its calendar day in the configured zone.
func (o options) day(t time.Time) time.Time {
	return utils.StartOfDay(t.In(o.location))
}

func (o options) today() time.Time {
	return o.day(o.now())
}

// Repositories bundles the three repositories over one store.
type Repositories struct {
	Categories *CategoryRepository
	Trackers   *TrackerRepository
	Records    *RecordRepository
}

func New(store storage.Provider, opts ...Option) *Repositories {
	o := buildOptions(opts)
	categories := &CategoryRepository{store: store, opts: o}
	return &Repositories{
		Categories: categories,
		Trackers:   &TrackerRepository{store: store, opts: o, categories: categories},
		Records:    &RecordRepository{store: store, opts: o},
	}
}
