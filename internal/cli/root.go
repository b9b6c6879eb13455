package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/repository"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	Repos    *repository.Repositories
	Location *time.Location
	Out      io.Writer

	// Confirm asks a yes/no question. Commands skip it when --yes is given.
	Confirm func(title string) (bool, error)
}

func NewContext(store storage.Provider, loc *time.Location, opts ...repository.Option) *Context {
	if loc == nil {
		loc = time.Local
	}
	opts = append([]repository.Option{repository.WithLocation(loc)}, opts...)
	return &Context{
		Store:    store,
		Repos:    repository.New(store, opts...),
		Location: loc,
		Out:      os.Stdout,
		Confirm:  confirmPrompt,
	}
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirmed returns true without asking when assumeYes is set.
func (c *Context) Confirmed(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.Confirm == nil {
		return false, fmt.Errorf("refusing to continue without confirmation (use --yes)")
	}
	return c.Confirm(title)
}

// Today is the current calendar day in the configured zone.
func (c *Context) Today() time.Time {
	return c.Repos.Records.Today()
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday"; empty means today.
// The result is midnight of that day in the configured zone.
func (c *Context) ParseDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		return c.Today().AddDate(0, 0, -1), nil
	}
	day, err := utils.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return utils.DayIn(day, c.Location), nil
}

// ResolveTracker finds a tracker by id, or by name when exactly one matches
// case-insensitively.
func (c *Context) ResolveTracker(ref string) (models.Tracker, error) {
	if t, err := c.Repos.Trackers.Get(ref); err == nil {
		return t, nil
	}

	trackers, err := c.Repos.Trackers.FetchAll()
	if err != nil {
		return models.Tracker{}, err
	}
	var matches []models.Tracker
	for _, t := range trackers {
		if strings.EqualFold(t.Name, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Tracker{}, fmt.Errorf("no tracker with ID or name %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Tracker{}, fmt.Errorf("%d trackers are named %q, use the ID instead", len(matches), ref)
	}
}

// ResolveCategory finds a category by id or exact title.
func (c *Context) ResolveCategory(ref string) (models.Category, error) {
	if cat, err := c.Repos.Categories.Get(ref); err == nil {
		return cat, nil
	}

	categories, err := c.Repos.Categories.FetchAll()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if cat.Title == strings.TrimSpace(ref) {
			return cat, nil
		}
	}
	return models.Category{}, fmt.Errorf("no category with ID or title %q", ref)
}

// BackupManager returns a backup manager for SQLite stores; other backends
// manage their own backups.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup snapshots the database before destructive commands.
// Failures are logged, not returned.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatDay renders a day for output.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat + " (Mon)")
}
