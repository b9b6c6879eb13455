package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/postgres"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing SQLite database before initializing."`
	Source string `help:"SQLite path or PostgreSQL URL to copy categories, trackers and records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized tracker storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" && samePath(dbPath, c.Source) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if err := postgres.ValidateConnString(source); err != nil {
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.New(source), nil
}

// copyFrom writes every category, tracker and record of the source store into
// ctx.Store, keeping ids and creation order.
func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	source, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	categories, err := source.ListCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	trackers := 0
	for _, category := range categories {
		if err := ctx.Store.CreateCategory(category); err != nil {
			return fmt.Errorf("failed to add category %s: %w", category.ID, err)
		}
		for _, t := range category.Trackers {
			if err := ctx.Store.CreateTracker(t); err != nil {
				return fmt.Errorf("failed to add tracker %s: %w", t.ID, err)
			}
			trackers++
		}
	}
	ctx.Printf("  Copied %d categories and %d trackers\n", len(categories), trackers)

	records, err := source.ListRecords()
	if err != nil {
		return fmt.Errorf("failed to get completion records from source: %w", err)
	}
	for _, r := range records {
		if _, err := ctx.Store.UpsertRecord(r); err != nil {
			return fmt.Errorf("failed to add record %s/%s: %w", r.TrackerID, r.Day(), err)
		}
	}
	ctx.Printf("  Copied %d completion records\n", len(records))

	if n := source.Anomalies(); n > 0 {
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("  Skipped %d unreadable rows in the source", n)))
	}
	return nil
}
