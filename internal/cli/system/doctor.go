package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped once a gatesDB check has failed.
	needsDB bool
	gatesDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", gatesDB: true, run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Data readable", needsDB: true, run: checkDecodeAnomalies},
	{name: "References intact", needsDB: true, run: checkOrphans},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gatesDB {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var one int
		if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'tracker migrate')", current, latest)
	}
	return nil
}

// checkDecodeAnomalies reads everything once and reports rows that could not
// be decoded.
func checkDecodeAnomalies(ctx *cli.Context) error {
	before := ctx.Store.Anomalies()
	if _, err := ctx.Store.ListTrackers(); err != nil {
		return err
	}
	if _, err := ctx.Store.ListRecords(); err != nil {
		return err
	}
	if n := ctx.Store.Anomalies() - before; n > 0 {
		return fmt.Errorf("%d unreadable rows were skipped (see the log for details)", n)
	}
	return nil
}

func checkOrphans(ctx *cli.Context) error {
	categories, err := ctx.Store.ListCategories()
	if err != nil {
		return err
	}
	trackers, err := ctx.Store.ListTrackers()
	if err != nil {
		return err
	}
	records, err := ctx.Store.ListRecords()
	if err != nil {
		return err
	}

	categoryIDs := make(map[string]bool, len(categories))
	for _, c := range categories {
		categoryIDs[c.ID] = true
	}
	trackerIDs := make(map[string]bool, len(trackers))
	orphanTrackers := 0
	for _, t := range trackers {
		trackerIDs[t.ID] = true
		if !categoryIDs[t.CategoryID] {
			orphanTrackers++
		}
	}
	orphanRecords := 0
	for _, r := range records {
		if !trackerIDs[r.TrackerID] {
			orphanRecords++
		}
	}

	if orphanTrackers > 0 || orphanRecords > 0 {
		return fmt.Errorf("%d trackers without a category, %d records without a tracker", orphanTrackers, orphanRecords)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'tracker backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no time zone configured")
	}
	ctx.Printf("   Days roll over at midnight %s (today is %s)\n", ctx.Location, cli.FormatDay(ctx.Today()))
	return nil
}
