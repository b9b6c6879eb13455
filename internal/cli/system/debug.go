package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/scheduler"
	"github.com/julianstephens/tracker/internal/utils"
)

type DebugCmd struct {
	DBPath      DebugDBPathCmd      `cmd:"" name:"db-path" help:"Show the storage location."`
	DumpTracker DebugDumpTrackerCmd `cmd:"" help:"Dump a tracker as JSON."`
	DumpDay     DebugDumpDayCmd     `cmd:"" help:"Dump what is due and done on a day as JSON."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpTrackerCmd struct {
	Tracker string `arg:"" help:"Tracker ID or name."`
}

func (cmd *DebugDumpTrackerCmd) Run(ctx *cli.Context) error {
	t, err := ctx.ResolveTracker(cmd.Tracker)
	if err != nil {
		return err
	}
	days, err := ctx.Repos.Records.CountForTracker(t.ID)
	if err != nil {
		return err
	}
	return printJSON(ctx, struct {
		models.Tracker
		Days int `json:"days"`
	}{t, days})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD, today, yesterday)." default:"today"`
}

type dayDump struct {
	Date      string   `json:"date"`
	Weekday   string   `json:"weekday"`
	Due       []string `json:"due"`
	Completed []string `json:"completed"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(cmd.Date)
	if err != nil {
		return err
	}
	trackers, err := ctx.Repos.Trackers.FetchAll()
	if err != nil {
		return err
	}
	records, err := ctx.Repos.Records.FetchAll()
	if err != nil {
		return err
	}

	dump := dayDump{
		Date:      utils.FormatDay(date),
		Weekday:   models.WeekdayOf(date).String(),
		Due:       []string{},
		Completed: []string{},
	}
	for _, t := range scheduler.DueTrackers(trackers, date) {
		dump.Due = append(dump.Due, t.ID)
	}
	for _, r := range records {
		if r.Day() == dump.Date {
			dump.Completed = append(dump.Completed, r.TrackerID)
		}
	}
	return printJSON(ctx, dump)
}
