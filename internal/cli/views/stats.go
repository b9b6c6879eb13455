package views

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/stats"
)

type StatsCmd struct {
	JSON bool `help:"Print the summary as JSON." name:"json"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	trackers, err := ctx.Repos.Trackers.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to get trackers: %w", err)
	}
	records, err := ctx.Repos.Records.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to get completion records: %w", err)
	}

	summary := stats.Compute(trackers, records)

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render("Statistics"))
	if summary.IsEmpty() {
		ctx.Println(cli.MutedStyle.Render("Nothing to analyze yet. Mark a tracker as done to get started."))
		return nil
	}
	ctx.Printf("  Best streak:        %s\n", cli.DaysLabel(summary.BestStreak))
	ctx.Printf("  Perfect days:       %d\n", summary.PerfectDays)
	ctx.Printf("  Total completions:  %d\n", summary.TotalCompletions)
	ctx.Printf("  Average per day:    %d\n", summary.AveragePerDay)
	return nil
}
