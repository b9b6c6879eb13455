package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerListCmd struct {
	Category string `short:"c" help:"Only list trackers in this category (ID or title)."`
	ShowIDs  bool   `help:"Show tracker IDs." name:"show-ids"`
}

func (c *TrackerListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Repos.Categories.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if c.Category != "" {
		only, err := ctx.ResolveCategory(c.Category)
		if err != nil {
			return err
		}
		categories = []models.Category{only}
	}

	today := ctx.Today()
	listed := 0
	for _, cat := range categories {
		if len(cat.Trackers) == 0 {
			continue
		}
		ctx.Println(cli.SectionStyle.Render(cat.Title))
		for _, t := range cat.Trackers {
			days, err := ctx.Repos.Records.CountForTracker(t.ID)
			if err != nil {
				return err
			}
			done, err := ctx.Repos.Records.Exists(t.ID, today)
			if err != nil {
				return err
			}
			ctx.Println("  " + cli.TrackerLine(t, done, days, c.ShowIDs))
			listed++
		}
	}

	if listed == 0 {
		ctx.Println("No trackers found")
	}
	return nil
}

type TrackerMarkCmd struct {
	Tracker string `arg:"" help:"Tracker ID or name."`
	Date    string `short:"d" help:"Day to toggle (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *TrackerMarkCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}
	day, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	done, err := ctx.Repos.Records.Toggle(tracker.ID, day)
	if err != nil {
		return fmt.Errorf("failed to mark tracker: %w", err)
	}
	days, err := ctx.Repos.Records.CountForTracker(tracker.ID)
	if err != nil {
		return err
	}

	state := "not done"
	if done {
		state = cli.DoneStyle.Render("done")
	}
	ctx.Printf("%s %s: %s on %s (%s total)\n", tracker.Emoji, tracker.Name, state, cli.FormatDay(day), cli.DaysLabel(days))
	return nil
}
