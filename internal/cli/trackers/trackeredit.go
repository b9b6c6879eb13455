package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerEditCmd struct {
	Tracker  string `arg:"" help:"Tracker ID or name."`
	Name     string `help:"New name."`
	Emoji    string `help:"New emoji."`
	Color    string `help:"New hex color."`
	Schedule string `help:"New schedule: comma-separated weekdays or 'daily'."`
	Category string `help:"Move to this category (title); created if it does not exist."`
}

func (c *TrackerEditCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	updated := tracker
	if c.Name != "" {
		updated.Name = c.Name
	}
	if c.Emoji != "" {
		updated.Emoji = c.Emoji
	}
	if c.Color != "" {
		if updated.Color, err = models.ParseColor(c.Color); err != nil {
			return err
		}
	}
	if c.Schedule != "" {
		if updated.Schedule, err = models.ParseSchedule(c.Schedule); err != nil {
			return err
		}
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	// Resolve the category before writing so a bad title leaves the tracker untouched.
	if c.Category != "" {
		categoryID, err := ctx.Repos.Categories.FindOrCreate(c.Category)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		updated.CategoryID = categoryID
	}

	if err := ctx.Repos.Trackers.Update(updated); err != nil {
		return fmt.Errorf("failed to update tracker: %w", err)
	}

	ctx.Printf("Updated tracker: %s %s\n", updated.Emoji, updated.Name)
	return nil
}

type TrackerPinCmd struct {
	Tracker string `arg:"" help:"Tracker ID or name."`
	Unpin   bool   `help:"Unpin instead of pin."`
}

func (c *TrackerPinCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Trackers.SetPinned(tracker.ID, !c.Unpin); err != nil {
		return fmt.Errorf("failed to update tracker: %w", err)
	}

	if c.Unpin {
		ctx.Printf("Unpinned: %s\n", tracker.Name)
	} else {
		ctx.Printf("Pinned: %s\n", tracker.Name)
	}
	return nil
}

type TrackerDeleteCmd struct {
	Tracker string `arg:"" help:"Tracker ID or name."`
	Yes     bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *TrackerDeleteCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.ResolveTracker(c.Tracker)
	if err != nil {
		return err
	}
	days, err := ctx.Repos.Records.CountForTracker(tracker.ID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Delete tracker %q and its %s of history?", tracker.Name, cli.DaysLabel(days))
	ok, err := ctx.Confirmed(title, c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Repos.Trackers.Delete(tracker.ID); err != nil {
		return fmt.Errorf("failed to delete tracker: %w", err)
	}

	ctx.Printf("Deleted tracker: %s (ID: %s)\n", tracker.Name, tracker.ID)
	return nil
}
