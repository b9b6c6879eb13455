package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerAddCmd struct {
	Name     string `arg:"" help:"Tracker name."`
	Category string `short:"c" help:"Category title; created if it does not exist." required:""`
	Emoji    string `short:"e" help:"A single emoji; picked from the default set when omitted."`
	Color    string `help:"Hex color such as #33cc66; picked from the palette when omitted."`
	Schedule string `short:"s" help:"Comma-separated weekdays (mon,wed,fri) or 'daily'." default:"daily"`
	Pinned   bool   `short:"p" help:"Pin the tracker."`
}

func (c *TrackerAddCmd) Validate() error {
	if c.Color != "" {
		if _, err := models.ParseColor(c.Color); err != nil {
			return err
		}
	}
	if _, err := models.ParseSchedule(c.Schedule); err != nil {
		return err
	}
	return nil
}

func (c *TrackerAddCmd) Run(ctx *cli.Context) error {
	if c.Color == "" || c.Emoji == "" {
		if err := c.pickDefaults(ctx); err != nil {
			return err
		}
	}
	color, err := models.ParseColor(c.Color)
	if err != nil {
		return err
	}
	schedule, err := models.ParseSchedule(c.Schedule)
	if err != nil {
		return err
	}

	tracker := models.Tracker{
		Name:     c.Name,
		Emoji:    c.Emoji,
		Color:    color,
		Schedule: schedule,
		IsPinned: c.Pinned,
	}
	if err := tracker.Validate(); err != nil {
		return err
	}

	id, err := ctx.Repos.Trackers.AddToCategory(tracker, c.Category)
	if err != nil {
		return fmt.Errorf("failed to add tracker: %w", err)
	}

	ctx.Printf("Added tracker: %s %s (ID: %s)\n", tracker.Emoji, tracker.Name, id)
	ctx.Printf("  Category: %s, schedule: %s\n", c.Category, schedule)
	return nil
}

// pickDefaults fills a missing color or emoji by cycling through the default
// sets, so consecutive trackers look different.
func (c *TrackerAddCmd) pickDefaults(ctx *cli.Context) error {
	existing, err := ctx.Repos.Trackers.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to get trackers: %w", err)
	}
	n := len(existing)
	if c.Color == "" {
		c.Color = models.Palette[n%len(models.Palette)].String()
	}
	if c.Emoji == "" {
		c.Emoji = models.Emojis[n%len(models.Emojis)]
	}
	return nil
}
