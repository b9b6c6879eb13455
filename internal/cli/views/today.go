package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/scheduler"
	"github.com/julianstephens/tracker/internal/visibility"
)

type TodayCmd struct {
	Date    string `help:"Day to show (YYYY-MM-DD, today, yesterday)." default:"today"`
	Search  string `help:"Only show trackers whose name contains this text." short:"s"`
	Filter  string `help:"One of: all, today, completed, uncompleted." default:"all" enum:"all,today,completed,uncompleted"`
	ShowIDs bool   `help:"Show tracker IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	mode, err := visibility.ParseFilterMode(c.Filter)
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}
	date = visibility.ResolveDate(mode, date, ctx.Today())

	snapshot := loadSnapshot(ctx)
	sections := visibility.Filter(snapshot, date, c.Search, mode)

	ctx.Println(cli.HeaderStyle.Render(cli.FormatDay(date)))
	if p := visibility.PlaceholderFor(snapshot, date, sections); p != visibility.PlaceholderNone {
		ctx.Println(cli.MutedStyle.Render(p.String()))
		return nil
	}

	done := snapshot.Completed(date)
	counts := countByTracker(snapshot.Records)
	for _, section := range sections {
		ctx.Println()
		ctx.Println(cli.SectionStyle.Render(section.Title))
		for _, t := range section.Trackers {
			ctx.Println("  " + cli.TrackerLine(t, done[t.ID], counts[t.ID], c.ShowIDs))
		}
	}
	return nil
}

// loadSnapshot reads categories and records for display. A failed read is
// logged and shown as an empty list.
func loadSnapshot(ctx *cli.Context) visibility.Snapshot {
	var snapshot visibility.Snapshot

	// Trackers first so unreadable schedules are normalized before grouping.
	if _, err := ctx.Repos.Trackers.FetchAll(); err != nil {
		logger.Warn("Failed to fetch trackers", "error", err)
		return snapshot
	}
	categories, err := ctx.Repos.Categories.FetchAll()
	if err != nil {
		logger.Warn("Failed to fetch categories", "error", err)
		return snapshot
	}
	records, err := ctx.Repos.Records.FetchAll()
	if err != nil {
		logger.Warn("Failed to fetch completion records", "error", err)
		records = nil
	}

	snapshot.Categories = categories
	snapshot.Records = records
	return snapshot
}

func countByTracker(records []models.CompletionRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.TrackerID]++
	}
	return counts
}

const nameWidth = 24

// WeekCmd prints a seven-day completion grid ending on --date.
type WeekCmd struct {
	Date string `help:"Last day of the week to show." default:"today"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	end, err := ctx.ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}
	snapshot := loadSnapshot(ctx)

	days := make([]time.Time, 7)
	doneByDay := make([]map[string]bool, 7)
	header := pad("", nameWidth)
	for i := range days {
		days[i] = end.AddDate(0, 0, i-6)
		doneByDay[i] = snapshot.Completed(days[i])
		header += " " + days[i].Format("Mon")[:2]
	}
	ctx.Println(cli.HeaderStyle.Render(header))

	shown := false
	for _, category := range snapshot.Categories {
		for _, t := range category.Trackers {
			shown = true
			row := pad(truncate(t.Emoji+" "+t.Name, nameWidth), nameWidth)
			for i, day := range days {
				row += " " + weekCell(t, day, doneByDay[i][t.ID])
			}
			ctx.Println(row)
		}
	}
	if !shown {
		ctx.Println(cli.MutedStyle.Render(visibility.PlaceholderNothingScheduled.String()))
	}
	return nil
}

func weekCell(t models.Tracker, day time.Time, done bool) string {
	switch {
	case done:
		return cli.DoneStyle.Render("✓ ")
	case !scheduler.IsDue(t, day):
		return cli.MutedStyle.Render("· ")
	default:
		return "- "
	}
}

// truncate cuts s to at most n terminal cells, keeping whole graphemes.
func truncate(s string, n int) string {
	if uniseg.StringWidth(s) <= n {
		return s
	}
	var out string
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if width+g.Width() > n-1 {
			break
		}
		out += g.Str()
		width += g.Width()
	}
	return out + "…"
}

func pad(s string, n int) string {
	if w := uniseg.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
