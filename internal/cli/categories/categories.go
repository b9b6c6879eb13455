package categories

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	apperrors "github.com/julianstephens/tracker/internal/errors"
)

type CategoryAddCmd struct {
	Title string `arg:"" help:"Category title (at most 38 characters)."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Repos.Categories.Add(c.Title)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	ctx.Printf("Added category: %s (ID: %s)\n", c.Title, id)
	return nil
}

type CategoryListCmd struct {
	ShowIDs bool `help:"Show category IDs." name:"show-ids"`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Repos.Categories.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		ctx.Println("No categories found")
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render("Categories:"))
	for _, cat := range categories {
		line := fmt.Sprintf("  %s (%d trackers)", cat.Title, len(cat.Trackers))
		if c.ShowIDs {
			line += cli.MutedStyle.Render("  (ID: " + cat.ID + ")")
		}
		ctx.Println(line)
	}
	return nil
}

type CategoryRenameCmd struct {
	Category string `arg:"" help:"Category ID or title."`
	Title    string `arg:"" help:"New title."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.ResolveCategory(c.Category)
	if err != nil {
		return err
	}
	if err := ctx.Repos.Categories.Update(cat.ID, c.Title); err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	ctx.Printf("Renamed category %q to %q\n", cat.Title, c.Title)
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category ID or title."`
	Yes      bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.ResolveCategory(c.Category)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirmed(fmt.Sprintf("Delete category %q?", cat.Title), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled.")
		return nil
	}

	if err := ctx.Repos.Categories.Delete(cat.ID); err != nil {
		if errors.Is(err, apperrors.ErrHasTrackers) {
			return fmt.Errorf("%w; move or delete its trackers first", err)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	ctx.Printf("Deleted category: %s\n", cat.Title)
	return nil
}
