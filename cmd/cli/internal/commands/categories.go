package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/wolfeidau/coursekit/internal/lms"
)

// CategoriesCmd groups category commands.
type CategoriesCmd struct {
	List   CategoriesListCmd   `cmd:"" default:"withargs" help:"List categories"`
	Create CategoriesCreateCmd `cmd:"" help:"Create a category"`
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	categories, err := clients.API.Categories(ctx)
	if err != nil {
		return err
	}

	out := globals.out()
	if len(categories) == 0 {
		fmt.Fprintln(out, "No categories found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOURSES\tDESCRIPTION")
	for _, cat := range categories {
		name := cat.Name
		if cat.Icon != "" {
			name = cat.Icon + " " + name
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", cat.ID, name, cat.CoursesCount, truncate(orDash(cat.Description), 50))
	}
	return w.Flush()
}

type CategoriesCreateCmd struct {
	Name        string `arg:"" help:"Category name"`
	Description string `help:"Category description"`
	Icon        string `help:"Category icon"`
}

func (c *CategoriesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	category, err := clients.API.CreateCategory(ctx, lms.CategoryInput{
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Category created with ID: %d\n", category.ID)
	return nil
}
