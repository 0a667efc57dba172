package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/wolfeidau/coursekit/internal/lms"
)

// ContentsCmd groups lesson commands.
type ContentsCmd struct {
	List     ContentsListCmd     `cmd:"" help:"List the lessons of a course"`
	Create   ContentsCreateCmd   `cmd:"" help:"Add a lesson from a manifest"`
	Update   ContentsUpdateCmd   `cmd:"" help:"Replace a lesson from a manifest"`
	Delete   ContentsDeleteCmd   `cmd:"" help:"Delete a lesson"`
	Complete ContentsCompleteCmd `cmd:"" help:"Toggle completion of a lesson"`
}

type ContentsListCmd struct {
	CourseID int64 `arg:"" help:"Course id"`
}

func (c *ContentsListCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	contents, err := clients.API.CourseContents(ctx, c.CourseID)
	if err != nil {
		return err
	}

	out := globals.out()
	if len(contents) == 0 {
		fmt.Fprintln(out, "No lessons found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tTYPE\tTITLE\tDONE\tSOURCE")
	for _, content := range contents {
		done := ""
		if content.IsCompleted {
			done = "✓"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			content.Order,
			content.ID,
			content.ContentType,
			truncate(content.Title, 40),
			done,
			source(content))
	}
	return w.Flush()
}

func source(c lms.Content) string {
	switch c.ContentType {
	case lms.ContentVideo:
		if c.VideoURL != nil {
			return *c.VideoURL
		}
	case lms.ContentPDF:
		if c.FileURL != nil {
			return *c.FileURL
		}
	case lms.ContentText:
		if c.ContentText != nil {
			return truncate(*c.ContentText, 40)
		}
	}
	return "-"
}

type ContentsCreateCmd struct {
	CourseID int64  `arg:"" help:"Course id"`
	File     string `help:"YAML/JSON lesson manifest" short:"f" required:"" type:"existingfile"`
}

func (c *ContentsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	var in lms.ContentInput
	if err := loadManifest(c.File, &in); err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	content, err := clients.API.CreateContent(ctx, c.CourseID, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Lesson created with ID: %d\n", content.ID)
	return nil
}

type ContentsUpdateCmd struct {
	ID   int64  `arg:"" help:"Lesson id"`
	File string `help:"YAML/JSON lesson manifest" short:"f" required:"" type:"existingfile"`
}

func (c *ContentsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	var in lms.ContentInput
	if err := loadManifest(c.File, &in); err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	content, err := clients.API.UpdateContent(ctx, c.ID, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Lesson %d updated\n", content.ID)
	return nil
}

type ContentsDeleteCmd struct {
	ID int64 `arg:"" help:"Lesson id"`
}

func (c *ContentsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	if err := clients.API.DeleteContent(ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Lesson %d deleted\n", c.ID)
	return nil
}

type ContentsCompleteCmd struct {
	ID int64 `arg:"" help:"Lesson id"`
}

func (c *ContentsCompleteCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	progress, err := clients.API.ToggleComplete(ctx, c.ID)
	if err != nil {
		return err
	}

	state := "incomplete"
	if progress.Completed {
		state = "complete"
	}
	fmt.Fprintf(globals.out(), "Lesson %d marked %s\n", c.ID, state)
	return nil
}
