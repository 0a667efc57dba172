package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/wolfeidau/coursekit/internal/lms"
)

// CoursesCmd groups course catalogue commands.
type CoursesCmd struct {
	List   CoursesListCmd   `cmd:"" default:"withargs" help:"Search the course catalogue"`
	Show   CoursesShowCmd   `cmd:"" help:"Show one course"`
	Create CoursesCreateCmd `cmd:"" help:"Create a course from a manifest"`
	Update CoursesUpdateCmd `cmd:"" help:"Replace a course from a manifest"`
	Delete CoursesDeleteCmd `cmd:"" help:"Delete a course"`
}

type CoursesListCmd struct {
	Search     string `help:"Free text search" short:"s"`
	Category   int64  `help:"Category id"`
	Difficulty string `help:"Difficulty level" enum:",beginner,intermediate,advanced" default:""`
	MinPrice   string `help:"Minimum price"`
	MaxPrice   string `help:"Maximum price"`
	Sort       string `help:"Sort order" enum:"-created_at,created_at,title,-title,price,-price,-students_count,students_count" default:"-created_at"`
}

func (c *CoursesListCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	courses, err := clients.API.SearchCourses(ctx, lms.CourseFilters{
		Search:     c.Search,
		Category:   c.Category,
		Difficulty: c.Difficulty,
		MinPrice:   c.MinPrice,
		MaxPrice:   c.MaxPrice,
		Sort:       c.Sort,
	})
	if err != nil {
		return err
	}

	printCourses(globals, courses)
	return nil
}

func printCourses(globals *Globals, courses []lms.Course) {
	out := globals.out()
	if len(courses) == 0 {
		fmt.Fprintln(out, "No courses found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tPRICE\tCATEGORY\tSTUDENTS\tLECTURER")
	for _, course := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			course.ID,
			truncate(course.Title, 40),
			course.Difficulty,
			course.Price,
			orDash(course.CategoryName),
			course.StudentsCount,
			orDash(course.LecturerName))
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\nTotal courses: %d\n", len(courses))
}

type CoursesShowCmd struct {
	ID int64 `arg:"" help:"Course id"`
}

func (c *CoursesShowCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	course, err := clients.API.GetCourse(ctx, c.ID)
	if err != nil {
		return err
	}

	printCourse(globals, course)
	return nil
}

func printCourse(globals *Globals, course *lms.Course) {
	w := tabwriter.NewWriter(globals.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", course.ID)
	fmt.Fprintf(w, "Title:\t%s\n", course.Title)
	fmt.Fprintf(w, "Difficulty:\t%s\n", course.Difficulty)
	fmt.Fprintf(w, "Price:\t%s\n", course.Price)
	fmt.Fprintf(w, "Category:\t%s\n", orDash(course.CategoryName))
	fmt.Fprintf(w, "Duration:\t%dh\n", course.DurationHours)
	fmt.Fprintf(w, "Students:\t%d\n", course.StudentsCount)
	fmt.Fprintf(w, "Lecturer:\t%s\n", orDash(course.LecturerName))
	fmt.Fprintf(w, "Published:\t%t\n", course.IsPublished)
	fmt.Fprintf(w, "Enrolled:\t%t\n", course.IsEnrolled)
	_ = w.Flush()

	if course.Description != "" {
		fmt.Fprintf(globals.out(), "\n%s\n", course.Description)
	}
}

type CoursesCreateCmd struct {
	File string `help:"YAML/JSON course manifest" short:"f" required:"" type:"existingfile"`
}

func (c *CoursesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	var in lms.CourseInput
	if err := loadManifest(c.File, &in); err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	course, err := clients.API.CreateCourse(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Course created with ID: %d\n", course.ID)
	return nil
}

type CoursesUpdateCmd struct {
	ID   int64  `arg:"" help:"Course id"`
	File string `help:"YAML/JSON course manifest" short:"f" required:"" type:"existingfile"`
}

func (c *CoursesUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	var in lms.CourseInput
	if err := loadManifest(c.File, &in); err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	course, err := clients.API.UpdateCourse(ctx, c.ID, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Course %d updated\n", course.ID)
	return nil
}

type CoursesDeleteCmd struct {
	ID int64 `arg:"" help:"Course id"`
}

func (c *CoursesDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	if err := clients.API.DeleteCourse(ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Course %d deleted\n", c.ID)
	return nil
}
