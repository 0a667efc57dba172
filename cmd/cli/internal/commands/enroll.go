package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
)

type EnrollCmd struct {
	CourseID int64 `arg:"" help:"Course id"`
}

func (c *EnrollCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	res, err := clients.API.Enroll(ctx, c.CourseID)
	if err != nil {
		return err
	}

	if !res.Created {
		fmt.Fprintln(globals.out(), res.Message)
		return nil
	}

	fmt.Fprintf(globals.out(), "Enrolled in %s\n", res.Enrollment.CourseTitle)
	return nil
}

type EnrollmentsCmd struct{}

func (c *EnrollmentsCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	enrollments, err := clients.API.MyEnrollments(ctx)
	if err != nil {
		return err
	}

	out := globals.out()
	if len(enrollments) == 0 {
		fmt.Fprintln(out, "No enrollments found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE\tTITLE\tENROLLED AT")
	for _, e := range enrollments {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Course, truncate(e.CourseTitle, 40), e.EnrolledAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
