package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	progress, err := clients.API.MyProgress(ctx)
	if err != nil {
		return err
	}

	out := globals.out()
	if len(progress) == 0 {
		fmt.Fprintln(out, "No enrolled courses.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE\tTITLE\tCOMPLETED\tPROGRESS")
	for _, p := range progress {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%.0f%%\n",
			p.CourseID, truncate(p.CourseTitle, 40), p.CompletedContent, p.TotalContent, p.ProgressPercentage)
	}
	return w.Flush()
}

type StudentProgressCmd struct {
	CourseID int64 `arg:"" help:"Course id"`
}

func (c *StudentProgressCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	report, err := clients.API.CourseStudentProgress(ctx, c.CourseID)
	if err != nil {
		return err
	}

	out := globals.out()
	fmt.Fprintf(out, "%s (%d lessons)\n\n", report.CourseTitle, report.TotalContent)

	if len(report.Students) == 0 {
		fmt.Fprintln(out, "No students enrolled.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tEMAIL\tCOMPLETED\tPROGRESS\tENROLLED AT")
	for _, s := range report.Students {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.0f%%\t%s\n",
			s.StudentName, orDash(s.StudentEmail), s.CompletedContent, s.TotalContent,
			s.ProgressPercentage, s.EnrolledAt.Format("2006-01-02"))
	}
	return w.Flush()
}
