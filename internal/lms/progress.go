package lms

import (
	"context"
	"fmt"
)

// MyProgress summarises the signed-in student's progress in every enrolled
// course.
func (c *Client) MyProgress(ctx context.Context) ([]CourseProgress, error) {
	var progress []CourseProgress
	_, err := c.call(ctx, get("/progress/", nil),
		failure{fallback: "Failed to fetch progress"}, &progress)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// CourseStudentProgress returns per-student progress for a course owned by
// the signed-in lecturer.
func (c *Client) CourseStudentProgress(ctx context.Context, courseID int64) (*CourseStudentProgress, error) {
	var progress CourseStudentProgress
	_, err := c.call(ctx, get(fmt.Sprintf("/courses/%d/student-progress/", courseID), nil),
		failure{fallback: "Failed to fetch student progress", keys: []string{"error", "detail"}}, &progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
