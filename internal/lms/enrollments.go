package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Enroll enrolls the signed-in student in a course. A repeat enrollment is
// not an error: the result carries the server message and Created is false.
func (c *Client) Enroll(ctx context.Context, courseID int64) (*EnrollResult, error) {
	resp, err := c.call(ctx, post(fmt.Sprintf("/courses/%d/enroll/", courseID), nil),
		failure{fallback: "Failed to enroll in course", keys: []string{"error"}}, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusCreated {
		var enrollment Enrollment
		if err := json.Unmarshal(resp.Body(), &enrollment); err != nil {
			return nil, fmt.Errorf("failed to decode enrollment: %w", err)
		}
		return &EnrollResult{Created: true, Enrollment: &enrollment}, nil
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode enroll response: %w", err)
	}

	return &EnrollResult{Message: body.Message}, nil
}

// MyEnrollments lists the signed-in student's enrollments.
func (c *Client) MyEnrollments(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment
	_, err := c.call(ctx, get("/enrollments/", nil),
		failure{fallback: "Failed to fetch enrollments"}, &enrollments)
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
