package lms

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CourseFilters narrows a course search. Zero values are left out of the
// query.
type CourseFilters struct {
	Search     string
	Category   int64
	Difficulty string
	MinPrice   string
	MaxPrice   string
	Sort       string
}

// Query encodes the filters as course list parameters.
func (f CourseFilters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != 0 {
		q.Set("category", strconv.FormatInt(f.Category, 10))
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.MinPrice != "" {
		q.Set("min_price", f.MinPrice)
	}
	if f.MaxPrice != "" {
		q.Set("max_price", f.MaxPrice)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

// courseWire is the request body for course writes.
type courseWire struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         string  `json:"price"`
	Category      *int64  `json:"category"`
	Difficulty    string  `json:"difficulty"`
	DurationHours int     `json:"duration_hours"`
	IsPublished   bool    `json:"is_published"`
	ThumbnailURL  *string `json:"thumbnail_url"`
}

func newCourseWire(in CourseInput) courseWire {
	w := courseWire{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Difficulty:    in.Difficulty,
		DurationHours: in.DurationHours,
		IsPublished:   in.IsPublished,
	}
	if w.Difficulty == "" {
		w.Difficulty = DifficultyBeginner
	}
	if in.Category != 0 {
		w.Category = &in.Category
	}
	if in.ThumbnailURL != "" {
		w.ThumbnailURL = &in.ThumbnailURL
	}
	return w
}

// SearchCourses lists the courses matching filters.
func (c *Client) SearchCourses(ctx context.Context, filters CourseFilters) ([]Course, error) {
	var courses []Course
	_, err := c.call(ctx, get("/courses/", filters.Query()),
		failure{fallback: "Failed to search courses"}, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse fetches one course.
func (c *Client) GetCourse(ctx context.Context, id int64) (*Course, error) {
	var course Course
	_, err := c.call(ctx, get(coursePath(id), nil),
		failure{fallback: "Failed to load course", keys: []string{"detail"}}, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse publishes a new course owned by the signed-in lecturer.
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (*Course, error) {
	var course Course
	_, err := c.call(ctx, post("/courses/", newCourseWire(in)),
		failure{fallback: "Failed to save course", keys: []string{"detail"}}, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse replaces the writable fields of a course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, in CourseInput) (*Course, error) {
	var course Course
	_, err := c.call(ctx, put(coursePath(id), newCourseWire(in)),
		failure{fallback: "Failed to save course", keys: []string{"detail"}}, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	_, err := c.call(ctx, del(coursePath(id)),
		failure{fallback: "Failed to delete course", keys: []string{"detail"}}, nil)
	return err
}

func coursePath(id int64) string {
	return fmt.Sprintf("/courses/%d/", id)
}
