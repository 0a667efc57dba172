package lms

import (
	"context"
	"fmt"

	"github.com/wolfeidau/coursekit/internal/youtube"
)

// contentWire is the request body for lesson writes. Body fields that do
// not match the content type are sent as null.
type contentWire struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ContentType string  `json:"content_type"`
	VideoURL    *string `json:"video_url"`
	FileURL     *string `json:"file_url"`
	ContentText *string `json:"content_text"`
	Order       int     `json:"order"`
}

func newContentWire(in ContentInput) contentWire {
	w := contentWire{
		Title:       in.Title,
		Description: in.Description,
		ContentType: in.ContentType,
		Order:       in.Order,
	}

	switch in.ContentType {
	case ContentVideo:
		if embed, ok := youtube.ConvertToEmbed(in.VideoURL); ok {
			w.VideoURL = &embed
		} else {
			w.VideoURL = nullable(in.VideoURL)
		}
	case ContentPDF:
		w.FileURL = nullable(in.FileURL)
	case ContentText:
		w.ContentText = nullable(in.ContentText)
	}

	return w
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var (
	createContentFailure = failure{
		fallback: "Failed to create course content",
		keys:     []string{"error", "detail"},
		fields:   contentFields,
	}
	updateContentFailure = failure{
		fallback: "Failed to update course content",
		keys:     []string{"error", "detail"},
		fields:   contentFields,
	}
)

// CourseContents lists the lessons of a course in order.
func (c *Client) CourseContents(ctx context.Context, courseID int64) ([]Content, error) {
	var contents []Content
	_, err := c.call(ctx, get(contentsPath(courseID), nil),
		failure{fallback: "Failed to fetch course content"}, &contents)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// CreateContent adds a lesson to a course.
func (c *Client) CreateContent(ctx context.Context, courseID int64, in ContentInput) (*Content, error) {
	var content Content
	_, err := c.call(ctx, post(contentsPath(courseID), newContentWire(in)), createContentFailure, &content)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// UpdateContent replaces a lesson.
func (c *Client) UpdateContent(ctx context.Context, id int64, in ContentInput) (*Content, error) {
	var content Content
	_, err := c.call(ctx, put(contentPath(id), newContentWire(in)), updateContentFailure, &content)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteContent removes a lesson.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	_, err := c.call(ctx, del(contentPath(id)),
		failure{fallback: "Failed to delete course content", keys: []string{"error"}}, nil)
	return err
}

// ToggleComplete flips the signed-in student's completion of a lesson and
// returns the resulting record.
func (c *Client) ToggleComplete(ctx context.Context, id int64) (*ContentProgress, error) {
	var progress ContentProgress
	_, err := c.call(ctx, post(contentPath(id)+"complete/", nil),
		failure{fallback: "Failed to update progress", keys: []string{"error"}}, &progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func contentsPath(courseID int64) string {
	return fmt.Sprintf("/courses/%d/contents/", courseID)
}

func contentPath(id int64) string {
	return fmt.Sprintf("/contents/%d/", id)
}
