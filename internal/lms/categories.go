package lms

import "context"

// Categories lists every course category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	_, err := c.call(ctx, get("/categories/", nil),
		failure{fallback: "Failed to fetch categories"}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category. Only lecturers may do so.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var category Category
	_, err := c.call(ctx, post("/categories/", in),
		failure{fallback: "Failed to create category", keys: []string{"error", "detail"}}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
