package models

import "strings"

// Column is a named, colored bucket of tasks. Its position in the board's
// column sequence is its display order.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color Color  `json:"color"`
}

// Validate checks that the column has valid field values.
func (c *Column) Validate() error {
	if !IsNonEmptyTitle(c.Title) {
		return validationf("title is required")
	}
	if c.Color.IsZero() {
		return validationf("color is required")
	}
	return nil
}

// ColumnUpdate is a partial column update. Color is the raw, unparsed
// value coming from the color input.
type ColumnUpdate struct {
	Title *string `json:"title,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Resolve validates u and returns the parsed color, if one was given.
func (u ColumnUpdate) Resolve() (*Color, error) {
	if u.Title != nil && !IsNonEmptyTitle(*u.Title) {
		return nil, validationf("title is required")
	}
	if u.Color == nil {
		return nil, nil
	}
	c, err := ParseColor(*u.Color)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Apply copies the title and the already resolved color onto c.
func (u ColumnUpdate) Apply(c *Column, color *Color) {
	if u.Title != nil {
		c.Title = strings.TrimSpace(*u.Title)
	}
	if color != nil {
		c.Color = *color
	}
}
