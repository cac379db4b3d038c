package models

import (
	"strings"
	"time"
)

// Priority is an optional task priority. The zero value means unset.
type Priority string

const (
	PriorityUnset  Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is unset or one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUnset, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Order returns a numeric value for sorting by priority.
// Lower numbers indicate higher priority.
func (p Priority) Order() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 99
	}
}

// Task is a single work item belonging to exactly one column.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ColumnID    string    `json:"column_id"`
	CreatedAt   time.Time `json:"created_at"`
	Priority    Priority  `json:"priority,omitempty"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if !IsNonEmptyTitle(t.Title) {
		return validationf("title is required")
	}

	if strings.TrimSpace(t.ColumnID) == "" {
		return validationf("column_id is required")
	}

	if !t.Priority.Valid() {
		return validationf("priority must be 'high', 'medium', or 'low'")
	}

	return nil
}

// TaskUpdate is a partial task update. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

// Validate rejects an update that would leave the task invalid.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && !IsNonEmptyTitle(*u.Title) {
		return validationf("title is required")
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return validationf("priority must be 'high', 'medium', or 'low'")
	}
	return nil
}

// Apply copies the set fields of u onto t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
}

// IsNonEmptyTitle reports whether s contains anything besides whitespace.
func IsNonEmptyTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}
