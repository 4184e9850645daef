package model

import (
	"strconv"
	"strings"
	"time"

	"todoapi/internal/apperr"
)

// DueDateLayout is the accepted calendar-date form for due dates.
const DueDateLayout = "2006-01-02"

// Task is a single todo item owned by one user.
type Task struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidDueDate reports whether s is a well-formed calendar date.
// The parsed date must round-trip unchanged, so "2024-02-30" is
// rejected even though it matches the layout shape.
func ValidDueDate(s string) bool {
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DueDateLayout) == s
}

// CreateTaskRequest is the body for creating a task. An absent
// completed resolves to false.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
}

// ReplaceTaskRequest is the body for a full update. Absent fields
// resolve to their zero values; this is an overwrite, not a merge.
type ReplaceTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
}

// PatchTaskRequest is the body for a partial update. Nil pointers mean
// the field was not supplied and keeps its prior value.
type PatchTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

// Sort keys accepted by the list operation.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByDueDate   = "dueDate"
	SortByTitle     = "title"
)

// ListOptions is the typed form of the list query string, validated
// once at the boundary and passed by value to the store.
type ListOptions struct {
	Completed *bool
	SortBy    string
	Order     string
	Limit     int
}

// ParseListOptions builds ListOptions from raw query values. Unknown
// sort keys and malformed values fall back to the defaults, matching
// the forgiving behavior of the list endpoint (it never errors).
func ParseListOptions(completed, limit, sortBy, order string) ListOptions {
	opts := ListOptions{SortBy: SortByCreatedAt, Order: "desc"}

	if completed != "" {
		v := completed == "true"
		opts.Completed = &v
	}

	switch sortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByTitle:
		opts.SortBy = sortBy
	}

	if order == "asc" {
		opts.Order = "asc"
	}

	if limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			opts.Limit = n
		}
	}

	return opts
}

// ValidateCreate checks a create/replace body and returns the
// validation failure to surface, if any.
func ValidateCreate(title, dueDate string) error {
	if strings.TrimSpace(title) == "" {
		return apperr.Validation("Title is required and cannot be empty")
	}
	if dueDate != "" && !ValidDueDate(dueDate) {
		return apperr.Validation("Due date must be in YYYY-MM-DD format")
	}
	return nil
}
