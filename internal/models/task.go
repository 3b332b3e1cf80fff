package models

import "time"

// TimeLayout is the storage and wire format of task timestamps. Fixed width, so
// text comparison orders chronologically.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeLayout (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Task represents a task owned by a single user.
type Task struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput is a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether no field is set.
func (u UpdateTaskInput) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// ListTasksQuery filters and paginates a user's tasks. From/To are inclusive.
type ListTasksQuery struct {
	Page      int
	Limit     int
	Completed *bool
	From      *time.Time
	To        *time.Time
}

// PaginationMeta describes the page returned by a list call.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TaskEvent is the message payload for Kafka (created, updated, deleted, imported).
type TaskEvent struct {
	Type       string    `json:"type"`
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventTaskCreated  = "created"
	EventTaskUpdated  = "updated"
	EventTaskDeleted  = "deleted"
	EventTaskImported = "imported"
)
