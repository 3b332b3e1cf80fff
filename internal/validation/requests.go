package validation

import (
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"tasks-api/internal/models"
	"tasks-api/internal/repository"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

func (r CreateTaskRequest) Input() models.CreateTaskInput {
	return models.CreateTaskInput{Title: r.Title, Description: r.Description}
}

// UpdateTaskRequest needs at least one field.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitnil,min=1,max=255"`
	Description *string `json:"description" binding:"omitnil,max=1000"`
	Completed   *bool   `json:"completed"`
}

func (r UpdateTaskRequest) Input() models.UpdateTaskInput {
	return models.UpdateTaskInput{Title: r.Title, Description: r.Description, Completed: r.Completed}
}

func validateUpdateTask(sl validator.StructLevel) {
	r := sl.Current().Interface().(UpdateTaskRequest)
	if r.Input().Empty() {
		sl.ReportError(r, "body", "", "atleastone", "")
	}
}

const dateTimeLayout = time.RFC3339

// ListTasksParams is the raw query of GET /tasks. Values stay strings so every
// malformed parameter is reported, not just the first one that fails to parse.
type ListTasksParams struct {
	Page      string `form:"page" binding:"omitempty,number"`
	Limit     string `form:"limit" binding:"omitempty,number"`
	Completed string `form:"completed" binding:"omitempty,oneof=true false"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func validateListTasks(sl validator.StructLevel) {
	p := sl.Current().Interface().(ListTasksParams)
	checkRange(sl, p.Page, "page", "Page", 1, math.MaxInt32)
	checkRange(sl, p.Limit, "limit", "Limit", 1, repository.MaxLimit)
}

// checkRange reports integers outside [lo, hi]. Non-digit input is left to the
// field-level number rule.
func checkRange(sl validator.StructLevel, s, field, structField string, lo, hi int) {
	if s == "" || !isDigits(s) {
		return
	}
	n, err := strconv.Atoi(s)
	switch {
	case err != nil || n > hi:
		sl.ReportError(s, field, structField, "lte", strconv.Itoa(hi))
	case n < lo:
		sl.ReportError(s, field, structField, "gte", strconv.Itoa(lo))
	}
}

// Query converts validated parameters, applying page=1 and limit=10 defaults.
func (p ListTasksParams) Query() models.ListTasksQuery {
	q := models.ListTasksQuery{Page: repository.DefaultPage, Limit: repository.DefaultLimit}
	if n, ok := atoi(p.Page); ok {
		q.Page = n
	}
	if n, ok := atoi(p.Limit); ok {
		q.Limit = n
	}
	if p.Completed != "" {
		b := p.Completed == "true"
		q.Completed = &b
	}
	if t, err := time.Parse(dateTimeLayout, p.From); err == nil {
		q.From = &t
	}
	if t, err := time.Parse(dateTimeLayout, p.To); err == nil {
		q.To = &t
	}
	return q
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
