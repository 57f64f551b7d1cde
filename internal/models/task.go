package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Any status is reachable from any other; the only
// cross-cutting constraint is the done/due-date rule in Validate.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	maxTaskTitleLength = 253

	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// DateFormat is the wire format for due dates.
const DateFormat = "2006-01-02"

type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Populated by join queries, not stored on the tasks table.
	ProjectName      string  `json:"-"`
	AssigneeUsername *string `json:"-"`
}

// Common errors
var (
	ErrTaskTitleRequired = &ValidationError{Field: "title", Message: "Title is required"}
	ErrTaskTitleTooLong  = &ValidationError{Field: "title", Message: "Title must be at most 253 characters"}
	ErrInvalidStatus     = &ValidationError{Field: "status", Message: "Status must be one of: todo, in_progress, done"}
	ErrInvalidPriority   = &ValidationError{Field: "priority", Message: "Priority must be between 1 (highest) and 5 (lowest)."}
	ErrFutureDueDate     = &ValidationError{Message: "Completed tasks cannot have a future due date."}
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Validate checks every business rule on the task as it would be persisted
// and reports all violations. now anchors the due-date comparison.
func (t *Task) Validate(now time.Time) error {
	var errs ValidationErrors

	if t.Title == "" {
		errs = append(errs, ErrTaskTitleRequired)
	}
	if len(t.Title) > maxTaskTitleLength {
		errs = append(errs, ErrTaskTitleTooLong)
	}
	if !ValidStatus(t.Status) {
		errs = append(errs, ErrInvalidStatus)
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		errs = append(errs, ErrInvalidPriority)
	}
	if t.Status == StatusDone && t.DueDate != nil {
		if t.DueDate.Format(DateFormat) > now.Format(DateFormat) {
			errs = append(errs, ErrFutureDueDate)
		}
	}

	return errs.ErrorOrNil()
}

// DueDateString returns the due date in wire format, or nil when unset.
func (t *Task) DueDateString() *string {
	if t.DueDate == nil {
		return nil
	}
	s := t.DueDate.Format(DateFormat)
	return &s
}
