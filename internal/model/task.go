package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrTitleRequired   = errors.New("model: task title is required")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDueDate  = errors.New("model: invalid task due date")
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "January 02, 2006"
	DefaultPriority   = 1
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists the allowed values in the order the form cycles through them.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Label is the human form used by the UI ("In Progress").
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Next returns the status after s in Statuses, wrapping around.
func (s Status) Next() Status {
	for i, item := range Statuses {
		if item == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// Prev returns the status before s in Statuses, wrapping around.
func (s Status) Prev() Status {
	for i, item := range Statuses {
		if item == s {
			return Statuses[(i+len(Statuses)-1)%len(Statuses)]
		}
	}
	return StatusPending
}

// Task is the record exchanged with the task store. ID and CreatedAt are
// owned by the store and only ever echoed back.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Priority    int    `json:"priority"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreatedTime parses CreatedAt. Missing or unparsable values yield the Unix
// epoch so such tasks order with the oldest.
func (t Task) CreatedTime() time.Time {
	tm, ok := parseTimestamp(t.CreatedAt)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return tm
}

// Draft is the editable part of a task.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	Priority    int    `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
}

func NewDraft() Draft {
	return Draft{
		Status:   StatusPending,
		Priority: DefaultPriority,
	}
}

// ResetDraft is the state a form returns to after a successful submit.
func ResetDraft(now time.Time) Draft {
	d := NewDraft()
	d.DueDate = now.Format(DateLayout)
	return d
}

func DraftFromTask(t Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     DateOnly(t.DueDate),
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == 0 {
		d.Priority = DefaultPriority
	}
	return d
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrTitleRequired}
	}
	if !d.Status.IsValid() {
		return &ValidationError{Field: "status", Err: fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)}
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return &ValidationError{Field: "due_date", Err: fmt.Errorf("%w: %q", ErrInvalidDueDate, d.DueDate)}
		}
	}
	return nil
}

// ApplyDraft returns base with the draft's editable fields copied over.
// Only title, description, status, priority and due_date are taken from d;
// ID and CreatedAt always come from base.
func ApplyDraft(base Task, d Draft) Task {
	out := base
	out.Title = d.Title
	out.Description = d.Description
	out.Status = d.Status
	out.Priority = d.Priority
	out.DueDate = d.DueDate
	return out
}

// ParsePriority coerces form input to a priority. Blank input means the default.
func ParsePriority(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultPriority, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: "priority", Err: fmt.Errorf("%w: %q", ErrInvalidPriority, raw)}
	}
	return v, nil
}

type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
