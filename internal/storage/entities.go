package storage

import "time"

type Task struct {
	ID          int
	Title       string
	Description string
	Status      string
	Priority    int
	DueDate     string
	CreatedAt   time.Time
}

// TaskListFilter narrows ListTasks. Empty fields match everything.
type TaskListFilter struct {
	Search string
	Status string
}
