package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) (Task, error)
	GetTask(ctx context.Context, id int) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id int) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)
}
