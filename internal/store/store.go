package store

import (
	"context"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// TaskFilter controls filtering for task queries. A zero filter matches
// all tasks. Due-date bounds are inclusive.
type TaskFilter struct {
	UserID    *string
	DueAfter  *time.Time
	DueBefore *time.Time
}

// StatusCounts aggregates task counts by lifecycle state.
type StatusCounts struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// CategoryAggregate is one row of the per-category aggregation. Completed
// counts tasks carrying a completion timestamp, which under the status
// lifecycle coupling is the same set as tasks whose status is completed.
type CategoryAggregate struct {
	Category  string
	Total     int
	Completed int
}

// Store defines the persistence interface for users, tasks, and the
// read-only report aggregations.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	// === Report aggregations ===

	TaskStatusCounts(ctx context.Context, now time.Time) (StatusCounts, error)
	CategoryAggregates(ctx context.Context) ([]CategoryAggregate, error)
	CompletedTasks(ctx context.Context) ([]model.Task, error)
	CompletedTasksBetween(ctx context.Context, start, end time.Time) ([]model.Task, error)
}
