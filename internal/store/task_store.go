package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/model"
)

// taskColumns is the select list shared by all task queries. Tasks always
// come back with the owning user's username joined in.
const taskColumns = `
	tasks.id, tasks.title, tasks.description, tasks.status, tasks.priority,
	tasks.due_date, tasks.completed_date,
	tasks.estimated_hours, tasks.actual_hours,
	tasks.category, tasks.tags,
	tasks.created_at, tasks.updated_at,
	tasks.user_id, users.username`

const taskSelect = "SELECT" + taskColumns + " FROM tasks INNER JOIN users ON tasks.user_id = users.id"

// CreateTask inserts a new task. Generates a UUID if ID is empty and stamps
// created_at/updated_at. The owning user must exist; the existence check
// and the insert run in one transaction.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return model.Task{}, apperrors.Validationf("task title must not be empty")
	}
	if task.UserID == "" {
		return model.Task{}, apperrors.Validationf("task user_id must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Category == "" {
		task.Category = model.DefaultCategory
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var username string
	err = tx.GetContext(ctx, &username,
		"SELECT username FROM users WHERE id = ?", task.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, apperrors.Validationf("user %s does not exist", task.UserID)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("resolving task owner: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, status, priority,
			due_date, completed_date, estimated_hours, actual_hours,
			category, tags, created_at, updated_at, user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CompletedDate, task.EstimatedHours, task.ActualHours,
		task.Category, joinTags(task.Tags), task.CreatedAt, task.UpdatedAt, task.UserID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Task{}, fmt.Errorf("committing task create: %w", err)
	}

	task.Username = username
	if task.Tags == nil {
		task.Tags = []string{}
	}
	return task, nil
}

// GetTaskByID retrieves a single task by ID, including the owner's username.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, taskSelect+" WHERE tasks.id = ?", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// UpdateTask persists a fully merged task row in one statement and stamps
// updated_at. Callers merge partial fields and run the status lifecycle
// before handing the task over; nothing partial is ever written.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, apperrors.Validationf("task title must not be empty")
	}
	task.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?,
			due_date = ?, completed_date = ?,
			estimated_hours = ?, actual_hours = ?,
			category = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CompletedDate,
		task.EstimatedHours, task.ActualHours,
		task.Category, joinTags(task.Tags), task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", task.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, apperrors.NotFound("task", task.ID)
	}

	return s.GetTaskByID(ctx, task.ID)
}

// DeleteTask removes a task by ID. Deletes are permanent; there is no
// soft-delete.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("task", id)
	}
	return nil
}

// GetTasks retrieves tasks matching the filter, ordered by creation time.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		conditions = append(conditions, "tasks.user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, "tasks.due_date >= ?")
		args = append(args, filter.DueAfter.UTC())
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, "tasks.due_date <= ?")
		args = append(args, filter.DueBefore.UTC())
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY tasks.created_at"

	return s.queryTasks(ctx, query, args...)
}

// queryTasks runs a task query and scans all rows. An empty result is an
// empty slice, never nil, so task lists always serialize as JSON arrays.
func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanTask scans a joined task row.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task          model.Task
		dueDate       *time.Time
		completedDate *time.Time
		tags          string
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&dueDate, &completedDate,
		&task.EstimatedHours, &task.ActualHours,
		&task.Category, &tags,
		&task.CreatedAt, &task.UpdatedAt,
		&task.UserID, &task.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.DueDate = dueDate
	task.CompletedDate = completedDate
	task.Tags = splitTags(tags)

	return task, nil
}
