// Package task implements the task CRUD surface and the status lifecycle
// coupling on top of the store.
package task

import (
	"context"
	"time"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
)

// dateFormats are the accepted due-date layouts, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Service provides task operations over a Store.
type Service struct {
	store store.Store

	// now is the clock; swapped in tests.
	now func() time.Time
}

// NewService creates a task service backed by s.
func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Create validates the request and inserts a new task. Status defaults to
// pending; a task created directly as completed gets its completion
// timestamp stamped so the status/completed_date coupling holds from the
// first write.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Task, error) {
	if req.Title == "" {
		return nil, apperrors.Validationf("title is required")
	}
	if req.UserID == "" {
		return nil, apperrors.Validationf("user_id is required")
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return nil, apperrors.Validationf("invalid status %q", req.Status)
	}
	if req.Priority != "" && !model.ValidPriority(req.Priority) {
		return nil, apperrors.Validationf("invalid priority %q", req.Priority)
	}
	if req.EstimatedHours < 0 {
		return nil, apperrors.Validationf("estimated_hours must be non-negative")
	}
	if req.ActualHours < 0 {
		return nil, apperrors.Validationf("actual_hours must be non-negative")
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	t := model.Task{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		DueDate:        dueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Category:       req.Category,
		Tags:           req.Tags,
		UserID:         req.UserID,
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	t.ApplyStatus(status, s.now().UTC())

	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update to the task: set fields replace the
// stored value, nil fields keep it. A status change runs through the
// lifecycle coupling before the merged row is persisted atomically.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*model.Task, error) {
	t, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.Validationf("title must not be empty")
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return nil, apperrors.Validationf("invalid priority %q", *req.Priority)
		}
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		// An explicitly empty due date clears the stored one; an absent
		// field keeps it.
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = dueDate
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			return nil, apperrors.Validationf("estimated_hours must be non-negative")
		}
		t.EstimatedHours = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		if *req.ActualHours < 0 {
			return nil, apperrors.Validationf("actual_hours must be non-negative")
		}
		t.ActualHours = *req.ActualHours
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.Tags != nil {
		t.Tags = req.Tags
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, apperrors.Validationf("invalid status %q", *req.Status)
		}
		t.ApplyStatus(*req.Status, s.now().UTC())
	}

	return s.store.UpdateTask(ctx, *t)
}

// Delete removes a task permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTask(ctx, id)
}

// Get retrieves a single task.
func (s *Service) Get(ctx context.Context, id string) (*model.Task, error) {
	return s.store.GetTaskByID(ctx, id)
}

// List retrieves tasks matching the filter.
func (s *Service) List(ctx context.Context, filter store.TaskFilter) ([]model.Task, error) {
	return s.store.GetTasks(ctx, filter)
}

// ParseDate parses a date string in any of the accepted layouts and
// normalizes it to UTC. A malformed string is a validation failure.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validationf("invalid date %q", value)
}

// parseDate parses an optional date string; nil means no date.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
