package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// TaskStatusCounts returns the per-status counts over all tasks. A task is
// overdue when its due date has passed and it has not been completed; now
// is passed in so callers control the reference instant.
func (s *SQLiteStore) TaskStatusCounts(ctx context.Context, now time.Time) (StatusCounts, error) {
	const query = `
		SELECT
			COUNT(*),
			COALESCE(SUM(status = 'completed'), 0),
			COALESCE(SUM(status = 'pending'), 0),
			COALESCE(SUM(status = 'in_progress'), 0),
			COALESCE(SUM(due_date IS NOT NULL AND due_date < ? AND status != 'completed'), 0)
		FROM tasks`

	var counts StatusCounts
	err := s.db.QueryRowxContext(ctx, query, now.UTC()).Scan(
		&counts.Total, &counts.Completed, &counts.Pending,
		&counts.InProgress, &counts.Overdue,
	)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("counting tasks by status: %w", err)
	}
	return counts, nil
}

// CategoryAggregates groups all tasks by category. COUNT(completed_date)
// counts only non-null completion timestamps.
func (s *SQLiteStore) CategoryAggregates(ctx context.Context) ([]CategoryAggregate, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT category, COUNT(*), COUNT(completed_date)
		FROM tasks
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("aggregating tasks by category: %w", err)
	}
	defer rows.Close()

	var aggregates []CategoryAggregate
	for rows.Next() {
		var agg CategoryAggregate
		if err := rows.Scan(&agg.Category, &agg.Total, &agg.Completed); err != nil {
			return nil, fmt.Errorf("scanning category aggregate: %w", err)
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, rows.Err()
}

// CompletedTasks retrieves every task carrying a completion timestamp,
// ordered by completion time.
func (s *SQLiteStore) CompletedTasks(ctx context.Context) ([]model.Task, error) {
	return s.queryTasks(ctx,
		taskSelect+" WHERE tasks.completed_date IS NOT NULL ORDER BY tasks.completed_date")
}

// CompletedTasksBetween retrieves tasks completed within [start, end],
// inclusive of both endpoints.
func (s *SQLiteStore) CompletedTasksBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	return s.queryTasks(ctx,
		taskSelect+" WHERE tasks.completed_date >= ? AND tasks.completed_date <= ? ORDER BY tasks.completed_date",
		start.UTC(), end.UTC())
}
