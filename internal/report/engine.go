// Package report computes the four read-only aggregate views over the
// task store: summary, by-category, time-tracking, and productivity.
package report

import (
	"context"
	"time"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/store"
)

// dayFormat is the calendar-day key used for productivity bucketing.
const dayFormat = "2006-01-02"

// periodDays maps a productivity period name to its lookback window.
var periodDays = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// Engine computes report aggregates. Reads are snapshot-consistent per
// query; two reports fetched in sequence may reflect different instants.
type Engine struct {
	store store.Store

	// now is the clock; swapped in tests.
	now func() time.Time
}

// NewEngine creates a reporting engine backed by s.
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// Summary returns the store-wide status counts and completion rate.
// An empty store yields a completion rate of 0.
func (e *Engine) Summary(ctx context.Context) (*Summary, error) {
	counts, err := e.store.TaskStatusCounts(ctx, e.now().UTC())
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalTasks:      counts.Total,
		CompletedTasks:  counts.Completed,
		PendingTasks:    counts.Pending,
		InProgressTasks: counts.InProgress,
		OverdueTasks:    counts.Overdue,
		CompletionRate:  rate(float64(counts.Completed), float64(counts.Total)),
	}, nil
}

// ByCategory returns per-category totals and completion rates. Completed
// counts tasks with a completion timestamp; under the status lifecycle
// coupling this coincides with status == completed.
func (e *Engine) ByCategory(ctx context.Context) ([]Category, error) {
	aggregates, err := e.store.CategoryAggregates(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(aggregates))
	for _, agg := range aggregates {
		categories = append(categories, Category{
			Name:           agg.Category,
			Total:          agg.Total,
			Completed:      agg.Completed,
			CompletionRate: rate(float64(agg.Completed), float64(agg.Total)),
		})
	}
	return categories, nil
}

// TimeTracking compares estimated against actual hours over every
// completed task. An accuracy rate over zero actual hours is 0.
func (e *Engine) TimeTracking(ctx context.Context) (*TimeTracking, error) {
	tasks, err := e.store.CompletedTasks(ctx)
	if err != nil {
		return nil, err
	}

	result := &TimeTracking{Tasks: make([]TimeTrackingEntry, 0, len(tasks))}
	for _, t := range tasks {
		result.TotalEstimatedHours += t.EstimatedHours
		result.TotalActualHours += t.ActualHours
		result.Tasks = append(result.Tasks, TimeTrackingEntry{
			Title:          t.Title,
			EstimatedHours: t.EstimatedHours,
			ActualHours:    t.ActualHours,
			CompletedDate:  t.CompletedDate,
		})
	}
	result.AccuracyRate = rate(result.TotalEstimatedHours, result.TotalActualHours)

	return result, nil
}

// Productivity summarizes completions over the period's lookback window
// (week, month, or year). The per-day breakdown covers every calendar day
// from the window start through today inclusive; a task belongs to the
// day its completion timestamp falls on, ignoring time-of-day.
func (e *Engine) Productivity(ctx context.Context, period string) (*Productivity, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, apperrors.Validationf("invalid period %q", period)
	}

	now := e.now().UTC()
	start := now.AddDate(0, 0, -days)

	tasks, err := e.store.CompletedTasksBetween(ctx, start, now)
	if err != nil {
		return nil, err
	}

	result := &Productivity{TotalCompleted: len(tasks)}

	completedByDay := make(map[string]int)
	hoursByDay := make(map[string]float64)
	for _, t := range tasks {
		result.TotalHours += t.ActualHours
		day := t.CompletedDate.UTC().Format(dayFormat)
		completedByDay[day]++
		hoursByDay[day] += t.ActualHours
	}

	result.ByDay = make([]DayActivity, 0, days+1)
	for i := 0; i <= days; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		result.ByDay = append(result.ByDay, DayActivity{
			Date:      day,
			Completed: completedByDay[day],
			Hours:     hoursByDay[day],
		})
	}

	return result, nil
}

// rate returns numerator/denominator as a percentage, defined as 0 when
// the denominator is 0.
func rate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}
