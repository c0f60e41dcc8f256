package report

import "time"

// Summary is the store-wide status breakdown.
type Summary struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	PendingTasks    int     `json:"pending_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// Category is one group of the per-category report.
type Category struct {
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// TimeTrackingEntry is one completed task's hours.
type TimeTrackingEntry struct {
	Title          string     `json:"title"`
	EstimatedHours float64    `json:"estimated_hours"`
	ActualHours    float64    `json:"actual_hours"`
	CompletedDate  *time.Time `json:"completed_date"`
}

// TimeTracking compares estimated against actual hours over completed tasks.
type TimeTracking struct {
	TotalEstimatedHours float64             `json:"total_estimated_hours"`
	TotalActualHours    float64             `json:"total_actual_hours"`
	AccuracyRate        float64             `json:"accuracy_rate"`
	Tasks               []TimeTrackingEntry `json:"tasks"`
}

// DayActivity is one calendar day of the productivity breakdown.
type DayActivity struct {
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Hours     float64 `json:"hours"`
}

// Productivity summarizes completions over a lookback window with a
// contiguous per-day breakdown.
type Productivity struct {
	TotalCompleted int           `json:"total_completed"`
	TotalHours     float64       `json:"total_hours"`
	ByDay          []DayActivity `json:"by_day"`
}
