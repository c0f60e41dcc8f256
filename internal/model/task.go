package model

import "time"

// Task status constants.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultCategory is used when a task is created without a category.
const DefaultCategory = "general"

// Task is a unit of work owned by a user.
type Task struct {
	ID             string     `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	Status         string     `json:"status" db:"status"`
	Priority       string     `json:"priority" db:"priority"`
	DueDate        *time.Time `json:"due_date" db:"due_date"`
	CompletedDate  *time.Time `json:"completed_date" db:"completed_date"`
	EstimatedHours float64    `json:"estimated_hours" db:"estimated_hours"`
	ActualHours    float64    `json:"actual_hours" db:"actual_hours"`
	Category       string     `json:"category" db:"category"`
	Tags           []string   `json:"tags" db:"-"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	UserID         string     `json:"user_id" db:"user_id"`

	// Username is populated by queries that join with users.
	Username string `json:"username" db:"-"`
}

// ApplyStatus transitions the task to newStatus and keeps completed_date
// coupled to it: entering completed stamps the completion time once,
// leaving completed clears it. Re-completing an already completed task
// keeps the original timestamp. newStatus is not checked against the
// canonical status set here; callers that want strict statuses validate
// before calling.
func (t *Task) ApplyStatus(newStatus string, now time.Time) {
	t.Status = newStatus
	if newStatus == StatusCompleted {
		if t.CompletedDate == nil {
			completed := now
			t.CompletedDate = &completed
		}
		return
	}
	t.CompletedDate = nil
}

// ValidStatus reports whether s is one of the canonical task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the canonical task priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
