package task

// CreateRequest carries the fields for creating a task. Title and UserID
// are required; everything else falls back to the model defaults.
type CreateRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours float64  `json:"estimated_hours"`
	ActualHours    float64  `json:"actual_hours"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	UserID         string   `json:"user_id"`
}

// UpdateRequest carries a partial task update. Nil fields keep the
// existing value; set fields replace it.
type UpdateRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	ActualHours    *float64 `json:"actual_hours"`
	Category       *string  `json:"category"`
	Tags           []string `json:"tags"`
}
