package tasks

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is the externally visible state of one crawl task.
type Record struct {
	TaskID     string    `json:"task_id"`
	Source     string    `json:"source"`
	Status     Status    `json:"status"`
	JobCount   int       `json:"job_count"`
	OutputPath string    `json:"output_path,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
