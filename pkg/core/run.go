package core

import "time"

// RunStatus represents the status of a check run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one invocation of the checker over a set of files.
type Run struct {
	ID          string     `json:"id"`
	ConfigHash  string     `json:"config_hash"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Files       int        `json:"files"`
	Skipped     int        `json:"skipped"`
	Violations  int        `json:"violations"`
	Error       string     `json:"error,omitempty"`
}
