package models

import "time"

// TaskStatus is the lifecycle state of a video generation task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusFailed:
		return true
	}
	return false
}

// VideoTask tracks one shorts-video render job. Tasks are keyed by an opaque
// token rather than a sequential id because the token is handed straight to
// the client for polling.
type VideoTask struct {
	ID          string     `json:"task_id"`
	Status      TaskStatus `json:"status"`
	Script      string     `json:"script"`
	SearchQuery string     `json:"search_query"`
	VideoURL    string     `json:"video_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Clone returns a value copy of the task.
func (v *VideoTask) Clone() *VideoTask {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
