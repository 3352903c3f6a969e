package domain

import "time"

// TaskRecord is the last recorded outcome of a task.
type TaskRecord struct {
	TaskName    string        `json:"task_name,omitzero"`
	Status      TaskStatus    `json:"status,omitzero"`
	Fingerprint string        `json:"fingerprint,omitzero"`
	Duration    time.Duration `json:"duration,omitzero"`
	Timestamp   time.Time     `json:"timestamp,omitzero"`
}
