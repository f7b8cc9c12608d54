package domain

// Agent task states reported by the backend while a long-running job
// (analysis, training) is in flight.
const (
	TaskPending   = "pending"
	TaskRunning   = "running"
	TaskCompleted = "completed"
	TaskFailed    = "failed"
)

// TaskStatus is one polled snapshot of an agent task.
type TaskStatus struct {
	TaskID   string  `json:"task_id"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message,omitempty"`
}

// Terminal reports whether the task has finished and polling should stop.
func (s TaskStatus) Terminal() bool {
	return s.State == TaskCompleted || s.State == TaskFailed
}
