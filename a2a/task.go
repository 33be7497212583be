package a2a

// TaskState enumerates the lifecycle states of a task.
type TaskState string

const (
	// TaskStateSubmitted means the task was received but work has not started.
	TaskStateSubmitted TaskState = "submitted"
	// TaskStateWorking means the task is being processed.
	TaskStateWorking TaskState = "working"
	// TaskStateInputRequired means the task is paused waiting for caller input.
	TaskStateInputRequired TaskState = "inputRequired"
	// TaskStateCompleted means the task finished successfully. Terminal.
	TaskStateCompleted TaskState = "completed"
	// TaskStateFailed means the task finished with an error. Terminal.
	TaskStateFailed TaskState = "failed"
	// TaskStateCanceled means the task was canceled by the caller. Terminal.
	TaskStateCanceled TaskState = "canceled"
)

// Terminal reports whether the state admits no further transitions.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	}
	return false
}

// TaskStatus captures the current state of a task together with the last
// status message and the timestamp of the most recent transition (RFC 3339).
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// Artifact is an output produced while working on a task.
type Artifact struct {
	ArtifactID string         `json:"artifactId,omitempty"`
	Name       string         `json:"name,omitempty"`
	Parts      []Part         `json:"parts"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Task is the unit of delegated work exchanged over A2A. History holds the
// ordered messages that led to the current status.
type Task struct {
	ID        string         `json:"id"`
	ContextID string         `json:"contextId,omitempty"`
	Status    TaskStatus     `json:"status"`
	Artifacts []Artifact     `json:"artifacts"`
	History   []Message      `json:"history"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SendMessageParams are the parameters of the `message/send` method.
type SendMessageParams struct {
	Message Message `json:"message"`
}

// TaskIDParams are the parameters of the `tasks/get` and `tasks/cancel`
// methods.
type TaskIDParams struct {
	ID string `json:"id"`
}
