package task

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/logging"
)

// statusPreviewLimit bounds the user text echoed into the creation status
// message.
const statusPreviewLimit = 100

// Options configures a Registry.
type Options struct {
	// Logger receives structured registry events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Registry is a volatile, concurrency-safe store of A2A tasks. A single
// reader/writer lock guards the underlying map; reads take the shared lock,
// create/cancel take the exclusive lock. The lock is held only across map
// access, never across I/O.
type Registry struct {
	mu     sync.RWMutex
	tasks  map[string]*a2a.Task
	logger logging.Logger
}

// NewRegistry constructs an empty in-memory task registry.
func NewRegistry(optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{tasks: make(map[string]*a2a.Task), logger: opts.Logger}
}

// Create stores a new task seeded with the submitted message and returns a
// clone of it. The task starts in the working state; a missing context id is
// defaulted to a fresh UUID.
func (r *Registry) Create(msg a2a.Message) *a2a.Task {
	taskID := uuid.NewString()
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	preview := truncateRunes(msg.Text(), statusPreviewLimit)
	t := &a2a.Task{
		ID:        taskID,
		ContextID: contextID,
		Status: a2a.TaskStatus{
			State: a2a.TaskStateWorking,
			Message: &a2a.Message{
				MessageID: uuid.NewString(),
				ContextID: contextID,
				TaskID:    taskID,
				Role:      a2a.RoleAgent,
				Parts:     []a2a.Part{a2a.TextPart(fmt.Sprintf("Task created. Processing: %s", preview))},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Artifacts: []a2a.Artifact{},
		History:   []a2a.Message{msg},
	}

	r.mu.Lock()
	r.tasks[taskID] = t
	r.mu.Unlock()

	r.logger.Info("task created", "task_id", taskID, "context_id", contextID)
	return cloneTask(t)
}

// Get returns a clone of the task with the given id or ErrNotFound.
func (r *Registry) Get(id string) (*a2a.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTask(t), nil
}

// Cancel transitions the task to the canceled state and refreshes its status
// timestamp, returning a clone of the updated task. Cancellation of a task
// already in a terminal state returns ErrNotCancelable and leaves the stored
// task untouched.
func (r *Registry) Cancel(id string) (*a2a.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status.State.Terminal() {
		return nil, fmt.Errorf("%w: task %s is %s", ErrNotCancelable, id, t.Status.State)
	}
	t.Status.State = a2a.TaskStateCanceled
	t.Status.Timestamp = time.Now().UTC().Format(time.RFC3339)

	r.logger.Info("task canceled", "task_id", id)
	return cloneTask(t), nil
}

// Complete transitions the task to the completed state, records reply as the
// final status message and appends it to the history. Completing a task that
// already settled returns ErrTerminal.
func (r *Registry) Complete(id string, reply a2a.Message) (*a2a.Task, error) {
	return r.finish(id, a2a.TaskStateCompleted, reply)
}

// Fail transitions the task to the failed state with reason as the status
// message text. Failing a task that already settled returns ErrTerminal.
func (r *Registry) Fail(id string, reason string) (*a2a.Task, error) {
	return r.finish(id, a2a.TaskStateFailed, a2a.Message{
		Role:  a2a.RoleAgent,
		Parts: []a2a.Part{a2a.TextPart(reason)},
	})
}

func (r *Registry) finish(id string, state a2a.TaskState, reply a2a.Message) (*a2a.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status.State.Terminal() {
		return nil, fmt.Errorf("%w: task %s is %s", ErrTerminal, id, t.Status.State)
	}

	if reply.MessageID == "" {
		reply.MessageID = uuid.NewString()
	}
	reply.ContextID = t.ContextID
	reply.TaskID = t.ID
	reply.Role = a2a.RoleAgent

	t.Status.State = state
	t.Status.Message = &reply
	t.Status.Timestamp = time.Now().UTC().Format(time.RFC3339)
	t.History = append(t.History, reply)

	r.logger.Info("task finished", "task_id", id, "state", state)
	return cloneTask(t), nil
}

// Len returns the number of stored tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// cloneTask deep copies slices and top-level maps so callers can mutate the
// returned task without affecting registry state.
func cloneTask(t *a2a.Task) *a2a.Task {
	c := *t
	c.Artifacts = make([]a2a.Artifact, len(t.Artifacts))
	copy(c.Artifacts, t.Artifacts)
	c.History = make([]a2a.Message, len(t.History))
	copy(c.History, t.History)
	if t.Status.Message != nil {
		msg := *t.Status.Message
		c.Status.Message = &msg
	}
	if t.Metadata != nil {
		c.Metadata = make(map[string]any, len(t.Metadata))
		for k, v := range t.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// truncateRunes shortens s to at most limit runes, appending an ellipsis
// when truncation occurred. Safe on multi-byte input.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
