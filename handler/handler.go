package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/logging"
	"github.com/Hunter79-stack/opencrabs/task"
)

// A2A JSON-RPC method names.
const (
	MethodSendMessage = "message/send"
	MethodGetTask     = "tasks/get"
	MethodCancelTask  = "tasks/cancel"
)

// Executor produces the agent's reply to a submitted message. When a
// Handler has one, each accepted message/send is processed on a background
// goroutine and the task is completed (or failed) with the executor's
// result. Without one, tasks stay in the working state until canceled.
type Executor interface {
	Execute(ctx context.Context, msg a2a.Message) (a2a.Message, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, msg a2a.Message) (a2a.Message, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, msg a2a.Message) (a2a.Message, error) {
	return f(ctx, msg)
}

// Options configures a Handler.
type Options struct {
	// Executor processes submitted messages in the background. Optional.
	Executor Executor

	// Logger receives structured dispatch events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Handler dispatches A2A JSON-RPC requests to an injected task registry.
// It is stateless apart from its dependencies and safe for concurrent use.
type Handler struct {
	registry *task.Registry
	executor Executor
	logger   logging.Logger
}

// New creates a Handler bound to the given registry.
func New(registry *task.Registry, optFns ...func(o *Options)) *Handler {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Handler{registry: registry, executor: opts.Executor, logger: opts.Logger}
}

// Dispatch routes the request to the matching method handler. Unknown
// methods yield a method-not-found error echoing the request id. Dispatch
// never panics; every failure mode maps to a structured JSON-RPC error.
func (h *Handler) Dispatch(ctx context.Context, req a2a.Request) a2a.Response {
	switch req.Method {
	case MethodSendMessage:
		return h.handleSendMessage(ctx, req)
	case MethodGetTask:
		return h.handleGetTask(ctx, req)
	case MethodCancelTask:
		return h.handleCancelTask(ctx, req)
	default:
		h.logger.Warn("unknown method", "method", req.Method)
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// handleSendMessage creates a task seeded with the submitted message and
// returns it immediately; the executor, when present, settles the task in
// the background.
func (h *Handler) handleSendMessage(ctx context.Context, req a2a.Request) a2a.Response {
	var params a2a.SendMessageParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInvalidParams,
			fmt.Sprintf("Invalid params: %v", err))
	}
	if len(params.Message.Parts) == 0 {
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInvalidParams,
			"Invalid params: message has no parts")
	}

	t := h.registry.Create(params.Message)
	h.logger.Info("task created via message/send", "task_id", t.ID, "context_id", t.ContextID)

	if h.executor != nil {
		go h.execute(context.WithoutCancel(ctx), t.ID, params.Message)
	}
	return a2a.NewSuccessResponse(req.ID, t)
}

// execute runs the executor for one task and records its outcome. The task
// may have been canceled while the executor ran; that race loses cleanly
// because finished transitions reject terminal tasks.
func (h *Handler) execute(ctx context.Context, taskID string, msg a2a.Message) {
	reply, err := h.executor.Execute(ctx, msg)
	if err != nil {
		h.logger.Warn("executor failed", "task_id", taskID, "error", err)
		if _, failErr := h.registry.Fail(taskID, fmt.Sprintf("processing failed: %v", err)); failErr != nil && !errors.Is(failErr, task.ErrTerminal) {
			h.logger.Error("record task failure", "task_id", taskID, "error", failErr)
		}
		return
	}
	if _, err := h.registry.Complete(taskID, reply); err != nil && !errors.Is(err, task.ErrTerminal) {
		h.logger.Error("record task completion", "task_id", taskID, "error", err)
	}
}

// handleGetTask retrieves a task by id.
func (h *Handler) handleGetTask(_ context.Context, req a2a.Request) a2a.Response {
	params, errResp := decodeTaskIDParams(req)
	if errResp != nil {
		return *errResp
	}

	t, err := h.registry.Get(params.ID)
	if err != nil {
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeTaskNotFound,
			fmt.Sprintf("Task not found: %s", params.ID))
	}
	return a2a.NewSuccessResponse(req.ID, t)
}

// handleCancelTask cancels a running task. Cancellation of a task in a
// terminal state is a clean rejection, not a fault.
func (h *Handler) handleCancelTask(_ context.Context, req a2a.Request) a2a.Response {
	params, errResp := decodeTaskIDParams(req)
	if errResp != nil {
		return *errResp
	}

	t, err := h.registry.Cancel(params.ID)
	switch {
	case errors.Is(err, task.ErrNotFound):
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeTaskNotFound,
			fmt.Sprintf("Task not found: %s", params.ID))
	case errors.Is(err, task.ErrNotCancelable):
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeUnsupportedOperation,
			fmt.Sprintf("Cannot cancel task %s in terminal state", params.ID))
	case err != nil:
		return a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInternalError, err.Error())
	}

	h.logger.Info("task canceled via tasks/cancel", "task_id", params.ID)
	return a2a.NewSuccessResponse(req.ID, t)
}

// decodeTaskIDParams parses {id} params, treating a missing or empty id as
// invalid params so the registry is never touched with garbage input.
func decodeTaskIDParams(req a2a.Request) (a2a.TaskIDParams, *a2a.Response) {
	var params a2a.TaskIDParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		resp := a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInvalidParams,
			fmt.Sprintf("Invalid params: %v", err))
		return params, &resp
	}
	if params.ID == "" {
		resp := a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInvalidParams,
			"Invalid params: missing task id")
		return params, &resp
	}
	return params, nil
}
