package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/debate"
	"github.com/Hunter79-stack/opencrabs/handler"
	"github.com/Hunter79-stack/opencrabs/logging"
)

const (
	defaultTimeout      = 2 * time.Minute
	defaultPollInterval = 500 * time.Millisecond
)

// Options configures the Client.
type Options struct {
	// HTTPClient is the underlying HTTP client. Defaults to a client with
	// Timeout applied per request.
	HTTPClient *http.Client

	// Timeout bounds a single HTTP round trip, not the whole task. Ignored
	// when HTTPClient is set.
	Timeout time.Duration

	// PollInterval is the delay between tasks/get polls while a task is
	// still working.
	PollInterval time.Duration

	// Logger is the logger to use. Defaults to the package default logger.
	Logger logging.Logger
}

// Client talks JSON-RPC to remote Bee endpoints. It implements
// debate.Transport, so a Runner can fan rounds out over HTTP without
// knowing anything about the wire format.
type Client struct {
	http         *http.Client
	pollInterval time.Duration
	logger       logging.Logger
}

// New creates a Client.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Timeout:      defaultTimeout,
		PollInterval: defaultPollInterval,
		Logger:       logging.NewDefaultSlogLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &Client{
		http:         httpClient,
		pollInterval: opts.PollInterval,
		logger:       opts.Logger,
	}
}

// Send delivers msg to the Bee at endpoint via message/send, waits for the
// resulting task to reach a terminal state and parses the agent's final
// output into a BeeResponse. It blocks until the task settles, the context
// is done, or the endpoint reports an error.
func (c *Client) Send(ctx context.Context, endpoint string, msg a2a.Message) (debate.BeeResponse, error) {
	var task a2a.Task
	if err := c.call(ctx, endpoint, handler.MethodSendMessage, a2a.SendMessageParams{Message: msg}, &task); err != nil {
		return debate.BeeResponse{}, fmt.Errorf("send message to %s: %w", endpoint, err)
	}

	c.logger.Debug("task created", "endpoint", endpoint, "taskId", task.ID, "state", task.Status.State)

	final, err := c.awaitTerminal(ctx, endpoint, task)
	if err != nil {
		return debate.BeeResponse{}, err
	}

	switch final.Status.State {
	case a2a.TaskStateFailed:
		return debate.BeeResponse{}, fmt.Errorf("task %s failed: %s", final.ID, statusText(final))
	case a2a.TaskStateCanceled:
		return debate.BeeResponse{}, fmt.Errorf("task %s was canceled", final.ID)
	}

	content := agentOutput(final)
	if content == "" {
		return debate.BeeResponse{}, fmt.Errorf("task %s completed without agent output", final.ID)
	}
	return debate.ParseResponse(beeID(endpoint), endpoint, content), nil
}

// awaitTerminal polls tasks/get until the task settles. The first poll is
// skipped when the send reply is already terminal.
func (c *Client) awaitTerminal(ctx context.Context, endpoint string, task a2a.Task) (a2a.Task, error) {
	for !task.Status.State.Terminal() {
		select {
		case <-ctx.Done():
			return a2a.Task{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}
		if err := c.call(ctx, endpoint, handler.MethodGetTask, a2a.TaskIDParams{ID: task.ID}, &task); err != nil {
			return a2a.Task{}, fmt.Errorf("poll task %s: %w", task.ID, err)
		}
	}
	return task, nil
}

// call performs a single JSON-RPC round trip and decodes the result into
// out. A JSON-RPC error in the reply is returned as *a2a.Error.
func (c *Client) call(ctx context.Context, endpoint, method string, params, out any) error {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	body, err := json.Marshal(a2a.Request{
		JSONRPC: a2a.Version,
		Method:  method,
		Params:  rawParams,
		ID:      uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var rpcResp a2a.Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// statusText returns the text of the task's status message, if any.
func statusText(task a2a.Task) string {
	if task.Status.Message == nil {
		return "no status message"
	}
	return task.Status.Message.Text()
}

// agentOutput extracts the agent's final text from a completed task: the
// status message when present, otherwise the last agent-role message in
// the history.
func agentOutput(task a2a.Task) string {
	if task.Status.Message != nil && task.Status.Message.Role == a2a.RoleAgent {
		if text := task.Status.Message.Text(); text != "" {
			return text
		}
	}
	for i := len(task.History) - 1; i >= 0; i-- {
		if task.History[i].Role == a2a.RoleAgent {
			if text := task.History[i].Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// beeID derives a stable Bee identifier from the endpoint URL host.
func beeID(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
