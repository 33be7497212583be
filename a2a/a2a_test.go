package a2a

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskState_Terminal(t *testing.T) {
	terminal := []TaskState{TaskStateCompleted, TaskStateFailed, TaskStateCanceled}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), "state %s should be terminal", s)
	}

	open := []TaskState{TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired}
	for _, s := range open {
		assert.False(t, s.Terminal(), "state %s should not be terminal", s)
	}
}

func TestMessage_Text(t *testing.T) {
	msg := Message{
		Role: RoleUser,
		Parts: []Part{
			TextPart("first"),
			{Data: map[string]any{"k": "v"}},
			TextPart("second"),
		},
	}
	assert.Equal(t, "first\nsecond", msg.Text())

	assert.Empty(t, Message{Role: RoleUser}.Text())
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(json.Number("7"), map[string]string{"ok": "yes"})

	assert.Equal(t, Version, resp.JSONRPC)
	assert.Equal(t, json.Number("7"), resp.ID)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)

	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, "yes", result["ok"])
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("req-1", ErrorCodeTaskNotFound, "Task not found: x")

	assert.Equal(t, Version, resp.JSONRPC)
	assert.Equal(t, "req-1", resp.ID)
	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrorCodeTaskNotFound, resp.Error.Code)
	assert.EqualError(t, resp.Error, "jsonrpc error -32001: Task not found: x")
}

func TestRequest_UnmarshalKeepsRawParams(t *testing.T) {
	raw := `{
		"jsonrpc": "2.0",
		"method": "message/send",
		"params": {"message": {"role": "user", "parts": [{"text": "hello"}]}},
		"id": 1
	}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	assert.Equal(t, "message/send", req.Method)

	var params SendMessageParams
	require.NoError(t, json.Unmarshal(req.Params, &params))
	assert.Equal(t, RoleUser, params.Message.Role)
	assert.Equal(t, "hello", params.Message.Text())
}

func TestTask_UnmarshalStatus(t *testing.T) {
	raw := `{
		"id": "1",
		"contextId": "2",
		"status": {
			"state": "failed",
			"timestamp": "2025-04-17T10:34:18.117Z",
			"message": {"role": "agent", "parts": [{"text": "boom"}]}
		},
		"artifacts": [],
		"history": []
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, "1", task.ID)
	assert.Equal(t, TaskStateFailed, task.Status.State)
	require.NotNil(t, task.Status.Message)
	assert.Equal(t, "boom", task.Status.Message.Text())
}
