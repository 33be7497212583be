package task

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hunter79-stack/opencrabs/a2a"
)

func userMessage(text string) a2a.Message {
	return a2a.Message{Role: a2a.RoleUser, Parts: []a2a.Part{a2a.TextPart(text)}}
}

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()

	created := r.Create(userMessage("Hello, agent!"))

	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.ContextID)
	assert.Equal(t, a2a.TaskStateWorking, created.Status.State)
	require.Len(t, created.History, 1)
	assert.Equal(t, "Hello, agent!", created.History[0].Text())
	require.NotNil(t, created.Status.Message)
	assert.Contains(t, created.Status.Message.Text(), "Task created. Processing: Hello, agent!")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Create_UniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		task := r.Create(userMessage("msg"))
		assert.False(t, seen[task.ID], "duplicate task id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestRegistry_Create_KeepsCallerContextID(t *testing.T) {
	r := NewRegistry()
	msg := userMessage("hi")
	msg.ContextID = "ctx-42"

	created := r.Create(msg)
	assert.Equal(t, "ctx-42", created.ContextID)
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("find me"))

	got, err := r.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = r.Get("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Get_ReturnsClone(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("immutable"))

	got, err := r.Get(created.ID)
	require.NoError(t, err)
	got.Status.State = a2a.TaskStateFailed
	got.History[0].Parts[0].Text = "mutated"

	fresh, err := r.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateWorking, fresh.Status.State)
	assert.Equal(t, "immutable", fresh.History[0].Text())
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("cancel me"))

	canceled, err := r.Cancel(created.ID)
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCanceled, canceled.Status.State)

	// A second cancel hits the terminal state and must leave the task alone.
	_, err = r.Cancel(created.ID)
	assert.ErrorIs(t, err, ErrNotCancelable)

	stored, err := r.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCanceled, stored.Status.State)
}

func TestRegistry_Cancel_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Cancel("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Complete(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("Analyze this module"))

	done, err := r.Complete(created.ID, a2a.Message{
		Parts: []a2a.Part{a2a.TextPart("Position: approve\nConfidence: 0.9")},
	})
	require.NoError(t, err)

	assert.Equal(t, a2a.TaskStateCompleted, done.Status.State)
	require.NotNil(t, done.Status.Message)
	assert.Equal(t, a2a.RoleAgent, done.Status.Message.Role)
	assert.Equal(t, created.ID, done.Status.Message.TaskID)
	assert.Equal(t, created.ContextID, done.Status.Message.ContextID)
	assert.NotEmpty(t, done.Status.Message.MessageID)
	require.Len(t, done.History, 2)
	assert.Contains(t, done.History[1].Text(), "Position: approve")
}

func TestRegistry_Fail(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("Analyze this module"))

	failed, err := r.Fail(created.ID, "model unavailable")
	require.NoError(t, err)

	assert.Equal(t, a2a.TaskStateFailed, failed.Status.State)
	assert.Equal(t, "model unavailable", failed.Status.Message.Text())
}

func TestRegistry_Complete_TerminalRejected(t *testing.T) {
	r := NewRegistry()
	created := r.Create(userMessage("Analyze this module"))

	_, err := r.Cancel(created.ID)
	require.NoError(t, err)

	_, err = r.Complete(created.ID, a2a.Message{Parts: []a2a.Part{a2a.TextPart("too late")}})
	require.ErrorIs(t, err, ErrTerminal)

	// The canceled state must survive the rejected transition.
	got, err := r.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCanceled, got.Status.State)
}

func TestRegistry_Complete_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Complete("missing", a2a.Message{Parts: []a2a.Part{a2a.TextPart("x")}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = r.Create(userMessage(fmt.Sprintf("task %d", i))).ID
	}

	for _, id := range ids {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			_, err := r.Get(id)
			assert.NoError(t, err)
		}(id)
		go func(id string) {
			defer wg.Done()
			if _, err := r.Cancel(id); err != nil {
				assert.True(t, errors.Is(err, ErrNotCancelable))
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, len(ids), r.Len())
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 100))
	assert.Equal(t, "abc...", truncateRunes("abcdef", 3))
	// Multi-byte input must not be split mid-rune.
	assert.Equal(t, "héllo...", truncateRunes("héllo wörld", 5))
}
