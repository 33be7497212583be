package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/handler"
	"github.com/Hunter79-stack/opencrabs/task"
)

func newTestGateway(t *testing.T) *httptest.Server {
	t.Helper()

	registry := task.NewRegistry()
	h := handler.New(registry)
	g := New(h, func(o *Options) {
		o.Version = "0.1.0-test"
	})

	srv := httptest.NewServer(g.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postRPC(t *testing.T, srv *httptest.Server, body string) a2a.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/a2a/v1", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rpcResp a2a.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return rpcResp
}

func TestGateway_AgentCard(t *testing.T) {
	srv := newTestGateway(t)

	resp, err := http.Get(srv.URL + "/.well-known/agent.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var card a2a.AgentCard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&card))

	assert.Contains(t, card.Name, "OpenCrabs")
	assert.Len(t, card.Skills, 3)
	require.Len(t, card.SupportedInterfaces, 1)
	assert.Equal(t, "JSONRPC", card.SupportedInterfaces[0].ProtocolBinding)
	assert.True(t, strings.HasSuffix(card.SupportedInterfaces[0].URL, "/a2a/v1"))
	require.NotNil(t, card.Provider)
	assert.Equal(t, "OpenCrabs Contributors", card.Provider.Organization)
	require.NotNil(t, card.Capabilities)
	assert.False(t, card.Capabilities.Streaming)
	assert.True(t, card.Capabilities.StateTransitionHistory)
}

func TestGateway_Health(t *testing.T) {
	srv := newTestGateway(t)

	resp, err := http.Get(srv.URL + "/a2a/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))

	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "0.1.0-test", health["version"])
	assert.Equal(t, "A2A", health["protocol"])
	assert.Equal(t, "1.0", health["protocolVersion"])
}

func TestGateway_JSONRPC_TaskLifecycle(t *testing.T) {
	srv := newTestGateway(t)

	sendResp := postRPC(t, srv, `{
		"jsonrpc": "2.0",
		"method": "message/send",
		"params": {"message": {"role": "user", "parts": [{"text": "Hello from the colony"}]}},
		"id": 1
	}`)
	require.Nil(t, sendResp.Error)
	assert.Equal(t, float64(1), sendResp.ID)

	var created a2a.Task
	require.NoError(t, json.Unmarshal(sendResp.Result, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, a2a.TaskStateWorking, created.Status.State)

	getBody, err := json.Marshal(a2a.Request{
		JSONRPC: a2a.Version,
		Method:  handler.MethodGetTask,
		Params:  json.RawMessage(`{"id": "` + created.ID + `"}`),
		ID:      2,
	})
	require.NoError(t, err)
	getResp := postRPC(t, srv, string(bytes.TrimSpace(getBody)))
	require.Nil(t, getResp.Error)

	var fetched a2a.Task
	require.NoError(t, json.Unmarshal(getResp.Result, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	cancelResp := postRPC(t, srv, `{
		"jsonrpc": "2.0",
		"method": "tasks/cancel",
		"params": {"id": "`+created.ID+`"},
		"id": 3
	}`)
	require.Nil(t, cancelResp.Error)

	var canceled a2a.Task
	require.NoError(t, json.Unmarshal(cancelResp.Result, &canceled))
	assert.Equal(t, a2a.TaskStateCanceled, canceled.Status.State)
}

func TestGateway_JSONRPC_WrongVersion(t *testing.T) {
	srv := newTestGateway(t)

	resp := postRPC(t, srv, `{"jsonrpc": "1.0", "method": "message/send", "id": 7}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, a2a.ErrorCodeInvalidRequest, resp.Error.Code)
	assert.Equal(t, float64(7), resp.ID)
}

func TestGateway_JSONRPC_MalformedBody(t *testing.T) {
	srv := newTestGateway(t)

	resp := postRPC(t, srv, `{not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, a2a.ErrorCodeParseError, resp.Error.Code)
}

func TestGateway_JSONRPC_UnknownMethod(t *testing.T) {
	srv := newTestGateway(t)

	resp := postRPC(t, srv, `{"jsonrpc": "2.0", "method": "tasks/stream", "id": 9}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, a2a.ErrorCodeMethodNotFound, resp.Error.Code)
}

func TestNewAgentCard_Defaults(t *testing.T) {
	card := NewAgentCard("127.0.0.1", 18789)

	assert.Equal(t, "http://127.0.0.1:18789/a2a/v1", card.SupportedInterfaces[0].URL)
	assert.Len(t, card.Skills, 3)

	ids := make([]string, 0, len(card.Skills))
	for _, skill := range card.Skills {
		ids = append(ids, skill.ID)
	}
	assert.ElementsMatch(t, []string{"code-analysis", "research", "debate"}, ids)
}

func TestNewAgentCard_Overrides(t *testing.T) {
	card := NewAgentCard("0.0.0.0", 9000, func(o *CardOptions) {
		o.Name = "Worker Bee"
		o.Version = "2.0.0"
		o.Skills = []a2a.AgentSkill{{ID: "debate", Name: "Multi-Agent Debate"}}
	})

	assert.Equal(t, "Worker Bee (v2.0.0)", card.Name)
	assert.Equal(t, "2.0.0", card.Version)
	assert.Len(t, card.Skills, 1)
}
