package opencrabs

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hunter79-stack/opencrabs/client"
	"github.com/Hunter79-stack/opencrabs/config"
	"github.com/Hunter79-stack/opencrabs/debate"
	"github.com/Hunter79-stack/opencrabs/model"
)

// staticModel answers every completion with a fixed text.
type staticModel struct {
	content string
}

func (m staticModel) Name() string { return "static" }

func (m staticModel) Complete(ctx context.Context, req model.Request) (*model.Response, error) {
	return &model.Response{Content: m.content, Model: "static"}, nil
}

// startBee spins up one Bee gateway backed by a canned model and returns
// its JSON-RPC endpoint.
func startBee(t *testing.T, name, answer string) string {
	t.Helper()

	oc := New(func(o *Options) {
		o.Config = config.Default()
		o.Config.Agent.Name = name
		o.Model = staticModel{content: answer}
	})

	srv := httptest.NewServer(oc.Gateway().Routes())
	t.Cleanup(srv.Close)
	return srv.URL + "/a2a/v1"
}

func TestOpenCrabs_DebateOverHTTP(t *testing.T) {
	endpoints := []string{
		startBee(t, "Bee One", "Microservices add operational cost.\nPosition: monolith first\nConfidence: 0.9\n- simpler deploys"),
		startBee(t, "Bee Two", "Start simple, split later.\nPosition: monolith first\nConfidence: 0.85\n- fewer moving parts"),
	}

	queen := New(func(o *Options) {
		o.Transport = client.New(func(c *client.Options) {
			c.PollInterval = time.Millisecond
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := queen.Debate(ctx, debate.Config{
		Topic:        "Microservices vs monoliths for a new product",
		BeeEndpoints: endpoints,
	})
	require.NoError(t, err)

	assert.Equal(t, debate.StateConcluded, session.State)
	require.NotEmpty(t, session.Rounds)

	last := session.LastRound()
	require.NotNil(t, last)
	require.Len(t, last.Responses, 2)
	assert.Equal(t, "monolith first", last.Responses[0].Position)
	require.NotNil(t, last.Consensus)
	assert.True(t, last.Consensus.ConsensusReached)

	report := session.SummaryReport()
	assert.Contains(t, report, "Bee Colony Debate Report")
	assert.Contains(t, report, "monolith first")
}

func TestOpenCrabs_DebateUsesConfigDefaults(t *testing.T) {
	endpoint := startBee(t, "Solo Bee", "Position: yes\nConfidence: 0.95")

	cfg := config.Default()
	cfg.Debate.BeeEndpoints = []string{endpoint}
	cfg.Debate.MaxRounds = 1
	cfg.Debate.ConsensusThreshold = 0.99

	queen := New(func(o *Options) {
		o.Config = cfg
		o.Transport = client.New(func(c *client.Options) {
			c.PollInterval = time.Millisecond
		})
	})

	session, err := queen.Debate(context.Background(), debate.Config{Topic: "Ship it?"})
	require.NoError(t, err)

	assert.Equal(t, 1, session.Config.MaxRounds)
	assert.InDelta(t, 0.99, session.Config.ConsensusThreshold, 1e-9)
	assert.Equal(t, []string{endpoint}, session.Config.BeeEndpoints)
}

func TestOpenCrabs_ServeDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Gateway.Enabled = false

	oc := New(func(o *Options) {
		o.Config = cfg
	})

	require.NoError(t, oc.Serve(context.Background()))
}

func TestOpenCrabs_DefaultsToPlaceholderModel(t *testing.T) {
	m := modelFromConfig(config.ModelConfig{})
	_, err := m.Complete(context.Background(), model.Request{Prompt: "hello"})
	require.ErrorIs(t, err, model.ErrNotConfigured)
}
