package debate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hunter79-stack/opencrabs/a2a"
)

// scriptedTransport answers each endpoint from a fixed table and records
// the messages it saw.
type scriptedTransport struct {
	mu        sync.Mutex
	responses map[string]BeeResponse
	failing   map[string]error
	seen      []a2a.Message
}

func (t *scriptedTransport) Send(_ context.Context, endpoint string, msg a2a.Message) (BeeResponse, error) {
	t.mu.Lock()
	t.seen = append(t.seen, msg)
	t.mu.Unlock()
	if err, ok := t.failing[endpoint]; ok {
		return BeeResponse{}, err
	}
	resp, ok := t.responses[endpoint]
	if !ok {
		return BeeResponse{}, fmt.Errorf("no scripted response for %s", endpoint)
	}
	return resp, nil
}

func proTransport(cfg Config, confidence float64) *scriptedTransport {
	responses := make(map[string]BeeResponse, len(cfg.BeeEndpoints))
	for i, ep := range cfg.BeeEndpoints {
		responses[ep] = BeeResponse{
			BeeID:      fmt.Sprintf("bee-%d", i+1),
			Endpoint:   ep,
			Content:    "analysis",
			Confidence: confidence,
			Position:   "pro",
		}
	}
	return &scriptedTransport{responses: responses}
}

func TestRunner_Run_ConcludesOnConsensus(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	transport := proTransport(cfg, 0.9)

	runner := NewRunner(transport)
	require.NoError(t, runner.Run(context.Background(), s))

	assert.Equal(t, StateConcluded, s.State)
	assert.Equal(t, 1, s.CurrentRound)
	require.Len(t, s.Rounds, 1)
	assert.Len(t, s.Rounds[0].Responses, 3)
	// Responses keep endpoint order.
	for i, resp := range s.Rounds[0].Responses {
		assert.Equal(t, cfg.BeeEndpoints[i], resp.Endpoint)
	}
}

func TestRunner_Run_ExhaustsWithoutConsensus(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	transport := proTransport(cfg, 0.4) // confident cluster, low confidence

	runner := NewRunner(transport)
	require.NoError(t, runner.Run(context.Background(), s))

	assert.Equal(t, StateExhausted, s.State)
	assert.Len(t, s.Rounds, cfg.MaxRounds)

	// Round 2 was a critique round referencing round 1 participants.
	assert.Contains(t, s.Rounds[1].Prompt, "Critique & Synthesis")
	assert.Contains(t, s.Rounds[1].Prompt, "### Bee bee-1")
}

func TestRunner_Run_RejectsEmptyEndpoints(t *testing.T) {
	cfg := testConfig()
	cfg.BeeEndpoints = nil
	s := NewSession(cfg)

	runner := NewRunner(proTransport(testConfig(), 0.9))
	err := runner.Run(context.Background(), s)

	require.Error(t, err)
	assert.Equal(t, StatePending, s.State)
}

func TestRunner_RunRound_DropsFailedBees(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	transport := proTransport(cfg, 0.9)
	transport.failing = map[string]error{cfg.BeeEndpoints[1]: fmt.Errorf("connection refused")}

	runner := NewRunner(transport)
	require.NoError(t, runner.RunRound(context.Background(), s))

	require.Len(t, s.Rounds, 1)
	responses := s.Rounds[0].Responses
	require.Len(t, responses, 2)
	assert.Equal(t, cfg.BeeEndpoints[0], responses[0].Endpoint)
	assert.Equal(t, cfg.BeeEndpoints[2], responses[1].Endpoint)
}

func TestRunner_RunRound_CancelledContextRecordsNothing(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	transport := proTransport(cfg, 0.9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(transport)
	err := runner.RunRound(ctx, s)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Rounds, "partial rounds must not be recorded")
	assert.Equal(t, 0, s.CurrentRound)
}

func TestRunner_RunRound_SetsInRoundWhileOutstanding(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)

	var observed State
	var once sync.Once
	transport := TransportFunc(func(_ context.Context, endpoint string, _ a2a.Message) (BeeResponse, error) {
		once.Do(func() { observed = s.State })
		return BeeResponse{BeeID: endpoint, Endpoint: endpoint, Confidence: 0.9, Position: "pro"}, nil
	})

	runner := NewRunner(transport)
	require.NoError(t, runner.RunRound(context.Background(), s))
	assert.Equal(t, StateInRound, observed)
}

func TestRunner_RunRound_TerminalSessionRejected(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	runner := NewRunner(proTransport(cfg, 0.9))

	require.NoError(t, runner.Run(context.Background(), s))
	require.True(t, s.State.Terminal())

	assert.Error(t, runner.RunRound(context.Background(), s))
}

func TestRunner_Run_Synthesize(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)

	runner := NewRunner(proTransport(cfg, 0.9), func(o *RunnerOptions) {
		o.Synthesize = func(_ context.Context, s *Session) (string, error) {
			points := s.LastRound().Consensus.AgreementPoints
			return "Synthesis: " + strings.Join(points, "; "), nil
		}
	})
	require.NoError(t, runner.Run(context.Background(), s))

	assert.Equal(t, "Synthesis: pro (3/3 agree)", s.FinalSynthesis)
	assert.Contains(t, s.SummaryReport(), "## Final Synthesis")
}

func TestRunner_Run_SynthesizeFailureIsNotFatal(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)

	runner := NewRunner(proTransport(cfg, 0.9), func(o *RunnerOptions) {
		o.Synthesize = func(context.Context, *Session) (string, error) {
			return "", fmt.Errorf("model unavailable")
		}
	})
	require.NoError(t, runner.Run(context.Background(), s))
	assert.Empty(t, s.FinalSynthesis)
}
