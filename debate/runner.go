package debate

import (
	"context"
	"fmt"
	"sync"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/logging"
)

// Transport delivers one round message to a Bee endpoint and returns its
// response. Implementations must be safe for concurrent use; the runner
// invokes Send once per endpoint in parallel. Timeouts and retries are the
// transport's concern.
type Transport interface {
	Send(ctx context.Context, endpoint string, msg a2a.Message) (BeeResponse, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, endpoint string, msg a2a.Message) (BeeResponse, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, endpoint string, msg a2a.Message) (BeeResponse, error) {
	return f(ctx, endpoint, msg)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Logger receives structured debate events. Defaults to NoOpLogger.
	Logger logging.Logger

	// Synthesize, when set, is invoked once the debate reaches a terminal
	// state; its result becomes the session's final synthesis. A failure
	// is logged and the synthesis left empty rather than failing the run.
	Synthesize func(ctx context.Context, s *Session) (string, error)
}

// Runner is the Queen-side orchestrator: it drives a session round by
// round, fanning each round's messages out to all Bee endpoints
// concurrently, joining on the full set and recording the collected
// responses.
type Runner struct {
	transport  Transport
	logger     logging.Logger
	synthesize func(ctx context.Context, s *Session) (string, error)
}

// NewRunner creates a Runner using the given transport.
func NewRunner(transport Transport, optFns ...func(o *RunnerOptions)) *Runner {
	opts := RunnerOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{transport: transport, logger: opts.Logger, synthesize: opts.Synthesize}
}

// Run validates the configuration and drives the session until it reaches
// a terminal state or the context is cancelled.
func (r *Runner) Run(ctx context.Context, s *Session) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	for !s.State.Terminal() {
		if err := r.RunRound(ctx, s); err != nil {
			return err
		}
	}
	if r.synthesize != nil {
		synthesis, err := r.synthesize(ctx, s)
		if err != nil {
			r.logger.Warn("final synthesis failed", "debate_session_id", s.ID, "error", err)
		} else {
			s.FinalSynthesis = synthesis
		}
	}
	return nil
}

// RunRound executes the next round: builds the round messages, marks the
// session in-round, sends all messages concurrently, joins on the full set
// and records the responses in endpoint order.
//
// If the context is cancelled before every call returns, the partially
// collected responses are discarded and nothing is recorded. Individual
// send failures are logged and their slot dropped; the analyzer accepts a
// short response list.
func (r *Runner) RunRound(ctx context.Context, s *Session) error {
	if s.State.Terminal() {
		return fmt.Errorf("debate session %s: already %s", s.ID, s.State)
	}

	roundNumber := s.CurrentRound + 1
	prompt, err := s.RoundPrompt(roundNumber)
	if err != nil {
		return err
	}
	messages, err := s.BuildRoundMessages(roundNumber)
	if err != nil {
		return err
	}

	s.State = StateInRound
	r.logger.Info("debate round started",
		"debate_session_id", s.ID, "round", roundNumber, "bees", len(messages))

	type result struct {
		response BeeResponse
		err      error
	}
	results := make([]result, len(messages))

	var wg sync.WaitGroup
	for i, out := range messages {
		wg.Add(1)
		go func(i int, out OutboundMessage) {
			defer wg.Done()
			resp, err := r.transport.Send(ctx, out.Endpoint, out.Message)
			results[i] = result{response: resp, err: err}
		}(i, out)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		r.logger.Warn("debate round cancelled, discarding partial responses",
			"debate_session_id", s.ID, "round", roundNumber)
		return err
	}

	responses := make([]BeeResponse, 0, len(results))
	for i, res := range results {
		if res.err != nil {
			r.logger.Warn("bee call failed",
				"debate_session_id", s.ID, "round", roundNumber,
				"endpoint", messages[i].Endpoint, "error", res.err)
			continue
		}
		responses = append(responses, res.response)
	}

	if err := s.RecordRound(roundNumber, prompt, responses); err != nil {
		return err
	}

	analysis := s.LastRound().Consensus
	r.logger.Info("debate round recorded",
		"debate_session_id", s.ID, "round", roundNumber,
		"responses", len(responses),
		"avg_confidence", analysis.AvgConfidence,
		"consensus_reached", analysis.ConsensusReached,
		"state", s.State)
	return nil
}
