package debate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Hunter79-stack/opencrabs/a2a"
)

// State enumerates the debate lifecycle.
type State string

const (
	// StatePending means the debate has not started.
	StatePending State = "pending"
	// StateInRound means a round's peer calls are outstanding. The engine
	// never enters this state itself; the orchestrator sets it before
	// RecordRound is invoked.
	StateInRound State = "inRound"
	// StateAnalyzing means a round was recorded without reaching a
	// terminal outcome and the next round can be built.
	StateAnalyzing State = "analyzing"
	// StateConcluded means the debate ended with consensus. Terminal.
	StateConcluded State = "concluded"
	// StateExhausted means the round budget ran out without consensus.
	// Terminal.
	StateExhausted State = "exhausted"
)

// Terminal reports whether the debate has ended.
func (s State) Terminal() bool {
	return s == StateConcluded || s == StateExhausted
}

// Round is a single completed debate round.
type Round struct {
	// RoundNumber is 1-indexed and strictly increasing.
	RoundNumber int `json:"roundNumber"`

	// Prompt is the text sent to every Bee this round.
	Prompt string `json:"prompt"`

	// Responses are the collected Bee responses, in endpoint order.
	Responses []BeeResponse `json:"responses"`

	// Consensus is the analysis recorded for this round.
	Consensus *ConsensusAnalysis `json:"consensus,omitempty"`
}

// OutboundMessage pairs a round message with the endpoint it targets.
type OutboundMessage struct {
	Endpoint string
	Message  a2a.Message
}

// Metadata keys attached to every outbound round message.
const (
	MetadataRound     = "debate_round"
	MetadataBeeIndex  = "bee_index"
	MetadataSessionID = "debate_session_id"
)

// SessionOptions configures session construction.
type SessionOptions struct {
	// PermissiveRounds disables round-number monotonicity validation in
	// RecordRound, restoring the historical caller-must-behave contract.
	PermissiveRounds bool
}

// Session is the full state of one debate. It is single-writer: it carries
// no internal synchronization and must be mutated by exactly one
// orchestrating goroutine.
type Session struct {
	// ID uniquely identifies the session and doubles as the context id of
	// every message it emits.
	ID string `json:"id"`

	// Config is the debate configuration, defaults applied.
	Config Config `json:"config"`

	// CurrentRound is the number of the last recorded round, 0 before any.
	CurrentRound int `json:"currentRound"`

	// Rounds holds all completed rounds in order.
	Rounds []Round `json:"rounds"`

	// FinalSynthesis is the closing synthesis, set once the debate ends.
	FinalSynthesis string `json:"finalSynthesis,omitempty"`

	// State is the debate lifecycle state.
	State State `json:"state"`

	permissiveRounds bool
}

// NewSession creates a pending debate session with a fresh id and defaults
// applied to the config.
func NewSession(config Config, optFns ...func(o *SessionOptions)) *Session {
	opts := SessionOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Session{
		ID:               uuid.NewString(),
		Config:           config.withDefaults(),
		Rounds:           []Round{},
		State:            StatePending,
		permissiveRounds: opts.PermissiveRounds,
	}
}

// WithPermissiveRounds disables RecordRound's monotonicity check.
func WithPermissiveRounds() func(o *SessionOptions) {
	return func(o *SessionOptions) { o.PermissiveRounds = true }
}

// RoundPrompt builds the prompt for the given round: independent research
// for round 1, critique and synthesis thereafter. Critique rounds require
// the previous round to be recorded.
func (s *Session) RoundPrompt(roundNumber int) (string, error) {
	if roundNumber <= 1 {
		return s.round1Prompt(), nil
	}
	return s.critiquePrompt(roundNumber)
}

// BuildRoundMessages produces exactly one outbound message per configured
// bee endpoint, in list order. Each message carries the round prompt as a
// text part and metadata tagging the round number, the bee index and the
// session id. The count is independent of the descriptive NumBees field.
func (s *Session) BuildRoundMessages(roundNumber int) ([]OutboundMessage, error) {
	prompt, err := s.RoundPrompt(roundNumber)
	if err != nil {
		return nil, err
	}

	messages := make([]OutboundMessage, 0, len(s.Config.BeeEndpoints))
	for i, endpoint := range s.Config.BeeEndpoints {
		msg := a2a.Message{
			MessageID: uuid.NewString(),
			ContextID: s.ID,
			Role:      a2a.RoleUser,
			Parts:     []a2a.Part{a2a.TextPart(prompt)},
			Metadata: map[string]any{
				MetadataRound:     roundNumber,
				MetadataBeeIndex:  i,
				MetadataSessionID: s.ID,
			},
		}
		messages = append(messages, OutboundMessage{Endpoint: endpoint, Message: msg})
	}
	return messages, nil
}

// RecordRound appends a completed round, runs consensus analysis over its
// responses and drives the state transition: Concluded when consensus was
// reached, Exhausted when the round budget is spent, Analyzing otherwise.
// Termination is decided per round; prior rounds do not accumulate.
//
// Unless the session was built with WithPermissiveRounds, roundNumber must
// be exactly CurrentRound+1.
func (s *Session) RecordRound(roundNumber int, prompt string, responses []BeeResponse) error {
	if !s.permissiveRounds && roundNumber != s.CurrentRound+1 {
		return fmt.Errorf("debate session %s: round %d out of order, expected %d",
			s.ID, roundNumber, s.CurrentRound+1)
	}

	consensus := AnalyzeConsensus(responses, s.Config.ConsensusThreshold)
	concluded := consensus.ConsensusReached || roundNumber >= s.Config.MaxRounds

	s.Rounds = append(s.Rounds, Round{
		RoundNumber: roundNumber,
		Prompt:      prompt,
		Responses:   responses,
		Consensus:   &consensus,
	})
	s.CurrentRound = roundNumber

	switch {
	case concluded && consensus.ConsensusReached:
		s.State = StateConcluded
	case concluded:
		s.State = StateExhausted
	default:
		s.State = StateAnalyzing
	}
	return nil
}

// LastRound returns the most recently recorded round, or nil before any.
func (s *Session) LastRound() *Round {
	if len(s.Rounds) == 0 {
		return nil
	}
	return &s.Rounds[len(s.Rounds)-1]
}
