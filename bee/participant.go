package bee

import (
	"context"
	"fmt"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/debate"
	"github.com/Hunter79-stack/opencrabs/logging"
	"github.com/Hunter79-stack/opencrabs/model"
)

// defaultInstructions frames every completion so responses stay parseable
// by the Queen's consensus analysis.
const defaultInstructions = "You are a Bee, one expert participant in a structured multi-agent debate. " +
	"Answer the round prompt directly and rigorously. Always include a line starting with " +
	"\"Position:\" stating your stance in a few words, and a line starting with " +
	"\"Confidence:\" followed by a score between 0.0 and 1.0. " +
	"List your strongest arguments as markdown bullet points."

// Options configures a Participant.
type Options struct {
	// Endpoint is the participant's advertised A2A endpoint, echoed into
	// every response.
	Endpoint string

	// Instructions overrides the default system framing.
	Instructions string

	// Logger receives structured participant events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Participant is one Bee: it turns an inbound round message into a
// structured BeeResponse via an LLM completion.
type Participant struct {
	id           string
	endpoint     string
	instructions string
	model        model.Model
	logger       logging.Logger
}

// NewParticipant creates a Bee with the given id answering through m.
func NewParticipant(id string, m model.Model, optFns ...func(o *Options)) *Participant {
	opts := Options{Instructions: defaultInstructions, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Participant{
		id:           id,
		endpoint:     opts.Endpoint,
		instructions: opts.Instructions,
		model:        m,
		logger:       opts.Logger,
	}
}

// ID returns the participant's bee id.
func (p *Participant) ID() string { return p.id }

// Respond completes the round prompt carried by msg and parses the result
// into a BeeResponse.
func (p *Participant) Respond(ctx context.Context, msg a2a.Message) (debate.BeeResponse, error) {
	prompt := msg.Text()
	if prompt == "" {
		return debate.BeeResponse{}, fmt.Errorf("bee %s: empty round prompt", p.id)
	}

	resp, err := p.model.Complete(ctx, model.Request{
		Instructions: p.instructions,
		Prompt:       prompt,
	})
	if err != nil {
		return debate.BeeResponse{}, fmt.Errorf("bee %s: completion failed: %w", p.id, err)
	}

	parsed := debate.ParseResponse(p.id, p.endpoint, resp.Content)
	p.logger.Debug("bee responded",
		"bee_id", p.id, "model", p.model.Name(),
		"confidence", parsed.Confidence, "position", parsed.Position)
	return parsed, nil
}

// Execute completes the round prompt carried by msg and returns the raw
// completion as an agent message. It satisfies the gateway handler's
// Executor, so a Participant can serve remote Queens: the Queen-side
// client parses the reply text back into a BeeResponse.
func (p *Participant) Execute(ctx context.Context, msg a2a.Message) (a2a.Message, error) {
	prompt := msg.Text()
	if prompt == "" {
		return a2a.Message{}, fmt.Errorf("bee %s: empty round prompt", p.id)
	}

	resp, err := p.model.Complete(ctx, model.Request{
		Instructions: p.instructions,
		Prompt:       prompt,
	})
	if err != nil {
		return a2a.Message{}, fmt.Errorf("bee %s: completion failed: %w", p.id, err)
	}

	return a2a.Message{
		Role:  a2a.RoleAgent,
		Parts: []a2a.Part{a2a.TextPart(resp.Content)},
	}, nil
}

// Colony groups in-process participants keyed by endpoint and implements
// the debate Transport, letting a whole debate run inside one process.
type Colony struct {
	participants map[string]*Participant
}

// NewColony builds a colony from endpoint → participant assignments.
func NewColony(participants map[string]*Participant) *Colony {
	c := &Colony{participants: make(map[string]*Participant, len(participants))}
	for endpoint, p := range participants {
		c.participants[endpoint] = p
	}
	return c
}

// Send implements debate.Transport by routing the message to the
// participant registered for the endpoint.
func (c *Colony) Send(ctx context.Context, endpoint string, msg a2a.Message) (debate.BeeResponse, error) {
	p, ok := c.participants[endpoint]
	if !ok {
		return debate.BeeResponse{}, fmt.Errorf("colony: no participant registered for %s", endpoint)
	}
	return p.Respond(ctx, msg)
}
