package debate

import "fmt"

// Default round budget and consensus threshold applied when a Config leaves
// them unset.
const (
	DefaultMaxRounds          = 3
	DefaultConsensusThreshold = 0.8
)

// Config describes one debate session.
type Config struct {
	// Topic is the research question under debate.
	Topic string `json:"topic"`

	// NumBees is the advertised number of participating Bees. Descriptive
	// only: actual fan-out is driven by the length of BeeEndpoints.
	NumBees int `json:"numBees"`

	// MaxRounds caps the number of rounds before forced conclusion.
	MaxRounds int `json:"maxRounds"`

	// ConsensusThreshold is the minimum average confidence (0.0 - 1.0)
	// combined with one sufficiently large agreement cluster required to
	// conclude with consensus.
	ConsensusThreshold float64 `json:"consensusThreshold"`

	// KnowledgeContext entries are injected verbatim into the round 1
	// prompt, in order, under numbered source headings.
	KnowledgeContext []string `json:"knowledgeContext,omitempty"`

	// BeeEndpoints are the A2A endpoints messages fan out to. List order
	// defines bee index assignment.
	BeeEndpoints []string `json:"beeEndpoints,omitempty"`
}

// withDefaults returns a copy with zero-valued tuning fields replaced by
// the package defaults.
func (c Config) withDefaults() Config {
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.ConsensusThreshold <= 0 {
		c.ConsensusThreshold = DefaultConsensusThreshold
	}
	return c
}

// Validate reports whether the config can drive a debate. The session
// engine itself never rejects a config; orchestrators call Validate before
// starting so an empty endpoint list fails fast instead of producing an
// empty zero-consensus round.
func (c Config) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("debate config: topic is required")
	}
	if len(c.BeeEndpoints) == 0 {
		return fmt.Errorf("debate config: at least one bee endpoint is required")
	}
	if c.ConsensusThreshold < 0 || c.ConsensusThreshold > 1 {
		return fmt.Errorf("debate config: consensus threshold %v outside [0,1]", c.ConsensusThreshold)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("debate config: max rounds must be at least 1")
	}
	return nil
}
