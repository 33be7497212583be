package debate

import (
	"fmt"
	"strings"
)

// SummaryReport renders the debate as a markdown report: topic, bee count,
// round progress, state, per-round responses, consensus statistics and the
// final synthesis when present. Every field is reproducible from session
// state.
func (s *Session) SummaryReport() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"# 🐝 Bee Colony Debate Report\n\n"+
			"**Topic:** %s\n"+
			"**Bees:** %d\n"+
			"**Rounds:** %d/%d\n"+
			"**State:** %s\n\n",
		s.Config.Topic,
		s.Config.NumBees,
		s.CurrentRound,
		s.Config.MaxRounds,
		s.State,
	)

	for _, round := range s.Rounds {
		fmt.Fprintf(&b, "## Round %d\n\n", round.RoundNumber)

		for _, resp := range round.Responses {
			fmt.Fprintf(&b, "### Bee %s (confidence: %.1f)\n%s\n\n",
				resp.BeeID, resp.Confidence, resp.Content)
		}

		if round.Consensus != nil {
			fmt.Fprintf(&b,
				"### Consensus Analysis\n"+
					"- Avg Confidence: %.2f\n"+
					"- Consensus Reached: %t\n",
				round.Consensus.AvgConfidence,
				round.Consensus.ConsensusReached,
			)
			if len(round.Consensus.AgreementPoints) > 0 {
				b.WriteString("- **Agreements:**\n")
				for _, p := range round.Consensus.AgreementPoints {
					fmt.Fprintf(&b, "  - %s\n", p)
				}
			}
			if len(round.Consensus.ContentionPoints) > 0 {
				b.WriteString("- **Contentions:**\n")
				for _, p := range round.Consensus.ContentionPoints {
					fmt.Fprintf(&b, "  - %s\n", p)
				}
			}
			b.WriteString("\n")
		}
	}

	if s.FinalSynthesis != "" {
		fmt.Fprintf(&b, "## Final Synthesis\n\n%s\n", s.FinalSynthesis)
	}

	return b.String()
}
