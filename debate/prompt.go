package debate

import (
	"fmt"
	"strings"
)

// round1Prompt builds the independent research prompt. Knowledge context
// entries, when present, are appended verbatim under numbered source
// headings in configuration order.
func (s *Session) round1Prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"## Debate Topic\n\n%s\n\n"+
			"## Your Task (Round 1 — Independent Research)\n\n"+
			"Analyze this topic from your unique perspective. Provide:\n"+
			"1. Your **position** on the topic\n"+
			"2. **Key arguments** supporting your position\n"+
			"3. **Evidence** or reasoning\n"+
			"4. **Confidence score** (0.0-1.0) in your position\n"+
			"5. **Potential counterarguments** you anticipate\n",
		s.Config.Topic,
	)

	if len(s.Config.KnowledgeContext) > 0 {
		b.WriteString("\n## Knowledge Base Context\n\n")
		b.WriteString("The following verified knowledge has been loaded. " +
			"Use it to inform your analysis, but think beyond it:\n\n")
		for i, ctx := range s.Config.KnowledgeContext {
			fmt.Fprintf(&b, "### Source %d\n%s\n\n", i+1, ctx)
		}
	}

	return b.String()
}

// critiquePrompt builds the round k>1 prompt embedding every response of
// round k-1 (bee id, one-decimal confidence, full content) in original
// order.
func (s *Session) critiquePrompt(roundNumber int) (string, error) {
	prevIdx := roundNumber - 2
	if prevIdx < 0 || prevIdx >= len(s.Rounds) {
		return "", fmt.Errorf("debate session %s: no recorded round %d to critique", s.ID, roundNumber-1)
	}
	prevRound := s.Rounds[prevIdx]

	var b strings.Builder
	fmt.Fprintf(&b,
		"## Debate Topic\n\n%s\n\n"+
			"## Round %d — Critique & Synthesis\n\n"+
			"You have seen all participants' responses from Round %d. Your task:\n"+
			"1. **Identify agreements** — what do most participants agree on?\n"+
			"2. **Challenge weak arguments** — which positions lack evidence?\n"+
			"3. **Synthesize insights** — combine the strongest ideas\n"+
			"4. **Update your position** if others' arguments changed your mind\n"+
			"5. **Confidence score** (0.0-1.0) — has your confidence changed?\n\n"+
			"## Previous Round Responses\n\n",
		s.Config.Topic,
		roundNumber,
		roundNumber-1,
	)

	for _, resp := range prevRound.Responses {
		fmt.Fprintf(&b, "### Bee %s (confidence: %.1f)\n%s\n\n",
			resp.BeeID, resp.Confidence, resp.Content)
	}

	return b.String(), nil
}
