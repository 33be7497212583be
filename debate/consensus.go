package debate

import (
	"fmt"
	"sort"
	"strings"
)

// BeeResponse is a single Bee's contribution to a debate round.
type BeeResponse struct {
	// BeeID identifies the responding Bee.
	BeeID string `json:"beeId"`

	// Endpoint is the Bee's A2A endpoint URL.
	Endpoint string `json:"endpoint"`

	// Content is the full text of the response.
	Content string `json:"content"`

	// Confidence is the Bee's self-reported certainty (0.0 - 1.0).
	Confidence float64 `json:"confidence"`

	// Position is the Bee's stance on the topic, free text. Positions are
	// compared case-insensitively during consensus analysis.
	Position string `json:"position,omitempty"`

	// KeyPoints are notable points extracted from the response.
	KeyPoints []string `json:"keyPoints,omitempty"`
}

// ConsensusAnalysis aggregates one round's responses.
type ConsensusAnalysis struct {
	// AvgConfidence is the mean confidence across all responses, 0.0 for
	// an empty round.
	AvgConfidence float64 `json:"avgConfidence"`

	// AgreementPoints lists positions held by a threshold-sized share of
	// responders, annotated with the share ("pro (3/3 agree)").
	AgreementPoints []string `json:"agreementPoints"`

	// ContentionPoints lists positions held by some but not enough
	// responders.
	ContentionPoints []string `json:"contentionPoints"`

	// BlindSpots is reserved for semantic gap detection and is always
	// empty for now.
	BlindSpots []string `json:"blindSpots"`

	// ConsensusReached is true when AvgConfidence meets the threshold and
	// at least one agreement cluster exists.
	ConsensusReached bool `json:"consensusReached"`
}

// AnalyzeConsensus scores a round's responses against the consensus
// threshold. It is a pure function: deterministic output, no state, no I/O.
//
// Positions are clustered by exact lowercase string equality. That is
// brittle to minor phrasing differences and is kept so deliberately;
// semantic clustering belongs to a future analysis layer.
func AnalyzeConsensus(responses []BeeResponse, threshold float64) ConsensusAnalysis {
	avgConfidence := 0.0
	if len(responses) > 0 {
		sum := 0.0
		for _, r := range responses {
			sum += r.Confidence
		}
		avgConfidence = sum / float64(len(responses))
	}

	positionCounts := make(map[string]int)
	for _, r := range responses {
		if r.Position == "" {
			continue
		}
		positionCounts[strings.ToLower(r.Position)]++
	}

	positions := make([]string, 0, len(positionCounts))
	for pos := range positionCounts {
		positions = append(positions, pos)
	}
	sort.Strings(positions)

	total := len(responses)
	agreementPoints := []string{}
	contentionPoints := []string{}
	for _, pos := range positions {
		count := positionCounts[pos]
		ratio := float64(count) / float64(total)
		rendered := fmt.Sprintf("%s (%d/%d agree)", pos, count, total)
		if ratio >= threshold {
			agreementPoints = append(agreementPoints, rendered)
		} else {
			contentionPoints = append(contentionPoints, rendered)
		}
	}

	return ConsensusAnalysis{
		AvgConfidence:    avgConfidence,
		AgreementPoints:  agreementPoints,
		ContentionPoints: contentionPoints,
		BlindSpots:       []string{},
		ConsensusReached: avgConfidence >= threshold && len(agreementPoints) > 0,
	}
}
