package debate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	confidencePattern = regexp.MustCompile(`(?i)confidence(?:\s+score)?\D{0,12}([01](?:\.\d+)?)`)
	positionPattern   = regexp.MustCompile(`(?im)^\W*position\W*[:\-]\s*(.+)$`)
	bulletPattern     = regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)$`)
)

// maxKeyPoints caps how many bullet lines ParseResponse lifts into
// KeyPoints.
const maxKeyPoints = 5

// ParseResponse turns free-form Bee output into a structured BeeResponse.
// It scans for a "Confidence: 0.x" marker (0.5 when absent), a
// "Position: ..." line and up to five markdown bullet lines as key points.
// The full text is always preserved as Content.
func ParseResponse(beeID, endpoint, content string) BeeResponse {
	return BeeResponse{
		BeeID:      beeID,
		Endpoint:   endpoint,
		Content:    content,
		Confidence: ExtractConfidence(content),
		Position:   ExtractPosition(content),
		KeyPoints:  ExtractKeyPoints(content),
	}
}

// ExtractConfidence finds the first confidence marker in the text and
// returns its value clamped to [0,1], defaulting to 0.5 when no parseable
// marker exists.
func ExtractConfidence(content string) float64 {
	m := confidencePattern.FindStringSubmatch(content)
	if m == nil {
		return 0.5
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.5
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ExtractPosition returns the text following the first "Position:" line,
// markdown emphasis stripped, or empty when none exists.
func ExtractPosition(content string) string {
	m := positionPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "*_"))
}

// ExtractKeyPoints lifts up to maxKeyPoints markdown bullet lines from the
// text, in order.
func ExtractKeyPoints(content string) []string {
	matches := bulletPattern.FindAllStringSubmatch(content, maxKeyPoints)
	if len(matches) == 0 {
		return nil
	}
	points := make([]string, 0, len(matches))
	for _, m := range matches {
		points = append(points, strings.TrimSpace(m[1]))
	}
	return points
}
