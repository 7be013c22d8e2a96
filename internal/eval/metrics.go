// Heuristic text metrics scoring wargame responses
package eval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Category groups metrics by the capability they measure.
type Category string

const (
	CategoryGeospatial  Category = "geospatial"
	CategoryStrategic   Category = "strategic"
	CategoryResource    Category = "resource"
	CategoryAdversarial Category = "adversarial"
	CategoryDoctrinal   Category = "doctrinal"
)

// MetricResult is the outcome of one metric on one response. Score is
// in [0,1].
type MetricResult struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	MaxScore float64  `json:"max_score"`
	Details  string   `json:"details,omitempty"`
	Evidence []string `json:"evidence,omitempty"`
}

// Percentage returns the score as a percentage of the maximum.
func (m MetricResult) Percentage() float64 {
	if m.MaxScore == 0 {
		return 0
	}
	return m.Score / m.MaxScore * 100
}

// Grade maps the percentage onto a letter grade.
func (m MetricResult) Grade() string {
	switch pct := m.Percentage(); {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

var (
	distanceClaimRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:km|kilometers?|klicks)`)
	gridUsageRe     = regexp.MustCompile(`(?:Grid\s+)?([A-Z]{2}-\d{4})`)
)

// plausibleDistanceKM bounds a sane theater distance claim. The Taiwan
// Strait theater spans a few hundred km, so anything at or beyond
// 1000 km is treated as a reasoning error.
const plausibleDistanceKM = 1000

// DistanceAccuracy checks that distance claims in the response fall in
// a plausible band for the theater. A response with no claims scores a
// neutral 0.5. groundTruth carries the case's known distances; claims
// are judged by the plausibility band rather than matched to specific
// figures, since free text rarely labels which pair a claim refers to.
func DistanceAccuracy(response string, groundTruth map[string]any) MetricResult {
	claims := distanceClaimRe.FindAllStringSubmatch(response, -1)
	if len(claims) == 0 {
		return MetricResult{
			Name:     "Distance Accuracy",
			Category: CategoryGeospatial,
			Score:    0.5,
			MaxScore: 1,
			Details:  "No distance claims found in response",
		}
	}

	var reasonable int
	var errors []string
	for _, m := range claims {
		dist, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if dist > 0 && dist < plausibleDistanceKM {
			reasonable++
		} else {
			errors = append(errors, fmt.Sprintf("Unreasonable distance: %gkm", dist))
		}
	}
	if len(errors) > 5 {
		errors = errors[:5]
	}
	return MetricResult{
		Name:     "Distance Accuracy",
		Category: CategoryGeospatial,
		Score:    float64(reasonable) / float64(len(claims)),
		MaxScore: 1,
		Details:  fmt.Sprintf("Found %d distance claims, %d reasonable", len(claims), reasonable),
		Evidence: errors,
	}
}

// GridReferenceUsage rewards precise grid references. Three or more
// valid references earn full marks; none scores 0.3 for imprecision.
func GridReferenceUsage(response string) MetricResult {
	var grids []string
	for _, m := range gridUsageRe.FindAllStringSubmatch(response, -1) {
		grids = append(grids, m[1])
	}
	if len(grids) == 0 {
		return MetricResult{
			Name:     "Grid Reference Usage",
			Category: CategoryGeospatial,
			Score:    0.3,
			MaxScore: 1,
			Details:  "No grid references used - imprecise positioning",
		}
	}
	evidence := grids
	if len(evidence) > 5 {
		evidence = evidence[:5]
	}
	return MetricResult{
		Name:     "Grid Reference Usage",
		Category: CategoryGeospatial,
		Score:    capScore(float64(len(grids)) / 3),
		MaxScore: 1,
		Details:  fmt.Sprintf("Used %d valid grid references", len(grids)),
		Evidence: evidence,
	}
}

var terrainKeywords = []string{
	"terrain", "elevation", "mountain", "coastal", "strait",
	"water", "land", "beach", "port", "urban", "defensive",
	"chokepoint", "high ground", "cover", "concealment",
}

// TerrainAwareness counts terrain vocabulary; five or more concepts
// earn full marks.
func TerrainAwareness(response string) MetricResult {
	found := keywordHits(response, terrainKeywords)
	return MetricResult{
		Name:     "Terrain Awareness",
		Category: CategoryGeospatial,
		Score:    capScore(float64(len(found)) / 5),
		MaxScore: 1,
		Details:  fmt.Sprintf("Referenced %d terrain concepts", len(found)),
		Evidence: found,
	}
}

// ObjectiveAlignment checks the response against the scenario's stated
// objectives. With no objectives given it scores a neutral 0.5.
func ObjectiveAlignment(response string, objectives []string) MetricResult {
	if len(objectives) == 0 {
		return MetricResult{
			Name:     "Objective Alignment",
			Category: CategoryStrategic,
			Score:    0.5,
			MaxScore: 1,
			Details:  "Addressed 0/0 objectives",
		}
	}
	lower := strings.ToLower(response)
	var aligned []string
	for _, obj := range objectives {
		for _, word := range strings.Fields(strings.ToLower(obj)) {
			if len(word) > 3 && strings.Contains(lower, word) {
				aligned = append(aligned, obj)
				break
			}
		}
	}
	return MetricResult{
		Name:     "Objective Alignment",
		Category: CategoryStrategic,
		Score:    float64(len(aligned)) / float64(len(objectives)),
		MaxScore: 1,
		Details:  fmt.Sprintf("Addressed %d/%d objectives", len(aligned), len(objectives)),
		Evidence: aligned,
	}
}

// reasoningElements are the four parts of a well-structured military
// recommendation, each detected by any of its keywords.
var reasoningElements = []struct {
	name     string
	keywords []string
}{
	{"situation", []string{"situation", "assessment", "current state", "intelligence"}},
	{"action", []string{"recommend", "action", "execute", "deploy", "move"}},
	{"rationale", []string{"because", "rationale", "reason", "therefore", "in order to"}},
	{"risk", []string{"risk", "mitigat", "contingenc", "fallback", "if"}},
}

// ReasoningStructure scores the presence of the four reasoning elements.
func ReasoningStructure(response string) MetricResult {
	lower := strings.ToLower(response)
	var found []string
	for _, el := range reasoningElements {
		for _, kw := range el.keywords {
			if strings.Contains(lower, kw) {
				found = append(found, el.name)
				break
			}
		}
	}
	return MetricResult{
		Name:     "Reasoning Structure",
		Category: CategoryStrategic,
		Score:    float64(len(found)) / float64(len(reasoningElements)),
		MaxScore: 1,
		Details:  fmt.Sprintf("Included %d/%d reasoning elements", len(found), len(reasoningElements)),
		Evidence: found,
	}
}

var contradictionPhrases = []string{"instead", "cancel", "abort", "reverse", "opposite"}

// DecisionConsistency penalizes direction changes relative to prior
// responses. A first response scores 0.8; each reversal phrase costs
// 0.2 down to a floor of 0.5, since some adaptation is legitimate.
func DecisionConsistency(response string, previous []string) MetricResult {
	if len(previous) == 0 {
		return MetricResult{
			Name:     "Decision Consistency",
			Category: CategoryStrategic,
			Score:    0.8,
			MaxScore: 1,
			Details:  "First response - no history to compare",
		}
	}
	found := keywordHits(response, contradictionPhrases)
	score := 1.0 - float64(len(found))*0.2
	if score < 0.5 {
		score = 0.5
	}
	return MetricResult{
		Name:     "Decision Consistency",
		Category: CategoryStrategic,
		Score:    score,
		MaxScore: 1,
		Details:  fmt.Sprintf("Found %d potential direction changes", len(found)),
		Evidence: found,
	}
}

var opponentKeywords = []string{
	"enemy", "opponent", "adversary", "red force", "blue force",
	"they will", "they may", "expect them", "anticipate",
	"counter", "response", "react", "their move",
}

// OpponentModeling counts references to the adversary; four earn full
// marks.
func OpponentModeling(response string) MetricResult {
	found := keywordHits(response, opponentKeywords)
	evidence := found
	if len(evidence) > 5 {
		evidence = evidence[:5]
	}
	return MetricResult{
		Name:     "Opponent Modeling",
		Category: CategoryAdversarial,
		Score:    capScore(float64(len(found)) / 4),
		MaxScore: 1,
		Details:  fmt.Sprintf("Referenced opponent %d times", len(found)),
		Evidence: evidence,
	}
}

var multiStepIndicators = []string{
	"then", "after that", "next", "subsequently", "phase",
	"step 1", "step 2", "first", "second", "finally",
	"if they", "in response",
}

// MultiStepPlanning counts sequencing vocabulary; three indicators earn
// full marks.
func MultiStepPlanning(response string) MetricResult {
	found := keywordHits(response, multiStepIndicators)
	evidence := found
	if len(evidence) > 5 {
		evidence = evidence[:5]
	}
	return MetricResult{
		Name:     "Multi-Step Planning",
		Category: CategoryAdversarial,
		Score:    capScore(float64(len(found)) / 3),
		MaxScore: 1,
		Details:  fmt.Sprintf("Found %d multi-step indicators", len(found)),
		Evidence: evidence,
	}
}

// EvaluateResponse runs all metrics on a response in a fixed order:
// three geospatial, three strategic, two adversarial. groundTruth may
// be nil when the caller has no verifiable facts for the text.
func EvaluateResponse(response string, objectives []string, previous []string, groundTruth map[string]any) []MetricResult {
	return []MetricResult{
		DistanceAccuracy(response, groundTruth),
		GridReferenceUsage(response),
		TerrainAwareness(response),
		ObjectiveAlignment(response, objectives),
		ReasoningStructure(response),
		DecisionConsistency(response, previous),
		OpponentModeling(response),
		MultiStepPlanning(response),
	}
}

func keywordHits(response string, keywords []string) []string {
	lower := strings.ToLower(response)
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func capScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
