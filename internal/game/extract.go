package game

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	gridRefRe = regexp.MustCompile(`\b[A-Z]{2}-\d{4}\b`)
	scoreRe   = regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s*[:(]\s*(\d+(?:\.\d+)?)\s*(?:/\s*\d+|\))`)
)

// maxSummaryLen caps an extracted action summary.
const maxSummaryLen = 200

// ExtractActionSummary pulls the one-line action from a commander
// response: the first non-empty, non-heading line within four lines of
// a "RECOMMENDED ACTION" or "STRATEGIC MOVE" marker. Without a marker
// it falls back to the first substantive line, and failing that to a
// fixed placeholder.
func ExtractActionSummary(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if !strings.Contains(upper, "RECOMMENDED ACTION") && !strings.Contains(upper, "STRATEGIC MOVE") {
			continue
		}
		for _, next := range lines[i+1 : min(i+5, len(lines))] {
			next = strings.TrimSpace(next)
			if next != "" && !strings.HasPrefix(next, "#") {
				return truncate(next, maxSummaryLen)
			}
		}
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !strings.HasPrefix(line, "#") {
			return truncate(line, maxSummaryLen)
		}
	}
	return "Action recorded"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ExtractGridReferences returns all grid references in the text like
// "TS-0402", deduplicated and sorted.
func ExtractGridReferences(text string) []string {
	matches := gridRefRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var refs []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		refs = append(refs, m)
	}
	sort.Strings(refs)
	return refs
}

// ExtractScores parses the analyst's per-side criterion scores. Any
// line mentioning BLUE or RED switches the active side; "name: n/10"
// and "name (n/10)" forms are accepted and unrecognized criterion
// labels are ignored. Overall is the mean of the recognized
// sub-scores.
func ExtractScores(text string) (blue, red Score) {
	var ba, ra scoreAccum
	var cur *scoreAccum
	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "BLUE") {
			cur = &ba
		} else if strings.Contains(upper, "RED") {
			cur = &ra
		}
		if cur == nil {
			continue
		}
		for _, m := range scoreRe.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil || v < 0 || v > 10 {
				continue
			}
			cur.add(strings.ToLower(m[1]), v)
		}
	}
	return ba.score(), ra.score()
}

// scoreAccum collects one side's recognized sub-scores.
type scoreAccum struct {
	s   Score
	sum float64
	n   int
}

func (a *scoreAccum) add(label string, v float64) {
	switch label {
	case "geospatial accuracy":
		a.s.GeospatialAccuracy = v
	case "strategic coherence":
		a.s.StrategicCoherence = v
	case "resource efficiency":
		a.s.ResourceEfficiency = v
	case "adversarial awareness":
		a.s.AdversarialAwareness = v
	case "risk calibration":
		a.s.RiskCalibration = v
	default:
		return
	}
	a.sum += v
	a.n++
}

func (a *scoreAccum) score() Score {
	if a.n > 0 {
		a.s.Overall = a.sum / float64(a.n)
	}
	return a.s
}
