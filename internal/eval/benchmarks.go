package eval

import (
	"fmt"
	"sort"
	"strings"
)

// Case is one benchmark test: a prompt plus the elements a competent
// response should contain and the verifiable facts behind the prompt.
type Case struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Prompt           string         `json:"prompt"`
	ExpectedElements []string       `json:"expected_elements"`
	GroundTruth      map[string]any `json:"ground_truth,omitempty"`
	Category         Category       `json:"category"`
	Difficulty       string         `json:"difficulty"`
}

// Suite is a named collection of benchmark cases.
type Suite struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cases       []Case `json:"cases"`
}

// Registry holds the built-in benchmark suites.
type Registry struct {
	suites map[string]Suite
}

// SuiteInfo summarizes a suite for listings.
type SuiteInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NumCases    int    `json:"num_cases"`
}

// NewRegistry builds the registry: the three capability suites plus a
// "quick" suite with one case per category and a "full" suite with
// everything.
func NewRegistry() *Registry {
	geo := geospatialSuite()
	strat := strategicSuite()
	adv := adversarialSuite()

	quick := Suite{
		Name:        "Quick Evaluation",
		Description: "Fast benchmark with one case per category",
		Cases:       []Case{geo.Cases[0], strat.Cases[0], adv.Cases[0]},
	}
	var all []Case
	all = append(all, geo.Cases...)
	all = append(all, strat.Cases...)
	all = append(all, adv.Cases...)
	full := Suite{
		Name:        "Full Evaluation",
		Description: "Complete benchmark suite",
		Cases:       all,
	}

	return &Registry{suites: map[string]Suite{
		"geospatial":  geo,
		"strategic":   strat,
		"adversarial": adv,
		"quick":       quick,
		"full":        full,
	}}
}

// Get returns the named suite or an error listing the available names.
func (r *Registry) Get(name string) (Suite, error) {
	suite, ok := r.suites[name]
	if !ok {
		return Suite{}, fmt.Errorf("unknown benchmark %q, available: %s",
			name, strings.Join(r.Names(), ", "))
	}
	return suite, nil
}

// Names returns all suite names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.suites))
	for name := range r.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List summarizes every suite, sorted by name.
func (r *Registry) List() []SuiteInfo {
	infos := make([]SuiteInfo, 0, len(r.suites))
	for _, name := range r.Names() {
		s := r.suites[name]
		infos = append(infos, SuiteInfo{Name: name, Description: s.Description, NumCases: len(s.Cases)})
	}
	return infos
}

func geospatialSuite() Suite {
	return Suite{
		Name:        "Geospatial Reasoning",
		Description: "Tests the model's ability to reason about distances, terrain, and geography",
		Cases: []Case{
			{
				ID:   "geo_001",
				Name: "Taiwan Strait Width",
				Prompt: `You are a military analyst. A commander asks:
"What is the approximate width of the Taiwan Strait at its narrowest point,
and how long would it take a naval vessel traveling at 30 knots to cross it?"

Provide a precise answer with calculations.`,
				ExpectedElements: []string{"130", "180", "km", "hour", "knot", "nautical"},
				GroundTruth: map[string]any{
					"strait_width_km":     130.0,
					"crossing_time_hours": 2.3,
				},
				Category:   CategoryGeospatial,
				Difficulty: "easy",
			},
			{
				ID:   "geo_002",
				Name: "Fighter Intercept Range",
				Prompt: `A Blue Force F-16 is stationed at Grid TW-1001 (Taipei area, 25.0N, 121.5E).
Intelligence reports a Red bomber at Grid ML-0501 (26.0N, 119.5E).

Calculate the distance between these positions and determine if the F-16,
with an operational range of 800km, can intercept the bomber and return to base.

Show your work.`,
				ExpectedElements: []string{"distance", "km", "range", "intercept", "return", "fuel"},
				GroundTruth: map[string]any{
					"distance_km":   220.0,
					"within_range":  true,
					"round_trip_km": 440.0,
				},
				Category:   CategoryGeospatial,
				Difficulty: "medium",
			},
			{
				ID:   "geo_003",
				Name: "Terrain Advantage Assessment",
				Prompt: `Compare the defensive advantages of these two positions:

Position A: Grid TW-1200 - Central Taiwan mountains, elevation 2000m
Position B: Grid TS-3001 - Open water in Taiwan Strait

Which position offers better defensive value for a ground force? Explain why.`,
				ExpectedElements: []string{"mountain", "elevation", "cover", "defensi", "terrain", "water", "vulnerab"},
				GroundTruth: map[string]any{
					"better_position": "A",
					"reason":          "elevation and cover",
				},
				Category:   CategoryGeospatial,
				Difficulty: "easy",
			},
			{
				ID:   "geo_004",
				Name: "Multi-Asset Coordination",
				Prompt: `Plan a coordinated strike requiring these assets to arrive simultaneously:

- Fighter squadron at Grid TW-1001 (speed: 800 km/h)
- Destroyer at Grid TS-4001 (speed: 50 km/h)
- Submarine at Grid TS-5001 (speed: 40 km/h)

Target: Grid TS-2500 (middle of strait)

Calculate transit times and determine launch sequence for simultaneous arrival.`,
				ExpectedElements: []string{"hour", "minute", "distance", "launch", "first", "arrive", "coordinat"},
				GroundTruth: map[string]any{
					"requires_staggered_launch": true,
					"slowest_asset":             "submarine",
				},
				Category:   CategoryGeospatial,
				Difficulty: "hard",
			},
		},
	}
}

func strategicSuite() Suite {
	return Suite{
		Name:        "Strategic Reasoning",
		Description: "Tests the model's ability to make coherent strategic decisions",
		Cases: []Case{
			{
				ID:   "str_001",
				Name: "Objective Prioritization",
				Prompt: `You command Blue Force with limited resources. Current objectives:

1. Maintain air superiority over the strait (Value: 9/10)
2. Protect port facilities (Value: 8/10)
3. Interdict Red supply lines (Value: 7/10)
4. Conduct reconnaissance (Value: 5/10)

You can only fully resource TWO objectives. Which do you choose and why?

Structure your response with clear reasoning.`,
				ExpectedElements: []string{"priorit", "resource", "value", "air", "trade", "risk"},
				GroundTruth: map[string]any{
					"should_consider_value":    true,
					"should_explain_tradeoffs": true,
				},
				Category:   CategoryStrategic,
				Difficulty: "medium",
			},
			{
				ID:   "str_002",
				Name: "Risk Assessment",
				Prompt: `Proposed Operation: Deploy carrier strike group 150km into contested waters
to establish closer air support for amphibious operations.

Threats:
- Enemy anti-ship missiles (range: 200km)
- Enemy submarine presence (2-3 confirmed)
- Enemy air force (estimated 50 fighters)

Assess the risks and recommend whether to proceed, modify, or cancel the operation.`,
				ExpectedElements: []string{"risk", "missile", "range", "submarine", "recommend", "mitigat", "alternative"},
				GroundTruth: map[string]any{
					"within_threat_range":       true,
					"should_assess_all_threats": true,
				},
				Category:   CategoryStrategic,
				Difficulty: "medium",
			},
			{
				ID:   "str_003",
				Name: "Resource Allocation",
				Prompt: `Your air wing has:
- 40 fighters (currently: 30 available, 10 in maintenance)
- 500 air-to-air missiles
- Fuel for 200 sorties

Mission requirements for next 48 hours:
- Combat air patrol: 6 fighters continuous
- Strike escort: 12 fighters for 4-hour mission
- Quick reaction alert: 4 fighters on standby

Create an allocation plan that meets requirements while maintaining reserves.`,
				ExpectedElements: []string{"sortie", "rotation", "reserve", "maintenance", "available", "fuel", "missile"},
				GroundTruth: map[string]any{
					"should_track_resources":  true,
					"should_maintain_reserve": true,
				},
				Category:   CategoryStrategic,
				Difficulty: "hard",
			},
		},
	}
}

func adversarialSuite() Suite {
	return Suite{
		Name:        "Adversarial Reasoning",
		Description: "Tests the model's ability to model opponent behavior and plan counter-moves",
		Cases: []Case{
			{
				ID:   "adv_001",
				Name: "Opponent Prediction",
				Prompt: `Red Force has been observed:
- Massing naval assets at Grid ML-0501
- Increasing air patrols over the strait
- Moving amphibious ships from reserve to forward positions
- Conducting electronic warfare exercises

Based on these indicators, what are the three most likely Red Force actions
in the next 72 hours? Rank by probability.`,
				ExpectedElements: []string{"likely", "amphibious", "assault", "blockade", "strike", "probab", "indicator"},
				GroundTruth: map[string]any{
					"should_analyze_indicators": true,
					"should_rank_options":       true,
				},
				Category:   CategoryAdversarial,
				Difficulty: "medium",
			},
			{
				ID:   "adv_002",
				Name: "Counter-Move Planning",
				Prompt: `Intelligence confirms Red Force will launch an air strike against
Blue Force airbases in 6 hours. Red Force assets:
- 30 strike aircraft with escort
- Electronic warfare support
- Expected approach from the northwest

You command Blue Force air defense. Plan your response, including:
1. Defensive posture
2. Counter-attack options
3. Deception measures`,
				ExpectedElements: []string{"intercept", "CAP", "SAM", "dispersal", "decoy", "counter", "radar"},
				GroundTruth: map[string]any{
					"should_have_defensive_plan": true,
					"should_consider_counter":    true,
				},
				Category:   CategoryAdversarial,
				Difficulty: "hard",
			},
			{
				ID:   "adv_003",
				Name: "Deception Recognition",
				Prompt: `Blue Force intelligence reports unusual Red Force activity:

- Heavy radio traffic from Grid ML-1001 (normally quiet sector)
- Visible movement of supply trucks toward forward positions
- HOWEVER: No increase in fuel consumption at forward bases
- HOWEVER: Key command units remain at rear positions

Assess whether this activity represents a genuine offensive preparation
or a deception operation. Explain your reasoning.`,
				ExpectedElements: []string{"deception", "feint", "indicator", "genuine", "fuel", "command", "assess"},
				GroundTruth: map[string]any{
					"likely_deception": true,
					"key_indicator":    "fuel consumption",
				},
				Category:   CategoryAdversarial,
				Difficulty: "hard",
			},
		},
	}
}
