// Shared game state threaded through the turn loop.
package game

import (
	"time"

	"strategyforge/internal/scenario"
)

// Agent identifies one of the three simulation actors.
type Agent string

const (
	AgentBlueCommander Agent = "blue_commander"
	AgentRedCommander  Agent = "red_commander"
	AgentAnalyst       Agent = "analyst"
)

// Phase is the current stage of a turn.
type Phase string

const (
	PhaseBluePlanning Phase = "blue_planning"
	PhaseRedPlanning  Phase = "red_planning"
	PhaseAnalysis     Phase = "analysis"
	PhaseResolution   Phase = "resolution"
)

// Winner is the declared outcome of a completed simulation.
type Winner string

const (
	WinnerBlue      Winner = "blue"
	WinnerRed       Winner = "red"
	WinnerContested Winner = "contested"
	WinnerNone      Winner = "none"
)

// Message is one transcript entry produced by an agent.
type Message struct {
	Agent   Agent     `json:"agent"`
	Content string    `json:"content"`
	Turn    int       `json:"turn"`
	Time    time.Time `json:"time"`
}

// AgentAction records one agent's turn output. Append-only.
type AgentAction struct {
	Agent          Agent    `json:"agent"`
	Turn           int      `json:"turn"`
	ActionType     string   `json:"action_type"`
	Description    string   `json:"description"`
	GridReferences []string `json:"grid_references,omitempty"`
	UnitsInvolved  []string `json:"units_involved,omitempty"`
	Reasoning      string   `json:"reasoning"`
}

// Score holds the analyst's per-side evaluation for one turn. Sub-scores
// are on a 1-10 scale and zero when the analyst text yielded nothing;
// extraction is best-effort and partial scores are normal.
type Score struct {
	GeospatialAccuracy   float64 `json:"geospatial_accuracy,omitempty"`
	StrategicCoherence   float64 `json:"strategic_coherence,omitempty"`
	ResourceEfficiency   float64 `json:"resource_efficiency,omitempty"`
	AdversarialAwareness float64 `json:"adversarial_awareness,omitempty"`
	RiskCalibration      float64 `json:"risk_calibration,omitempty"`
	Overall              float64 `json:"overall,omitempty"`
}

// Empty reports whether no sub-score was extracted.
func (s Score) Empty() bool {
	return s == Score{}
}

// State is the complete mutable simulation state. Exactly one turn step
// owns it at a time; snapshots handed to observers are deep copies.
type State struct {
	ScenarioName string                                `json:"scenario_name"`
	TurnNumber   int                                   `json:"turn_number"`
	MaxTurns     int                                   `json:"max_turns"`
	Phase        Phase                                 `json:"phase"`
	Messages     []Message                             `json:"messages"`
	BlueUnits    []scenario.Unit                       `json:"blue_units"`
	RedUnits     []scenario.Unit                       `json:"red_units"`
	Actions      []AgentAction                         `json:"action_history"`
	BlueScores   []Score                               `json:"blue_scores"`
	RedScores    []Score                               `json:"red_scores"`
	Objectives   []scenario.Objective                  `json:"objectives"`
	Terrain      map[string]scenario.TerrainFeature    `json:"terrain,omitempty"`
	Complete     bool                                  `json:"is_complete"`
	Winner       Winner                                `json:"winner"`
}

// DefaultMaxTurns bounds a simulation when no turn limit is given.
const DefaultMaxTurns = 5

// NewState builds the initial state for a scenario: turn 1, blue planning.
func NewState(sc *scenario.Scenario, maxTurns int) *State {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &State{
		ScenarioName: sc.Name,
		TurnNumber:   1,
		MaxTurns:     maxTurns,
		Phase:        PhaseBluePlanning,
		BlueUnits:    append([]scenario.Unit(nil), sc.BlueForce.Units...),
		RedUnits:     append([]scenario.Unit(nil), sc.RedForce.Units...),
		Objectives:   append([]scenario.Objective(nil), sc.Objectives...),
		Terrain:      sc.Terrain,
		Winner:       WinnerNone,
	}
}

// Clone returns a deep copy safe to hand to observers.
func (s *State) Clone() *State {
	cp := *s
	cp.Messages = append([]Message(nil), s.Messages...)
	cp.BlueUnits = append([]scenario.Unit(nil), s.BlueUnits...)
	cp.RedUnits = append([]scenario.Unit(nil), s.RedUnits...)
	cp.Actions = append([]AgentAction(nil), s.Actions...)
	cp.BlueScores = append([]Score(nil), s.BlueScores...)
	cp.RedScores = append([]Score(nil), s.RedScores...)
	cp.Objectives = append([]scenario.Objective(nil), s.Objectives...)
	return &cp
}

// LastAction returns the most recent action by the given agent, or a
// placeholder when the agent has not acted yet.
func (s *State) LastAction(agent Agent) string {
	for i := len(s.Actions) - 1; i >= 0; i-- {
		if s.Actions[i].Agent == agent {
			return s.Actions[i].Description
		}
	}
	return "No action yet"
}

// RecentActions formats up to limit of the agent's prior action summaries.
func (s *State) RecentActions(agent Agent, limit int) string {
	var own []AgentAction
	for _, a := range s.Actions {
		if a.Agent == agent {
			own = append(own, a)
		}
	}
	if len(own) == 0 {
		return "No previous actions this simulation."
	}
	if len(own) > limit {
		own = own[len(own)-limit:]
	}
	lines := make([]string, 0, len(own))
	for _, a := range own {
		lines = append(lines, formatTurnLine(a))
	}
	return joinLines(lines)
}

// AllDestroyed reports whether every unit in the slice is destroyed.
// Empty slices count as not destroyed so a side without units cannot
// trigger a victory check.
func AllDestroyed(units []scenario.Unit) bool {
	if len(units) == 0 {
		return false
	}
	for _, u := range units {
		if u.Status != scenario.StatusDestroyed {
			return false
		}
	}
	return true
}
