package game

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"strategyforge/internal/llm"
	"strategyforge/internal/scenario"
	"strategyforge/internal/tools"
)

// scriptedClient replays canned responses and records every request.
type scriptedClient struct {
	responses []*llm.Response
	requests  []llm.Request
	err       error
}

func (c *scriptedClient) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return &llm.Response{Content: "### RECOMMENDED ACTION\nHold position."}, nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptedClient) ModelName() string { return "scripted" }

const analystResponse = `## BLUE ASSESSMENT
- Geospatial Accuracy: 8/10 - verified
- Strategic Coherence: 7/10 - sound
- Resource Efficiency: 6/10 - ok
- Adversarial Awareness: 7/10 - ok
- Risk Calibration: 7/10 - ok

## RED ASSESSMENT
- Geospatial Accuracy: 5/10 - range error
- Strategic Coherence: 5/10 - split effort
- Resource Efficiency: 5/10 - ok
- Adversarial Awareness: 4/10 - blind
- Risk Calibration: 5/10 - ok

## TURN SUMMARY
Blue holds.`

func turnResponses() []*llm.Response {
	return []*llm.Response{
		{Content: "### RECOMMENDED ACTION\nDefend the strait at TS-0402."},
		{Content: "### STRATEGIC MOVE\nAdvance on TS-0402."},
		{Content: analystResponse},
	}
}

func newTestState(t *testing.T, maxTurns int) *State {
	t.Helper()
	return NewState(scenario.TaiwanStrait(), maxTurns)
}

// memWriter collects rows in memory, in the manner of a test sink.
type memWriter struct {
	records []TurnRecord
	scores  []ScoreRow
}

func (m *memWriter) Write(rec TurnRecord) error    { m.records = append(m.records, rec); return nil }
func (m *memWriter) WriteScore(row ScoreRow) error { m.scores = append(m.scores, row); return nil }

func TestRunCompletesAfterMaxTurns(t *testing.T) {
	client := &scriptedClient{responses: append(turnResponses(), turnResponses()...)}
	sink := &memWriter{}
	o := NewOrchestrator(client, nil, sink, sink, nil, 0.7)
	state := newTestState(t, 2)

	if err := o.Run(context.Background(), state); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !state.Complete {
		t.Fatal("state not complete")
	}
	if state.TurnNumber != 2 {
		t.Errorf("turn = %d, want 2", state.TurnNumber)
	}
	// Blue's cumulative 7.0 beats red's 4.8 by more than the margin.
	if state.Winner != WinnerBlue {
		t.Errorf("winner = %s, want blue", state.Winner)
	}
	// 3 agent actions per turn, 2 turns.
	if len(state.Actions) != 6 {
		t.Errorf("actions = %d, want 6", len(state.Actions))
	}
	if len(state.BlueScores) != 2 || len(state.RedScores) != 2 {
		t.Errorf("scores = %d/%d, want 2/2", len(state.BlueScores), len(state.RedScores))
	}
	if len(sink.records) != 6 {
		t.Errorf("sink records = %d, want 6", len(sink.records))
	}
	if len(sink.scores) != 4 {
		t.Errorf("sink scores = %d, want 4", len(sink.scores))
	}
}

func TestStepPhaseSequence(t *testing.T) {
	client := &scriptedClient{responses: turnResponses()}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 5)

	want := []Phase{PhaseRedPlanning, PhaseAnalysis, PhaseResolution, PhaseBluePlanning}
	for _, ph := range want {
		if err := o.Step(context.Background(), state); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if state.Phase != ph {
			t.Fatalf("phase = %s, want %s", state.Phase, ph)
		}
	}
	if state.TurnNumber != 2 {
		t.Errorf("turn = %d, want 2", state.TurnNumber)
	}
}

func TestActionTypesAndGridRefs(t *testing.T) {
	client := &scriptedClient{responses: turnResponses()}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 5)

	for i := 0; i < 3; i++ {
		if err := o.Step(context.Background(), state); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if got := state.Actions[0].ActionType; got != ActionStrategicRecommendation {
		t.Errorf("blue action type = %s", got)
	}
	if got := state.Actions[1].ActionType; got != ActionStrategicCounter {
		t.Errorf("red action type = %s", got)
	}
	if got := state.Actions[2].ActionType; got != ActionEvaluation {
		t.Errorf("analyst action type = %s", got)
	}
	if refs := state.Actions[0].GridReferences; len(refs) != 1 || refs[0] != "TS-0402" {
		t.Errorf("grid refs = %v", refs)
	}
}

func TestCommanderToolLoop(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "distance", Arguments: map[string]any{
			"from_lat": 25.03, "from_lon": 121.52, "to_lat": 24.48, "to_lon": 118.08,
		}}}},
		{Content: "### RECOMMENDED ACTION\nStrike within range."},
	}}
	o := NewOrchestrator(client, tools.NewRegistry(), nil, nil, nil, 0)
	state := newTestState(t, 5)

	if err := o.Step(context.Background(), state); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(client.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(client.requests))
	}
	second := client.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if last.Role != llm.RoleTool || !strings.Contains(last.Content, "km") {
		t.Errorf("tool result not fed back: %+v", last)
	}
	if state.LastAction(AgentBlueCommander) != "Strike within range." {
		t.Errorf("action = %q", state.LastAction(AgentBlueCommander))
	}
}

func TestToolFailureIsFedBack(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "no_such_tool"}}},
		{Content: "### RECOMMENDED ACTION\nProceed without the check."},
	}}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 5)

	if err := o.Step(context.Background(), state); err != nil {
		t.Fatalf("tool failure should not abort the turn: %v", err)
	}
	second := client.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if !strings.Contains(last.Content, "failed") {
		t.Errorf("failure not reported to model: %q", last.Content)
	}
}

func TestRecordsCarryActingPhase(t *testing.T) {
	client := &scriptedClient{responses: turnResponses()}
	sink := &memWriter{}
	o := NewOrchestrator(client, nil, sink, sink, nil, 0)
	state := newTestState(t, 5)

	for i := 0; i < 3; i++ {
		if err := o.Step(context.Background(), state); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	want := []Phase{PhaseBluePlanning, PhaseRedPlanning, PhaseAnalysis}
	if len(sink.records) != len(want) {
		t.Fatalf("records = %d, want %d", len(sink.records), len(want))
	}
	for i, ph := range want {
		if sink.records[i].Phase != ph {
			t.Errorf("record %d phase = %s, want %s", i, sink.records[i].Phase, ph)
		}
	}
}

func TestToolFailureLoggedViaContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client := &scriptedClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "no_such_tool"}}},
		{Content: "### RECOMMENDED ACTION\nProceed without the check."},
	}}
	o := NewOrchestrator(client, nil, nil, nil, logger, 0)
	state := newTestState(t, 5)

	if err := o.Step(context.Background(), state); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !strings.Contains(buf.String(), "tool call failed") {
		t.Errorf("warning not routed to the orchestrator logger: %q", buf.String())
	}
}

func TestModelErrorAbortsTurn(t *testing.T) {
	client := &scriptedClient{err: errors.New("connection refused")}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 5)

	err := o.Step(context.Background(), state)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v", err)
	}
	if len(state.Actions) != 0 {
		t.Error("action recorded despite model error")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	client := &scriptedClient{responses: turnResponses()}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := o.Run(ctx, state); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if state.Complete {
		t.Error("cancelled run marked complete")
	}
}

func TestResolveDestroyedSideEndsSimulation(t *testing.T) {
	state := newTestState(t, 5)
	for i := range state.RedUnits {
		state.RedUnits[i].Status = scenario.StatusDestroyed
	}
	state.Phase = PhaseResolution

	o := NewOrchestrator(&scriptedClient{}, nil, nil, nil, nil, 0)
	if err := o.Step(context.Background(), state); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !state.Complete || state.Winner != WinnerBlue {
		t.Errorf("complete=%v winner=%s", state.Complete, state.Winner)
	}
}

func TestScoreWinnerContestedOnNarrowMargin(t *testing.T) {
	state := newTestState(t, 1)
	state.BlueScores = []Score{{Overall: 7.0}}
	state.RedScores = []Score{{Overall: 6.8}}
	if w := scoreWinner(state); w != WinnerContested {
		t.Errorf("winner = %s, want contested", w)
	}
}

func TestObserverReceivesSnapshots(t *testing.T) {
	client := &scriptedClient{responses: turnResponses()}
	o := NewOrchestrator(client, nil, nil, nil, nil, 0)
	state := newTestState(t, 1)
	snaps := o.Subscribe()

	if err := o.Run(context.Background(), state); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var n int
	var last *State
	for s := range snaps {
		n++
		last = s
	}
	if n == 0 {
		t.Fatal("no snapshots delivered")
	}
	if !last.Complete {
		t.Error("final snapshot not complete")
	}
	// Snapshot must be isolated from the live state.
	last.Actions = nil
	if len(state.Actions) == 0 {
		t.Error("snapshot mutation leaked into state")
	}
}
