// Orchestrator driving the commander and analyst agents through turns
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"strategyforge/internal/llm"
	"strategyforge/internal/logging"
	"strategyforge/internal/tools"
)

// Action types recorded in the shared history.
const (
	ActionStrategicRecommendation = "strategic_recommendation"
	ActionStrategicCounter        = "strategic_counter"
	ActionEvaluation              = "evaluation"
)

// maxToolRounds bounds the request/tool-result loop per agent call so a
// model that keeps asking for tools cannot stall a turn.
const maxToolRounds = 3

// Orchestrator runs the four-phase turn loop over a shared state.
type Orchestrator struct {
	simulationID string
	client       llm.Client
	tools        *tools.Registry
	writer       TranscriptWriter
	scoreWriter  ScoreWriter
	logger       *slog.Logger
	temperature  float64
	now          func() time.Time

	mu        sync.Mutex
	observers []chan *State
}

// NewOrchestrator wires the agents, tools and sinks for one simulation.
// writer and scoreWriter may be nil when no sink is wanted.
func NewOrchestrator(client llm.Client, reg *tools.Registry, writer TranscriptWriter, scoreWriter ScoreWriter, logger *slog.Logger, temperature float64) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = tools.NewRegistry()
	}
	return &Orchestrator{
		simulationID: uuid.NewString(),
		client:       client,
		tools:        reg,
		writer:       writer,
		scoreWriter:  scoreWriter,
		logger:       logger,
		temperature:  temperature,
		now:          time.Now,
	}
}

// SimulationID returns the unique id assigned to this run.
func (o *Orchestrator) SimulationID() string { return o.simulationID }

// Subscribe returns a channel receiving a state snapshot after every
// phase step. The channel is closed when Run returns.
func (o *Orchestrator) Subscribe() <-chan *State {
	ch := make(chan *State, 16)
	o.mu.Lock()
	o.observers = append(o.observers, ch)
	o.mu.Unlock()
	return ch
}

func (o *Orchestrator) notify(s *State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, ch := range o.observers {
		select {
		case ch <- s.Clone():
		default:
		}
	}
}

func (o *Orchestrator) closeObservers() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, ch := range o.observers {
		close(ch)
	}
	o.observers = nil
}

// Run steps the state until the simulation completes or ctx is
// cancelled. On cancellation the partial state is preserved and the
// context error returned.
func (o *Orchestrator) Run(ctx context.Context, state *State) error {
	defer o.closeObservers()
	for !state.Complete {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.Step(ctx, state); err != nil {
			return err
		}
		o.notify(state)
	}
	o.logger.Info("simulation complete",
		"simulation", o.simulationID,
		"scenario", state.ScenarioName,
		"turns", state.TurnNumber,
		"winner", state.Winner)
	return nil
}

// Step advances the state by exactly one phase. The orchestrator's
// logger rides the context so helpers below the call boundary share it.
func (o *Orchestrator) Step(ctx context.Context, state *State) error {
	ctx = logging.NewContext(ctx, o.logger)
	switch state.Phase {
	case PhaseBluePlanning:
		return o.commanderStep(ctx, state, AgentBlueCommander, ActionStrategicRecommendation, PhaseRedPlanning)
	case PhaseRedPlanning:
		return o.commanderStep(ctx, state, AgentRedCommander, ActionStrategicCounter, PhaseAnalysis)
	case PhaseAnalysis:
		return o.analysisStep(ctx, state)
	case PhaseResolution:
		o.resolve(state)
		return nil
	default:
		return fmt.Errorf("unknown phase %q", state.Phase)
	}
}

func (o *Orchestrator) commanderStep(ctx context.Context, state *State, agent Agent, actionType string, next Phase) error {
	content, err := o.callAgent(ctx, state, agent, true)
	if err != nil {
		return fmt.Errorf("%s turn %d: %w", agent, state.TurnNumber, err)
	}

	summary := ExtractActionSummary(content)
	refs := ExtractGridReferences(content)
	state.Messages = append(state.Messages, Message{Agent: agent, Content: content, Turn: state.TurnNumber, Time: o.now()})
	state.Actions = append(state.Actions, AgentAction{
		Agent:          agent,
		Turn:           state.TurnNumber,
		ActionType:     actionType,
		Description:    summary,
		GridReferences: refs,
		Reasoning:      content,
	})
	acted := state.Phase
	state.Phase = next

	o.logger.Debug("commander acted", "agent", agent, "turn", state.TurnNumber, "summary", summary)
	return o.emit(state, acted, agent, actionType, summary, content, refs)
}

func (o *Orchestrator) analysisStep(ctx context.Context, state *State) error {
	content, err := o.callAgent(ctx, state, AgentAnalyst, false)
	if err != nil {
		return fmt.Errorf("analyst turn %d: %w", state.TurnNumber, err)
	}

	blue, red := ExtractScores(content)
	if blue.Empty() {
		o.logger.Warn("no blue scores extracted", "turn", state.TurnNumber)
	}
	if red.Empty() {
		o.logger.Warn("no red scores extracted", "turn", state.TurnNumber)
	}
	state.BlueScores = append(state.BlueScores, blue)
	state.RedScores = append(state.RedScores, red)

	summary := ExtractActionSummary(content)
	state.Messages = append(state.Messages, Message{Agent: AgentAnalyst, Content: content, Turn: state.TurnNumber, Time: o.now()})
	state.Actions = append(state.Actions, AgentAction{
		Agent:       AgentAnalyst,
		Turn:        state.TurnNumber,
		ActionType:  ActionEvaluation,
		Description: summary,
		Reasoning:   content,
	})
	state.Phase = PhaseResolution

	if o.scoreWriter != nil {
		ts := o.now()
		rows := []ScoreRow{
			{Simulation: o.simulationID, Scenario: state.ScenarioName, Turn: state.TurnNumber, Side: "blue", Score: blue, Timestamp: ts},
			{Simulation: o.simulationID, Scenario: state.ScenarioName, Turn: state.TurnNumber, Side: "red", Score: red, Timestamp: ts},
		}
		if bw, ok := o.scoreWriter.(batchScoreWriter); ok {
			if err := bw.WriteScores(rows); err != nil {
				return err
			}
		} else {
			for _, r := range rows {
				if err := o.scoreWriter.WriteScore(r); err != nil {
					return err
				}
			}
		}
	}
	return o.emit(state, PhaseAnalysis, AgentAnalyst, ActionEvaluation, summary, content, nil)
}

// resolve runs the end-of-turn bookkeeping: termination checks first,
// then advance to the next turn.
func (o *Orchestrator) resolve(state *State) {
	switch {
	case AllDestroyed(state.RedUnits):
		state.Complete = true
		state.Winner = WinnerBlue
	case AllDestroyed(state.BlueUnits):
		state.Complete = true
		state.Winner = WinnerRed
	case state.TurnNumber >= state.MaxTurns:
		state.Complete = true
		state.Winner = scoreWinner(state)
	default:
		state.TurnNumber++
		state.Phase = PhaseBluePlanning
	}
}

// scoreWinner declares the side with the higher cumulative analyst
// score the winner; near-equal totals are contested.
func scoreWinner(state *State) Winner {
	blue := cumulativeOverall(state.BlueScores)
	red := cumulativeOverall(state.RedScores)
	const margin = 0.5
	switch {
	case blue-red > margin:
		return WinnerBlue
	case red-blue > margin:
		return WinnerRed
	default:
		return WinnerContested
	}
}

func cumulativeOverall(scores []Score) float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if s.Empty() {
			continue
		}
		sum += s.Overall
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// callAgent sends the turn prompt and resolves tool calls. Tool
// execution errors are fed back to the model as tool output; only
// model errors abort the turn.
func (o *Orchestrator) callAgent(ctx context.Context, state *State, agent Agent, withTools bool) (string, error) {
	log := logging.FromContext(ctx)
	req := llm.Request{
		System:      SystemPrompt(agent),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: TurnPrompt(state, agent)}},
		Temperature: o.temperature,
	}
	if withTools {
		req.Tools = o.tools.Specs()
	}

	for round := 0; ; round++ {
		resp, err := o.client.Generate(ctx, req)
		if err != nil {
			return "", err
		}
		if len(resp.ToolCalls) == 0 || round >= maxToolRounds {
			return resp.Content, nil
		}
		if resp.Content != "" {
			req.Messages = append(req.Messages, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
		}
		for _, call := range resp.ToolCalls {
			result, err := o.tools.Execute(call)
			if err != nil {
				log.Warn("tool call failed", "tool", call.Name, "error", err)
				result = fmt.Sprintf("Tool %s failed: %v", call.Name, err)
			}
			req.Messages = append(req.Messages, llm.Message{
				Role:    llm.RoleTool,
				Content: fmt.Sprintf("[%s] %s", call.Name, result),
			})
		}
	}
}

// emit records the row under the phase that produced it, not the phase
// the state has already advanced to.
func (o *Orchestrator) emit(state *State, phase Phase, agent Agent, actionType, summary, content string, refs []string) error {
	if o.writer == nil {
		return nil
	}
	return o.writer.Write(TurnRecord{
		Simulation: o.simulationID,
		Scenario:   state.ScenarioName,
		Turn:       state.TurnNumber,
		Phase:      phase,
		Agent:      agent,
		ActionType: actionType,
		Summary:    summary,
		Content:    content,
		GridRefs:   refs,
		Timestamp:  o.now(),
	})
}
