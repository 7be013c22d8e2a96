// Live terminal viewer for running simulations
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"strategyforge/internal/game"
	"strategyforge/internal/scenario"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// transcriptMsg carries one agent response line for the viewport.
type transcriptMsg struct{ rec game.TurnRecord }

// scoreMsg carries an analyst score row.
type scoreMsg struct{ row game.ScoreRow }

// snapshotMsg carries a fresh state snapshot for the unit table.
type snapshotMsg struct{ state *game.State }

// doneMsg signals the simulation finished.
type doneMsg struct{ err error }

var (
	blueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	analystStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type model struct {
	vp         viewport.Model
	units      table.Model
	transcript []string
	blueScore  game.Score
	redScore   game.Score
	turn       int
	maxTurns   int
	phase      game.Phase
	winner     game.Winner
	complete   bool
	err        error
	wrap       bool
	autoscroll bool
	showUnits  bool
	width      int
	height     int
	cancel     func()
}

func newModel(cancel func()) model {
	cols := []table.Column{
		{Title: "Unit", Width: 24},
		{Title: "Side", Width: 6},
		{Title: "Domain", Width: 8},
		{Title: "Status", Width: 10},
	}
	return model{
		vp:         viewport.New(0, 0),
		units:      table.New(table.WithColumns(cols), table.WithHeight(10)),
		wrap:       true,
		autoscroll: true,
		showUnits:  true,
		cancel:     cancel,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "u":
			m.showUnits = !m.showUnits
			m.updateViewportHeight()
		case "j", "down":
			m.vp.LineDown(1)
		case "k", "up":
			m.vp.LineUp(1)
		case "pgdown":
			m.vp.LineDown(10)
		case "pgup":
			m.vp.LineUp(10)
		}
	case transcriptMsg:
		m.transcript = append(m.transcript, formatRecord(msg.rec))
		if len(m.transcript) > 500 {
			m.transcript = m.transcript[len(m.transcript)-500:]
		}
		m.refreshViewport()
	case scoreMsg:
		if msg.row.Side == "blue" {
			m.blueScore = msg.row.Score
		} else {
			m.redScore = msg.row.Score
		}
	case snapshotMsg:
		m.turn = msg.state.TurnNumber
		m.maxTurns = msg.state.MaxTurns
		m.phase = msg.state.Phase
		m.winner = msg.state.Winner
		m.complete = msg.state.Complete
		m.units.SetRows(unitRows(msg.state))
	case doneMsg:
		m.complete = true
		m.err = msg.err
	}
	return m, nil
}

func (m *model) updateViewportHeight() {
	h := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter()) - 2
	if m.showUnits {
		h -= m.units.Height() + 1
	}
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *model) refreshViewport() {
	var lines []string
	for _, l := range m.transcript {
		if m.wrap && m.vp.Width > 0 {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m model) View() string {
	divider := dimStyle.Render(strings.Repeat("─", max(m.width, 1)))
	sections := []string{m.renderHeader(), divider, m.vp.View()}
	if m.showUnits {
		sections = append(sections, divider, m.units.View())
	}
	sections = append(sections, divider, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m model) renderHeader() string {
	status := fmt.Sprintf("Turn %d/%d  phase: %s", m.turn, m.maxTurns, m.phase)
	if m.complete {
		status = fmt.Sprintf("Complete after turn %d  winner: %s", m.turn, m.winner)
		if m.err != nil {
			status = fmt.Sprintf("Aborted: %v", m.err)
		}
	}
	scores := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(blueStyle.Render("BLUE ")+scoreLine(m.blueScore)),
		panelStyle.Render(redStyle.Render("RED ")+scoreLine(m.redScore)),
	)
	return status + "\n" + scores
}

func (m model) renderFooter() string {
	return dimStyle.Render("q quit · w wrap · s autoscroll · u units · j/k scroll")
}

func scoreLine(s game.Score) string {
	if s.Empty() {
		return "awaiting analysis"
	}
	return fmt.Sprintf("geo %.1f  str %.1f  res %.1f  adv %.1f  risk %.1f  overall %.1f",
		s.GeospatialAccuracy, s.StrategicCoherence, s.ResourceEfficiency,
		s.AdversarialAwareness, s.RiskCalibration, s.Overall)
}

func formatRecord(rec game.TurnRecord) string {
	style := analystStyle
	switch rec.Agent {
	case game.AgentBlueCommander:
		style = blueStyle
	case game.AgentRedCommander:
		style = redStyle
	}
	header := style.Render(fmt.Sprintf("[turn %d] %s", rec.Turn, rec.Agent))
	return header + " " + rec.Summary
}

func unitRows(s *game.State) []table.Row {
	rows := make([]table.Row, 0, len(s.BlueUnits)+len(s.RedUnits))
	add := func(units []scenario.Unit, side string) {
		for _, u := range units {
			rows = append(rows, table.Row{u.Name, side, string(u.Domain), string(u.Status)})
		}
	}
	add(s.BlueUnits, "blue")
	add(s.RedUnits, "red")
	return rows
}
