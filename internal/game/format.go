package game

import (
	"fmt"
	"strings"

	"strategyforge/internal/scenario"
)

// FormatStateFor renders the state as briefing text for one agent. The
// analyst sees both orders of battle in full; each commander sees its
// own side in detail and only an intelligence-estimate note for the
// opponent, with no unit data across the fog-of-war boundary.
func FormatStateFor(s *State, agent Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", s.ScenarioName)
	fmt.Fprintf(&b, "Turn %d of %d, phase: %s\n\n", s.TurnNumber, s.MaxTurns, s.Phase)

	switch agent {
	case AgentBlueCommander:
		b.WriteString("## Friendly Forces (BLUE)\n")
		writeUnits(&b, s.BlueUnits)
		b.WriteString("\n## Red Forces (Intelligence Estimate)\n")
		b.WriteString("- Known positions based on last reconnaissance\n")
	case AgentRedCommander:
		b.WriteString("## Friendly Forces (RED)\n")
		writeUnits(&b, s.RedUnits)
		b.WriteString("\n## Blue Forces (Intelligence Estimate)\n")
		b.WriteString("- Known positions based on surveillance\n")
	default:
		b.WriteString("## BLUE Order of Battle\n")
		writeUnits(&b, s.BlueUnits)
		b.WriteString("\n## RED Order of Battle\n")
		writeUnits(&b, s.RedUnits)
	}

	b.WriteString("\n## Objectives\n")
	for _, o := range s.Objectives {
		fmt.Fprintf(&b, "- %s (%s): held by %s, value %d\n",
			o.Name, o.Position.String(), o.Owner, o.Value)
	}

	if len(s.Actions) > 0 {
		b.WriteString("\n## Recent Actions\n")
		recent := s.Actions
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		for _, a := range recent {
			fmt.Fprintf(&b, "- Turn %d [%s]: %s\n", a.Turn, a.Agent, a.Description)
		}
	}
	return b.String()
}

// writeUnits renders a full order of battle with status, capabilities
// and performance figures.
func writeUnits(b *strings.Builder, units []scenario.Unit) {
	if len(units) == 0 {
		b.WriteString("- none\n")
		return
	}
	for _, u := range units {
		fmt.Fprintf(b, "- %s (%s, %s domain): at %s, status %s, range %.0f km, speed %.0f km/h",
			u.Name, u.ID, u.Domain, u.Position.String(), u.Status, u.RangeKM, u.SpeedKMH)
		if len(u.Capabilities) > 0 {
			fmt.Fprintf(b, ", capabilities: %s", strings.Join(u.Capabilities, ", "))
		}
		b.WriteString("\n")
	}
}

func formatTurnLine(a AgentAction) string {
	return fmt.Sprintf("Turn %d: %s", a.Turn, a.Description)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
