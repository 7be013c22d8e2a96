// Deterministic geospatial tools offered to commander agents so they can
// query distances instead of hallucinating them.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"strategyforge/internal/geo"
	"strategyforge/internal/llm"
)

// Tool is a named deterministic helper callable by a model mid-turn.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]string
	Run         func(args map[string]any) (string, error)
}

// Registry is a fixed lookup of tools by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds the standard geospatial tool set.
func NewRegistry() *Registry {
	r := &Registry{tools: map[string]Tool{}}
	for _, t := range []Tool{
		distanceTool(),
		weaponRangeTool(),
		terrainAnalysisTool(),
		forceTransitTool(),
	} {
		r.tools[t.Name] = t
	}
	return r
}

// Specs returns declarations for all tools in name order, suitable for
// passing to a generation request.
func (r *Registry) Specs() []llm.ToolSpec {
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	specs := make([]llm.ToolSpec, 0, len(names))
	for _, n := range names {
		t := r.tools[n]
		specs = append(specs, llm.ToolSpec{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return specs
}

// Execute resolves and runs a tool by name. Unknown names and argument
// problems come back as errors; the caller decides how to surface them.
func (r *Registry) Execute(call llm.ToolCall) (string, error) {
	t, ok := r.tools[call.Name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", call.Name)
	}
	return t.Run(call.Arguments)
}

func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err != nil {
			return 0, fmt.Errorf("argument %q is not numeric: %q", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %q has unsupported type %T", key, v)
	}
}

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func distanceTool() Tool {
	return Tool{
		Name:        "distance",
		Description: "Calculate great-circle distance and bearing between two positions.",
		Parameters: map[string]string{
			"from_lat": "number", "from_lon": "number",
			"to_lat": "number", "to_lon": "number",
		},
		Run: func(args map[string]any) (string, error) {
			from, to, err := pointPair(args)
			if err != nil {
				return "", err
			}
			dist := geo.Distance(from, to)
			bearing := geo.Bearing(from, to)
			dir := geo.CardinalDirection(bearing)
			return fmt.Sprintf(
				"Distance: %g km\nBearing: %g° (%s)\nAir transit (800 km/h): %.1f hours\nNaval transit (50 km/h): %.1f hours\nGround transit (60 km/h): %.1f hours",
				dist, bearing, dir,
				geo.TravelTime(dist, 800),
				geo.TravelTime(dist, 50),
				geo.TravelTime(dist, 60),
			), nil
		},
	}
}

func weaponRangeTool() Tool {
	return Tool{
		Name:        "weapon_range_check",
		Description: "Check whether a target position is inside a weapon system's range.",
		Parameters: map[string]string{
			"unit_lat": "number", "unit_lon": "number",
			"target_lat": "number", "target_lon": "number",
			"weapon_range_km": "number",
		},
		Run: func(args map[string]any) (string, error) {
			unitLat, err := floatArg(args, "unit_lat")
			if err != nil {
				return "", err
			}
			unitLon, err := floatArg(args, "unit_lon")
			if err != nil {
				return "", err
			}
			targetLat, err := floatArg(args, "target_lat")
			if err != nil {
				return "", err
			}
			targetLon, err := floatArg(args, "target_lon")
			if err != nil {
				return "", err
			}
			rangeKM, err := floatArg(args, "weapon_range_km")
			if err != nil {
				return "", err
			}
			unit := geo.Point{Lat: unitLat, Lon: unitLon}
			target := geo.Point{Lat: targetLat, Lon: targetLon}
			dist := geo.Distance(unit, target)
			if dist <= rangeKM {
				return fmt.Sprintf(
					"TARGET IN RANGE\nDistance to target: %g km\nWeapon range: %g km\nRange margin: %.1f km",
					dist, rangeKM, rangeKM-dist), nil
			}
			shortfall := dist - rangeKM
			return fmt.Sprintf(
				"TARGET OUT OF RANGE\nDistance to target: %g km\nWeapon range: %g km\nRange shortfall: %.1f km\nUnit must close %.1f km to engage",
				dist, rangeKM, shortfall, shortfall), nil
		},
	}
}

func terrainAnalysisTool() Tool {
	return Tool{
		Name:        "terrain_analysis",
		Description: "Analyze terrain characteristics at a position for tactical or strategic planning.",
		Parameters: map[string]string{
			"lat": "number", "lon": "number",
			"analysis_type": "string",
		},
		Run: func(args map[string]any) (string, error) {
			lat, err := floatArg(args, "lat")
			if err != nil {
				return "", err
			}
			lon, err := floatArg(args, "lon")
			if err != nil {
				return "", err
			}
			analysis := stringArg(args, "analysis_type", "tactical")
			return describeTerrain(lat, lon, analysis), nil
		},
	}
}

func forceTransitTool() Tool {
	return Tool{
		Name:        "force_transit_estimate",
		Description: "Estimate transit time for an air, naval, or ground force between two positions.",
		Parameters: map[string]string{
			"force_type": "string",
			"from_lat":   "number", "from_lon": "number",
			"to_lat": "number", "to_lon": "number",
		},
		Run: func(args map[string]any) (string, error) {
			from, to, err := pointPair(args)
			if err != nil {
				return "", err
			}
			forceType := strings.ToLower(stringArg(args, "force_type", ""))
			speeds, ok := transitSpeeds[forceType]
			if !ok {
				return "", fmt.Errorf("unknown force_type %q (want air, naval, or ground)", forceType)
			}
			dist := geo.Distance(from, to)
			dir := geo.CardinalDirection(geo.Bearing(from, to))

			lines := []string{
				fmt.Sprintf("Force Type: %s", strings.ToUpper(forceType)),
				fmt.Sprintf("Distance: %g km (%s)", dist, dir),
				"",
				"Transit Time Estimates:",
				fmt.Sprintf("  Fast: %.1f hours", geo.TravelTime(dist, speeds.fast)),
				fmt.Sprintf("  Cruise: %.1f hours", geo.TravelTime(dist, speeds.cruise)),
				fmt.Sprintf("  Slow/Cautious: %.1f hours", geo.TravelTime(dist, speeds.slow)),
			}
			switch forceType {
			case "air":
				lines = append(lines, "", "Note: Does not include loiter time or refueling requirements")
			case "naval":
				lines = append(lines, "", "Note: Assumes favorable sea state; storms may delay 2-3x")
			default:
				lines = append(lines, "", "Note: Terrain and road conditions may significantly affect speed")
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}

type speedBand struct {
	fast, cruise, slow float64
}

var transitSpeeds = map[string]speedBand{
	"air":    {fast: 2000, cruise: 800, slow: 400},
	"naval":  {fast: 55, cruise: 35, slow: 20},
	"ground": {fast: 80, cruise: 50, slow: 30},
}

func pointPair(args map[string]any) (geo.Point, geo.Point, error) {
	fromLat, err := floatArg(args, "from_lat")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	fromLon, err := floatArg(args, "from_lon")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	toLat, err := floatArg(args, "to_lat")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	toLon, err := floatArg(args, "to_lon")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	return geo.Point{Lat: fromLat, Lon: fromLon}, geo.Point{Lat: toLat, Lon: toLon}, nil
}
