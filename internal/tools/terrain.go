package tools

import "fmt"

// Theater bands for the Taiwan Strait region; positions outside fall back
// to a generic assessment.
func describeTerrain(lat, lon float64, analysisType string) string {
	if lon < 117.0 || lon > 122.5 || lat < 22.0 || lat > 26.0 {
		return "Position outside primary scenario bounds.\n" +
			"Generic terrain analysis: Mixed terrain, standard considerations apply."
	}

	var terrainType, desc string
	switch {
	case lon < 119.0:
		terrainType = "mainland_coast"
		desc = "Coastal mainland with extensive port infrastructure.\n" +
			"Multiple air bases within 200km.\n" +
			"Strong defensive positions with layered air defense."
	case lon < 120.5:
		terrainType = "taiwan_strait"
		desc = "Open water, average depth 60m.\n" +
			"Heavy commercial shipping traffic.\n" +
			"Limited concealment for naval forces.\n" +
			"Strong currents (2-3 knots)."
	default:
		terrainType = "taiwan_coast"
		desc = "Mountainous terrain rising from narrow coastal plain.\n" +
			"Limited suitable amphibious landing beaches.\n" +
			"Urban density provides defensive advantage.\n" +
			"Pre-positioned coastal defense systems."
	}

	if analysisType == "strategic" {
		desc += "\n\nSTRATEGIC CONSIDERATIONS:\n" +
			"- Strait width ~180km at narrowest\n" +
			"- Air transit time: 10-15 minutes\n" +
			"- Naval transit time: 3-4 hours\n" +
			"- Limited sea state windows for amphibious ops"
	}

	return fmt.Sprintf("Terrain Type: %s\n\n%s", terrainType, desc)
}
