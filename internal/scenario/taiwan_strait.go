package scenario

// TaiwanStrait builds the built-in Taiwan Strait crisis scenario. Blue
// defends island positions, Red seeks sea and air control. Fictional
// training data for model evaluation.
func TaiwanStrait() *Scenario {
	s := &Scenario{
		Name:   "Taiwan Strait Crisis",
		Region: "Indo-Pacific",
		Description: "Multi-domain conflict scenario in the Taiwan Strait region. " +
			"Blue Force defends island positions while Red Force seeks to " +
			"establish sea and air control.",
		Bounds: Bounds{North: 26.0, South: 22.0, East: 122.5, West: 117.0},
	}

	s.BlueForce = Force{
		Name: "Blue Force - Island Defense",
		Side: SideBlue,
		Resources: map[string]float64{
			"aircraft":        120,
			"missiles":        500,
			"fuel_days":       30,
			"ammunition_days": 45,
		},
	}
	for _, u := range []Unit{
		{
			ID: "blue_air_1", Name: "1st Fighter Wing", Domain: DomainAir,
			Position:     Position{Lat: 25.0777, Lon: 121.2325, GridRef: "TW-1001"},
			Capabilities: []string{"air_superiority", "intercept", "patrol"},
			RangeKM:      800, SpeedKMH: 2400,
		},
		{
			ID: "blue_air_2", Name: "2nd Fighter Wing", Domain: DomainAir,
			Position:     Position{Lat: 22.6727, Lon: 120.4618, GridRef: "TW-2001"},
			Capabilities: []string{"air_superiority", "ground_attack"},
			RangeKM:      750, SpeedKMH: 2200,
		},
		{
			ID: "blue_awacs_1", Name: "Early Warning Squadron", Domain: DomainAir,
			Position:     Position{Lat: 24.0, Lon: 121.5, GridRef: "TW-1500"},
			Capabilities: []string{"early_warning", "command_control", "surveillance"},
			RangeKM:      500, SpeedKMH: 850,
		},
		{
			ID: "blue_naval_1", Name: "Destroyer Squadron 1", Domain: DomainNaval,
			Position:     Position{Lat: 24.5, Lon: 120.0, GridRef: "TS-3001"},
			Capabilities: []string{"anti_air", "anti_surface", "missile_defense"},
			RangeKM:      300, SpeedKMH: 55,
		},
		{
			ID: "blue_naval_2", Name: "Frigate Group Alpha", Domain: DomainNaval,
			Position:     Position{Lat: 23.5, Lon: 119.5, GridRef: "TS-4001"},
			Capabilities: []string{"anti_submarine", "patrol", "escort"},
			RangeKM:      250, SpeedKMH: 50,
		},
		{
			ID: "blue_sub_1", Name: "Submarine Division 1", Domain: DomainNaval,
			Position:     Position{Lat: 24.0, Lon: 119.0, GridRef: "TS-5001"},
			Capabilities: []string{"anti_surface", "reconnaissance", "mine_laying"},
			RangeKM:      400, SpeedKMH: 40,
		},
		{
			ID: "blue_ground_1", Name: "Coastal Defense Battery 1", Domain: DomainGround,
			Position:     Position{Lat: 25.1, Lon: 121.4, GridRef: "TW-1010"},
			Capabilities: []string{"anti_ship_missile", "coastal_defense"},
			RangeKM:      150,
		},
		{
			ID: "blue_ground_2", Name: "SAM Battery Alpha", Domain: DomainGround,
			Position:     Position{Lat: 24.5, Lon: 120.8, GridRef: "TW-1500"},
			Capabilities: []string{"air_defense", "missile_intercept"},
			RangeKM:      200,
		},
	} {
		s.BlueForce.AddUnit(u)
	}

	s.RedForce = Force{
		Name: "Red Force - Maritime Offensive",
		Side: SideRed,
		Resources: map[string]float64{
			"aircraft":        400,
			"missiles":        1500,
			"fuel_days":       60,
			"ammunition_days": 90,
		},
	}
	for _, u := range []Unit{
		{
			ID: "red_air_1", Name: "1st Attack Wing", Domain: DomainAir,
			Position:     Position{Lat: 25.5, Lon: 119.0, GridRef: "ML-1001"},
			Capabilities: []string{"air_superiority", "strike", "escort"},
			RangeKM:      1200, SpeedKMH: 2500,
		},
		{
			ID: "red_air_2", Name: "2nd Bomber Wing", Domain: DomainAir,
			Position:     Position{Lat: 26.0, Lon: 119.5, GridRef: "ML-0501"},
			Capabilities: []string{"anti_ship", "strike", "standoff_attack"},
			RangeKM:      3000, SpeedKMH: 900,
		},
		{
			ID: "red_air_3", Name: "Electronic Warfare Squadron", Domain: DomainAir,
			Position:     Position{Lat: 25.0, Lon: 118.5, GridRef: "ML-2001"},
			Capabilities: []string{"jamming", "elint", "suppression"},
			RangeKM:      600, SpeedKMH: 800,
		},
		{
			ID: "red_naval_1", Name: "Carrier Strike Group", Domain: DomainNaval,
			Position:     Position{Lat: 24.0, Lon: 118.0, GridRef: "EC-1001"},
			Capabilities: []string{"power_projection", "air_ops", "command"},
			RangeKM:      500, SpeedKMH: 55,
		},
		{
			ID: "red_naval_2", Name: "Amphibious Ready Group", Domain: DomainNaval,
			Position:     Position{Lat: 24.5, Lon: 118.5, GridRef: "EC-2001"},
			Capabilities: []string{"amphibious_assault", "transport", "fire_support"},
			RangeKM:      300, SpeedKMH: 35,
		},
		{
			ID: "red_naval_3", Name: "Destroyer Squadron East", Domain: DomainNaval,
			Position:     Position{Lat: 25.0, Lon: 118.0, GridRef: "EC-0501"},
			Capabilities: []string{"anti_air", "anti_surface", "land_attack"},
			RangeKM:      350, SpeedKMH: 55,
		},
		{
			ID: "red_sub_1", Name: "Attack Submarine Division", Domain: DomainNaval,
			Position:     Position{Lat: 23.5, Lon: 118.0, GridRef: "EC-3001"},
			Capabilities: []string{"anti_surface", "anti_submarine", "reconnaissance"},
			RangeKM:      500, SpeedKMH: 45,
		},
		{
			ID: "red_ground_1", Name: "Rocket Force Brigade 1", Domain: DomainGround,
			Position:     Position{Lat: 26.0, Lon: 118.0, GridRef: "ML-0001"},
			Capabilities: []string{"ballistic_missile", "cruise_missile", "strike"},
			RangeKM:      1500,
		},
	} {
		s.RedForce.AddUnit(u)
	}

	s.Objectives = []Objective{
		{
			ID: "obj_strait_control", Name: "Strait Control",
			Description: "Establish sea control over Taiwan Strait shipping lanes",
			Position:    Position{Lat: 24.5, Lon: 119.5, GridRef: "TS-0000"},
			Owner:       OwnerContested, Value: 10,
		},
		{
			ID: "obj_air_superiority", Name: "Air Superiority Zone",
			Description: "Achieve air superiority over the operational area",
			Position:    Position{Lat: 24.0, Lon: 120.0, GridRef: "AS-0000"},
			Owner:       OwnerContested, Value: 9,
		},
		{
			ID: "obj_port_access", Name: "Port Access",
			Description: "Maintain/deny access to major port facilities",
			Position:    Position{Lat: 25.0, Lon: 121.5, GridRef: "PT-0001"},
			Owner:       OwnerBlue, Value: 8,
		},
		{
			ID: "obj_early_warning", Name: "Early Warning Network",
			Description: "Maintain/suppress early warning radar coverage",
			Position:    Position{Lat: 24.5, Lon: 121.0, GridRef: "EW-0001"},
			Owner:       OwnerBlue, Value: 7,
		},
	}

	s.Terrain = map[string]TerrainFeature{
		"taiwan_strait": {
			Type:        "water",
			WidthKM:     180,
			DepthAvgM:   60,
			Description: "Shallow strait with significant shipping traffic",
		},
		"taiwan_west_coast": {
			Type:        "coastal",
			Description: "Limited suitable landing beaches, urban density",
		},
		"mainland_coast": {
			Type:        "coastal",
			Description: "Extensive military infrastructure",
		},
	}

	return s
}
