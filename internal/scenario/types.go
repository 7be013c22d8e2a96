// Force, unit, and objective data model for wargame scenarios.
package scenario

import "fmt"

// Domain is the operating domain of a unit.
type Domain string

const (
	DomainAir    Domain = "air"
	DomainNaval  Domain = "naval"
	DomainGround Domain = "ground"
	DomainCyber  Domain = "cyber"
	DomainSpace  Domain = "space"
)

// Side identifies the owning force of a unit.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// UnitStatus is the operational status of a unit.
type UnitStatus string

const (
	StatusReady     UnitStatus = "ready"
	StatusEngaged   UnitStatus = "engaged"
	StatusDamaged   UnitStatus = "damaged"
	StatusDestroyed UnitStatus = "destroyed"
)

// Owner is the current holder of an objective.
type Owner string

const (
	OwnerBlue      Owner = "blue"
	OwnerRed       Owner = "red"
	OwnerContested Owner = "contested"
	OwnerNeutral   Owner = "neutral"
)

// Position is a geographic position with an optional military grid reference.
type Position struct {
	Lat     float64 `yaml:"lat" json:"lat"`
	Lon     float64 `yaml:"lon" json:"lon"`
	GridRef string  `yaml:"grid_ref,omitempty" json:"grid_ref,omitempty"`
}

func (p Position) String() string {
	if p.GridRef != "" {
		return fmt.Sprintf("%s (%.4f, %.4f)", p.GridRef, p.Lat, p.Lon)
	}
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lon)
}

// Unit is an individually tracked military asset.
type Unit struct {
	ID           string     `yaml:"id" json:"id"`
	Name         string     `yaml:"name" json:"name"`
	Domain       Domain     `yaml:"domain" json:"domain"`
	Side         Side       `yaml:"side" json:"side"`
	Position     Position   `yaml:"position" json:"position"`
	Status       UnitStatus `yaml:"status,omitempty" json:"status"`
	Capabilities []string   `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
	RangeKM      float64    `yaml:"range_km,omitempty" json:"range_km,omitempty"`
	SpeedKMH     float64    `yaml:"speed_kmh,omitempty" json:"speed_kmh,omitempty"`
}

// Force is one side's collection of units plus a resource ledger.
type Force struct {
	Name      string             `yaml:"name" json:"name"`
	Side      Side               `yaml:"side" json:"side"`
	Units     []Unit             `yaml:"units" json:"units"`
	Resources map[string]float64 `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// AddUnit appends a unit, forcing its side to match the force.
func (f *Force) AddUnit(u Unit) {
	u.Side = f.Side
	if u.Status == "" {
		u.Status = StatusReady
	}
	f.Units = append(f.Units, u)
}

// UnitsByDomain returns all units in the given domain.
func (f *Force) UnitsByDomain(d Domain) []Unit {
	var out []Unit
	for _, u := range f.Units {
		if u.Domain == d {
			out = append(out, u)
		}
	}
	return out
}

// ActiveUnits returns all units not yet destroyed.
func (f *Force) ActiveUnits() []Unit {
	var out []Unit
	for _, u := range f.Units {
		if u.Status != StatusDestroyed {
			out = append(out, u)
		}
	}
	return out
}

// Objective is a fixed strategic location with contested ownership.
type Objective struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Position    Position `yaml:"position" json:"position"`
	Owner       Owner    `yaml:"owner" json:"owner"`
	Value       int      `yaml:"value" json:"value"`
}

// TerrainFeature annotates a named region of the theater.
type TerrainFeature struct {
	Type        string  `yaml:"type" json:"type"`
	Description string  `yaml:"description" json:"description"`
	WidthKM     float64 `yaml:"width_km,omitempty" json:"width_km,omitempty"`
	DepthAvgM   float64 `yaml:"depth_avg_m,omitempty" json:"depth_avg_m,omitempty"`
}

// Bounds are the geographic limits of a scenario theater.
type Bounds struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}
